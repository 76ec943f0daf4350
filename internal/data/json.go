package data

import (
	"encoding/json"
	"os"

	"grid-balance/internal/simulation"
)

// WriteResultJSON writes a full run, hours included, as indented JSON.
func WriteResultJSON(path string, res *simulation.Result) error {
	raw, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func LoadResultJSON(path string) (*simulation.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var res simulation.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
