package analysis

import (
	"sort"

	"grid-balance/internal/simulation"
)

type RankedRun struct {
	Rank int `json:"rank"`
	Adequacy
}

// RankRuns summarizes runs and sorts them ascending by unmet energy, then by curtailment.
func RankRuns(runs []*simulation.Result) []RankedRun {
	out := make([]RankedRun, 0, len(runs))
	for _, r := range runs {
		out = append(out, RankedRun{Adequacy: Summarize(r)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalUnmetGWh != out[j].TotalUnmetGWh {
			return out[i].TotalUnmetGWh < out[j].TotalUnmetGWh
		}
		return out[i].TotalCurtailedGWh < out[j].TotalCurtailedGWh
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
