package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"grid-balance/internal/model"
)

func WriteHoursCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeHoursCSV(f, res)
}

// EncodeHoursCSV writes one row per hour. Source and storage columns follow the
// scenario's merit order and storage order.
func EncodeHoursCSV(out io.Writer, res *Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	sources := model.SortByMerit(res.Scenario.Sources)
	header := []string{
		"hour",
		"day",
		"hour_of_day",
		"demand_gw",
	}
	for _, c := range model.Components {
		header = append(header, string(c)+"_gw")
	}
	for _, s := range sources {
		header = append(header, string(s.Name)+"_gw")
	}
	for _, u := range res.Scenario.Storage {
		name := string(u.Name)
		header = append(header, name+"_mode", name+"_charge_gw", name+"_discharge_gw", name+"_soc_gwh")
	}
	header = append(header,
		"storage_net_flow_gw",
		"excess_gw",
		"residual_gw",
		"curtailed_gwh",
		"headroom_gwh",
		"unmet_gwh",
		"cum_curtailed_gwh",
		"cum_unmet_gwh",
	)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, h := range res.Hours {
		row := []string{
			strconv.Itoa(h.Hour),
			strconv.Itoa(h.Day),
			strconv.Itoa(h.HourOfDay),
			fmtFloat(h.DemandGW),
		}
		for _, c := range model.Components {
			row = append(row, fmtFloat(h.ComponentsGW[c]))
		}
		generated := make(map[model.SourceName]float64, len(h.Sources))
		for _, a := range h.Sources {
			generated[a.Name] = a.GeneratedGW
		}
		for _, s := range sources {
			row = append(row, fmtFloat(generated[s.Name]))
		}
		for _, u := range res.Scenario.Storage {
			for _, st := range h.Storage {
				if st.Name != u.Name {
					continue
				}
				row = append(row, string(st.Mode), fmtFloat(st.ChargeGW), fmtFloat(st.DischargeGW), fmtFloat(st.SoCGWh))
			}
		}
		row = append(row,
			fmtFloat(h.StorageNetFlowGW),
			fmtFloat(h.ExcessGW),
			fmtFloat(h.ResidualGW),
			fmtFloat(h.CurtailedGWh),
			fmtFloat(h.HeadroomGWh),
			fmtFloat(h.UnmetGWh),
			fmtFloat(h.CumCurtailedGWh),
			fmtFloat(h.CumUnmetGWh),
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
