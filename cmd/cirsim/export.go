package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cirlab/cirsim/internal/experiment"
	"github.com/cirlab/cirsim/internal/sim"
)

func writeCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(result.States) == 0 {
		return fmt.Errorf("no data to export")
	}

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, v := range result.States[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type runExport struct {
	Plant      string               `json:"plant"`
	Horizon    float64              `json:"t_final"`
	Samples    int                  `json:"samples"`
	StateNames []string             `json:"state_names"`
	Times      []float64            `json:"times"`
	States     [][]float64          `json:"states"`
	Derived    map[string][]float64 `json:"derived,omitempty"`
	Metrics    map[string]float64   `json:"metrics,omitempty"`
}

func writeJSON(w io.Writer, plant string, exp *experiment.Experiment, run *simResult) error {
	out := runExport{
		Plant:      plant,
		Horizon:    run.horizon,
		Samples:    len(run.result.States),
		StateNames: exp.Model().StateNames(),
		Times:      run.result.Times,
		States:     make([][]float64, len(run.result.States)),
		Metrics:    run.result.Metrics,
	}
	for i, s := range run.result.States {
		out.States[i] = s
	}
	if len(run.result.Derived) > 0 {
		out.Derived = make(map[string][]float64, len(run.result.Derived))
		for _, series := range run.result.Derived {
			out.Derived[series.Name] = series.Values
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
