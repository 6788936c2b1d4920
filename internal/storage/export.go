package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/soillab/internal/sim"
)

type ExportData struct {
	RunMetadata
	Times []float64   `json:"times"`
	Tips  [][]float64 `json:"tips"`
}

// ExportJSON writes a run's metadata and curve-tip trace as one JSON
// document. Frames without a tip are left out of the trace.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	data := exportData(*meta, samples)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func exportData(meta RunMetadata, samples []sim.Sample) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Times:       make([]float64, 0, len(samples)),
		Tips:        make([][]float64, 0, len(samples)),
	}
	for _, smp := range samples {
		if !smp.Tip.Valid {
			continue
		}
		data.Times = append(data.Times, smp.Time)
		data.Tips = append(data.Tips, []float64{smp.Tip.X, smp.Tip.Y})
	}
	return data
}

// Trace splits the valid tips of samples into x and y columns.
func Trace(samples []sim.Sample) (xs, ys []float64) {
	for _, smp := range samples {
		if smp.Tip.Valid {
			xs = append(xs, smp.Tip.X)
			ys = append(ys, smp.Tip.Y)
		}
	}
	return xs, ys
}
