package store

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fieldlab/internal/sim"
)

type exportPayload struct {
	Meta   RunMetadata          `json:"meta"`
	XLabel string               `json:"x_label"`
	X      []float64            `json:"x"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes a run's metadata and series as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, ds *sim.Dataset) error {
	payload := exportPayload{
		Meta:   *meta,
		XLabel: ds.XLabel,
		X:      ds.X,
		Series: make(map[string][]float64, len(ds.Series)),
	}
	for _, s := range ds.Series {
		payload.Series[s.Name] = s.Y
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
