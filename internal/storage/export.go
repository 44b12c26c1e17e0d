package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

type ExportData struct {
	Run        RunMetadata    `json:"run"`
	Energy     []float64      `json:"energy"`
	Collisions []int          `json:"collisions"`
	Frames     []dynamo.Frame `json:"frames"`
}

// ExportJSON writes a stored run as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	energy, collisions, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		Run:        *meta,
		Energy:     energy,
		Collisions: collisions,
		Frames:     frames,
	})
}
