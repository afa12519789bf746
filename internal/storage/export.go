package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	History []string `json:"history"`
}

// ExportJSON writes a run's metadata and recorded line-ups to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rounds, err := s.LoadRounds(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		History:     make([]string, len(rounds)),
	}
	for i, r := range rounds {
		data.History[i] = r.Lineup
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
