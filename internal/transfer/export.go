// Package transfer serializes the note collection to a backup document and
// validates externally supplied documents before they reach the store.
package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"notewell/internal/store"
)

// Export renders the notes as a pretty-printed JSON array, byte-identical in
// shape to the notes array of the persisted snapshot.
func Export(notes []store.Note) ([]byte, error) {
	if notes == nil {
		notes = []store.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export notes: %w", err)
	}
	return data, nil
}

// ExportFilename returns the download name for an export taken at the given
// time, e.g. notes-backup-2024-03-01T12:00:00Z.json.
func ExportFilename(now time.Time) string {
	return "notes-backup-" + now.UTC().Format(time.RFC3339) + ".json"
}
