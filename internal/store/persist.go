package store

import (
	"encoding/json"

	"go.uber.org/zap"

	"notewell/internal/storage"
)

// SnapshotFile is the fixed snapshot name inside the data directory. It
// mirrors the storage key the browser version of the app persisted under.
const SnapshotFile = "notes-storage.json"

// snapshot is the persisted state layout. The active selection is transient
// UI state and deliberately left out.
type snapshot struct {
	Notes            []Note   `json:"notes"`
	Workspaces       []string `json:"workspaces"`
	CurrentWorkspace string   `json:"currentWorkspace"`
}

// loadState reads the snapshot from fs. A missing or corrupt snapshot falls
// back to the seed state rather than failing startup; a readable snapshot is
// normalized so the workspace invariants hold even if the file was edited by
// hand.
func loadState(fs *storage.FileSystem) State {
	data, err := fs.ReadFile(fs.DataPath(SnapshotFile))
	if err != nil {
		zap.L().Info("No usable snapshot, starting from seed state", zap.Error(err))
		return Seed()
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		zap.L().Warn("Snapshot is corrupt, starting from seed state", zap.Error(err))
		return Seed()
	}

	return normalize(State{
		Notes:            snap.Notes,
		Workspaces:       snap.Workspaces,
		CurrentWorkspace: snap.CurrentWorkspace,
	})
}

// saveState writes the whole state atomically (temp file + rename) so a
// crash mid-write never leaves a truncated snapshot behind.
func saveState(fs *storage.FileSystem, s State) error {
	data, err := json.Marshal(snapshot{
		Notes:            s.Notes,
		Workspaces:       s.Workspaces,
		CurrentWorkspace: s.CurrentWorkspace,
	})
	if err != nil {
		return err
	}
	return fs.WriteFileAtomic(fs.DataPath(SnapshotFile), data, 0644)
}

func normalize(s State) State {
	if len(s.Workspaces) == 0 {
		s.Workspaces = Seed().Workspaces
	}
	if !s.hasWorkspace(DefaultWorkspace) {
		s.Workspaces = append([]string{DefaultWorkspace}, s.Workspaces...)
	}
	if !s.hasWorkspace(s.CurrentWorkspace) {
		s.CurrentWorkspace = DefaultWorkspace
	}
	if s.Notes == nil {
		s.Notes = []Note{}
	}
	for i := range s.Notes {
		if s.Notes[i].Tags == nil {
			s.Notes[i].Tags = []string{}
		}
	}
	return s
}
