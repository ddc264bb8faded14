package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notewell/internal/storage"
	"notewell/internal/store"
)

func seedSnapshot(t *testing.T, fs *storage.FileSystem) {
	t.Helper()
	require.NoError(t, fs.WriteFile(fs.DataPath(store.SnapshotFile),
		[]byte(`{"notes":[],"workspaces":["Personal"],"currentWorkspace":"Personal"}`), 0644))
}

func TestRunOnceCopiesSnapshot(t *testing.T) {
	fs := storage.NewMemoryFileSystem()
	seedSnapshot(t, fs)

	s := New(fs, 7)
	name, err := s.RunOnce()
	require.NoError(t, err)
	assert.Regexp(t, `^notes_backup_\d{8}_\d{6}\.json$`, name)

	data, err := fs.ReadFile(fs.DataPath("backups/" + name))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"currentWorkspace":"Personal"`)
}

func TestRunOnceWithoutSnapshotFails(t *testing.T) {
	s := New(storage.NewMemoryFileSystem(), 7)
	_, err := s.RunOnce()
	assert.Error(t, err)
}

func TestPruneKeepsNewest(t *testing.T) {
	fs := storage.NewMemoryFileSystem()
	seedSnapshot(t, fs)

	s := New(fs, 2)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := s.RunOnce()
		require.NoError(t, err)
	}

	names, err := s.List()
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "notes_backup_20240501_100400.json", names[0], "newest first")
	assert.Equal(t, "notes_backup_20240501_100300.json", names[1])
}

func TestListEmptyDirectory(t *testing.T) {
	fs := storage.NewMemoryFileSystem()
	require.NoError(t, fs.MkdirAll(fs.DataPath("backups"), 0755))

	s := New(fs, 7)
	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}
