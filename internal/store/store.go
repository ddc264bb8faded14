package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"notewell/internal/storage"
)

// Store owns the note/workspace state. Every mutation applies a pure
// transition under the lock and then saves the whole state, so the on-disk
// snapshot always reflects a complete mutation. A failed save leaves the
// in-memory state mutated and returns the error so the caller can surface it.
type Store struct {
	mu    sync.RWMutex
	state State

	fs    *storage.FileSystem
	now   func() time.Time
	newID func() string
}

// Option configures a Store. Used by tests to pin the clock and id source.
type Option func(*Store)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource replaces the note id generator.
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open hydrates a Store from the snapshot file in fs, falling back to the
// seed state when the snapshot is missing or unreadable.
func Open(fs *storage.FileSystem, opts ...Option) *Store {
	s := &Store{
		fs:    fs,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = loadState(fs)
	return s
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// commit stores the new state and persists it.
func (s *Store) commit(next State) error {
	s.state = next
	if err := saveState(s.fs, next); err != nil {
		zap.L().Error("Failed to persist store snapshot", zap.Error(err))
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// AddNote creates a note from the draft in the current workspace, inserts it
// newest-first and makes it the active note. Always succeeds apart from
// persistence failures; the created note is returned either way.
func (s *Store) AddNote(d Draft) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, n := addNote(s.state, d, s.newID(), s.nowMillis())
	return n.Clone(), s.commit(next)
}

// UpdateNote replaces the stored note matching n.ID, stamping updatedAt.
// Unknown ids are a silent no-op.
func (s *Store) UpdateNote(n Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(updateNote(s.state, n, s.nowMillis()))
}

// DeleteNote removes the note; the active selection is cleared if it pointed
// at it. Deleting an unknown id is a no-op, not an error.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(deleteNote(s.state, id))
}

// TogglePin flips the pinned flag.
func (s *Store) TogglePin(id string) error {
	return s.mutate(id, func(n *Note) { n.IsPinned = !n.IsPinned })
}

// ToggleFavorite flips the favorite flag.
func (s *Store) ToggleFavorite(id string) error {
	return s.mutate(id, func(n *Note) { n.IsFavorite = !n.IsFavorite })
}

// SetNoteColor sets the color token; empty clears to default appearance.
func (s *Store) SetNoteColor(id, color string) error {
	return s.mutate(id, func(n *Note) { n.Color = color })
}

// MoveToFolder sets the folder label.
func (s *Store) MoveToFolder(id, folder string) error {
	return s.mutate(id, func(n *Note) { n.Folder = folder })
}

// AddTag appends the tag unless already present. Duplicate adds are no-ops
// and do not stamp updatedAt.
func (s *Store) AddTag(id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.findLocked(id)
	if !ok || n.HasTag(tag) {
		return nil
	}
	return s.commit(mutateNote(s.state, id, s.nowMillis(), func(n *Note) {
		n.Tags = append(n.Tags, tag)
	}))
}

// RemoveTag removes the tag; absent tags are no-ops and do not stamp
// updatedAt.
func (s *Store) RemoveTag(id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.findLocked(id)
	if !ok || !n.HasTag(tag) {
		return nil
	}
	return s.commit(mutateNote(s.state, id, s.nowMillis(), func(n *Note) {
		kept := n.Tags[:0:0]
		for _, t := range n.Tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		n.Tags = kept
	}))
}

// ApplyTemplate replaces the note's content from a template, resetting both
// timestamps and the pin/favorite flags while keeping its identity,
// workspace, color and folder.
func (s *Store) ApplyTemplate(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(applyTemplate(s.state, id, content, s.nowMillis()))
}

// AddWorkspace appends a workspace name. Duplicates are rejected with
// ErrWorkspaceExists.
func (s *Store) AddWorkspace(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := addWorkspace(s.state, name)
	if err != nil {
		return err
	}
	return s.commit(next)
}

// SetCurrentWorkspace switches the current workspace. The name must be a
// member of the workspace set.
func (s *Store) SetCurrentWorkspace(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := setCurrentWorkspace(s.state, name)
	if err != nil {
		return err
	}
	return s.commit(next)
}

// DeleteWorkspace removes the workspace and every note in it. The last
// workspace and the default workspace are protected; a failed delete leaves
// the state unchanged. The cascade is irreversible, so callers are expected
// to confirm with the user first.
func (s *Store) DeleteWorkspace(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := deleteWorkspace(s.state, name)
	if err != nil {
		return err
	}
	return s.commit(next)
}

// SetActiveNote records the note open for editing; an empty id clears the
// selection. Unknown ids clear it as well rather than dangling.
func (s *Store) SetActiveNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findLocked(id); !ok {
		s.state.ActiveNoteID = ""
		return
	}
	s.state.ActiveNoteID = id
}

// ActiveNote resolves the active selection against the current collection.
func (s *Store) ActiveNote() (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ActiveNoteID == "" {
		return Note{}, false
	}
	n, ok := s.findLocked(s.state.ActiveNoteID)
	if !ok {
		return Note{}, false
	}
	return n.Clone(), true
}

// Note returns the note with the given id.
func (s *Store) Note(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.findLocked(id)
	if !ok {
		return Note{}, false
	}
	return n.Clone(), true
}

// Notes returns the whole collection in storage order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.state.Notes)
}

// SearchNotes returns every note matching the query, case-insensitive
// against title, content and tags, in collection order.
func (s *Store) SearchNotes(query string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Note
	for _, n := range s.state.Notes {
		if matchesQuery(n, query) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// VisibleNotes is the list-view ordering: notes of the current workspace
// matching the query, pinned first, then most recently updated.
func (s *Store) VisibleNotes(query string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Note
	for _, n := range s.state.Notes {
		if n.Workspace == s.state.CurrentWorkspace && matchesQuery(n, query) {
			out = append(out, n.Clone())
		}
	}
	sortForDisplay(out)
	return out
}

// Workspaces returns the workspace names in order.
func (s *Store) Workspaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.state.Workspaces...)
}

// CurrentWorkspace returns the current workspace name.
func (s *Store) CurrentWorkspace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentWorkspace
}

func (s *Store) mutate(id string, fn func(*Note)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(mutateNote(s.state, id, s.nowMillis(), fn))
}

func (s *Store) findLocked(id string) (Note, bool) {
	for _, n := range s.state.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
