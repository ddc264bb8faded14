package store

import (
	"sort"
	"strings"
)

// The functions in this file are the pure state transitions. They take the
// old state plus the operation arguments and return the new state without
// touching anything outside their inputs; the Store wrapper supplies the
// clock, id generation, locking and persistence.

func addNote(s State, d Draft, id string, now int64) (State, Note) {
	n := Note{
		ID:         id,
		Title:      d.Title,
		Content:    d.Content,
		Tags:       append([]string{}, d.Tags...),
		CreatedAt:  now,
		UpdatedAt:  now,
		IsPinned:   false,
		IsFavorite: false,
		Color:      d.Color,
		Workspace:  s.CurrentWorkspace,
		Folder:     d.Folder,
	}
	// Newest first.
	s.Notes = append([]Note{n}, s.Notes...)
	s.ActiveNoteID = n.ID
	return s, n
}

// updateNote replaces the note matching n.ID wholesale, stamping updatedAt.
// The store owns updatedAt, createdAt and workspace for ordinary edits;
// whatever the caller supplied for those is ignored (createdAt moves only
// through applyTemplate, workspace only through the deletion cascade).
// A missing id is a silent no-op.
func updateNote(s State, n Note, now int64) State {
	for i := range s.Notes {
		if s.Notes[i].ID == n.ID {
			repl := n.Clone()
			repl.CreatedAt = s.Notes[i].CreatedAt
			repl.Workspace = s.Notes[i].Workspace
			repl.UpdatedAt = now
			s.Notes[i] = repl
			break
		}
	}
	return s
}

// mutateNote applies fn to the note with the given id and stamps updatedAt.
// A missing id is a silent no-op.
func mutateNote(s State, id string, now int64, fn func(*Note)) State {
	for i := range s.Notes {
		if s.Notes[i].ID == id {
			n := s.Notes[i].Clone()
			fn(&n)
			n.UpdatedAt = now
			s.Notes[i] = n
			break
		}
	}
	return s
}

func deleteNote(s State, id string) State {
	kept := s.Notes[:0:0]
	for _, n := range s.Notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.Notes = kept
	if s.ActiveNoteID == id {
		s.ActiveNoteID = ""
	}
	return s
}

// applyTemplate starts fresh content inside the currently open note slot:
// content is replaced, both timestamps reset to now, pin and favorite flags
// cleared. Identity, workspace, color, folder, title and tags survive.
func applyTemplate(s State, id, content string, now int64) State {
	for i := range s.Notes {
		if s.Notes[i].ID == id {
			n := s.Notes[i].Clone()
			n.Content = content
			n.CreatedAt = now
			n.UpdatedAt = now
			n.IsPinned = false
			n.IsFavorite = false
			s.Notes[i] = n
			break
		}
	}
	return s
}

func addWorkspace(s State, name string) (State, error) {
	if s.hasWorkspace(name) {
		return s, ErrWorkspaceExists
	}
	s.Workspaces = append(append([]string{}, s.Workspaces...), name)
	return s, nil
}

func setCurrentWorkspace(s State, name string) (State, error) {
	if !s.hasWorkspace(name) {
		return s, ErrUnknownWorkspace
	}
	s.CurrentWorkspace = name
	return s, nil
}

// deleteWorkspace removes the workspace and cascade-deletes every note in
// it. The guards fire before any state change, so a failed delete leaves
// the state untouched.
func deleteWorkspace(s State, name string) (State, error) {
	if len(s.Workspaces) <= 1 {
		return s, ErrLastWorkspace
	}
	if name == DefaultWorkspace {
		return s, ErrDefaultWorkspace
	}
	if !s.hasWorkspace(name) {
		return s, ErrUnknownWorkspace
	}

	if s.CurrentWorkspace == name {
		s.CurrentWorkspace = DefaultWorkspace
	}

	kept := s.Notes[:0:0]
	for _, n := range s.Notes {
		if n.Workspace != name {
			kept = append(kept, n)
		} else if s.ActiveNoteID == n.ID {
			s.ActiveNoteID = ""
		}
	}
	s.Notes = kept

	ws := s.Workspaces[:0:0]
	for _, w := range s.Workspaces {
		if w != name {
			ws = append(ws, w)
		}
	}
	s.Workspaces = ws
	return s, nil
}

// matchesQuery is a case-insensitive substring match against title, content
// or any tag. The empty query matches everything.
func matchesQuery(n Note, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// sortForDisplay orders notes pinned-first, ties broken by updatedAt
// descending. The sort is stable so equal notes keep collection order.
func sortForDisplay(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt > notes[j].UpdatedAt
	})
}
