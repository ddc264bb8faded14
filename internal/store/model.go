// Package store holds the authoritative note and workspace state.
//
// All mutations go through the Store type, which applies a pure state
// transition and then writes the whole state back to disk, so readers never
// observe a partially applied change.
package store

import "errors"

// Note is a single user document.
type Note struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
	IsPinned   bool     `json:"isPinned"`
	IsFavorite bool     `json:"isFavorite"`
	Color      string   `json:"color,omitempty"`
	Workspace  string   `json:"workspace"`
	Folder     string   `json:"folder,omitempty"`
}

// Draft is the caller-supplied part of a new note. Everything else
// (id, timestamps, flags, workspace) is filled in by the store.
type Draft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Color   string   `json:"color,omitempty"`
	Folder  string   `json:"folder,omitempty"`
}

// State is the full store state. Mutations replace it atomically.
type State struct {
	Notes            []Note   `json:"notes"`
	Workspaces       []string `json:"workspaces"`
	CurrentWorkspace string   `json:"currentWorkspace"`

	// ActiveNoteID is transient UI state and is not persisted.
	ActiveNoteID string `json:"-"`
}

// DefaultWorkspace can never be deleted and is where the current selection
// falls back to after a workspace cascade delete.
const DefaultWorkspace = "Personal"

// Colors is the note color palette. Empty string means default appearance.
var Colors = []string{"red", "yellow", "green", "blue", "purple"}

// Folders is the suggested folder set; folder values are freeform.
var Folders = []string{"Personal", "Work", "Ideas", "Projects", "Archive"}

var (
	ErrLastWorkspace    = errors.New("cannot delete the last workspace")
	ErrDefaultWorkspace = errors.New("cannot delete the default workspace")
	ErrWorkspaceExists  = errors.New("workspace already exists")
	ErrUnknownWorkspace = errors.New("unknown workspace")
)

// Clone returns a deep copy of the note so callers cannot alias store state
// through the tags slice.
func (n Note) Clone() Note {
	c := n
	c.Tags = append([]string(nil), n.Tags...)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}

// HasTag reports whether the note carries the given tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Seed returns the state used on first launch or when the persisted
// snapshot is missing or unreadable.
func Seed() State {
	return State{
		Notes:            []Note{},
		Workspaces:       []string{DefaultWorkspace, "Work", "Projects"},
		CurrentWorkspace: DefaultWorkspace,
	}
}

func (s State) hasWorkspace(name string) bool {
	for _, w := range s.Workspaces {
		if w == name {
			return true
		}
	}
	return false
}
