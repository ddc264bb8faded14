package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notewell/internal/store"
)

type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Color   string   `json:"color"`
	Folder  string   `json:"folder"`
}

type UpdateNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsPinned   bool     `json:"isPinned"`
	IsFavorite bool     `json:"isFavorite"`
	Color      string   `json:"color"`
	Folder     string   `json:"folder"`
}

// ListNotes returns the list-view ordering for the current workspace
// (pinned first, then most recently updated), optionally filtered by the q
// search parameter. With all=true the search runs over every workspace in
// collection order instead.
func (h *Handler) ListNotes(c echo.Context) error {
	query := c.QueryParam("q")
	if c.QueryParam("all") == "true" {
		return c.JSON(http.StatusOK, h.store.SearchNotes(query))
	}
	return c.JSON(http.StatusOK, h.store.VisibleNotes(query))
}

// CreateNote adds a note to the current workspace and opens it for editing.
func (h *Handler) CreateNote(c echo.Context) error {
	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	n, err := h.store.AddNote(store.Draft{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Color:   req.Color,
		Folder:  req.Folder,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, n)
}

func (h *Handler) GetNote(c echo.Context) error {
	n, ok := h.store.Note(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "note not found"})
	}
	return c.JSON(http.StatusOK, n)
}

// UpdateNote replaces the note wholesale. With debounce=true the write is
// coalesced through the auto-save timer (last write wins) instead of being
// applied immediately; updating an unknown id is a no-op.
func (h *Handler) UpdateNote(c echo.Context) error {
	id := c.Param("id")

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	current, ok := h.store.Note(id)
	if !ok {
		// Deliberate leniency: a vanished note is not an error.
		return c.NoContent(http.StatusNoContent)
	}

	next := current
	next.Title = req.Title
	next.Content = req.Content
	next.Tags = req.Tags
	next.IsPinned = req.IsPinned
	next.IsFavorite = req.IsFavorite
	next.Color = req.Color
	next.Folder = req.Folder

	if c.QueryParam("debounce") == "true" {
		h.saver.Queue(next)
		return c.JSON(http.StatusAccepted, map[string]string{"status": "scheduled"})
	}

	if err := h.store.UpdateNote(next); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	n, _ := h.store.Note(id)
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) DeleteNote(c echo.Context) error {
	if err := h.store.DeleteNote(c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// TogglePin flips the pinned flag; pinned notes sort above unpinned ones.
func (h *Handler) TogglePin(c echo.Context) error {
	return h.applyToggle(c, h.store.TogglePin)
}

// ToggleFavorite flips the favorite flag.
func (h *Handler) ToggleFavorite(c echo.Context) error {
	return h.applyToggle(c, h.store.ToggleFavorite)
}

func (h *Handler) applyToggle(c echo.Context, toggle func(string) error) error {
	id := c.Param("id")
	if err := toggle(id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.respondWithNote(c, id)
}

// SetNoteColor sets or clears the color token.
func (h *Handler) SetNoteColor(c echo.Context) error {
	var req struct {
		Color string `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	id := c.Param("id")
	if err := h.store.SetNoteColor(id, req.Color); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.respondWithNote(c, id)
}

// MoveToFolder sets the folder label.
func (h *Handler) MoveToFolder(c echo.Context) error {
	var req struct {
		Folder string `json:"folder"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	id := c.Param("id")
	if err := h.store.MoveToFolder(id, req.Folder); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.respondWithNote(c, id)
}

// AddTag appends a tag; duplicates are ignored.
func (h *Handler) AddTag(c echo.Context) error {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := c.Bind(&req); err != nil || req.Tag == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	id := c.Param("id")
	if err := h.store.AddTag(id, req.Tag); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.respondWithNote(c, id)
}

// RemoveTag removes a tag; absent tags are ignored.
func (h *Handler) RemoveTag(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.RemoveTag(id, c.Param("tag")); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.respondWithNote(c, id)
}

// ListTemplates returns the built-in template set.
func (h *Handler) ListTemplates(c echo.Context) error {
	type templateResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	tpls := store.Templates()
	resp := make([]templateResponse, len(tpls))
	for i, t := range tpls {
		resp[i] = templateResponse{ID: t.ID, Name: t.Name}
	}
	return c.JSON(http.StatusOK, resp)
}

// ApplyTemplate restarts the note's content from a built-in template,
// resetting its timestamps and flags.
func (h *Handler) ApplyTemplate(c echo.Context) error {
	var req struct {
		Template string `json:"template"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	tpl, ok := store.TemplateByID(req.Template)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown template"})
	}

	id := c.Param("id")
	if err := h.store.ApplyTemplate(id, tpl.Content(time.Now())); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.respondWithNote(c, id)
}

// GetActiveNote resolves the note currently open for editing.
func (h *Handler) GetActiveNote(c echo.Context) error {
	n, ok := h.store.ActiveNote()
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"note": nil})
	}
	return c.JSON(http.StatusOK, map[string]any{"note": n})
}

// SetActiveNote records which note is open for editing; an empty id clears
// the selection.
func (h *Handler) SetActiveNote(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	h.store.SetActiveNote(req.ID)
	return c.NoContent(http.StatusNoContent)
}

// respondWithNote answers with the note's current value, or 204 when the
// mutation was a silent no-op on an unknown id.
func (h *Handler) respondWithNote(c echo.Context, id string) error {
	n, ok := h.store.Note(id)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, n)
}
