package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notewell/internal/autosave"
	"notewell/internal/backup"
	"notewell/internal/storage"
	"notewell/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	fs := storage.NewMemoryFileSystem()
	st := store.Open(fs)
	saver := autosave.New(time.Millisecond, func(n store.Note) {
		_ = st.UpdateNote(n)
	})
	t.Cleanup(saver.Stop)
	return NewHandler(st, saver, backup.New(fs, 7)), st
}

func doRequest(h echo.HandlerFunc, method, target, body string, params ...string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return rec, h(c)
}

func TestCreateNote(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, err := doRequest(h.CreateNote, http.MethodPost, "/api/notes",
		`{"title":"hello","content":"<p>hi</p>","tags":["a"]}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	var n store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &n))
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "hello", n.Title)
	assert.Equal(t, store.DefaultWorkspace, n.Workspace)
	assert.False(t, n.IsPinned)
}

func TestGetNoteNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, err := doRequest(h.GetNote, http.MethodGet, "/api/notes/x", "", "id", "missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNote(t *testing.T) {
	h, st := newTestHandler(t)
	n, err := st.AddNote(store.Draft{Title: "before"})
	require.NoError(t, err)

	rec, err := doRequest(h.UpdateNote, http.MethodPut, "/api/notes/"+n.ID,
		`{"title":"after","content":"body","tags":[]}`, "id", n.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	got, ok := st.Note(n.ID)
	require.True(t, ok)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "body", got.Content)
}

func TestUpdateNoteUnknownIDIsSilentNoOp(t *testing.T) {
	h, st := newTestHandler(t)

	rec, err := doRequest(h.UpdateNote, http.MethodPut, "/api/notes/missing",
		`{"title":"ghost"}`, "id", "missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, st.Notes())
}

func TestDeleteNoteIsIdempotent(t *testing.T) {
	h, st := newTestHandler(t)
	n, err := st.AddNote(store.Draft{Title: "gone"})
	require.NoError(t, err)

	rec, err := doRequest(h.DeleteNote, http.MethodDelete, "/api/notes/"+n.ID, "", "id", n.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, err = doRequest(h.DeleteNote, http.MethodDelete, "/api/notes/"+n.ID, "", "id", n.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTogglePin(t *testing.T) {
	h, st := newTestHandler(t)
	n, err := st.AddNote(store.Draft{Title: "pin"})
	require.NoError(t, err)

	rec, err := doRequest(h.TogglePin, http.MethodPost, "/api/notes/x/pin", "", "id", n.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var got store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.IsPinned)
}

func TestAddAndRemoveTag(t *testing.T) {
	h, st := newTestHandler(t)
	n, err := st.AddNote(store.Draft{Title: "tags"})
	require.NoError(t, err)

	rec, err := doRequest(h.AddTag, http.MethodPost, "/api/notes/x/tags",
		`{"tag":"urgent"}`, "id", n.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := st.Note(n.ID)
	assert.Equal(t, []string{"urgent"}, got.Tags)

	rec, err = doRequest(h.RemoveTag, http.MethodDelete, "/api/notes/x/tags/urgent", "",
		"id", n.ID, "tag", "urgent")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ = st.Note(n.ID)
	assert.Empty(t, got.Tags)
}

func TestApplyTemplateUnknownTemplate(t *testing.T) {
	h, st := newTestHandler(t)
	n, err := st.AddNote(store.Draft{Title: "slot"})
	require.NoError(t, err)

	rec, err := doRequest(h.ApplyTemplate, http.MethodPost, "/api/notes/x/template",
		`{"template":"nope"}`, "id", n.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyTemplate(t *testing.T) {
	h, st := newTestHandler(t)
	n, err := st.AddNote(store.Draft{Title: "slot"})
	require.NoError(t, err)

	rec, err := doRequest(h.ApplyTemplate, http.MethodPost, "/api/notes/x/template",
		`{"template":"todo"}`, "id", n.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := st.Note(n.ID)
	assert.Contains(t, got.Content, "To-Do List")
}

func TestCreateWorkspaceRejectsDuplicate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, err := doRequest(h.CreateWorkspace, http.MethodPost, "/api/workspaces", `{"name":"Side"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, err = doRequest(h.CreateWorkspace, http.MethodPost, "/api/workspaces", `{"name":"Side"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetCurrentWorkspaceUnknown(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, err := doRequest(h.SetCurrentWorkspace, http.MethodPut, "/api/workspaces/current",
		`{"name":"Nowhere"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteWorkspaceGuardsSurfaceAsErrors(t *testing.T) {
	h, st := newTestHandler(t)

	rec, err := doRequest(h.DeleteWorkspace, http.MethodDelete, "/api/workspaces/x", "",
		"name", store.DefaultWorkspace)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "default workspace")
	assert.Len(t, st.Workspaces(), 3, "failed delete leaves state unchanged")
}

func TestExportNotes(t *testing.T) {
	h, st := newTestHandler(t)
	_, err := st.AddNote(store.Draft{Title: "exported"})
	require.NoError(t, err)

	rec, err := doRequest(h.ExportNotes, http.MethodGet, "/api/export", "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "notes-backup-")

	var notes []store.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "exported", notes[0].Title)
}

func TestImportNotesReparentsToCurrentWorkspace(t *testing.T) {
	h, st := newTestHandler(t)
	require.NoError(t, st.SetCurrentWorkspace("Work"))

	doc := `[{"id":"old","title":"restored","content":"c","tags":["t"],"createdAt":1,"updatedAt":2,"workspace":"Elsewhere"}]`
	rec, err := doRequest(h.ImportNotes, http.MethodPost, "/api/import", doc)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	notes := st.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "restored", notes[0].Title)
	assert.Equal(t, "Work", notes[0].Workspace, "imported notes join the current workspace")
	assert.NotEqual(t, "old", notes[0].ID, "imported notes get fresh ids")
}

func TestImportNotesRejectsInvalidDocument(t *testing.T) {
	h, st := newTestHandler(t)

	doc := `[{"id":1,"title":"bad","content":"","tags":[],"createdAt":1,"updatedAt":1}]`
	rec, err := doRequest(h.ImportNotes, http.MethodPost, "/api/import", doc)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, st.Notes(), "no partial import")
}

func TestPreviewNote(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, err := doRequest(h.PreviewNote, http.MethodPost, "/api/preview", `{"content":"# Title"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["html"], "<h1")
	assert.Contains(t, resp["html"], "Title")
}

func TestListTemplates(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, err := doRequest(h.ListTemplates, http.MethodGet, "/api/templates", "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Meeting Notes")
}
