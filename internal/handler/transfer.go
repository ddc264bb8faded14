package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notewell/internal/transfer"
)

// ExportNotes downloads the whole note collection as a pretty-printed JSON
// backup document.
func (h *Handler) ExportNotes(c echo.Context) error {
	data, err := transfer.Export(h.store.Notes())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	filename := transfer.ExportFilename(time.Now())
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// ImportNotes validates a backup document and inserts every record through
// the normal add path, so imported notes land in the current workspace with
// fresh ids and timestamps. A single invalid record rejects the whole file.
func (h *Handler) ImportNotes(c echo.Context) error {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
	}

	records, err := transfer.Import(data)
	if err != nil {
		var verr *transfer.ValidationError
		if errors.As(err, &verr) || errors.Is(err, transfer.ErrNotArray) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	for _, rec := range records {
		if _, err := h.store.AddNote(rec.Draft()); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, map[string]int{"imported": len(records)})
}

// RunBackup triggers a snapshot backup immediately.
func (h *Handler) RunBackup(c echo.Context) error {
	name, err := h.backups.RunOnce()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "backup successful", "file": name})
}

// ListBackups lists the retained snapshot backups, newest first.
func (h *Handler) ListBackups(c echo.Context) error {
	names, err := h.backups.List()
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{"backups": []string{}})
	}
	return c.JSON(http.StatusOK, map[string]any{"backups": names})
}
