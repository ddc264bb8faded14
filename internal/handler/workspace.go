package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"notewell/internal/store"
)

type WorkspacesResponse struct {
	Workspaces []string `json:"workspaces"`
	Current    string   `json:"current"`
	Default    string   `json:"default"`
}

func (h *Handler) ListWorkspaces(c echo.Context) error {
	return c.JSON(http.StatusOK, WorkspacesResponse{
		Workspaces: h.store.Workspaces(),
		Current:    h.store.CurrentWorkspace(),
		Default:    store.DefaultWorkspace,
	})
}

// CreateWorkspace appends a workspace. Duplicate names are rejected.
func (h *Handler) CreateWorkspace(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if err := h.store.AddWorkspace(req.Name); err != nil {
		if errors.Is(err, store.ErrWorkspaceExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"name": req.Name})
}

// SetCurrentWorkspace switches the current workspace; the name must exist.
func (h *Handler) SetCurrentWorkspace(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if err := h.store.SetCurrentWorkspace(req.Name); err != nil {
		if errors.Is(err, store.ErrUnknownWorkspace) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"current": req.Name})
}

// DeleteWorkspace removes a workspace and every note in it. The UI confirms
// with the user before calling this; the cascade cannot be undone.
func (h *Handler) DeleteWorkspace(c echo.Context) error {
	name := c.Param("name")
	if err := h.store.DeleteWorkspace(name); err != nil {
		switch {
		case errors.Is(err, store.ErrLastWorkspace),
			errors.Is(err, store.ErrDefaultWorkspace):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, store.ErrUnknownWorkspace):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
