package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.TaskList,
		extension.Strikethrough,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// PreviewNote renders note content to HTML for the read-only preview pane.
func (h *Handler) PreviewNote(c echo.Context) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(req.Content), &buf); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to render content"})
	}

	return c.JSON(http.StatusOK, map[string]string{"html": buf.String()})
}
