package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"notewell/internal/autosave"
	"notewell/internal/backup"
	"notewell/internal/config"
	"notewell/internal/handler"
	"notewell/internal/logger"
	"notewell/internal/storage"
	"notewell/internal/store"
	"notewell/internal/version"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	// 1. Initialize logger
	if err := logger.InitLogger(cfg.DataDir, cfg.Debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.L().Info("Starting Notewell",
		zap.String("data_dir", cfg.DataDir),
		zap.String("version", version.Version),
	)

	// 2. Hydrate the store from the snapshot (seed state when missing)
	fs := storage.NewFileSystem(cfg.DataDir)
	st := store.Open(fs)
	zap.L().Info("Store hydrated",
		zap.Int("notes", len(st.Notes())),
		zap.Strings("workspaces", st.Workspaces()),
	)

	// 3. Debounced auto-save for the editor surface
	saver := autosave.New(autosave.DefaultDelay, func(n store.Note) {
		if err := st.UpdateNote(n); err != nil {
			zap.L().Error("Auto-save failed", zap.String("note", n.ID), zap.Error(err))
		}
	})
	defer saver.Flush()

	// 4. Automatic snapshot backups
	backups := backup.New(fs, cfg.BackupKeep)
	if cfg.BackupSchedule != "" {
		if err := backups.Start(cfg.BackupSchedule); err != nil {
			zap.L().Warn("Automatic backups disabled", zap.Error(err))
		}
		defer backups.Stop()
	}

	// 5. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(zapLoggerMiddleware())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.Secure())
	e.Use(middleware.Gzip())

	h := handler.NewHandler(st, saver, backups)

	// 6. Routes
	api := e.Group("/api")

	api.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, version.GetInfo())
	})

	// Notes
	api.GET("/notes", h.ListNotes)
	api.POST("/notes", h.CreateNote)
	api.GET("/notes/active", h.GetActiveNote)
	api.PUT("/notes/active", h.SetActiveNote)
	api.GET("/notes/:id", h.GetNote)
	api.PUT("/notes/:id", h.UpdateNote)
	api.DELETE("/notes/:id", h.DeleteNote)
	api.POST("/notes/:id/pin", h.TogglePin)
	api.POST("/notes/:id/favorite", h.ToggleFavorite)
	api.PUT("/notes/:id/color", h.SetNoteColor)
	api.PUT("/notes/:id/folder", h.MoveToFolder)
	api.POST("/notes/:id/tags", h.AddTag)
	api.DELETE("/notes/:id/tags/:tag", h.RemoveTag)
	api.POST("/notes/:id/template", h.ApplyTemplate)

	// Templates
	api.GET("/templates", h.ListTemplates)

	// Workspaces
	api.GET("/workspaces", h.ListWorkspaces)
	api.POST("/workspaces", h.CreateWorkspace)
	api.PUT("/workspaces/current", h.SetCurrentWorkspace)
	api.DELETE("/workspaces/:name", h.DeleteWorkspace)

	// Import / Export
	api.GET("/export", h.ExportNotes)
	api.POST("/import", h.ImportNotes)

	// Preview
	api.POST("/preview", h.PreviewNote)

	// Backups
	api.POST("/backup", h.RunBackup)
	api.GET("/backups", h.ListBackups)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	zap.L().Info("Server starting", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		zap.L().Fatal("Server failed to start", zap.Error(err))
	}
}

// zapLoggerMiddleware returns a middleware that logs HTTP requests using zap
func zapLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			res := c.Response()

			err := next(c)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Int64("bytes_out", res.Size),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}

			if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
				fields = append(fields, zap.String("request_id", reqID))
			}

			switch {
			case err != nil:
				fields = append(fields, zap.Error(err))
				zap.L().Error("Request failed", fields...)
			case res.Status >= 500:
				zap.L().Error("Server error", fields...)
			case res.Status >= 400:
				zap.L().Warn("Client error", fields...)
			default:
				zap.L().Info("Request completed", fields...)
			}

			return err
		}
	}
}
