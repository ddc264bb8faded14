package handler

import (
	"notewell/internal/autosave"
	"notewell/internal/backup"
	"notewell/internal/store"
)

type Handler struct {
	store   *store.Store
	saver   *autosave.Saver
	backups *backup.Scheduler
}

func NewHandler(s *store.Store, saver *autosave.Saver, backups *backup.Scheduler) *Handler {
	return &Handler{
		store:   s,
		saver:   saver,
		backups: backups,
	}
}
