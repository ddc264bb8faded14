// Package backup takes periodic copies of the store snapshot into the
// backups directory and prunes old ones.
package backup

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"notewell/internal/storage"
	"notewell/internal/store"
)

const backupDir = "backups"

// Scheduler copies the snapshot file on a cron schedule, keeping the newest
// N backups.
type Scheduler struct {
	fs   *storage.FileSystem
	keep int
	cron *cron.Cron
	now  func() time.Time
}

// New creates a Scheduler. keep must be at least 1.
func New(fs *storage.FileSystem, keep int) *Scheduler {
	if keep < 1 {
		keep = 1
	}
	return &Scheduler{
		fs:   fs,
		keep: keep,
		now:  time.Now,
	}
}

// Start begins running backups on the given cron schedule (e.g. "@daily").
func (s *Scheduler) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if name, err := s.RunOnce(); err != nil {
			zap.L().Error("Scheduled backup failed", zap.Error(err))
		} else {
			zap.L().Info("Scheduled backup written", zap.String("file", name))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c
	zap.L().Info("Automatic backups enabled",
		zap.String("schedule", schedule),
		zap.Int("keep", s.keep),
	)
	return nil
}

// Stop halts scheduled backups. Safe to call when never started.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce copies the current snapshot into the backups directory under a
// timestamped name and prunes backups beyond the retention count. It returns
// the backup file name.
func (s *Scheduler) RunOnce() (string, error) {
	data, err := s.fs.ReadFile(s.fs.DataPath(store.SnapshotFile))
	if err != nil {
		return "", fmt.Errorf("read snapshot: %w", err)
	}

	name := fmt.Sprintf("notes_backup_%s.json", s.now().Format("20060102_150405"))
	path := filepath.Join(s.fs.DataPath(backupDir), name)
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	if err := s.prune(); err != nil {
		return name, fmt.Errorf("prune backups: %w", err)
	}
	return name, nil
}

// List returns the backup file names, newest first.
func (s *Scheduler) List() ([]string, error) {
	infos, err := s.fs.ReadDir(s.fs.DataPath(backupDir))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() && strings.HasPrefix(info.Name(), "notes_backup_") {
			names = append(names, info.Name())
		}
	}
	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

func (s *Scheduler) prune() error {
	names, err := s.List()
	if err != nil {
		return err
	}
	for _, name := range names[min(s.keep, len(names)):] {
		if err := s.fs.Remove(filepath.Join(s.fs.DataPath(backupDir), name)); err != nil {
			return err
		}
	}
	return nil
}
