// Package autosave coalesces editor keystrokes into a single debounced save.
package autosave

import (
	"sync"
	"time"

	"notewell/internal/store"
)

// DefaultDelay is how long the editor must stay quiet before a queued
// content change is flushed to the store.
const DefaultDelay = 500 * time.Millisecond

// emptyPlaceholder is the markup the rich-text editor emits for an empty
// document; it is normalized to the empty string before storage.
const emptyPlaceholder = "<p><br></p>"

// Saver debounces note saves with last-write-wins semantics: queueing a new
// value cancels the pending timer, so only the latest value is ever saved.
type Saver struct {
	mu      sync.Mutex
	delay   time.Duration
	save    func(store.Note)
	timer   *time.Timer
	pending *store.Note
}

// New creates a Saver that invokes save once per quiet period. A delay of
// zero uses DefaultDelay.
func New(delay time.Duration, save func(store.Note)) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Saver{delay: delay, save: save}
}

// Queue schedules the note for saving after the quiet period, replacing any
// pending save. The prior scheduled save is discarded, never executed.
func (s *Saver) Queue(n store.Note) {
	if n.Content == emptyPlaceholder {
		n.Content = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = &n
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Flush forces a pending save through immediately.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	n := s.pending
	s.pending = nil
	s.mu.Unlock()

	if n != nil {
		s.save(*n)
	}
}

// Stop discards any pending save without executing it.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *Saver) fire() {
	s.mu.Lock()
	n := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if n != nil {
		s.save(*n)
	}
}
