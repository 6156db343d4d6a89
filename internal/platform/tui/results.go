package tui

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-puzzles/internal/minigame"
	"github.com/vovakirdan/tui-puzzles/internal/platform/feed"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

// Recorder persists finished sessions and announces them on the feed.
// Either sink may be nil; a nil Recorder drops results.
type Recorder struct {
	store  *storage.Store
	hub    *feed.Hub
	logger *log.Logger
}

// NewRecorder creates a recorder. A nil logger uses the default logger.
func NewRecorder(store *storage.Store, hub *feed.Hub, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, hub: hub, logger: logger}
}

// Store returns the results store, which may be nil.
func (r *Recorder) Store() *storage.Store {
	if r == nil {
		return nil
	}
	return r.store
}

// Record saves res under a fresh run id and returns the id.
// Storage failures are logged; play goes on without persistence.
func (r *Recorder) Record(res minigame.Result) string {
	if r == nil {
		return ""
	}
	runID := uuid.NewString()

	if r.store != nil {
		_, err := r.store.SaveResult(storage.ResultEntry{
			RunID:     runID,
			PuzzleID:  res.PuzzleID,
			Success:   res.Success,
			Forfeited: res.Forfeited,
			Message:   res.Message,
			Duration:  res.Elapsed,
		})
		if err != nil {
			r.logger.Warn("could not save result", "puzzle", res.PuzzleID, "error", err)
		}
	}

	if r.hub != nil {
		r.hub.Publish(feed.Event{
			Type:      feed.EventResult,
			RunID:     runID,
			PuzzleID:  res.PuzzleID,
			Success:   res.Success,
			Forfeited: res.Forfeited,
			Message:   res.Message,
			Duration:  res.Elapsed,
			Time:      time.Now(),
		})
	}

	r.logger.Debug("puzzle finished",
		"run", runID,
		"puzzle", res.PuzzleID,
		"success", res.Success,
		"elapsed", res.Elapsed,
	)
	return runID
}
