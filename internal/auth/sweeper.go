package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/question-bank/internal/metrics"
)

// SessionSweeper periodically evicts expired sessions nobody came back for.
type SessionSweeper struct {
	sessions *SessionTable
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	interval time.Duration
}

func NewSessionSweeper(sessions *SessionTable, m *metrics.Metrics, interval time.Duration, logger zerolog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &SessionSweeper{
		sessions: sessions,
		metrics:  m,
		logger:   logger.With().Str("component", "session_sweeper").Logger(),
		interval: interval,
	}
}

// Run blocks until context cancellation.
func (w *SessionSweeper) Run(ctx context.Context) error {
	if w.sessions == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *SessionSweeper) tick() {
	removed := w.sessions.Sweep()
	remaining := w.sessions.Len()
	w.metrics.ActiveSessions.Set(float64(remaining))
	if removed > 0 {
		w.logger.Debug().
			Int("removed", removed).
			Int("remaining", remaining).
			Msg("expired sessions swept")
	}
}
