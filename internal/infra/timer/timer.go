package timer

import (
	"context"
	"time"

	"github.com/IT-Nick/quiz-bot/internal/logger"
)

// IdleRemover удаляет сессии, не менявшиеся с указанного момента.
type IdleRemover interface {
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
}

// Sweeper периодически отбрасывает брошенные сессии викторин.
type Sweeper struct {
	sessions IdleRemover
	ttl      time.Duration
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time
}

func NewSessionSweeper(sessions IdleRemover, ttl time.Duration, log *logger.Logger) *Sweeper {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Sweeper{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Run проверяет сессии раз в interval, пока не отменён ctx.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session sweeper stopped")
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.log.Warn("session sweep failed", "error", err)
			}
		}
	}
}

// Sweep удаляет сессии, неактивные дольше ttl.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	removed, err := s.sessions.DeleteIdle(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("idle sessions removed", "count", removed, "ttl", s.ttl)
	}
	return removed, nil
}
