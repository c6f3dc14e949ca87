package worker

import (
	"context"
	"time"

	"github.com/vytor/birdguide/internal/logger"
)

// SessionExpirer closes flashcard sessions left open for too long.
type SessionExpirer interface {
	ExpireStaleSessions(ctx context.Context, olderThan time.Duration) (int, error)
}

// ExpireSessionsJob closes sessions started more than TTL ago.
type ExpireSessionsJob struct {
	Sessions SessionExpirer
	TTL      time.Duration
}

func (j *ExpireSessionsJob) Name() string {
	return "expire_sessions"
}

func (j *ExpireSessionsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	n, err := j.Sessions.ExpireStaleSessions(ctx, j.TTL)
	if err != nil {
		return err
	}
	log.Debug("expired %d sessions older than %v", n, j.TTL)
	return nil
}
