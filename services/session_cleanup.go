package services

import (
	"context"
	"time"

	"phantoms-store/logger"
	"phantoms-store/repositories"

	"go.uber.org/zap"
)

// StartSessionCleanup purges expired sessions on every tick until ctx is done.
func StartSessionCleanup(ctx context.Context, repo repositories.SessionRepository, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				purgeExpiredSessions(ctx, repo, now.UTC())
			}
		}
	}()
}

func purgeExpiredSessions(ctx context.Context, repo repositories.SessionRepository, now time.Time) {
	n, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error(ctx, "expired session cleanup failed", err)
		return
	}
	if n > 0 {
		logger.Info(ctx, "expired sessions purged", zap.Int64("count", n))
	}
}
