package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/service"
)

// sessionCleanupInterval is how often expired sessions are purged.
const sessionCleanupInterval = time.Hour

// SessionCleanupHandle runs a periodic purge of expired sessions.
type SessionCleanupHandle struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SessionCleanupHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideSessionCleanup starts the expired session reaper.
func ProvideSessionCleanup(i do.Injector) (*SessionCleanupHandle, error) {
	authService := do.MustInvoke[*service.AuthService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purged, err := authService.PurgeExpiredSessions(ctx)
				if err != nil {
					log.Error("session cleanup failed", "error", err)
					continue
				}
				if purged > 0 {
					log.Info("purged expired sessions", "count", purged)
				}
			}
		}
	}()

	log.Info("Session cleanup job started", "interval", sessionCleanupInterval)

	return &SessionCleanupHandle{cancel: cancel}, nil
}
