package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/store"
)

// HousekeepingService periodically purges expired key-value entries
// (revoked token ids, stale news cache) and retired signing keys whose
// grace period has ended.
type HousekeepingService struct {
	KV          store.KV
	SigningKeys store.SigningKeys // nil skips key cleanup
	Logger      *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(kv store.KV, keys store.SigningKeys, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		KV:          kv,
		SigningKeys: keys,
		Logger:      logger,
		Interval:    interval,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one purge pass. A failing step is logged and the next
// one still runs.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	entries, err := s.KV.DeleteExpired(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired kv entries", "error", err)
	}

	var keys int64
	if s.SigningKeys != nil {
		if keys, err = s.SigningKeys.DeleteExpired(ctx, time.Now()); err != nil {
			s.Logger.Error("failed to delete expired signing keys", "error", err)
		}
	}

	s.Logger.Info("housekeeping cleanup completed", "kv_deleted", entries, "keys_deleted", keys)
}
