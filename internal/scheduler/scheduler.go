package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/crucial707/schoolboard/internal/metrics"
	"github.com/robfig/cron/v3"
)

// VisibleCounter counts announcements visible at a given time.
type VisibleCounter interface {
	CountVisible(ctx context.Context, at time.Time) (int, error)
}

// RefreshCurrentGauge updates the announcements_current gauge once.
func RefreshCurrentGauge(ctx context.Context, counter VisibleCounter, now time.Time) error {
	n, err := counter.CountVisible(ctx, now)
	if err != nil {
		return err
	}
	metrics.SetAnnouncementsCurrent(n)
	return nil
}

// Run starts a cron runner that refreshes the current-announcement gauge on
// spec (e.g. "@every 1m"). The gauge is refreshed once immediately. Stop the
// returned cron to end it.
func Run(spec string, counter VisibleCounter) (*cron.Cron, error) {
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := RefreshCurrentGauge(ctx, counter, time.Now().UTC()); err != nil {
			slog.Warn("scheduler: refresh current announcements", "error", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, refresh); err != nil {
		return nil, err
	}
	refresh()
	c.Start()
	slog.Info("scheduler: started", "spec", spec)
	return c, nil
}
