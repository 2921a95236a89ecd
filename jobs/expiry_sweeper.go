package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// MessageExpirer deletes messages whose scheduled expiry has passed.
type MessageExpirer interface {
	ExpireDueMessages(ctx context.Context, now time.Time) (int, error)
}

type ExpirySweeperConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// StartExpirySweeper runs one sweep right away, to catch expiries that
// passed while the server was down, then one per interval until ctx ends.
func StartExpirySweeper(ctx context.Context, cfg ExpirySweeperConfig, expirer MessageExpirer, log *logrus.Logger) {
	if expirer == nil {
		log.Warn("expiry sweeper disabled: no expirer configured")
		return
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		Sweep(ctx, expirer, timeout, log)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				Sweep(ctx, expirer, timeout, log)
			}
		}
	}()
}

// Sweep runs a single expiry pass bounded by timeout.
func Sweep(ctx context.Context, expirer MessageExpirer, timeout time.Duration, log *logrus.Logger) int {
	now := time.Now().UTC()
	tickCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	expired, err := expirer.ExpireDueMessages(tickCtx, now)
	if err != nil {
		log.WithError(err).Errorf("expiry sweep error: %v", err)
	}
	if expired > 0 {
		log.Infof("expiry sweep removed %d messages", expired)
	}
	return expired
}
