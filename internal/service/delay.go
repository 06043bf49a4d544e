package service

import (
	"context"
	"fmt"
	"time"
)

// simulateLatency blocks for d or until ctx is done. A zero delay returns
// immediately.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("interrupted while waiting: %w", ctx.Err())
	}
}
