package attempt

import (
	"context"
	"time"
)

// Countdown drives an attempt's clock from a ticker until it expires, the
// attempt is submitted, or ctx is cancelled.
type Countdown struct {
	Attempt  *Attempt
	Interval time.Duration

	// OnTick, if set, receives the seconds remaining after each tick.
	OnTick func(remaining int)

	// OnExpire, if set, runs once when the clock reaches zero.
	OnExpire func()
}

// Run blocks until the countdown finishes. It returns ctx.Err() on
// cancellation and nil otherwise. Cancellation never triggers OnExpire.
func (c *Countdown) Run(ctx context.Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if c.Attempt.Submitted() {
				return nil
			}
			if c.Attempt.Tick() {
				if c.OnExpire != nil {
					c.OnExpire()
				}
				return nil
			}
			if c.OnTick != nil {
				c.OnTick(c.Attempt.Remaining())
			}
		}
	}
}
