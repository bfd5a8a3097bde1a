package mp2ddr

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpillora/backoff"
)

// ErrTimeout is returned, wrapped with the name of the awaited condition,
// when the hardware does not reach a state within its budget.
var ErrTimeout = errors.New("mp2ddr: timeout")

// Budgets for polled hardware conditions.
const (
	timeout1us   = time.Microsecond
	timeout500us = 500 * time.Microsecond
	timeout1s    = time.Second
	delay1us     = time.Microsecond
)

// pollUntil evaluates cond until it reports true or budget elapses.
// The condition is evaluated before the deadline is checked so a state
// reached on the last read is not reported as a timeout.
func (d *Device) pollUntil(what string, budget time.Duration, cond func() bool) error {
	deadline := time.Now().Add(budget)
	var b *backoff.Backoff
	for {
		if cond() {
			return nil
		}
		if time.Since(deadline) >= 0 {
			d.logerr("poll timeout", slog.String("cond", what), slog.Duration("budget", budget))
			return fmt.Errorf("%s: %w", what, ErrTimeout)
		}
		if budget <= timeout1us {
			continue // Tight poll.
		}
		if b == nil {
			b = &backoff.Backoff{
				Min:    time.Microsecond,
				Max:    budget / 16,
				Factor: 2,
				Jitter: false,
			}
		}
		time.Sleep(b.Duration())
	}
}

// udelay waits at least n microseconds.
func udelay(n int) {
	time.Sleep(time.Duration(n) * delay1us)
}
