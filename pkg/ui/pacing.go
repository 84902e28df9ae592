package ui

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// DefaultKeystroke is the delay between typed characters
const DefaultKeystroke = 10 * time.Millisecond

// Pacer controls the cosmetic timing of the report. Both methods return the
// context error once the run is cancelled.
type Pacer interface {
	Pause(ctx context.Context, d time.Duration) error
	Keystroke(ctx context.Context) error
}

// NoPacing never waits
type NoPacing struct{}

func (NoPacing) Pause(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func (NoPacing) Keystroke(ctx context.Context) error { return ctx.Err() }

// Realtime waits for real. Keystrokes are throttled by a limiter so a burst of
// typed text keeps a steady rhythm.
type Realtime struct {
	keys *rate.Limiter
}

// NewRealtime creates a Realtime pacer typing one character per keystroke interval
func NewRealtime(keystroke time.Duration) *Realtime {
	if keystroke <= 0 {
		keystroke = DefaultKeystroke
	}
	return &Realtime{keys: rate.NewLimiter(rate.Every(keystroke), 1)}
}

func (r *Realtime) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *Realtime) Keystroke(ctx context.Context) error {
	return r.keys.Wait(ctx)
}

// Jitter returns a uniform duration in [lo, hi)
func Jitter(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo)
}
