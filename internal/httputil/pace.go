// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"time"
)

// Pacer enforces a minimum delay between consecutive outbound calls. The
// remote service's fair-use policy asks for self-imposed throttling rather
// than retries: every call is attempted exactly once, and the caller waits
// before issuing the next one. Different call kinds may pass different
// minimum delays against the same Pacer; what matters is the gap since the
// previous call, whatever kind it was.
//
// A Pacer is owned by a single sequential loop and is not safe for
// concurrent use.
type Pacer struct {
	last time.Time

	// sleep is swappable so tests can observe waits without real sleeps.
	sleep func(time.Duration)
}

// NewPacer returns a ready Pacer. The first Wait never blocks.
func NewPacer() *Pacer {
	return &Pacer{sleep: time.Sleep}
}

// Wait blocks until at least min has elapsed since the previous call, then
// marks the current call. A zero or negative min disables the wait. If the
// context is cancelled the wait is abandoned and ctx.Err() returned; the
// call slot is still consumed.
func (p *Pacer) Wait(ctx context.Context, min time.Duration) error {
	defer func() { p.last = time.Now() }()

	if min <= 0 || p.last.IsZero() {
		return nil
	}

	remaining := min - time.Since(p.last)
	if remaining <= 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	p.sleep(remaining)
	return ctx.Err()
}
