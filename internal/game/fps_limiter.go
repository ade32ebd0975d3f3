package game

import (
	"sync/atomic"
	"time"
)

// FPSLimiter paces the main loop with a hybrid sleep/spin wait for better
// precision on high caps. A limit of 0 means uncapped.
type FPSLimiter struct {
	limit atomic.Int64
	next  time.Time
}

// NewFPSLimiter creates a limiter with the given cap.
func NewFPSLimiter(limit int) *FPSLimiter {
	f := &FPSLimiter{}
	f.limit.Store(int64(limit))
	return f
}

// SetLimit changes the cap; safe to call from the config watcher goroutine.
func (f *FPSLimiter) SetLimit(limit int) {
	f.limit.Store(int64(limit))
}

// Wait blocks until the next frame is due. While paused the loop is capped
// regardless of the configured limit; there is nothing to draw fast.
func (f *FPSLimiter) Wait(paused bool) {
	effectiveLimit := f.limit.Load()
	if paused {
		effectiveLimit = 120
	}

	if effectiveLimit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(effectiveLimit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait the final stretch
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// Resync after a hitch to avoid drift.
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
