package session

import (
	"context"
	"sync"
	"time"
)

// Countdown is the per-question timer. It ticks once per interval and calls
// expire when it reaches zero, unless stopped first.
type Countdown struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartCountdown runs a countdown of seconds ticks. tick receives the seconds
// left after each tick and may be nil. Both callbacks run on the timer's
// goroutine.
func StartCountdown(ctx context.Context, seconds int, interval time.Duration, tick func(left int), expire func()) *Countdown {
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(ctx, seconds, interval, tick, expire)
	return c
}

func (c *Countdown) run(ctx context.Context, left int, interval time.Duration, tick func(int), expire func()) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for left > 0 {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
			left--
			if tick != nil {
				tick(left)
			}
		}
	}

	select {
	case <-c.stop:
		return
	default:
	}
	expire()
}

// Stop cancels the countdown. It does not wait and may be called repeatedly.
func (c *Countdown) Stop() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

// Done is closed once the countdown goroutine has returned.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
