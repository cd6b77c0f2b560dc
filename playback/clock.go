package playback

import (
	"sync"
	"time"
)

// Clock periodically samples a position source and hands the value to a tick
// callback. It backs the caption overlay: each tick resolves the segment for
// the sampled time. The clock owns a single goroutine between Start and Stop.
type Clock struct {
	interval time.Duration
	source   func() float64
	onTick   func(seconds float64)

	mu   sync.Mutex
	stop chan struct{}
}

// NewClock creates a stopped clock. source is typically Player.Position.
func NewClock(interval time.Duration, source func() float64, onTick func(seconds float64)) *Clock {
	return &Clock{
		interval: interval,
		source:   source,
		onTick:   onTick,
	}
}

// Start begins sampling. Starting a running clock is a no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}

	stop := make(chan struct{})
	c.stop = stop

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.onTick(c.source())
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts sampling and releases the ticker. Stopping a stopped clock is a
// no-op.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}
