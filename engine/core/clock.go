package core

import "time"

// FrameClock tracks frame timing: per-frame delta and a once-per-second FPS
// sample surfaced through an optional callback.
type FrameClock struct {
	start      time.Time
	last       time.Time
	lastSample time.Time
	frames     int
	fps        int
	delta      float32
}

func NewFrameClock() *FrameClock {
	now := time.Now()
	return &FrameClock{start: now, last: now, lastSample: now}
}

// Tick advances the clock by one frame. onFPS, if non-nil, is invoked once a
// second with the sampled frame rate.
func (c *FrameClock) Tick(onFPS func(fps int)) {
	now := time.Now()
	c.delta = float32(now.Sub(c.last).Seconds())
	c.last = now
	c.frames++

	if now.Sub(c.lastSample) >= time.Second {
		c.fps = c.frames
		c.frames = 0
		c.lastSample = now
		if onFPS != nil {
			onFPS(c.fps)
		}
	}
}

// Delta is the time since the previous frame in seconds.
func (c *FrameClock) Delta() float32 { return c.delta }

// FPS is the most recent once-per-second frame rate sample.
func (c *FrameClock) FPS() int { return c.fps }

// Uptime is the time since the clock was created.
func (c *FrameClock) Uptime() time.Duration { return time.Since(c.start) }
