package engine

import (
	"sync"
	"time"
)

// Clock produces the time elapsed between frames
type Clock interface {
	C() <-chan time.Duration
	Stop()
}

// FrameClock ticks at a fixed interval and reports the real time between ticks
type FrameClock struct {
	ticker *time.Ticker
	c      chan time.Duration
	quit   chan struct{}
	once   sync.Once
}

func NewFrameClock(interval time.Duration) *FrameClock {
	fc := &FrameClock{
		ticker: time.NewTicker(interval),
		c:      make(chan time.Duration),
		quit:   make(chan struct{}),
	}
	go fc.run()
	return fc
}

func (fc *FrameClock) run() {
	last := time.Now()
	for {
		select {
		case now := <-fc.ticker.C:
			dt := now.Sub(last)
			last = now
			select {
			case fc.c <- dt:
			case <-fc.quit:
				return
			}

		case <-fc.quit:
			return
		}
	}
}

func (fc *FrameClock) C() <-chan time.Duration {
	return fc.c
}

func (fc *FrameClock) Stop() {
	fc.once.Do(func() {
		fc.ticker.Stop()
		close(fc.quit)
	})
}

// ManualClock only ticks when told to
type ManualClock struct {
	c chan time.Duration
}

func NewManualClock() *ManualClock {
	return &ManualClock{c: make(chan time.Duration)}
}

// Tick hands dt to the engine, blocking until the engine has taken it
func (mc *ManualClock) Tick(dt time.Duration) {
	mc.c <- dt
}

func (mc *ManualClock) C() <-chan time.Duration {
	return mc.c
}

func (mc *ManualClock) Stop() {}
