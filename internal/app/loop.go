package app

import (
	"context"
	"time"
)

type tickerFactory func(time.Duration) (<-chan time.Time, func())

type timeSource func() time.Time

func defaultTickerFactory() tickerFactory {
	return func(d time.Duration) (<-chan time.Time, func()) {
		ticker := time.NewTicker(d)
		return ticker.C, ticker.Stop
	}
}

// Loop drives an App at a fixed tick. Every tick runs one full frame before
// the next is started.
type Loop struct {
	app       *App
	tick      time.Duration
	script    *Script
	newTicker tickerFactory
	now       timeSource
}

func NewLoop(a *App, tick time.Duration) *Loop {
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	return &Loop{
		app:       a,
		tick:      tick,
		newTicker: defaultTickerFactory(),
		now:       time.Now,
	}
}

// WithScript feeds s's events into the app before each frame.
func (l *Loop) WithScript(s *Script) *Loop {
	l.script = s
	return l
}

// Run ticks until ctx is done, the app quits or frames frames have run. A
// non-positive frames runs without a budget.
func (l *Loop) Run(ctx context.Context, frames int) error {
	if l.newTicker == nil {
		l.newTicker = defaultTickerFactory()
	}
	if l.now == nil {
		l.now = time.Now
	}

	tickerC, stop := l.newTicker(l.tick)
	defer stop()

	ran := 0
	last := l.now()
	for {
		if l.app.Quit() || (frames > 0 && ran >= frames) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tickerC:
			delta := now.Sub(last)
			if delta <= 0 {
				delta = l.tick
			} else if delta > 10*l.tick {
				delta = l.tick
			}
			last = now

			if l.script != nil {
				for _, ev := range l.script.Next() {
					l.app.Handle(ev)
				}
			}
			if _, err := l.app.Frame(delta); err != nil {
				return err
			}
			ran++
		}
	}
}
