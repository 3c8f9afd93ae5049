package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/void-scape/voxl/internal/input"
)

func manualTicker(times ...time.Time) tickerFactory {
	ch := make(chan time.Time, len(times))
	for _, tm := range times {
		ch <- tm
	}
	return func(time.Duration) (<-chan time.Time, func()) {
		return ch, func() {}
	}
}

func TestLoopStopsAfterFrameBudget(t *testing.T) {
	a := newTestApp(t, smallConfig())
	tick := 10 * time.Millisecond
	base := time.Unix(0, 0)

	loop := NewLoop(a, tick)
	loop.now = func() time.Time { return base }
	loop.newTicker = manualTicker(base.Add(tick), base.Add(2*tick), base.Add(3*tick), base.Add(4*tick))

	if err := loop.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Frames() != 3 {
		t.Fatalf("ran %d frames, want 3", a.Frames())
	}
}

func TestLoopClampsDelta(t *testing.T) {
	cfg := smallConfig()
	cfg.Camera.Speed = 1
	a := newTestApp(t, cfg)
	a.Handle(input.KeyEvent{Key: input.KeyI, Pressed: true})
	a.Handle(input.KeyEvent{Key: input.KeyW, Pressed: true})

	tick := 100 * time.Millisecond
	base := time.Unix(0, 0)
	loop := NewLoop(a, tick)
	loop.now = func() time.Time { return base }
	loop.newTicker = manualTicker(
		base.Add(tick),    // normal interval
		base.Add(tick),    // zero delta, clamped
		base.Add(50*tick), // oversized delta, clamped
	)

	if err := loop.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Three clamped ticks of 0.1s at speed 1.
	if got := -a.Camera().Position()[0]; got < 0.299 || got > 0.301 {
		t.Fatalf("camera moved %f, want 0.3", got)
	}
}

func TestLoopStopsOnQuit(t *testing.T) {
	a := newTestApp(t, smallConfig())
	script, err := ParseScript("escape:1")
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	tick := 10 * time.Millisecond
	base := time.Unix(0, 0)
	loop := NewLoop(a, tick).WithScript(script)
	loop.now = func() time.Time { return base }
	loop.newTicker = manualTicker(base.Add(tick), base.Add(2*tick))

	if err := loop.Run(context.Background(), 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Frames() != 1 {
		t.Fatalf("ran %d frames after escape, want 1", a.Frames())
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	a := newTestApp(t, smallConfig())
	loop := NewLoop(a, time.Millisecond)
	loop.newTicker = manualTicker()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Run(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}
