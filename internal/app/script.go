package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/void-scape/voxl/internal/input"
)

// Step holds one key down for a number of frames.
type Step struct {
	Key    input.Key
	Frames int
}

// Script replays key holds frame by frame, for driving the loop without a window.
// Its first frame toggles camera control on with I.
type Script struct {
	steps   []Step
	current int
	held    int
	down    bool
	started bool
}

// ParseScript reads a comma separated list of key:frames pairs, e.g. "w:120,d:60".
func ParseScript(s string) (*Script, error) {
	script := &Script{}
	s = strings.TrimSpace(s)
	if s == "" {
		return script, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("script step %q: expected key:frames", part)
		}
		key, err := input.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("script step %q: %w", part, err)
		}
		frames, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || frames <= 0 {
			return nil, fmt.Errorf("script step %q: frames must be a positive integer", part)
		}
		script.steps = append(script.steps, Step{Key: key, Frames: frames})
	}
	return script, nil
}

func (s *Script) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Done reports whether every step has been released.
func (s *Script) Done() bool {
	return s.current >= len(s.steps)
}

// Next returns the events for the coming frame.
func (s *Script) Next() []input.Event {
	var events []input.Event
	if !s.started && len(s.steps) > 0 {
		s.started = true
		events = append(events,
			input.KeyEvent{Key: input.KeyI, Pressed: true},
			input.KeyEvent{Key: input.KeyI},
		)
	}
	for s.current < len(s.steps) {
		step := s.steps[s.current]
		if !s.down {
			s.down = true
			s.held = 0
			events = append(events, input.KeyEvent{Key: step.Key, Pressed: true})
		}
		if s.held < step.Frames {
			s.held++
			return events
		}
		events = append(events, input.KeyEvent{Key: step.Key, Pressed: false})
		s.down = false
		s.current++
	}
	return events
}
