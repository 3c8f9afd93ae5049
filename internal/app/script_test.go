package app

import (
	"testing"

	"github.com/void-scape/voxl/internal/config"
	"github.com/void-scape/voxl/internal/input"
)

func TestParseScript(t *testing.T) {
	script, err := ParseScript("w:2, d:1")
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	steps := script.Steps()
	if len(steps) != 2 || steps[0] != (Step{Key: input.KeyW, Frames: 2}) || steps[1] != (Step{Key: input.KeyD, Frames: 1}) {
		t.Fatalf("unexpected steps %+v", steps)
	}

	for _, bad := range []string{"w", "q:1", "w:0", "w:x"} {
		if _, err := ParseScript(bad); err == nil {
			t.Fatalf("ParseScript(%q) should fail", bad)
		}
	}
	if script, err := ParseScript(""); err != nil || !script.Done() || script.Next() != nil {
		t.Fatalf("empty script: %v", err)
	}
}

func TestScriptHoldsKeys(t *testing.T) {
	script, err := ParseScript("w:2,d:1")
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}

	want := [][]input.Event{
		{
			input.KeyEvent{Key: input.KeyI, Pressed: true},
			input.KeyEvent{Key: input.KeyI},
			input.KeyEvent{Key: input.KeyW, Pressed: true},
		},
		nil,
		{input.KeyEvent{Key: input.KeyW}, input.KeyEvent{Key: input.KeyD, Pressed: true}},
		{input.KeyEvent{Key: input.KeyD}},
		nil,
	}
	for frame, events := range want {
		got := script.Next()
		if len(got) != len(events) {
			t.Fatalf("frame %d: got %v, want %v", frame, got, events)
		}
		for i := range events {
			if got[i] != events[i] {
				t.Fatalf("frame %d event %d: got %v, want %v", frame, i, got[i], events[i])
			}
		}
	}
	if !script.Done() {
		t.Fatal("script should be done")
	}
}

func TestScriptEnablesCameraControl(t *testing.T) {
	script, err := ParseScript("w:1")
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	camera := input.NewCamera(config.CameraConfig{Speed: 10})
	for _, ev := range script.Next() {
		camera.Handle(ev)
	}
	if !camera.Controls.Enabled || !camera.Controls.Forward {
		t.Fatalf("first frame left controls at %+v", camera.Controls)
	}
	camera.Update(1)
	if camera.Position()[0] != -10 {
		t.Fatalf("scripted forward moved camera to %v", camera.Position())
	}
}
