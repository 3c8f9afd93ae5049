package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/config"
)

const (
	MouseSensitivity = 0.005
	maxPitch         = math.Pi/2 - 0.0001
)

// Controls are the movement flags held between frames.
type Controls struct {
	Enabled  bool
	Left     bool
	Right    bool
	Forward  bool
	Backward bool
	Up       bool
	Down     bool
}

// Camera is a free-flying camera. Translation is stored negated: moving
// forward in the world decreases it.
type Camera struct {
	Translation mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Speed       float32
	Controls    Controls
}

func NewCamera(cfg config.CameraConfig) *Camera {
	return &Camera{
		Translation: mgl32.Vec3(cfg.Position),
		Yaw:         cfg.Yaw,
		Pitch:       clampPitch(cfg.Pitch),
		Speed:       cfg.Speed,
	}
}

// Handle applies an input event. It reports whether the event was consumed.
func (c *Camera) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case KeyEvent:
		return c.handleKey(ev)
	case MouseMotion:
		if !c.Controls.Enabled {
			return false
		}
		c.Yaw += float32(ev.DX * MouseSensitivity)
		c.Pitch = clampPitch(c.Pitch - float32(ev.DY*MouseSensitivity))
		return true
	}
	return false
}

func (c *Camera) handleKey(ev KeyEvent) bool {
	if ev.Repeat {
		return false
	}
	if ev.Key == KeyI {
		if ev.Pressed {
			c.Controls.Enabled = !c.Controls.Enabled
		}
		return true
	}

	switch ev.Key {
	case KeyW:
		c.Controls.Forward = ev.Pressed
	case KeyS:
		c.Controls.Backward = ev.Pressed
	case KeyA:
		c.Controls.Left = ev.Pressed
	case KeyD:
		c.Controls.Right = ev.Pressed
	case KeySpace, KeyControlLeft:
		c.Controls.Up = ev.Pressed
	case KeyShiftLeft:
		c.Controls.Down = ev.Pressed
	default:
		return false
	}
	return true
}

// Update integrates the held controls over delta seconds. Nothing moves while
// camera control is off.
func (c *Camera) Update(delta float32) {
	if !c.Controls.Enabled {
		return
	}
	yaw := float64(c.Yaw)
	forward := mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}
	right := mgl32.Vec3{float32(-math.Sin(yaw)), 0, float32(math.Cos(yaw))}

	var dxz mgl32.Vec3
	if c.Controls.Forward {
		dxz = dxz.Add(forward)
	}
	if c.Controls.Backward {
		dxz = dxz.Sub(forward)
	}
	if c.Controls.Right {
		dxz = dxz.Add(right)
	}
	if c.Controls.Left {
		dxz = dxz.Sub(right)
	}
	if dxz.Len() > 0 {
		dxz = dxz.Normalize()
	}

	step := -c.Speed * delta
	c.Translation = c.Translation.Add(dxz.Mul(step))
	if c.Controls.Up {
		c.Translation[1] += step
	}
	if c.Controls.Down {
		c.Translation[1] -= step
	}
}

// Position is the observer translation handed to the chunk window.
func (c *Camera) Position() mgl32.Vec3 {
	return c.Translation
}

// LookAt is the unit view direction.
func (c *Camera) LookAt() mgl32.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	return mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -maxPitch, maxPitch)
}
