package input

import (
	"fmt"
	"strings"
)

// Key names a physical key the camera and loop react to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyControlLeft
	KeyShiftLeft
	KeyI
	KeyF
	KeyV
	KeyEscape
)

var keyNames = map[Key]string{
	KeyW:           "w",
	KeyA:           "a",
	KeyS:           "s",
	KeyD:           "d",
	KeySpace:       "space",
	KeyControlLeft: "ctrl",
	KeyShiftLeft:   "shift",
	KeyI:           "i",
	KeyF:           "f",
	KeyV:           "v",
	KeyEscape:      "escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey resolves a key from its lower-case name.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// Event is either a KeyEvent from the window or a MouseMotion from the device.
type Event interface {
	event()
}

type KeyEvent struct {
	Key     Key
	Pressed bool
	Repeat  bool
}

// MouseMotion is raw device motion, not cursor position.
type MouseMotion struct {
	DX float64
	DY float64
}

func (KeyEvent) event()    {}
func (MouseMotion) event() {}
