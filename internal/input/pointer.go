package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/scene"
)

// Click is a completed left-button click in window pixels.
type Click struct {
	X, Y float32
}

// Pointer reads raylib mouse state once per frame, drives the orbit controls with drags and
// the wheel, and reports clicks.
type Pointer struct {
	Controls *scene.OrbitControls
	// Blocked, when set, suppresses orbiting for gestures that start over the overlay.
	Blocked func(x, y float32) bool

	tracker ClickTracker
	lastX   float32
	lastY   float32
	orbit   bool
}

// NewPointer returns a pointer feeding controls (which may be nil).
func NewPointer(controls *scene.OrbitControls) *Pointer {
	return &Pointer{Controls: controls}
}

// Poll processes this frame's mouse input and returns the click, if one completed.
func (p *Pointer) Poll() (Click, bool) {
	pos := rl.GetMousePosition()
	x, y := pos.X, pos.Y

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		p.tracker.Press(x, y)
		p.lastX, p.lastY = x, y
		p.orbit = p.Blocked == nil || !p.Blocked(x, y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if p.tracker.Move(x, y) && p.orbit && p.Controls != nil {
			p.Controls.Rotate(x-p.lastX, y-p.lastY, float32(rl.GetScreenHeight()))
		}
		p.lastX, p.lastY = x, y
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && p.Controls != nil {
		p.Controls.Dolly(wheel)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if p.tracker.Release(x, y) {
			return Click{X: x, Y: y}, true
		}
	}
	return Click{}, false
}
