// Package input turns raw pointer events into clicks and orbit-camera gestures.
package input

// ClickThreshold is how far (in pixels) the pointer may travel between press and release
// for the gesture to count as a click rather than an orbit drag.
const ClickThreshold = 4

// ClickTracker separates clicks from drags. Feed it presses, moves and releases in order.
type ClickTracker struct {
	down     bool
	dragging bool
	startX   float32
	startY   float32
}

// Press starts a gesture at (x, y).
func (c *ClickTracker) Press(x, y float32) {
	c.down, c.dragging = true, false
	c.startX, c.startY = x, y
}

// Move reports whether the pointer, now at (x, y), is dragging. Once the gesture leaves
// the threshold it stays a drag until release.
func (c *ClickTracker) Move(x, y float32) bool {
	if !c.down {
		return false
	}
	if !c.dragging {
		dx, dy := x-c.startX, y-c.startY
		c.dragging = dx*dx+dy*dy > ClickThreshold*ClickThreshold
	}
	return c.dragging
}

// Release ends the gesture at (x, y) and reports whether it was a click.
func (c *ClickTracker) Release(x, y float32) bool {
	if !c.down {
		return false
	}
	drag := c.Move(x, y)
	c.down, c.dragging = false, false
	return !drag
}

// Dragging reports whether a gesture is in progress and has become a drag.
func (c *ClickTracker) Dragging() bool {
	return c.down && c.dragging
}
