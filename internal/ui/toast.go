package ui

import "time"

// DefaultToastDuration is how long the order confirmation stays up.
const DefaultToastDuration = 3 * time.Second

// Toast shows a message until a deadline. It implements viewer.Notifier.
// Update must be called once per frame; there are no timers.
type Toast struct {
	node     *Node
	duration time.Duration
	deadline time.Time
	visible  bool
	now      func() time.Time
}

// NewToast returns a hidden toast showing message for d (DefaultToastDuration if d <= 0).
func NewToast(message string, d time.Duration) *Toast {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &Toast{
		node:     NewNode("label", "toast", "order-toast", message),
		duration: d,
		now:      time.Now,
	}
}

// Notify shows the toast. Calling it while visible pushes the deadline out again.
func (t *Toast) Notify() {
	t.visible = true
	t.deadline = t.now().Add(t.duration)
}

// Update hides the toast once now has reached the deadline.
func (t *Toast) Update(now time.Time) {
	if t.visible && !now.Before(t.deadline) {
		t.Hide()
	}
}

// Hide hides the toast. Hiding a hidden toast does nothing.
func (t *Toast) Hide() {
	t.visible = false
}

func (t *Toast) Visible() bool {
	return t.visible
}

// Deadline returns when the toast hides itself.
func (t *Toast) Deadline() time.Time {
	return t.deadline
}

// AppendNodes appends the toast to dst while it is visible.
func (t *Toast) AppendNodes(dst []*Node) []*Node {
	if !t.visible {
		return dst
	}
	return append(dst, t.node)
}
