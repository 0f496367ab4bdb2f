package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/commands"
)

// Node is a single UI element: panel, label, button or slider. It has optional class and id for
// CSS matching, bounds (position and size), and optional text.
// Anchored nodes are positioned by their owner (e.g. the context menu); the stylesheet then
// only sizes them.
type Node struct {
	Type     string // "panel", "label", "button", "slider"
	Class    string // e.g. "menu-item" for .menu-item
	ID       string // e.g. "color-menu" for #color-menu
	Bounds   rl.Rectangle
	Text     string
	Anchored bool
	// Command is emitted when a button is clicked.
	Command commands.Command
	// Swatch, when not transparent, is drawn as a small square before the text.
	Swatch rl.Color
	// Value is a slider's fill fraction (0–1).
	Value float32
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}

// NewButton creates a button that emits cmd when clicked.
func NewButton(class, id, text string, cmd commands.Command) *Node {
	n := NewNode("button", class, id, text)
	n.Command = cmd
	return n
}

// Contains reports whether (x, y) lies inside the node's bounds.
func (n *Node) Contains(x, y float32) bool {
	b := n.Bounds
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
