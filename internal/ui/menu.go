package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"product-viewer/internal/commands"
	"product-viewer/internal/material"
)

// Fallback sizes for menu items when the stylesheet gives none.
const (
	defaultItemWidth  = 160
	defaultItemHeight = 28
)

// MenuItem is one entry of the color menu.
type MenuItem struct {
	Label   string
	Command commands.Command
	Swatch  rl.Color
}

var title = cases.Title(language.English)

// ColorItems builds menu entries for color swatches and textures, in that order.
// Unparseable swatches are skipped.
func ColorItems(swatches []string, textureIDs []string, textureLabels map[string]string) []MenuItem {
	var items []MenuItem
	for _, s := range swatches {
		c, err := material.ParseColor(s)
		if err != nil {
			continue
		}
		items = append(items, MenuItem{
			Label:   title.String(s),
			Command: commands.SetColor{Value: s},
			Swatch:  rl.NewColor(c.R, c.G, c.B, c.A),
		})
	}
	for _, id := range textureIDs {
		label := textureLabels[id]
		if label == "" {
			label = title.String(id)
		}
		items = append(items, MenuItem{Label: label, Command: commands.SetTexture{ID: id}})
	}
	return items
}

// ContextMenu is the #color-menu panel anchored at the last click on the product.
// It implements viewer.MenuSurface.
type ContextMenu struct {
	engine  *Engine
	panel   *Node
	buttons []*Node
	visible bool
	x, y    float32
}

// NewContextMenu creates a hidden menu with one button per item. Styles come from e
// (#color-menu for the panel, .menu-item for buttons).
func NewContextMenu(e *Engine, items []MenuItem) *ContextMenu {
	m := &ContextMenu{engine: e, panel: NewNode("panel", "menu", "color-menu", "")}
	m.panel.Anchored = true
	for _, it := range items {
		b := NewButton("menu-item", "", it.Label, it.Command)
		b.Swatch = it.Swatch
		b.Anchored = true
		m.buttons = append(m.buttons, b)
	}
	return m
}

// Show anchors the panel's top-left corner at (x, y) and lays the buttons out below it.
func (m *ContextMenu) Show(x, y float32) {
	m.visible, m.x, m.y = true, x, y
	m.layout()
}

// Hide hides the menu. Hiding a hidden menu does nothing.
func (m *ContextMenu) Hide() {
	m.visible = false
}

func (m *ContextMenu) Visible() bool {
	return m.visible
}

// Anchor returns the point the menu was last shown at.
func (m *ContextMenu) Anchor() (float32, float32) {
	return m.x, m.y
}

func (m *ContextMenu) layout() {
	ps := m.engine.Style(m.panel)
	pad := float32(ps.Padding)
	gap := float32(ps.Gap)

	var itemW, itemH float32 = defaultItemWidth, defaultItemHeight
	if len(m.buttons) > 0 {
		bs := m.engine.Style(m.buttons[0])
		if bs.Width > 0 {
			itemW = float32(bs.Width)
		}
		if bs.Height > 0 {
			itemH = float32(bs.Height)
		}
	}

	cy := m.y + pad
	for _, b := range m.buttons {
		b.Bounds = rl.Rectangle{X: m.x + pad, Y: cy, Width: itemW, Height: itemH}
		cy += itemH + gap
	}
	h := 2 * pad
	if n := len(m.buttons); n > 0 {
		h += float32(n)*itemH + float32(n-1)*gap
	}
	m.panel.Bounds = rl.Rectangle{X: m.x, Y: m.y, Width: itemW + 2*pad, Height: h}
}

// Click returns the command of the button at (x, y). ok is false when the menu is hidden
// or the point is outside every button.
func (m *ContextMenu) Click(x, y float32) (commands.Command, bool) {
	if !m.visible {
		return nil, false
	}
	for _, b := range m.buttons {
		if b.Contains(x, y) {
			return b.Command, true
		}
	}
	return nil, false
}

// Contains reports whether (x, y) is over the visible panel.
func (m *ContextMenu) Contains(x, y float32) bool {
	return m.visible && m.panel.Contains(x, y)
}

// AppendNodes appends the panel and its buttons to dst while the menu is visible.
func (m *ContextMenu) AppendNodes(dst []*Node) []*Node {
	if !m.visible {
		return dst
	}
	dst = append(dst, m.panel)
	return append(dst, m.buttons...)
}
