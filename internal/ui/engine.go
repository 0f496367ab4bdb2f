// Package ui draws the 2D overlay (context menu, order toast, parameter panel) with raylib
// and maps clicks on it to viewer commands.
package ui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 20

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached per node and only recomputed when the stylesheet changes.
// If font is loaded (LoadFont), text is drawn with that font; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet  *Stylesheet
	nodes  []*Node
	styles map[*Node]ComputedStyle
	font   rl.Font
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{styles: make(map[*Node]ComputedStyle)}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return fmt.Errorf("ui: %s: %w", path, err)
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// LoadFont loads a TTF font from path for text rendering. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: load font %s: %w", path, os.ErrNotExist)
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when none was loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
}

// Nodes returns the nodes drawn this frame.
func (e *Engine) Nodes() []*Node {
	return e.nodes
}

// resolveProps returns merged properties for a node: class rules first, then id rules,
// each in sheet order so later rules win.
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, pass := range [2]byte{'.', '#'} {
		for _, rule := range e.sheet.Rules {
			sel := rule.Selector
			if len(sel) < 2 || sel[0] != pass {
				continue
			}
			name := sel[1:]
			if (pass == '.' && n.Class == name) || (pass == '#' && n.ID == name) {
				for k, v := range rule.Props {
					merged[k] = v
				}
			}
		}
	}
	return merged
}

// Style returns the computed style of n.
func (e *Engine) Style(n *Node) ComputedStyle {
	if s, ok := e.styles[n]; ok {
		return s
	}
	s := ResolveProps(e.resolveProps(n))
	e.styles[n] = s
	return s
}

// Layout sizes every node from its style and positions the ones that are not anchored.
// Percent positions place the node within the screen: 0% flush left/top, 100% flush right/bottom.
func (e *Engine) Layout(screenW, screenH int32) {
	for _, n := range e.nodes {
		style := e.Style(n)
		if style.Width > 0 {
			n.Bounds.Width = float32(style.Width)
		}
		if style.Height > 0 {
			n.Bounds.Height = float32(style.Height)
		}
		if n.Anchored {
			continue
		}
		n.Bounds.X = float32(style.Left)
		n.Bounds.Y = float32(style.Top)
		if style.LeftPct >= 0 {
			n.Bounds.X = float32((screenW - int32(n.Bounds.Width)) * style.LeftPct / 100)
		}
		if style.TopPct >= 0 {
			n.Bounds.Y = float32((screenH - int32(n.Bounds.Height)) * style.TopPct / 100)
		}
	}
}

// HitTest returns the topmost button or slider containing (x, y), or nil.
func (e *Engine) HitTest(x, y float32) *Node {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if (n.Type == "button" || n.Type == "slider") && n.Contains(x, y) {
			return n
		}
	}
	return nil
}

// Covers reports whether (x, y) is over any node with a visible background, so clicks there
// do not reach the 3D scene.
func (e *Engine) Covers(x, y float32) bool {
	for _, n := range e.nodes {
		if n.Contains(x, y) && (n.Type != "label" || e.Style(n).Background.A > 0) {
			return true
		}
	}
	return false
}

// Draw lays out and draws all nodes: background, border, swatch, slider fill, then text.
func (e *Engine) Draw() {
	e.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	mouse := rl.GetMousePosition()
	for _, n := range e.nodes {
		style := e.Style(n)
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)

		bg := style.Background
		if n.Type == "button" && style.HoverBackground.A > 0 && n.Contains(mouse.X, mouse.Y) {
			bg = style.HoverBackground
		}
		if bg.A > 0 {
			rl.DrawRectangle(x, y, w, h, bg)
		}
		if n.Type == "slider" {
			fill := style.Color
			fill.A = 90
			rl.DrawRectangle(x, y, int32(float32(w)*clamp01(n.Value)), h, fill)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}

		textX := x + style.Padding
		if n.Swatch.A > 0 {
			side := h - 2*style.Padding
			rl.DrawRectangle(textX, y+style.Padding, side, side, n.Swatch)
			rl.DrawRectangleLines(textX, y+style.Padding, side, side, style.Border)
			textX += side + style.Padding
		}
		if n.Text != "" {
			textY := y + style.Padding
			if e.font.Texture.ID != 0 {
				rl.DrawTextEx(e.font, n.Text, rl.NewVector2(float32(textX), float32(textY)), float32(style.FontSize), 1, style.Color)
			} else {
				rl.DrawText(n.Text, textX, textY, style.FontSize, style.Color)
			}
		}
	}
}

// HasStylesheet returns whether a stylesheet with rules is loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
