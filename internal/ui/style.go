package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/material"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".menu-item" or "#color-menu"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for drawing (raylib types where applicable).
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type ComputedStyle struct {
	Background      rl.Color
	HoverBackground rl.Color
	Color           rl.Color
	Border          rl.Color
	HasBorder       bool
	Width           int32
	Height          int32
	Left            int32
	Top             int32
	LeftPct         int32 // -1 = not set
	TopPct          int32 // -1 = not set
	Padding         int32
	Gap             int32
	FontSize        int32
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: rl.NewColor(0, 0, 0, 0),
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		Gap:        4,
		FontSize:   defaultFontSize,
	}
}

// ParseColor parses a CSS color: #RGB, #RRGGBB, a named color, or "transparent".
func ParseColor(s string) (rl.Color, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "transparent") {
		return rl.NewColor(0, 0, 0, 0), true
	}
	c, err := material.ParseColor(s)
	if err != nil {
		return rl.Black, false
	}
	return rl.NewColor(c.R, c.G, c.B, c.A), true
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "hover-background":
			if c, ok := ParseColor(v); ok {
				out.HoverBackground = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			// "1px solid #333" keeps the last word that is a color.
			for _, f := range strings.Fields(v) {
				if c, ok := ParseColor(f); ok {
					out.Border = c
					out.HasBorder = true
				}
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "gap":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Gap = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}
