package material

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a color value as accepted by the menu and console:
// CSS/X11 names ("blue", "hotpink"), #RGB, #RRGGBB, or 0xRRGGBB. Alpha is always 255.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	var hex string
	switch {
	case strings.HasPrefix(v, "#"):
		hex = v[1:]
	case strings.HasPrefix(v, "0x"):
		hex = v[2:]
	default:
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Linear returns c as normalized [r, g, b, a] for shader uniforms.
func Linear(c color.RGBA) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}
