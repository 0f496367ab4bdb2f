package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/commands"
)

// ParamValues is what the parameter panel shows for the current selection.
// It is filled by the caller each frame; ui does not depend on the scene.
type ParamValues struct {
	Name            string
	HasSelection    bool
	Roughness       float32
	Metalness       float32
	EnvMapIntensity float32
}

type slider struct {
	node  *Node
	param string
	label string
	max   float32
}

// ParamPanel is a right-side debug panel with sliders for the selected material's roughness,
// metalness and environment intensity, plus a button that cycles the base color.
type ParamPanel struct {
	engine   *Engine
	panel    *Node
	title    *Node
	name     *Node
	sliders  []*slider
	cycle    *Node
	swatches []string
	next     int
	Enabled  bool
}

// NewParamPanel creates the panel. swatches are the colors the cycle button steps through.
func NewParamPanel(e *Engine, swatches []string) *ParamPanel {
	p := &ParamPanel{
		engine:   e,
		panel:    NewNode("panel", "params", "param-panel", ""),
		title:    NewNode("label", "params-title", "", "Material"),
		name:     NewNode("label", "params-name", "", ""),
		swatches: swatches,
	}
	for _, s := range []struct {
		param, label string
		max          float32
	}{
		{"roughness", "Roughness", 1},
		{"metalness", "Metalness", 1},
		{"envMapIntensity", "Env intensity", 4},
	} {
		n := NewNode("slider", "params-slider", "", "")
		n.Anchored = true
		p.sliders = append(p.sliders, &slider{node: n, param: s.param, label: s.label, max: s.max})
	}
	p.cycle = NewButton("params-button", "", "Next color", nil)
	p.cycle.Anchored = true
	for _, n := range []*Node{p.panel, p.title, p.name} {
		n.Anchored = true
	}
	return p
}

// Update refreshes labels and slider fills from v and lays the panel out against the
// right edge of a screenW-wide screen.
func (p *ParamPanel) Update(v ParamValues, screenW float32) {
	if v.HasSelection {
		p.name.Text = "Selected: " + v.Name
	} else {
		p.name.Text = "Selected: none"
	}
	values := map[string]float32{
		"roughness":       v.Roughness,
		"metalness":       v.Metalness,
		"envMapIntensity": v.EnvMapIntensity,
	}
	for _, s := range p.sliders {
		val := values[s.param]
		s.node.Value = val / s.max
		s.node.Text = fmt.Sprintf("%s: %.2f", s.label, val)
	}
	if len(p.swatches) > 0 {
		p.cycle.Text = "Color: " + p.swatches[p.next%len(p.swatches)]
		p.cycle.Command = commands.SetColor{Value: p.swatches[p.next%len(p.swatches)]}
	}
	p.layout(screenW)
}

func (p *ParamPanel) layout(screenW float32) {
	ps := p.engine.Style(p.panel)
	pad, gap := float32(ps.Padding), float32(ps.Gap)
	const rowW, rowH = 220, 26
	width := float32(rowW) + 2*pad
	x := screenW - width - pad
	y := pad

	rows := []*Node{p.title, p.name}
	for _, s := range p.sliders {
		rows = append(rows, s.node)
	}
	rows = append(rows, p.cycle)
	cy := y + pad
	for _, n := range rows {
		n.Bounds = rl.Rectangle{X: x + pad, Y: cy, Width: rowW, Height: rowH}
		cy += rowH + gap
	}
	p.panel.Bounds = rl.Rectangle{X: x, Y: y, Width: width, Height: cy - gap + pad - y}
}

// Click maps a click to a command: a slider sets its parameter from the horizontal position,
// the cycle button emits the next color and advances.
func (p *ParamPanel) Click(x, y float32) (commands.Command, bool) {
	if !p.Enabled {
		return nil, false
	}
	for _, s := range p.sliders {
		b := s.node.Bounds
		if s.node.Contains(x, y) && b.Width > 0 {
			frac := clamp01((x - b.X) / b.Width)
			return commands.SetParam{Param: s.param, Value: frac * s.max}, true
		}
	}
	if p.cycle.Command != nil && p.cycle.Contains(x, y) {
		cmd := p.cycle.Command
		p.next++
		return cmd, true
	}
	return nil, false
}

// Contains reports whether (x, y) is over the enabled panel.
func (p *ParamPanel) Contains(x, y float32) bool {
	return p.Enabled && p.panel.Contains(x, y)
}

// AppendNodes appends the panel nodes to dst when the panel is enabled.
func (p *ParamPanel) AppendNodes(dst []*Node) []*Node {
	if !p.Enabled {
		return dst
	}
	dst = append(dst, p.panel, p.title, p.name)
	for _, s := range p.sliders {
		dst = append(dst, s.node)
	}
	return append(dst, p.cycle)
}
