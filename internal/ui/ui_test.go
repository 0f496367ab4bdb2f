package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/commands"
)

const testCSS = `
/* menu */
#color-menu { background: #222; padding: 6px; gap: 2; }
.menu-item, .order { width: 100px; height: 20px; color: white; }
.menu-item { background: #333; hover-background: #555; }
@media (max-width: 600px) { .menu-item { width: 10px; } }
div .menu-item { width: 999px; }
#order-button { left: 100%; top: 100%; width: 80px; height: 30px; }
.menu-item { width: 120px; }
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	sheet, err := ParseCSS(testCSS)
	if err != nil {
		t.Fatal(err)
	}
	e := New()
	e.SetStylesheet(sheet)
	return e
}

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(testCSS)
	if err != nil {
		t.Fatal(err)
	}
	var sels []string
	for _, r := range sheet.Rules {
		sels = append(sels, r.Selector)
	}
	want := []string{"#color-menu", ".menu-item", ".order", ".menu-item", "#order-button", ".menu-item"}
	if len(sels) != len(want) {
		t.Fatalf("selectors = %v, want %v", sels, want)
	}
	for i := range want {
		if sels[i] != want[i] {
			t.Fatalf("selectors = %v, want %v", sels, want)
		}
	}
	if got := sheet.Rules[0].Props["background"]; got != "#222" {
		t.Errorf("background = %q", got)
	}
	if got := sheet.Rules[2].Props["height"]; got != "20px" {
		t.Errorf(".order height = %q", got)
	}
}

func TestLaterRulesWin(t *testing.T) {
	e := newTestEngine(t)
	item := NewNode("button", "menu-item", "", "Blue")
	s := e.Style(item)
	if s.Width != 120 || s.Height != 20 {
		t.Errorf("size = %dx%d, want 120x20", s.Width, s.Height)
	}
	if s.Background != rl.NewColor(0x33, 0x33, 0x33, 255) || s.HoverBackground != rl.NewColor(0x55, 0x55, 0x55, 255) {
		t.Errorf("backgrounds = %v / %v", s.Background, s.HoverBackground)
	}
	if s.Color != rl.White {
		t.Errorf("color = %v", s.Color)
	}
}

func TestIDRulesOverrideClassRules(t *testing.T) {
	e := newTestEngine(t)
	order := NewNode("button", "order", "order-button", "Order")
	s := e.Style(order)
	if s.Width != 80 || s.Height != 30 || s.LeftPct != 100 || s.TopPct != 100 {
		t.Errorf("style = %+v", s)
	}
	e.SetNodes([]*Node{order})
	e.Layout(800, 600)
	if order.Bounds != (rl.Rectangle{X: 720, Y: 570, Width: 80, Height: 30}) {
		t.Errorf("bounds = %+v", order.Bounds)
	}
}

func TestResolveProps(t *testing.T) {
	s := ResolveProps(map[string]string{
		"border":    "1px solid steelblue",
		"left":      "25%",
		"top":       "12px",
		"padding":   "-3",
		"font-size": "14px",
		"color":     "not-a-color",
	})
	if !s.HasBorder || s.Border != rl.NewColor(70, 130, 180, 255) {
		t.Errorf("border = %v %v", s.HasBorder, s.Border)
	}
	if s.LeftPct != 25 || s.Top != 12 || s.TopPct != -1 {
		t.Errorf("position = %+v", s)
	}
	if s.Padding != 4 || s.FontSize != 14 || s.Color != rl.White {
		t.Errorf("padding/font/color = %d %d %v", s.Padding, s.FontSize, s.Color)
	}
}

func TestColorItems(t *testing.T) {
	items := ColorItems([]string{"blue", "dark red", "#00ff00"}, []string{"texture1"}, map[string]string{})
	if len(items) != 3 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Label != "Blue" || items[0].Command != (commands.SetColor{Value: "blue"}) {
		t.Errorf("first item = %+v", items[0])
	}
	if items[0].Swatch != rl.NewColor(0, 0, 255, 255) {
		t.Errorf("swatch = %v", items[0].Swatch)
	}
	if items[2].Label != "Texture1" || items[2].Command != (commands.SetTexture{ID: "texture1"}) {
		t.Errorf("texture item = %+v", items[2])
	}
}

func TestContextMenuShowAndClick(t *testing.T) {
	e := newTestEngine(t)
	m := NewContextMenu(e, []MenuItem{
		{Label: "Blue", Command: commands.SetColor{Value: "blue"}},
		{Label: "Texture1", Command: commands.SetTexture{ID: "texture1"}},
	})
	if _, ok := m.Click(10, 10); ok {
		t.Fatal("hidden menu handled a click")
	}

	m.Show(400, 300)
	if x, y := m.Anchor(); x != 400 || y != 300 || !m.Visible() {
		t.Fatalf("anchor = %v,%v visible=%v", x, y, m.Visible())
	}
	// Panel padding 6, items 120x20 with gap 2: first item spans y 306..326, second 328..348.
	cmd, ok := m.Click(410, 310)
	if !ok || cmd != (commands.SetColor{Value: "blue"}) {
		t.Errorf("first item click = %v, %v", cmd, ok)
	}
	cmd, ok = m.Click(500, 330)
	if !ok || cmd != (commands.SetTexture{ID: "texture1"}) {
		t.Errorf("second item click = %v, %v", cmd, ok)
	}
	if _, ok := m.Click(410, 327); ok {
		t.Error("click in the gap hit a button")
	}
	if !m.Contains(410, 327) {
		t.Error("gap should still be inside the panel")
	}
	if got := len(m.AppendNodes(nil)); got != 3 {
		t.Errorf("visible nodes = %d", got)
	}

	m.Hide()
	m.Hide()
	if m.Visible() || len(m.AppendNodes(nil)) != 0 {
		t.Error("menu still visible after Hide")
	}
}

func TestToastDeadline(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	toast := NewToast("Thanks!", 3*time.Second)
	toast.now = func() time.Time { return now }

	toast.Notify()
	toast.Update(start.Add(2 * time.Second))
	if !toast.Visible() {
		t.Fatal("toast hid early")
	}

	now = start.Add(2 * time.Second)
	toast.Notify()
	toast.Update(start.Add(4 * time.Second))
	if !toast.Visible() {
		t.Fatal("retrigger did not extend the deadline")
	}
	toast.Update(start.Add(5 * time.Second))
	if toast.Visible() {
		t.Fatal("toast still visible after deadline")
	}
	toast.Hide()
	toast.Update(start.Add(time.Hour))
	if toast.Visible() || len(toast.AppendNodes(nil)) != 0 {
		t.Error("hidden toast reappeared")
	}
}

func TestToastDefaultDuration(t *testing.T) {
	toast := NewToast("x", 0)
	if toast.duration != DefaultToastDuration {
		t.Errorf("duration = %v", toast.duration)
	}
}

func TestParamPanel(t *testing.T) {
	e := New()
	p := NewParamPanel(e, []string{"red", "green"})
	if _, ok := p.Click(0, 0); ok {
		t.Fatal("disabled panel handled a click")
	}
	p.Enabled = true
	p.Update(ParamValues{Name: "sole", HasSelection: true, Roughness: 0.5, EnvMapIntensity: 2}, 1000)

	rough := p.sliders[0].node
	if rough.Value != 0.5 || rough.Text != "Roughness: 0.50" {
		t.Errorf("roughness slider = %v %q", rough.Value, rough.Text)
	}
	if p.sliders[2].node.Value != 0.5 {
		t.Errorf("env slider fill = %v, want 0.5", p.sliders[2].node.Value)
	}

	b := rough.Bounds
	cmd, ok := p.Click(b.X+b.Width*0.25, b.Y+1)
	want := commands.SetParam{Param: "roughness", Value: 0.25}
	if !ok || cmd != want {
		t.Errorf("slider click = %#v, want %#v", cmd, want)
	}

	c := p.cycle.Bounds
	cmd, _ = p.Click(c.X+1, c.Y+1)
	if cmd != (commands.SetColor{Value: "red"}) {
		t.Errorf("first cycle = %#v", cmd)
	}
	p.Update(ParamValues{}, 1000)
	cmd, _ = p.Click(c.X+1, c.Y+1)
	if cmd != (commands.SetColor{Value: "green"}) {
		t.Errorf("second cycle = %#v", cmd)
	}
	if p.name.Text != "Selected: none" {
		t.Errorf("name label = %q", p.name.Text)
	}
}

func TestOverlayRouting(t *testing.T) {
	e := newTestEngine(t)
	o := NewOverlay(e, ColorItems([]string{"blue"}, nil, nil), []string{"blue"}, "Thanks!", time.Second)
	now := time.Now()
	o.Update(now, ParamValues{}, 800, 600)

	if cmd, ok := o.Click(760, 585); !ok || cmd != (commands.PlaceOrder{}) {
		t.Errorf("order button click = %v, %v", cmd, ok)
	}
	if _, ok := o.Click(400, 300); ok {
		t.Error("empty space consumed by overlay")
	}

	o.Menu.Show(400, 300)
	o.Update(now, ParamValues{}, 800, 600)
	if cmd, ok := o.Click(410, 310); !ok || cmd != (commands.SetColor{Value: "blue"}) {
		t.Errorf("menu click = %v, %v", cmd, ok)
	}
	if got := len(e.Nodes()); got != 3 {
		t.Errorf("frame nodes = %d, want order + panel + 1 item", got)
	}
}

func TestFindFont(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "Inter")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	font := filepath.Join(nested, "Inter-Regular.ttf")
	if err := os.WriteFile(font, []byte("ttf"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := FontDirs
	FontDirs = []string{filepath.Join(dir, "missing"), dir}
	defer func() { FontDirs = old }()

	for _, name := range []string{"inter-regular", "Inter-Regular.ttf", font} {
		if got, ok := FindFont(name); !ok || got != font {
			t.Errorf("FindFont(%q) = %q, %v", name, got, ok)
		}
	}
	if _, ok := FindFont("Roboto"); ok {
		t.Error("found a font that does not exist")
	}
}
