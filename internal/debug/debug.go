package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws runtime diagnostics in the top-left corner: FPS, heap allocation and the
// selected node. All lines are off by default.
type Overlay struct {
	ShowFPS       bool
	ShowMemAlloc  bool
	ShowSelection bool
	font          rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount    uint32
	lastFpsText   string
	lastMemText   string
	lastMemStats  runtime.MemStats
}

// New returns an overlay with every line hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetFont sets the font used to draw the overlay. Zero texture ID = use raylib default.
func (d *Overlay) SetFont(font rl.Font) {
	d.font = font
}

// ToggleFPS flips the FPS line and returns the new state.
func (d *Overlay) ToggleFPS() bool {
	d.ShowFPS = !d.ShowFPS
	return d.ShowFPS
}

// ToggleMemAlloc flips the memory line and returns the new state.
func (d *Overlay) ToggleMemAlloc() bool {
	d.ShowMemAlloc = !d.ShowMemAlloc
	return d.ShowMemAlloc
}

// ToggleSelection flips the selection line and returns the new state.
func (d *Overlay) ToggleSelection() bool {
	d.ShowSelection = !d.ShowSelection
	return d.ShowSelection
}

// Lines returns the text of every enabled line. FPS and memory text is only recomputed
// every updateInterval frames.
func (d *Overlay) Lines(selected string) []string {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	var lines []string
	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		lines = append(lines, d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update || d.lastMemText == "" {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		lines = append(lines, d.lastMemText)
	}
	if d.ShowSelection {
		if selected == "" {
			selected = "none"
		}
		lines = append(lines, "Selected: "+selected)
	}
	return lines
}

// Draw renders the enabled lines. Call after the scene and UI in the draw loop.
func (d *Overlay) Draw(selected string) {
	y := float32(fpsPadding)
	for _, text := range d.Lines(selected) {
		if d.font.Texture.ID != 0 {
			rl.DrawTextEx(d.font, text, rl.NewVector2(fpsPadding, y), fpsFontSize, 1, rl.Green)
		} else {
			rl.DrawText(text, fpsPadding, int32(y), fpsFontSize, rl.Green)
		}
		y += fpsLineHeight
	}
}
