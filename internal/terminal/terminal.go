package terminal

import (
	"sort"
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/commands"
	"product-viewer/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
)

var (
	// Reused every frame when drawing the console bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
)

// Dispatcher applies a parsed command (the viewer controller).
type Dispatcher interface {
	Dispatch(cmd commands.Command) error
}

// Console is the command bar at the bottom of the screen, shown and hidden with the backtick key.
// Typed lines ("color red", "cmd texture texture1", ...) are parsed by the registry and dispatched.
// "help" lists commands and "toggle <name>" flips a registered overlay switch.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	target   Dispatcher
	toggles  map[string]func() bool
	inputBuf string
	open     bool
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
}

// New returns a closed console that runs lines through reg and dispatches the results to target.
func New(log *logger.Logger, reg *commands.Registry, target Dispatcher) *Console {
	return &Console{log: log, reg: reg, target: target, toggles: make(map[string]func() bool)}
}

// AddToggle registers a switch for "toggle <name>". flip changes the state and returns the new one.
func (c *Console) AddToggle(name string, flip func() bool) {
	c.toggles[name] = flip
}

// IsOpen returns true when the console is visible and capturing keyboard input.
func (c *Console) IsOpen() bool {
	return c.open
}

// SetFont sets the font used to draw the console. Zero texture ID = use raylib default.
func (c *Console) SetFont(font rl.Font) {
	c.font = font
}

// Submit runs one typed line. Results and errors go to the log.
func (c *Console) Submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	c.log.Log(prompt + line)
	args, ok := commands.Parse(line)
	if !ok {
		return
	}
	switch args[0] {
	case "help":
		c.log.Log("commands: " + strings.Join(c.reg.Names(), ", ") + ", help, toggle")
		if len(c.toggles) > 0 {
			c.log.Log("toggles: " + strings.Join(c.toggleNames(), ", "))
		}
		return
	case "toggle":
		c.toggle(args[1:])
		return
	}
	cmd, err := c.reg.Execute(args)
	if err != nil {
		c.log.Errorf("%v", err)
		return
	}
	if err := c.target.Dispatch(cmd); err != nil {
		c.log.Errorf("%s: %v", cmd.Name(), err)
		return
	}
	c.log.Logf("ok: %s", cmd.Name())
}

func (c *Console) toggle(args []string) {
	if len(args) != 1 {
		c.log.Errorf("usage: toggle <%s>", strings.Join(c.toggleNames(), "|"))
		return
	}
	flip, ok := c.toggles[args[0]]
	if !ok {
		c.log.Errorf("toggle: unknown switch %q", args[0])
		return
	}
	state := "off"
	if flip() {
		state = "on"
	}
	c.log.Logf("%s %s", args[0], state)
}

func (c *Console) toggleNames() []string {
	names := make([]string, 0, len(c.toggles))
	for n := range c.toggles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Update handles the backtick toggle and, when open, typing, paste, backspace and enter.
// Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		c.open = !c.open
		// Drop the backtick that opened or closed the console.
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.open = false
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.inputBuf += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.Submit(line)
	}
}

// Draw draws the input bar at the bottom when open, and the recent log lines above it.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := rl.GetScreenWidth()
	barY := rl.GetScreenHeight() - BarHeight

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	lines := c.log.Lines()
	start := max(0, len(lines)-maxLinesOnScreen)
	for i := start; i < len(lines); i++ {
		y := chatY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		c.drawText(line, padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), BarHeight, termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	c.drawText(prompt+c.inputBuf+"|", padding, barY+padding, rl.White)
}

func (c *Console) drawText(text string, x, y int, col rl.Color) {
	if c.font.Texture.ID != 0 {
		rl.DrawTextEx(c.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, col)
		return
	}
	rl.DrawText(text, int32(x), int32(y), fontSize, col)
}
