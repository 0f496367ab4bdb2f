package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configure the window.
type Options struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int
	Antialias bool
	// OnResize receives the new framebuffer size whenever the window is resized, and once
	// at startup, before that frame's update.
	OnResize func(width, height int)
	// OnClose runs after the loop ends, while the GL context still exists.
	OnClose func()
}

// Run opens the window and runs the main loop. Each frame it forwards resizes, calls update
// (input, asset callbacks), then clears the screen and calls draw.
// ESC is left to the application; close via the window button.
func Run(opts Options, update, draw func()) {
	flags := uint32(rl.FlagWindowResizable)
	if opts.Antialias {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}

	if opts.OnResize != nil {
		opts.OnResize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	for !rl.WindowShouldClose() {
		if opts.OnResize != nil && rl.IsWindowResized() {
			opts.OnResize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	if opts.OnClose != nil {
		opts.OnClose()
	}
}
