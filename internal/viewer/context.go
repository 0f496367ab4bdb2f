// Package viewer holds the selection and material controller: it turns pointer picks into a
// selected mesh, applies color and texture changes to that mesh's material, and drives the
// contextual menu.
package viewer

import (
	"product-viewer/internal/material"
	"product-viewer/internal/scene"
)

// MenuSurface is the contextual menu overlay anchored at the pointer.
type MenuSurface interface {
	Show(x, y float32)
	Hide()
}

// Surface is the render output; SetSize is called when the viewport changes size.
type Surface interface {
	SetSize(width, height int)
}

// Notifier shows the order confirmation.
type Notifier interface {
	Notify()
}

// TextureSource resolves texture ids to loaded textures.
type TextureSource interface {
	Texture(id string) (*material.Texture, bool)
}

// MenuState is the menu visibility state machine: Hidden, or Shown anchored at (X, Y).
type MenuState struct {
	Visible bool
	X, Y    float32
}

// Context is the viewer's mutable state, owned by one Controller.
// Selection refers into Graph; the controller never changes the graph's structure.
type Context struct {
	Graph     *scene.Graph
	Camera    *scene.Camera
	Width     int
	Height    int
	Selection *scene.Node
	Menu      MenuState
}

// NewContext returns a context for a width x height viewport. The camera aspect is set to match.
func NewContext(g *scene.Graph, cam *scene.Camera, width, height int) *Context {
	ctx := &Context{Graph: g, Camera: cam, Width: width, Height: height}
	if width > 0 && height > 0 {
		cam.SetAspect(float32(width) / float32(height))
	}
	return ctx
}
