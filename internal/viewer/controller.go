package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"product-viewer/internal/commands"
	"product-viewer/internal/logger"
	"product-viewer/internal/material"
	"product-viewer/internal/scene"
)

// Options configure a Controller. Menu, Surface, Notifier and Textures may be nil.
type Options struct {
	Menu     MenuSurface
	Surface  Surface
	Notifier Notifier
	Textures TextureSource
	Log      *logger.Logger
	// KeepSelectionOnMiss keeps the last picked mesh selected after a click that hits
	// nothing (or hits something that is not a mesh). By default such a click clears it.
	KeepSelectionOnMiss bool
}

// Controller owns a Context and is the only code that changes the selection or a
// selected material. All methods run on the UI thread.
type Controller struct {
	ctx        *Context
	menu       MenuSurface
	surface    Surface
	notifier   Notifier
	textures   TextureSource
	log        *logger.Logger
	keepOnMiss bool
	raycaster  *scene.Raycaster
}

// New returns a controller over ctx. The menu starts hidden.
func New(ctx *Context, opts Options) *Controller {
	c := &Controller{
		ctx:        ctx,
		menu:       opts.Menu,
		surface:    opts.Surface,
		notifier:   opts.Notifier,
		textures:   opts.Textures,
		log:        opts.Log,
		keepOnMiss: opts.KeepSelectionOnMiss,
		raycaster:  scene.NewRaycaster(),
	}
	c.hideMenu()
	return c
}

// Context returns the controller's state.
func (c *Controller) Context() *Context {
	return c.ctx
}

// Selection returns the selected mesh or nil.
func (c *Controller) Selection() *scene.Node {
	return c.ctx.Selection
}

// MenuState returns the current menu state.
func (c *Controller) MenuState() MenuState {
	return c.ctx.Menu
}

// Pick casts a ray from the camera through viewport pixel (x, y) against the whole scene
// and returns the nearest node hit, or nil. A mesh hit becomes the selection and shows the
// menu at (x, y). Anything else hides the menu and, unless KeepSelectionOnMiss is set,
// clears the selection.
func (c *Controller) Pick(x, y float32) *scene.Node {
	ctx := c.ctx
	if ctx.Width <= 0 || ctx.Height <= 0 {
		return nil
	}
	nx, ny := scene.NDC(x, y, ctx.Width, ctx.Height)
	c.raycaster.SetFromCamera(nx, ny, ctx.Camera)
	hits := c.raycaster.IntersectObjects(ctx.Graph.Children(), true)
	if len(hits) == 0 {
		c.miss()
		return nil
	}
	hit := hits[0].Node
	if !hit.IsMesh() {
		c.miss()
		return hit
	}
	ctx.Selection = hit
	ctx.Menu = MenuState{Visible: true, X: x, Y: y}
	if c.menu != nil {
		c.menu.Show(x, y)
	}
	return hit
}

func (c *Controller) miss() {
	if !c.keepOnMiss {
		c.ctx.Selection = nil
	}
	c.hideMenu()
}

func (c *Controller) hideMenu() {
	c.ctx.Menu = MenuState{}
	if c.menu != nil {
		c.menu.Hide()
	}
}

// ClearSelection drops the selection and hides the menu.
func (c *Controller) ClearSelection() {
	c.ctx.Selection = nil
	c.hideMenu()
}

// ApplyColor sets the base color of n's material and marks it for update.
// It does nothing if n or its material is nil.
func ApplyColor(n *scene.Node, col color.RGBA) {
	if n == nil || n.Material == nil {
		return
	}
	n.Material.SetColor(col)
}

// ApplyTexture sets the image map of n's material and marks it for update.
// It does nothing if n or its material is nil.
func ApplyTexture(n *scene.Node, tex *material.Texture) {
	if n == nil || n.Material == nil {
		return
	}
	n.Material.SetMap(tex)
}

// ApplyColor recolors the current selection, if any.
func (c *Controller) ApplyColor(col color.RGBA) {
	ApplyColor(c.ctx.Selection, col)
}

// ApplyTexture retextures the current selection, if any.
func (c *Controller) ApplyTexture(tex *material.Texture) {
	ApplyTexture(c.ctx.Selection, tex)
}

// SetParam changes a scalar material parameter of the selection. Unknown names are an error;
// no selection is a no-op.
func (c *Controller) SetParam(name string, v float32) error {
	var set func(*material.Material, float32)
	switch strings.ToLower(name) {
	case "roughness":
		set = (*material.Material).SetRoughness
	case "metalness":
		set = (*material.Material).SetMetalness
	case "envmapintensity", "env_map_intensity":
		set = (*material.Material).SetEnvMapIntensity
	default:
		return fmt.Errorf("unknown material parameter %q", name)
	}
	if n := c.ctx.Selection; n != nil && n.Material != nil {
		set(n.Material, v)
	}
	return nil
}

// Resize records the new viewport size, updates the camera aspect and projection, and
// resizes the output surface. Non-positive sizes (a minimized window) are ignored.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.ctx.Width, c.ctx.Height = width, height
	c.ctx.Camera.SetAspect(float32(width) / float32(height))
	if c.surface != nil {
		c.surface.SetSize(width, height)
	}
}

// Dispatch applies one command. Errors are only returned for malformed commands
// (unknown color, unknown texture id, unknown parameter, unsupported command);
// the state is unchanged in that case.
func (c *Controller) Dispatch(cmd commands.Command) error {
	switch cmd := cmd.(type) {
	case commands.Select:
		c.Pick(cmd.X, cmd.Y)
	case commands.SetColor:
		col, err := material.ParseColor(cmd.Value)
		if err != nil {
			return fmt.Errorf("set color: %w", err)
		}
		c.ApplyColor(col)
	case commands.SetTexture:
		if c.textures == nil {
			return fmt.Errorf("set texture: no texture library")
		}
		tex, ok := c.textures.Texture(cmd.ID)
		if !ok {
			return fmt.Errorf("set texture: unknown texture %q", cmd.ID)
		}
		c.ApplyTexture(tex)
	case commands.SetParam:
		if err := c.SetParam(cmd.Param, cmd.Value); err != nil {
			return fmt.Errorf("set param: %w", err)
		}
	case commands.Resize:
		c.Resize(cmd.Width, cmd.Height)
	case commands.PlaceOrder:
		if c.notifier != nil {
			c.notifier.Notify()
		}
	case commands.ClearSelection:
		c.ClearSelection()
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
	return nil
}

// DispatchAll applies each command in order, logging (and otherwise ignoring) failures.
func (c *Controller) DispatchAll(cmds []commands.Command) {
	for _, cmd := range cmds {
		if err := c.Dispatch(cmd); err != nil && c.log != nil {
			c.log.Errorf("%s: %v", cmd.Name(), err)
		}
	}
}
