package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"product-viewer/internal/assets"
	"product-viewer/internal/commands"
	"product-viewer/internal/debug"
	"product-viewer/internal/env"
	"product-viewer/internal/graphics"
	"product-viewer/internal/input"
	"product-viewer/internal/logger"
	"product-viewer/internal/material"
	"product-viewer/internal/render"
	"product-viewer/internal/scene"
	"product-viewer/internal/terminal"
	"product-viewer/internal/ui"
	"product-viewer/internal/viewer"
	"product-viewer/internal/viewerconfig"
)

func main() {
	configPath := flag.String("config", viewerconfig.ConfigPath, "viewer config file")
	modelPath := flag.String("model", "", "model to load instead of the configured one (\"-\" for the demo model)")
	debugPanel := flag.Bool("debug", false, "show the material parameter panel")
	flag.Parse()

	log := logger.New()
	if err := env.Load(".env"); err != nil {
		log.Errorf("env: %v", err)
	}
	cfg, err := viewerconfig.Load(*configPath)
	if err != nil {
		log.Errorf("config: %v", err)
	}
	env.Apply(&cfg)
	if *modelPath == "-" {
		cfg.Model.Path = ""
	} else if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *debugPanel {
		cfg.Debug.Panel = true
	}

	a, err := newApp(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	graphics.Run(graphics.Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		TargetFPS: cfg.Window.TargetFPS,
		Antialias: cfg.Window.Antialias,
		OnResize:  a.ctrl.Resize,
		OnClose:   a.close,
	}, a.update, a.draw)
}

// app is the running viewer: one scene, one controller, and the widgets around it.
type app struct {
	cfg      viewerconfig.Config
	log      *logger.Logger
	graph    *scene.Graph
	controls *scene.OrbitControls
	loader   *assets.Loader
	library  *assets.Library
	ctrl     *viewer.Controller
	renderer *render.Renderer
	overlay  *ui.Overlay
	console  *terminal.Console
	debug    *debug.Overlay
	pointer  *input.Pointer

	fontLoaded bool
}

func newApp(cfg viewerconfig.Config, log *logger.Logger) (*app, error) {
	loader, err := assets.NewOSLoader(cfg.Assets.Root, assets.Options{
		Workers:        cfg.Assets.Workers,
		MaxTextureSize: cfg.Assets.MaxTextureSize,
		CacheDir:       cfg.Assets.CacheDir,
	})
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}

	graph := scene.NewGraph()
	lights, err := buildLights(cfg.Lights)
	if err != nil {
		log.Errorf("lights: %v", err)
	}
	graph.Lights = lights

	cam := newCamera(cfg.Camera, cfg.Window.Width, cfg.Window.Height)
	controls := newControls(cam, cfg.Controls)
	ctx := viewer.NewContext(graph, cam, cfg.Window.Width, cfg.Window.Height)

	engine := ui.New()
	if cfg.Menu.Stylesheet != "" {
		if err := engine.LoadCSS(cfg.Menu.Stylesheet); err != nil {
			log.Errorf("%v", err)
		}
	}
	library := assets.NewLibrary()
	overlay := ui.NewOverlay(engine, menuItems(cfg), cfg.Swatches, cfg.Order.Message, cfg.Order.Duration)
	overlay.Panel.Enabled = cfg.Debug.Panel

	renderer := render.New(ctx, log)
	renderer.ShowGrid = cfg.Debug.ShowGrid
	renderer.EnvIntensity = cfg.Environment.EnvMapIntensity

	ctrl := viewer.New(ctx, viewer.Options{
		Menu:                overlay.Menu,
		Surface:             renderer,
		Notifier:            overlay.Toast,
		Textures:            library,
		Log:                 log,
		KeepSelectionOnMiss: cfg.Selection.KeepOnMiss,
	})

	dbg := debug.New()
	dbg.ShowFPS = cfg.Debug.ShowFPS
	dbg.ShowMemAlloc = cfg.Debug.ShowMemAlloc

	console := terminal.New(log, commands.NewDefaultRegistry(), ctrl)
	console.AddToggle("fps", dbg.ToggleFPS)
	console.AddToggle("mem", dbg.ToggleMemAlloc)
	console.AddToggle("selection", dbg.ToggleSelection)
	console.AddToggle("grid", func() bool {
		renderer.ShowGrid = !renderer.ShowGrid
		return renderer.ShowGrid
	})
	console.AddToggle("panel", func() bool {
		overlay.Panel.Enabled = !overlay.Panel.Enabled
		return overlay.Panel.Enabled
	})

	pointer := input.NewPointer(controls)
	pointer.Blocked = func(x, y float32) bool {
		return console.IsOpen() || engine.Covers(x, y)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		graph:    graph,
		controls: controls,
		loader:   loader,
		library:  library,
		ctrl:     ctrl,
		renderer: renderer,
		overlay:  overlay,
		console:  console,
		debug:    dbg,
		pointer:  pointer,
	}
	a.loadAssets()
	return a, nil
}

// menuItems lists the swatches followed by the configured textures.
func menuItems(cfg viewerconfig.Config) []ui.MenuItem {
	ids := make([]string, 0, len(cfg.Textures))
	labels := make(map[string]string)
	for _, t := range cfg.Textures {
		ids = append(ids, t.ID)
		if t.Label != "" {
			labels[t.ID] = t.Label
		}
	}
	return ui.ColorItems(cfg.Swatches, ids, labels)
}

// loadAssets starts every background load. Results arrive through loader.Poll in update.
func (a *app) loadAssets() {
	logErr := func(err error) { a.log.Errorf("%v", err) }

	onEnv := func(tex *material.Texture) {
		setEnvironment(a.graph, tex)
		a.log.Logf("environment %s loaded", tex.ID)
	}
	switch e := a.cfg.Environment; {
	case len(e.Cubemap) == 6:
		var faces [6]string
		copy(faces[:], e.Cubemap)
		a.loader.LoadCubemap("environment", faces, onEnv, logErr)
	case len(e.Cubemap) > 0:
		a.log.Errorf("environment: cubemap needs 6 faces, got %d", len(e.Cubemap))
	case e.Panorama != "":
		a.loader.LoadTexture("environment", e.Panorama, onEnv, logErr)
	}

	// Reserved ids can be applied from the menu before their image arrives.
	for _, t := range a.cfg.Textures {
		a.library.Reserve(t.ID, t.Path)
		a.loader.LoadTexture(t.ID, t.Path, a.library.Add, logErr)
	}

	if a.cfg.Model.Path == "" {
		a.addModel(demoModel())
		return
	}
	a.loader.LoadModel(a.cfg.Model.Path, a.addModel, logErr)
}

func (a *app) addModel(root *scene.Node) {
	if err := prepareModel(root, a.cfg.Model, a.graph.Environment); err != nil {
		a.log.Errorf("model: %v", err)
	}
	a.graph.Add(root)
	a.log.Logf("model %s loaded (%d meshes)", root.Name, len(a.graph.Meshes()))
}

func (a *app) update() {
	if !a.fontLoaded {
		a.loadFont()
	}
	a.loader.Poll()
	a.console.Update()

	if click, ok := a.pointer.Poll(); ok && !a.console.IsOpen() {
		cmd, consumed := a.overlay.Click(click.X, click.Y)
		if !consumed {
			cmd = commands.Select{X: click.X, Y: click.Y}
		}
		if cmd != nil {
			a.ctrl.DispatchAll([]commands.Command{cmd})
		}
	}
	a.controls.Update()

	ctx := a.ctrl.Context()
	a.overlay.Update(time.Now(), paramValues(a.ctrl.Selection()), int32(ctx.Width), int32(ctx.Height))
}

// loadFont runs once the GL context exists; raylib cannot load fonts before that.
func (a *app) loadFont() {
	a.fontLoaded = true
	name := a.cfg.Menu.Font
	if name == "" {
		return
	}
	path, ok := ui.FindFont(name)
	if !ok {
		a.log.Errorf("font %q not found", name)
		return
	}
	if err := a.overlay.Engine.LoadFont(path); err != nil {
		a.log.Errorf("%v", err)
		return
	}
	font := a.overlay.Engine.Font()
	a.console.SetFont(font)
	a.debug.SetFont(font)
}

func (a *app) draw() {
	a.renderer.Draw()
	a.overlay.Draw()
	a.debug.Draw(selectionName(a.ctrl.Selection()))
	a.console.Draw()
}

func (a *app) close() {
	a.loader.Close()
	a.renderer.Close()
}

func paramValues(n *scene.Node) ui.ParamValues {
	if n == nil || n.Material == nil {
		return ui.ParamValues{}
	}
	m := n.Material
	return ui.ParamValues{
		Name:            n.Name,
		HasSelection:    true,
		Roughness:       m.Roughness,
		Metalness:       m.Metalness,
		EnvMapIntensity: m.EnvMapIntensity,
	}
}

func selectionName(n *scene.Node) string {
	if n == nil {
		return ""
	}
	return n.Name
}
