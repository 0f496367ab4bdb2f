package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/material"
	"product-viewer/internal/scene"
	"product-viewer/internal/viewerconfig"
)

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3(v)
}

// buildLights converts the configured lights. Unparseable colors fall back to white.
func buildLights(cfg viewerconfig.Lights) (scene.Lights, error) {
	l := scene.DefaultLights()
	var errs []error
	if c, err := material.ParseColor(cfg.Ambient.Color); err == nil {
		l.Ambient.Color = c
	} else {
		errs = append(errs, fmt.Errorf("ambient light: %w", err))
	}
	l.Ambient.Intensity = cfg.Ambient.Intensity

	if c, err := material.ParseColor(cfg.Directional.Color); err == nil {
		l.Directional.Color = c
	} else {
		errs = append(errs, fmt.Errorf("directional light: %w", err))
	}
	l.Directional.Intensity = cfg.Directional.Intensity
	l.Directional.Position = vec3(cfg.Directional.Position)
	l.Directional.CastShadow = cfg.Directional.CastShadow
	if len(errs) > 0 {
		return l, errs[0]
	}
	return l, nil
}

func newCamera(cfg viewerconfig.Camera, width, height int) *scene.Camera {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	cam := scene.NewPerspective(cfg.Fov, aspect, cfg.Near, cfg.Far)
	cam.Position = vec3(cfg.Position)
	cam.LookAt(vec3(cfg.Target))
	return cam
}

func newControls(cam *scene.Camera, cfg viewerconfig.Controls) *scene.OrbitControls {
	oc := scene.NewOrbitControls(cam)
	oc.EnableDamping = cfg.Damping
	if cfg.DampingFactor > 0 {
		oc.DampingFactor = cfg.DampingFactor
	}
	if cfg.RotateSpeed > 0 {
		oc.RotateSpeed = cfg.RotateSpeed
	}
	if cfg.ZoomSpeed > 0 {
		oc.ZoomSpeed = cfg.ZoomSpeed
	}
	oc.MinDistance = cfg.MinDistance
	if cfg.MaxDistance > 0 {
		oc.MaxDistance = cfg.MaxDistance
	}
	return oc
}

// prepareModel places the loaded model and gives every mesh its own clone of one standard
// material in the base color. The clones share env as their reflection map. Meshes cast
// and receive shadows.
func prepareModel(root *scene.Node, cfg viewerconfig.Model, env *material.Texture) error {
	col, colorErr := material.ParseColor(cfg.BaseColor)
	if colorErr != nil {
		col = material.MustParseColor("white")
	}
	base := material.NewStandard(col)
	if env != nil {
		base.SetEnvMap(env)
	}
	if cfg.Scale != ([3]float32{}) {
		root.Scale = vec3(cfg.Scale)
	}
	root.Position = vec3(cfg.Position)
	root.SetRotationY(cfg.RotationY)

	var cloneErr error
	root.Traverse(func(n *scene.Node) {
		if !n.IsMesh() {
			return
		}
		m, err := base.Clone()
		if err != nil {
			if cloneErr == nil {
				cloneErr = err
			}
			m = material.NewStandard(col)
			m.EnvMap = env
		}
		m.Name = n.Name
		n.Material = m
		n.CastShadow = true
		n.ReceiveShadow = true
	})
	if colorErr != nil {
		return colorErr
	}
	return cloneErr
}

// setEnvironment makes env the scene background and the reflection map of every mesh.
func setEnvironment(g *scene.Graph, env *material.Texture) {
	g.Environment = env
	for _, n := range g.Meshes() {
		if n.Material != nil {
			n.Material.SetEnvMap(env)
		}
	}
}

// demoModel stands in for a product when no model is configured.
func demoModel() *scene.Node {
	root := scene.NewGroup("demo")
	body := scene.NewMesh("body", scene.NewBox(0.3, 0.12, 0.12), nil)
	end := scene.NewMesh("cap", scene.NewSphere(0.06, 24, 12), nil)
	end.Position = mgl32.Vec3{0.15, 0, 0}
	root.Add(body, end)
	return root
}
