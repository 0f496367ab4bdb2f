// Package render draws the scene graph with raylib: environment, lit meshes and the
// selection outline.
package render

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/logger"
	"product-viewer/internal/material"
	"product-viewer/internal/scene"
	"product-viewer/internal/viewer"
)

// Light intensities in the scene follow physical-ish units; these bring them into the
// 0..1 range the lit shader expects.
const (
	ambientScale     = 0.12
	directionalScale = 0.3
)

var outlineColor = rl.NewColor(255, 200, 0, 255)

type gpuMesh struct {
	mesh   rl.Mesh
	arrays meshArrays
}

// Renderer owns every GPU resource derived from the scene. It implements viewer.Surface.
// All methods must run on the thread that created the window.
type Renderer struct {
	ctx *viewer.Context
	log *logger.Logger

	width, height int
	// ShowGrid draws the editor grid on the XZ plane.
	ShowGrid bool
	// EnvIntensity scales the environment's contribution (background and ambient).
	EnvIntensity float32

	ready    bool
	shader   rl.Shader
	mtl      rl.Material
	white    rl.Texture2D
	locs     uniformLocs
	meshes   map[*scene.Geometry]*gpuMesh
	textures map[*material.Texture]rl.Texture2D
	// envs holds reflection panoramas built from cubemap environments.
	envs map[*material.Texture]rl.Texture2D
	sky  skybox
}

type uniformLocs struct {
	viewPos, ambient, lightDirs, lightColors, lightCount int32
	specularPower, specularStrength, metalness, roughness, envIntensity, hasEnv int32
}

// New returns a renderer for ctx. GPU resources are created on the first Draw.
func New(ctx *viewer.Context, log *logger.Logger) *Renderer {
	return &Renderer{
		ctx:          ctx,
		log:          log,
		width:        ctx.Width,
		height:       ctx.Height,
		EnvIntensity: 1,
		meshes:       make(map[*scene.Geometry]*gpuMesh),
		textures:     make(map[*material.Texture]rl.Texture2D),
		envs:         make(map[*material.Texture]rl.Texture2D),
	}
}

// SetSize resizes the window when it does not already have that size (e.g. a console resize).
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	if rl.IsWindowReady() && (rl.GetScreenWidth() != width || rl.GetScreenHeight() != height) {
		rl.SetWindowSize(width, height)
	}
}

// Size returns the last size given to SetSize.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) init() {
	if r.ready {
		return
	}
	r.ready = true
	r.mtl = rl.LoadMaterialDefault()
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		r.white = albedo.Texture
	}
	r.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(r.shader) {
		r.logf("render: lit shader failed to compile; using the default shader")
		return
	}
	r.mtl.Shader = r.shader
	loc := func(name string) int32 { return rl.GetShaderLocation(r.shader, name) }
	r.locs = uniformLocs{
		viewPos:          loc("viewPos"),
		ambient:          loc("ambient"),
		lightDirs:        loc("lightDirs"),
		lightColors:      loc("lightColors"),
		lightCount:       loc("lightCount"),
		specularPower:    loc("specularPower"),
		specularStrength: loc("specularStrength"),
		metalness:        loc("metalness"),
		roughness:        loc("roughness"),
		envIntensity:     loc("envIntensity"),
		hasEnv:           loc("hasEnv"),
	}
}

// Draw renders one frame of the 3D scene. Call between BeginDrawing and EndDrawing,
// before 2D overlays.
func (r *Renderer) Draw() {
	r.init()
	g := r.ctx.Graph
	cam := toCamera3D(r.ctx.Camera)
	r.sky.ensure(g.Environment)

	rl.BeginMode3D(cam)
	r.sky.draw(cam.Position, r.EnvIntensity)
	if r.ShowGrid {
		drawEditorGrid()
	}
	r.setLights(g.Lights, r.ctx.Camera.Position)
	g.Root.TraverseVisible(func(n *scene.Node) {
		if n.IsMesh() {
			r.drawMesh(n)
		}
	})
	if sel := r.ctx.Selection; sel != nil {
		if b, ok := sel.WorldBounds(); ok {
			rl.DrawBoundingBox(rl.NewBoundingBox(toVector3(b.Min), toVector3(b.Max)), outlineColor)
		}
	}
	rl.EndMode3D()
}

func (r *Renderer) setLights(l scene.Lights, viewPos mgl32.Vec3) {
	if !rl.IsShaderValid(r.shader) {
		return
	}
	amb := material.Linear(l.Ambient.Color)
	ai := l.Ambient.Intensity * ambientScale
	d := l.Directional
	dir := d.ToLight()
	dc := material.Linear(d.Color)
	di := d.Intensity * directionalScale

	r.setVec(r.locs.viewPos, []float32{viewPos[0], viewPos[1], viewPos[2]}, rl.ShaderUniformVec3)
	r.setVec(r.locs.ambient, []float32{amb[0] * ai, amb[1] * ai, amb[2] * ai, 1}, rl.ShaderUniformVec4)
	r.setVec(r.locs.lightDirs, []float32{dir[0], dir[1], dir[2]}, rl.ShaderUniformVec3)
	r.setVec(r.locs.lightColors, []float32{dc[0] * di, dc[1] * di, dc[2] * di}, rl.ShaderUniformVec3)
	r.setFloat(r.locs.lightCount, 1)
}

func (r *Renderer) drawMesh(n *scene.Node) {
	gm := r.upload(n.Geometry)
	if gm == nil {
		return
	}
	mat := n.Material
	if mat == nil {
		mat = material.NewStandard(material.MustParseColor("white"))
	}
	if mat.TakeDirty() && mat.Map != nil {
		r.texture(mat.Map)
	}

	albedo := r.mtl.GetMap(rl.MapAlbedo)
	albedo.Color = toColor(mat.Color)
	albedo.Texture = r.white
	if mat.Map != nil {
		albedo.Texture = r.texture(mat.Map)
	}

	env, hasEnv := r.white, float32(0)
	if mat.EnvMap != nil {
		if t, ok := r.envTexture(mat.EnvMap); ok {
			env, hasEnv = t, 1
		}
	}
	r.mtl.GetMap(rl.MapMetalness).Texture = env
	r.setFloat(r.locs.hasEnv, hasEnv)

	rough := mat.Roughness
	r.setFloat(r.locs.roughness, rough)
	r.setFloat(r.locs.specularStrength, 0.05+0.9*(1-rough))
	r.setFloat(r.locs.specularPower, 4+124*(1-rough)*(1-rough))
	r.setFloat(r.locs.metalness, mat.Metalness)
	r.setFloat(r.locs.envIntensity, mat.EnvMapIntensity*r.EnvIntensity)

	rl.DrawMesh(gm.mesh, r.mtl, toMatrix(n.WorldMatrix()))
}

// upload returns the GPU mesh for g, uploading it the first time it is seen.
func (r *Renderer) upload(g *scene.Geometry) *gpuMesh {
	if gm, ok := r.meshes[g]; ok {
		return gm
	}
	arrays := flatten(g)
	if arrays.triangles == 0 {
		r.meshes[g] = nil
		return nil
	}
	gm := &gpuMesh{arrays: arrays}
	gm.mesh.VertexCount = int32(arrays.triangles * 3)
	gm.mesh.TriangleCount = int32(arrays.triangles)
	gm.mesh.Vertices = &arrays.vertices[0]
	gm.mesh.Normals = &arrays.normals[0]
	gm.mesh.Texcoords = &arrays.texcoords[0]
	rl.UploadMesh(&gm.mesh, false)
	r.meshes[g] = gm
	return gm
}

// texture returns the GPU copy of tex, uploading and mipmapping it on first use.
func (r *Renderer) texture(tex *material.Texture) rl.Texture2D {
	if t, ok := r.textures[tex]; ok {
		return t
	}
	// Pending textures draw white until their image arrives, and are not cached.
	if tex.Image == nil {
		return r.white
	}
	t := r.uploadImage(tex.ID, tex.Image)
	r.textures[tex] = t
	return t
}

// envTexture returns the reflection panorama for env. Cubemaps are resampled to a
// panorama once. It reports false while env is still loading.
func (r *Renderer) envTexture(env *material.Texture) (rl.Texture2D, bool) {
	if env.Pending() {
		return rl.Texture2D{}, false
	}
	if env.Kind != material.Cubemap {
		return r.texture(env), true
	}
	if t, ok := r.envs[env]; ok {
		return t, true
	}
	t := r.uploadImage(env.ID, cubemapToEquirect(env.Faces))
	r.envs[env] = t
	return t, true
}

func (r *Renderer) uploadImage(id string, src image.Image) rl.Texture2D {
	img := rl.NewImageFromImage(src)
	t := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(t) {
		r.logf("render: texture %s failed to upload", id)
		return r.white
	}
	rl.GenTextureMipmaps(&t)
	rl.SetTextureFilter(t, rl.FilterTrilinear)
	rl.SetTextureWrap(t, rl.WrapRepeat)
	return t
}

// Close releases GPU resources. Call before the window closes.
func (r *Renderer) Close() {
	if !r.ready {
		return
	}
	for _, gm := range r.meshes {
		if gm != nil {
			rl.UnloadMesh(&gm.mesh)
		}
	}
	for _, cache := range []map[*material.Texture]rl.Texture2D{r.textures, r.envs} {
		for _, t := range cache {
			if t.ID != r.white.ID {
				rl.UnloadTexture(t)
			}
		}
	}
	r.sky.unload()
	if rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	r.meshes = make(map[*scene.Geometry]*gpuMesh)
	r.textures = make(map[*material.Texture]rl.Texture2D)
	r.envs = make(map[*material.Texture]rl.Texture2D)
	r.ready = false
}

func (r *Renderer) setVec(loc int32, v []float32, typ rl.ShaderUniformDataType) {
	if loc >= 0 {
		rl.SetShaderValueV(r.shader, loc, v, typ, 1)
	}
}

func (r *Renderer) setFloat(loc int32, v float32) {
	if loc >= 0 {
		rl.SetShaderValue(r.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (r *Renderer) logf(format string, args ...any) {
	if r.log != nil {
		r.log.Logf(format, args...)
	}
}
