package render

import (
	"image"
	"image/draw"

	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/material"
)

const skyboxScale = 1000

// skybox draws the scene environment as a large cube centered on the camera,
// either a cubemap or an equirectangular panorama sampled by view direction.
type skybox struct {
	source    *material.Texture
	tex       rl.Texture2D
	mesh      rl.Mesh
	mtl       rl.Material
	loaded    bool
	equirect  bool
	camPosLoc int32
	texLoc    int32
	intensLoc int32
}

// ensure uploads env when it differs from what is on the GPU. GPU loading runs inside
// Draw so it happens after the window and GL context exist.
func (s *skybox) ensure(env *material.Texture) {
	if env == s.source || (env != nil && env.Pending()) {
		return
	}
	s.unload()
	s.source = env
	if env == nil {
		return
	}

	if env.Kind == material.Cubemap {
		img := rl.NewImageFromImage(cubemapStrip(env.Faces))
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutLineHorizontal)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		shader := rl.LoadShaderFromMemory(cubeSkyVS, cubeSkyFS)
		if !rl.IsShaderValid(shader) {
			rl.UnloadTexture(s.tex)
			return
		}
		// DrawMesh binds the cubemap slot to whatever uniform this location names.
		shader.UpdateLocation(rl.ShaderLocMapCubemap, rl.GetShaderLocation(shader, "environmentMap"))
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		s.mtl.Shader = shader
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.camPosLoc = -1
		s.texLoc = -1
		s.intensLoc = rl.GetShaderLocation(shader, "intensity")
		s.equirect = false
		s.loaded = true
		return
	}

	img := rl.NewImageFromImage(env.Image)
	s.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(s.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.intensLoc = rl.GetShaderLocation(shader, "intensity")
	s.equirect = true
	s.loaded = true
}

func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadShader(s.mtl.Shader)
	rl.UnloadTexture(s.tex)
	rl.UnloadMesh(&s.mesh)
	s.loaded = false
}

// draw must run between BeginMode3D and EndMode3D, before any other geometry.
func (s *skybox) draw(camPos rl.Vector3, intensity float32) {
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	scale := rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale)
	trans := rl.MatrixTranslate(camPos.X, camPos.Y, camPos.Z)
	transform := rl.MatrixMultiply(scale, trans)
	if s.equirect {
		if s.camPosLoc >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camPosLoc, []float32{camPos.X, camPos.Y, camPos.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	if s.intensLoc >= 0 {
		rl.SetShaderValue(s.mtl.Shader, s.intensLoc, []float32{intensity}, rl.ShaderUniformFloat)
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// cubemapStrip lays six equal faces side by side (+x, -x, +y, -y, +z, -z), the
// horizontal-line layout raylib understands.
func cubemapStrip(faces [6]image.Image) image.Image {
	size := faces[0].Bounds().Dx()
	strip := image.NewRGBA(image.Rect(0, 0, size*6, size))
	for i, f := range faces {
		if f == nil {
			continue
		}
		dst := image.Rect(i*size, 0, (i+1)*size, size)
		draw.Draw(strip, dst, f, f.Bounds().Min, draw.Src)
	}
	return strip
}
