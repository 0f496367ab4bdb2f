package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/scene"
)

// toMatrix converts a column-major mgl32 matrix to raylib's layout (also column-major, named by index).
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// toCamera3D mirrors the viewer camera for raylib's 3D mode.
func toCamera3D(c *scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       c.Fov,
		Projection: rl.CameraPerspective,
	}
}

// meshArrays holds geometry flattened for upload: one vertex per triangle corner.
type meshArrays struct {
	vertices  []float32
	normals   []float32
	texcoords []float32
	triangles int
}

// flatten expands indexed geometry into unindexed arrays so models with more than
// 65535 vertices fit raylib's 16-bit index meshes.
func flatten(g *scene.Geometry) meshArrays {
	n := g.TriangleCount()
	out := meshArrays{
		vertices:  make([]float32, 0, n*9),
		normals:   make([]float32, 0, n*9),
		texcoords: make([]float32, 0, n*6),
		triangles: n,
	}
	hasNormals := len(g.Normals) == len(g.Positions)
	hasUVs := len(g.UVs) == len(g.Positions)
	for i := 0; i < n; i++ {
		a, b, c := g.Triangle(i)
		for _, ix := range [3]uint32{a, b, c} {
			p := g.Positions[ix]
			out.vertices = append(out.vertices, p[0], p[1], p[2])
			if hasNormals {
				nv := g.Normals[ix]
				out.normals = append(out.normals, nv[0], nv[1], nv[2])
			} else {
				out.normals = append(out.normals, 0, 1, 0)
			}
			if hasUVs {
				uv := g.UVs[ix]
				out.texcoords = append(out.texcoords, uv[0], uv[1])
			} else {
				out.texcoords = append(out.texcoords, 0, 0)
			}
		}
	}
	return out
}
