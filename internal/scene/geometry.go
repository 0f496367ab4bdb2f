package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list in the node's local space. When Indices is nil,
// consecutive position triples form the triangles. Normals and UVs, when present, are
// per vertex and parallel to Positions.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32

	bounds *AABB
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the vertex indices of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c uint32) {
	if g.Indices != nil {
		return g.Indices[3*i], g.Indices[3*i+1], g.Indices[3*i+2]
	}
	return uint32(3 * i), uint32(3*i + 1), uint32(3*i + 2)
}

// Bounds returns the local-space AABB, computed once.
func (g *Geometry) Bounds() AABB {
	if g.bounds == nil {
		b := EmptyAABB()
		for _, p := range g.Positions {
			b = b.Expand(p)
		}
		g.bounds = &b
	}
	return *g.bounds
}

// InvalidateBounds drops the cached bounds after Positions were edited.
func (g *Geometry) InvalidateBounds() {
	g.bounds = nil
}

// ComputeNormals sets smooth per-vertex normals from area-weighted face normals.
func (g *Geometry) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.Triangle(i)
		pa, pb, pc := g.Positions[a], g.Positions[b], g.Positions[c]
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	g.Normals = normals
}

// NewBox returns an axis-aligned box centered on the origin with outward-facing, CCW triangles.
func NewBox(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	type face struct{ n, u, v mgl32.Vec3 }
	faces := []face{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	half := mgl32.Vec3{hx, hy, hz}
	g := &Geometry{}
	for _, f := range faces {
		base := uint32(len(g.Positions))
		center := mulElem(f.n, half)
		du := mulElem(f.u, half)
		dv := mulElem(f.v, half)
		corners := [4]mgl32.Vec3{
			center.Sub(du).Sub(dv),
			center.Add(du).Sub(dv),
			center.Add(du).Add(dv),
			center.Sub(du).Add(dv),
		}
		uvs := [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
		for i, p := range corners {
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, f.n)
			g.UVs = append(g.UVs, uvs[i])
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewSphere returns a UV sphere with outward-facing, CCW triangles.
func NewSphere(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	g := &Geometry{}
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		phi := v * math32.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			theta := u * 2 * math32.Pi
			n := mgl32.Vec3{
				-math32.Cos(theta) * math32.Sin(phi),
				math32.Cos(phi),
				math32.Sin(theta) * math32.Sin(phi),
			}
			g.Positions = append(g.Positions, n.Mul(radius))
			g.Normals = append(g.Normals, n)
			g.UVs = append(g.UVs, mgl32.Vec2{u, v})
		}
	}
	stride := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*stride + uint32(ix) + 1
			b := uint32(iy)*stride + uint32(ix)
			c := uint32(iy+1)*stride + uint32(ix)
			d := uint32(iy+1)*stride + uint32(ix) + 1
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// NewPlane returns a width x depth quad on the XZ plane facing +Y.
func NewPlane(width, depth float32) *Geometry {
	hx, hz := width/2, depth/2
	return &Geometry{
		Positions: []mgl32.Vec3{{-hx, 0, hz}, {hx, 0, hz}, {hx, 0, -hz}, {-hx, 0, -hz}},
		Normals:   []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		UVs:       []mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
