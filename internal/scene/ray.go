package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/material"
)

// Ray is a half line Origin + t*Direction, t >= 0.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps r through m. Direction is not renormalized, so parameters
// along the ray are preserved between spaces.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    mgl32.TransformCoordinate(r.Origin, m),
		Direction: mgl32.TransformNormal(r.Direction, m),
	}
}

// IntersectTriangle returns the ray parameter of the hit on triangle (a, b, c).
// With cullBack, triangles whose counter-clockwise front faces away from the ray are ignored.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3, cullBack bool) (float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	normal := edge1.Cross(edge2)

	ddn := r.Direction.Dot(normal)
	var sign float32
	switch {
	case ddn > 0:
		if cullBack {
			return 0, false
		}
		sign = 1
	case ddn < 0:
		sign = -1
		ddn = -ddn
	default:
		return 0, false
	}

	diff := r.Origin.Sub(a)
	ddqxe2 := sign * r.Direction.Dot(diff.Cross(edge2))
	if ddqxe2 < 0 {
		return 0, false
	}
	dde1xq := sign * r.Direction.Dot(edge1.Cross(diff))
	if dde1xq < 0 {
		return 0, false
	}
	if ddqxe2+dde1xq > ddn {
		return 0, false
	}
	qdn := -sign * diff.Dot(normal)
	if qdn < 0 {
		return 0, false
	}
	return qdn / ddn, true
}

// intersectGeometry tests r (in geometry space) against every triangle and returns the
// nearest hit parameter and face index. side decides face culling: FrontSide culls back
// faces, BackSide tests the reversed winding with culling, DoubleSide culls nothing.
func intersectGeometry(r Ray, g *Geometry, side material.Side) (float32, int, bool) {
	best := float32(0)
	face := -1
	for i := 0; i < g.TriangleCount(); i++ {
		ia, ib, ic := g.Triangle(i)
		a, b, c := g.Positions[ia], g.Positions[ib], g.Positions[ic]
		var t float32
		var ok bool
		switch side {
		case material.BackSide:
			t, ok = r.IntersectTriangle(c, b, a, true)
		case material.DoubleSide:
			t, ok = r.IntersectTriangle(a, b, c, false)
		default:
			t, ok = r.IntersectTriangle(a, b, c, true)
		}
		if ok && (face < 0 || t < best) {
			best, face = t, i
		}
	}
	return best, face, face >= 0
}
