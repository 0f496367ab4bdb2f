package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box. An empty box has Min > Max on every axis.
type AABB struct {
	Min, Max mgl32.Vec3
}

// EmptyAABB returns a box that any Expand or Union replaces.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Expand returns the box grown to contain p.
func (b AABB) Expand(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing b and o.
func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	return b.Expand(o.Min).Expand(o.Max)
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the AABB of the eight transformed corners.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	if b.IsEmpty() {
		return b
	}
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out = out.Expand(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// IntersectRay runs the slab test and returns the ray parameter where r enters the box
// (0 if the origin is inside).
func (b AABB) IntersectRay(r Ray) (float32, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Direction[i]
		if d == 0 {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[i] - o) * inv
		t2 := (b.Max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}
