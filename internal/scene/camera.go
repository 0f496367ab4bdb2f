package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking from Position at Target. Fov is the vertical
// field of view in degrees. Call UpdateProjection after changing Fov, Aspect, Near or Far.
type Camera struct {
	Fov      float32
	Aspect   float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
}

// NewPerspective returns a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	c := &Camera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjection()
	return c
}

// SetAspect sets the width/height ratio and recomputes the projection.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes the projection matrix.
func (c *Camera) UpdateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// Projection returns the current projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Unproject maps a point in normalized device coordinates to world space.
func (c *Camera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	inv := c.projection.Mul4(c.View()).Inv()
	p := inv.Mul4x1(ndc.Vec4(1))
	if p[3] == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p[3])
}

// RayFromNDC returns the world-space ray from the camera through (x, y) in NDC.
func (c *Camera) RayFromNDC(x, y float32) Ray {
	through := c.Unproject(mgl32.Vec3{x, y, 0.5})
	return Ray{Origin: c.Position, Direction: through.Sub(c.Position).Normalize()}
}

// NDC converts viewport pixel coordinates (origin top-left) to normalized device coordinates.
func NDC(px, py float32, width, height int) (x, y float32) {
	return px/float32(width)*2 - 1, -(py/float32(height))*2 + 1
}
