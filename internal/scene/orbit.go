package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	polarEpsilon = 1e-6
	// zoomBase is the per-notch dolly factor before ZoomSpeed is applied.
	zoomBase = 0.95
)

// OrbitControls orbits a camera around Target on a sphere. Rotate and Dolly accumulate input;
// Update applies it once per frame. With damping enabled, only DampingFactor of the pending
// rotation is applied each frame and the rest decays, so the camera eases to a stop.
type OrbitControls struct {
	Camera        *Camera
	Target        mgl32.Vec3
	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
}

// NewOrbitControls returns controls orbiting cam around its current target.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		Target:        cam.Target,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		scale:         1,
	}
}

// Rotate queues a drag of (dx, dy) pixels; a drag across the full viewport height is one turn.
func (o *OrbitControls) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	o.deltaTheta -= 2 * math32.Pi * dx / viewportHeight * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / viewportHeight * o.RotateSpeed
}

// RotateBy queues an explicit rotation in radians (azimuth, polar).
func (o *OrbitControls) RotateBy(theta, phi float32) {
	o.deltaTheta += theta
	o.deltaPhi += phi
}

// Dolly queues a zoom of the given wheel notches; positive moves closer.
func (o *OrbitControls) Dolly(notches float32) {
	if notches == 0 {
		return
	}
	f := math32.Pow(zoomBase, o.ZoomSpeed*math32.Abs(notches))
	if notches > 0 {
		o.scale *= f
	} else {
		o.scale /= f
	}
}

// Update moves the camera by the pending input and reports whether it moved.
func (o *OrbitControls) Update() bool {
	cam := o.Camera
	offset := cam.Position.Sub(o.Target)
	radius := offset.Len()
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(clamp(offset.Y()/radius, -1, 1))
	}

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}
	phi = clamp(phi, max(o.MinPolarAngle, polarEpsilon), min(o.MaxPolarAngle, math32.Pi-polarEpsilon))
	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := math32.Sin(phi)
	next := mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
	before := cam.Position
	cam.Position = o.Target.Add(next)
	cam.Target = o.Target

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
	}
	o.scale = 1
	return cam.Position.Sub(before).Len() > 1e-4
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
