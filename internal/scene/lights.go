package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

type AmbientLight struct {
	Color     color.RGBA
	Intensity float32
}

// DirectionalLight shines from Position toward Target.
type DirectionalLight struct {
	Color      color.RGBA
	Intensity  float32
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	CastShadow bool
}

// ToLight returns the unit vector from the lit surface toward the light.
func (d DirectionalLight) ToLight() mgl32.Vec3 {
	v := d.Position.Sub(d.Target)
	if v.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}

type Lights struct {
	Ambient     AmbientLight
	Directional DirectionalLight
}

// DefaultLights is a white ambient (2) plus a white key light (3) at (10, 10, 10).
func DefaultLights() Lights {
	white := color.RGBA{255, 255, 255, 255}
	return Lights{
		Ambient: AmbientLight{Color: white, Intensity: 2},
		Directional: DirectionalLight{
			Color:      white,
			Intensity:  3,
			Position:   mgl32.Vec3{10, 10, 10},
			CastShadow: true,
		},
	}
}
