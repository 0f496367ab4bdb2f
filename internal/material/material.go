// Package material holds surface properties of meshes: base color, image map,
// PBR-ish scalars and an environment map, plus the dirty flag the renderer reads.
package material

import (
	"fmt"
	"image/color"

	"github.com/jinzhu/copier"
)

// Side selects which triangle faces are rendered and hit by picking.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material is a standard (metal/rough) material. Mutate it through the setters so the
// renderer sees the change on the next frame.
type Material struct {
	Name            string
	Color           color.RGBA
	Map             *Texture
	Roughness       float32
	Metalness       float32
	EnvMap          *Texture
	EnvMapIntensity float32
	Side            Side

	dirty bool
}

// NewStandard returns a standard material with the given base color, roughness 1 and metalness 0.
func NewStandard(c color.RGBA) *Material {
	return &Material{
		Color:           c,
		Roughness:       1,
		Metalness:       0,
		EnvMapIntensity: 1,
		Side:            FrontSide,
		dirty:           true,
	}
}

// SetColor replaces the base color.
func (m *Material) SetColor(c color.RGBA) {
	m.Color = c
	m.NeedsUpdate()
}

// SetMap replaces the image map. nil removes it.
func (m *Material) SetMap(t *Texture) {
	m.Map = t
	m.NeedsUpdate()
}

// SetEnvMap replaces the reflection map.
func (m *Material) SetEnvMap(t *Texture) {
	m.EnvMap = t
	m.NeedsUpdate()
}

// SetRoughness clamps v to [0, 1].
func (m *Material) SetRoughness(v float32) {
	m.Roughness = clamp01(v)
	m.NeedsUpdate()
}

// SetMetalness clamps v to [0, 1].
func (m *Material) SetMetalness(v float32) {
	m.Metalness = clamp01(v)
	m.NeedsUpdate()
}

// SetEnvMapIntensity clamps v to [0, 4].
func (m *Material) SetEnvMapIntensity(v float32) {
	if v < 0 {
		v = 0
	}
	if v > 4 {
		v = 4
	}
	m.EnvMapIntensity = v
	m.NeedsUpdate()
}

// NeedsUpdate marks the material dirty.
func (m *Material) NeedsUpdate() {
	m.dirty = true
}

// Dirty reports whether the material changed since the last TakeDirty.
func (m *Material) Dirty() bool {
	return m.dirty
}

// TakeDirty returns the dirty flag and clears it. Called by the renderer once per frame.
func (m *Material) TakeDirty() bool {
	d := m.dirty
	m.dirty = false
	return d
}

// Clone returns a copy that shares texture pointers with m. The copy starts dirty.
func (m *Material) Clone() (*Material, error) {
	out := &Material{}
	if err := copier.Copy(out, m); err != nil {
		return nil, fmt.Errorf("clone material %q: %w", m.Name, err)
	}
	// copier duplicates pointed-to structs; put the shared textures back.
	out.Map = m.Map
	out.EnvMap = m.EnvMap
	out.dirty = true
	return out, nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
