package material

import (
	"image"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"blue", color.RGBA{0, 0, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{" green ", color.RGBA{0, 128, 0, 255}},
		{"#ffffff", color.RGBA{255, 255, 255, 255}},
		{"#f80", color.RGBA{255, 136, 0, 255}},
		{"0x336699", color.RGBA{0x33, 0x66, 0x99, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{"", "blurple", "#12", "#gggggg", "0x1234567"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) succeeded", in)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(MustParseColor("hotpink")); got != "#ff69b4" {
		t.Errorf("Hex = %q", got)
	}
}

func TestSettersMarkDirty(t *testing.T) {
	m := NewStandard(MustParseColor("white"))
	if !m.TakeDirty() {
		t.Fatal("new material should start dirty")
	}
	if m.Dirty() {
		t.Fatal("TakeDirty did not clear")
	}
	m.SetColor(MustParseColor("blue"))
	if !m.TakeDirty() {
		t.Error("SetColor did not mark dirty")
	}
	tex := NewTexture("t", "t.png", image.NewRGBA(image.Rect(0, 0, 4, 2)))
	m.SetMap(tex)
	if !m.TakeDirty() {
		t.Error("SetMap did not mark dirty")
	}
	if m.Color != MustParseColor("blue") {
		t.Error("SetMap changed color")
	}
}

func TestScalarClamps(t *testing.T) {
	m := NewStandard(color.RGBA{A: 255})
	m.SetRoughness(1.5)
	m.SetMetalness(-1)
	m.SetEnvMapIntensity(9)
	if m.Roughness != 1 || m.Metalness != 0 || m.EnvMapIntensity != 4 {
		t.Errorf("clamped values = %v %v %v", m.Roughness, m.Metalness, m.EnvMapIntensity)
	}
}

func TestCloneSharesTextures(t *testing.T) {
	tex := NewTexture("t", "t.png", image.NewRGBA(image.Rect(0, 0, 8, 8)))
	base := NewStandard(MustParseColor("white"))
	base.Name = "base"
	env := &Texture{ID: "env", Kind: Equirect}
	base.SetMap(tex)
	base.SetEnvMap(env)
	base.TakeDirty()

	c, err := base.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if c == base {
		t.Fatal("Clone returned the receiver")
	}
	if c.Map != tex {
		t.Error("clone does not share the texture")
	}
	if c.EnvMap != env {
		t.Error("clone does not share the env map")
	}
	if c.Name != "base" || c.Color != base.Color || c.Roughness != base.Roughness {
		t.Errorf("clone fields differ: %+v", c)
	}
	if !c.Dirty() {
		t.Error("clone should start dirty")
	}
	c.SetColor(MustParseColor("red"))
	if base.Color == c.Color {
		t.Error("mutating the clone changed the original")
	}
	if base.Dirty() {
		t.Error("mutating the clone dirtied the original")
	}
}

func TestNewTextureSize(t *testing.T) {
	tex := NewTexture("t", "t.png", image.NewRGBA(image.Rect(0, 0, 64, 32)))
	if tex.Width != 64 || tex.Height != 32 || tex.Kind != Texture2D {
		t.Errorf("texture = %+v", tex)
	}
}
