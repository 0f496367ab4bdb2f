package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

const maxEnvWidth = 1024

// cubemapToEquirect resamples six faces (+x, -x, +y, -y, +z, -z) into a 2:1 panorama laid
// out the way the lit and equirect shaders read it: u follows atan(z, x), v runs from
// straight up (0) to straight down (1).
func cubemapToEquirect(faces [6]image.Image) *image.RGBA {
	w := 2 * faces[0].Bounds().Dx()
	if w > maxEnvWidth {
		w = maxEnvWidth
	}
	if w < 8 {
		w = 8
	}
	h := w / 2
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		lat := (0.5 - (float32(y)+0.5)/float32(h)) * math32.Pi
		for x := 0; x < w; x++ {
			lon := ((float32(x)+0.5)/float32(w) - 0.5) * 2 * math32.Pi
			dx := math32.Cos(lat) * math32.Cos(lon)
			dy := math32.Sin(lat)
			dz := math32.Cos(lat) * math32.Sin(lon)
			out.Set(x, y, sampleCube(faces, dx, dy, dz))
		}
	}
	return out
}

// sampleCube picks the face and texel a direction hits, following the OpenGL cubemap
// face conventions.
func sampleCube(faces [6]image.Image, x, y, z float32) color.Color {
	ax, ay, az := math32.Abs(x), math32.Abs(y), math32.Abs(z)
	var face int
	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			face, sc, tc = 0, -z, -y
		} else {
			face, sc, tc = 1, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			face, sc, tc = 2, x, z
		} else {
			face, sc, tc = 3, x, -z
		}
	default:
		ma = az
		if z > 0 {
			face, sc, tc = 4, x, -y
		} else {
			face, sc, tc = 5, -x, -y
		}
	}
	img := faces[face]
	if img == nil {
		return color.Black
	}
	b := img.Bounds()
	s := (sc/ma + 1) / 2
	t := (tc/ma + 1) / 2
	px := b.Min.X + min(int(s*float32(b.Dx())), b.Dx()-1)
	py := b.Min.Y + min(int(t*float32(b.Dy())), b.Dy()-1)
	return img.At(px, py)
}
