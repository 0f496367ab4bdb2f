package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"product-viewer/internal/material"
)

// Panoramas are recognised by a roughly 2:1 aspect ratio.
const (
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// DecodeImage decodes PNG, JPEG, WebP or BMP data and scales it down so neither side
// exceeds maxSize (0 = no limit), keeping the aspect ratio.
func DecodeImage(data []byte, maxSize int) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image: empty %s image", format)
	}
	return fit(img, maxSize), nil
}

func fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// newTexture wraps img, tagging 2:1 images as panoramas.
func newTexture(id, path string, img image.Image) *material.Texture {
	tex := material.NewTexture(id, path, img)
	if tex.Height > 0 {
		aspect := float32(tex.Width) / float32(tex.Height)
		if aspect >= equirectAspectMin && aspect <= equirectAspectMax {
			tex.Kind = material.Equirect
		}
	}
	return tex
}
