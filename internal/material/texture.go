package material

import "image"

// TextureKind tells the renderer how to sample a texture.
type TextureKind int

const (
	Texture2D TextureKind = iota
	// Equirect is a 2:1 panorama sampled by view direction.
	Equirect
	// Cubemap holds six faces in Faces (+x, -x, +y, -y, +z, -z).
	Cubemap
)

// Texture is an image asset shared by reference between every material that uses it.
// A texture without an image is pending: it was reserved before its load finished and
// is filled in place once, on the frame thread. It is immutable after that.
type Texture struct {
	ID     string
	Path   string
	Kind   TextureKind
	Image  image.Image
	Faces  [6]image.Image
	Width  int
	Height int
}

// Pending reports whether the texture has no image data yet.
func (t *Texture) Pending() bool {
	if t.Kind == Cubemap {
		return t.Faces[0] == nil
	}
	return t.Image == nil
}

// NewTexture wraps img as a 2D texture.
func NewTexture(id, path string, img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{ID: id, Path: path, Kind: Texture2D, Image: img, Width: b.Dx(), Height: b.Dy()}
}

// NewCubemap wraps six face images. Width/Height are those of the first face.
func NewCubemap(id string, faces [6]image.Image) *Texture {
	b := faces[0].Bounds()
	return &Texture{ID: id, Kind: Cubemap, Faces: faces, Width: b.Dx(), Height: b.Dy()}
}
