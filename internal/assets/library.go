package assets

import (
	"product-viewer/internal/material"
)

// Library holds textures by id. It is not safe for concurrent use: it is filled by
// Loader callbacks, which Poll runs on the frame thread, and read by the controller on
// that same thread.
type Library struct {
	textures map[string]*material.Texture
	ids      []string
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{textures: make(map[string]*material.Texture)}
}

// Reserve stores an empty texture under id and returns it, so the id can be applied
// before its image has loaded. A later Add with the same id fills that texture in place,
// and every material already pointing at it picks up the image. An existing texture
// under id is returned unchanged.
func (l *Library) Reserve(id, path string) *material.Texture {
	if tex, ok := l.textures[id]; ok {
		return tex
	}
	tex := &material.Texture{ID: id, Path: path, Kind: material.Texture2D}
	l.store(tex)
	return tex
}

// Add stores tex under tex.ID. A pending placeholder from Reserve is filled in place;
// a loaded texture is replaced.
func (l *Library) Add(tex *material.Texture) {
	if tex == nil {
		return
	}
	if old, ok := l.textures[tex.ID]; ok && old.Pending() {
		*old = *tex
		return
	}
	l.store(tex)
}

func (l *Library) store(tex *material.Texture) {
	if _, ok := l.textures[tex.ID]; !ok {
		l.ids = append(l.ids, tex.ID)
	}
	l.textures[tex.ID] = tex
}

// Texture returns the texture stored under id, which may still be pending.
func (l *Library) Texture(id string) (*material.Texture, bool) {
	tex, ok := l.textures[id]
	return tex, ok
}

// IDs returns the stored ids in insertion order.
func (l *Library) IDs() []string {
	return append([]string(nil), l.ids...)
}
