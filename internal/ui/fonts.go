package ui

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fontExts are the font files LoadFont accepts.
var fontExts = []string{".ttf", ".otf"}

// FontDirs are searched, in order, by FindFont (relative to the working directory).
var FontDirs = []string{"assets/fonts", "../../assets/fonts"}

// FindFont resolves a configured font to a file. name may be a path to a font file or a
// font file name (with or without extension, case-insensitive) somewhere under FontDirs.
func FindFont(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if isFontFile(name) {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
	}
	want := strings.ToLower(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	for _, dir := range FontDirs {
		var found string
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !isFontFile(path) {
				return nil
			}
			base := strings.ToLower(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
			if base == want {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func isFontFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range fontExts {
		if ext == e {
			return true
		}
	}
	return false
}
