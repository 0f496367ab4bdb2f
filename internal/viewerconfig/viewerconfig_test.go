package viewerconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("missing file did not yield Default()")
	}
}

func TestLoadInvalidFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(path, []byte("camera: [this is: not"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("invalid file did not yield Default()")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	doc := `
model:
  path: models/boot.glb
swatches: [black, "#ff8800"]
selection:
  keep_on_miss: true
order:
  duration: 5s
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model.Path != "models/boot.glb" {
		t.Errorf("model path = %q", cfg.Model.Path)
	}
	if cfg.Model.Scale != Default().Model.Scale {
		t.Errorf("model scale = %v, want default", cfg.Model.Scale)
	}
	if want := []string{"black", "#ff8800"}; !reflect.DeepEqual(cfg.Swatches, want) {
		t.Errorf("swatches = %v, want %v", cfg.Swatches, want)
	}
	if !cfg.Selection.KeepOnMiss {
		t.Error("keep_on_miss not applied")
	}
	if cfg.Order.Duration != 5*time.Second {
		t.Errorf("order duration = %v", cfg.Order.Duration)
	}
	if cfg.Camera.Fov != 75 {
		t.Errorf("camera fov = %v, want 75", cfg.Camera.Fov)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.yaml")
	cfg := Default()
	cfg.Debug.Panel = true
	cfg.Textures = append(cfg.Textures, Texture{ID: "leather", Path: "texture/leather.png", Label: "Leather"})
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}
