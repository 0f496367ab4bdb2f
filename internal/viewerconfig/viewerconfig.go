// Package viewerconfig loads and saves the viewer's YAML configuration. Every field has a
// default, so a missing, partial or broken file still yields a working setup.
package viewerconfig

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the viewer config file, relative to the process working directory.
const ConfigPath = "config/viewer.yaml"

// Config holds everything the viewer needs to build its scene and overlays.
// Asset paths are relative to Assets.Root unless they are http(s) URLs.
type Config struct {
	Window      Window      `yaml:"window"`
	Camera      Camera      `yaml:"camera"`
	Controls    Controls    `yaml:"controls"`
	Lights      Lights      `yaml:"lights"`
	Environment Environment `yaml:"environment"`
	Model       Model       `yaml:"model"`
	Textures    []Texture   `yaml:"textures"`
	Swatches    []string    `yaml:"swatches"`
	Selection   Selection   `yaml:"selection"`
	Menu        Menu        `yaml:"menu"`
	Order       Order       `yaml:"order"`
	Debug       Debug       `yaml:"debug"`
	Assets      Assets      `yaml:"assets"`
}

type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Antialias bool   `yaml:"antialias"`
}

// Camera is a perspective camera. Fov is vertical, in degrees.
type Camera struct {
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

type Controls struct {
	Damping       bool    `yaml:"damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
}

type Light struct {
	Color      string     `yaml:"color"`
	Intensity  float32    `yaml:"intensity"`
	Position   [3]float32 `yaml:"position,omitempty"`
	CastShadow bool       `yaml:"cast_shadow,omitempty"`
}

type Lights struct {
	Ambient     Light `yaml:"ambient"`
	Directional Light `yaml:"directional"`
}

// Environment is the background. Panorama is an equirectangular image; Cubemap lists six
// faces (+x, -x, +y, -y, +z, -z) and, when set, also drives reflections on standard materials.
type Environment struct {
	Panorama        string   `yaml:"panorama,omitempty"`
	Cubemap         []string `yaml:"cubemap,omitempty"`
	EnvMapIntensity float32  `yaml:"env_map_intensity"`
}

type Model struct {
	Path      string     `yaml:"path"`
	Scale     [3]float32 `yaml:"scale"`
	Position  [3]float32 `yaml:"position"`
	RotationY float32    `yaml:"rotation_y"`
	BaseColor string     `yaml:"base_color"`
}

// Texture is one selectable texture; ID is what SetTexture commands refer to.
type Texture struct {
	ID    string `yaml:"id"`
	Path  string `yaml:"path"`
	Label string `yaml:"label,omitempty"`
}

// Selection.KeepOnMiss keeps the last picked mesh selected after a click on empty space.
type Selection struct {
	KeepOnMiss bool `yaml:"keep_on_miss"`
}

type Menu struct {
	Stylesheet string `yaml:"stylesheet"`
	Font       string `yaml:"font,omitempty"`
}

type Order struct {
	Message  string        `yaml:"message"`
	Duration time.Duration `yaml:"duration"`
}

type Debug struct {
	Panel        bool `yaml:"panel"`
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowGrid     bool `yaml:"show_grid"`
}

// Assets.CacheDir is relative to Root.
type Assets struct {
	Root           string `yaml:"root"`
	CacheDir       string `yaml:"cache_dir"`
	MaxTextureSize int    `yaml:"max_texture_size"`
	Workers        int    `yaml:"workers"`
}

// Default returns the stock shoe configurator setup.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "Product Viewer",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
			Antialias: true,
		},
		Camera: Camera{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 10, 30},
			Target:   [3]float32{0, 0, 0},
		},
		Controls: Controls{
			Damping:       true,
			DampingFactor: 0.05,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			MinDistance:   1,
			MaxDistance:   400,
		},
		Lights: Lights{
			Ambient:     Light{Color: "#ffffff", Intensity: 2},
			Directional: Light{Color: "#ffffff", Intensity: 3, Position: [3]float32{10, 10, 10}, CastShadow: true},
		},
		Environment: Environment{
			Panorama:        "texture/garage.png",
			EnvMapIntensity: 1,
		},
		Model: Model{
			Path:      "Shoe_compressed.glb",
			Scale:     [3]float32{50, 50, 50},
			RotationY: math.Pi / 40,
			BaseColor: "#ffffff",
		},
		Textures: []Texture{
			{ID: "texture1", Path: "texture/texture1.jpg"},
			{ID: "texture2", Path: "texture/texture2.jpg"},
		},
		Swatches: []string{"blue", "red", "green"},
		Menu:     Menu{Stylesheet: "assets/ui/viewer.css"},
		Order: Order{
			Message:  "Thanks! Your order has been placed.",
			Duration: 3 * time.Second,
		},
		Assets: Assets{
			Root:           "public",
			CacheDir:       "cache",
			MaxTextureSize: 2048,
			Workers:        4,
		},
	}
}

// Load reads the config from path. A missing or invalid file yields Default() and no file is created;
// fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
