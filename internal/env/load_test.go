package env

import (
	"os"
	"path/filepath"
	"testing"

	"product-viewer/internal/viewerconfig"
)

func TestLoadSetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# viewer\nVIEWER_TEST_A=one\nexport VIEWER_TEST_B=\"two words\"\n\nnot a pair\nVIEWER_TEST_C='three'\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"VIEWER_TEST_A", "VIEWER_TEST_B", "VIEWER_TEST_C"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]string{"VIEWER_TEST_A": "one", "VIEWER_TEST_B": "two words", "VIEWER_TEST_C": "three"}
	for k, v := range want {
		if got := os.Getenv(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLoadKeepsProcessEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("VIEWER_TEST_KEEP=file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VIEWER_TEST_KEEP", "process")
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("VIEWER_TEST_KEEP"); got != "process" {
		t.Errorf("got %q, want process", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

func TestApply(t *testing.T) {
	t.Setenv("VIEWER_MODEL", "https://example.com/boot.glb")
	t.Setenv("VIEWER_ASSET_ROOT", "/srv/public")
	t.Setenv("VIEWER_DEBUG", "true")
	t.Setenv("VIEWER_KEEP_SELECTION", "not-a-bool")

	cfg := viewerconfig.Default()
	Apply(&cfg)

	if cfg.Model.Path != "https://example.com/boot.glb" {
		t.Errorf("model path = %q", cfg.Model.Path)
	}
	if cfg.Assets.Root != "/srv/public" {
		t.Errorf("asset root = %q", cfg.Assets.Root)
	}
	if !cfg.Debug.Panel || !cfg.Debug.ShowFPS {
		t.Error("VIEWER_DEBUG not applied")
	}
	if cfg.Selection.KeepOnMiss {
		t.Error("invalid bool should leave keep_on_miss unchanged")
	}
}
