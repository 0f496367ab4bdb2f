package env

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"product-viewer/internal/viewerconfig"
)

// Load reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped.
// Variables already set in the process environment win over the file.
// The file may be missing; that is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", false
	}
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// Apply overrides cfg from VIEWER_* environment variables:
//
//	VIEWER_MODEL           model path or URL
//	VIEWER_ASSET_ROOT      asset root directory
//	VIEWER_DEBUG           enables the debug panel and FPS overlay
//	VIEWER_KEEP_SELECTION  keep the last selection on a miss
func Apply(cfg *viewerconfig.Config) {
	if v, ok := os.LookupEnv("VIEWER_MODEL"); ok && v != "" {
		cfg.Model.Path = v
	}
	if v, ok := os.LookupEnv("VIEWER_ASSET_ROOT"); ok && v != "" {
		cfg.Assets.Root = v
	}
	if b, ok := lookupBool("VIEWER_DEBUG"); ok {
		cfg.Debug.Panel = b
		cfg.Debug.ShowFPS = b
	}
	if b, ok := lookupBool("VIEWER_KEEP_SELECTION"); ok {
		cfg.Selection.KeepOnMiss = b
	}
}

func lookupBool(key string) (bool, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}
