package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/hack-pad/hackpadfs"
)

const defaultUserAgent = "product-viewer/1.0"

// maxDownloadSize caps a single remote asset.
const maxDownloadSize = 256 << 20

// Fetcher downloads http(s) assets into a cache directory of the loader's file system.
// A file already in the cache is reused without a request.
type Fetcher struct {
	Client   *http.Client
	FS       hackpadfs.FS
	CacheDir string
}

// NewFetcher returns a fetcher writing under dir in fsys.
func NewFetcher(fsys hackpadfs.FS, dir string) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 60 * time.Second},
		FS:       fsys,
		CacheDir: cleanPath(dir),
	}
}

// IsRemote reports whether p is an http or https URL.
func IsRemote(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch downloads url into the cache and returns its path inside the file system.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if name := cacheName(url, ""); name != "" {
		cached := path.Join(f.CacheDir, name)
		if _, err := hackpadfs.Stat(f.FS, cached); err == nil {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	if len(data) > maxDownloadSize {
		return "", fmt.Errorf("fetch: larger than %d bytes", maxDownloadSize)
	}

	name := cacheName(url, resp.Header.Get("Content-Type"))
	if name == "" {
		name = "download.bin"
	}
	saved := path.Join(f.CacheDir, name)
	if err := hackpadfs.MkdirAll(f.FS, f.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	if err := hackpadfs.WriteFullFile(f.FS, saved, data, 0o644); err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	return saved, nil
}

// cacheName derives a stable file name from the URL: the last path element, a hash of the
// whole URL (so equal names on different hosts or paths do not collide) and an extension
// taken from the URL or else from the content type. It returns "" when neither gives an
// asset extension.
func cacheName(url, contentType string) string {
	ext := extensionFromURL(url)
	if ext == "" {
		ext = extensionFromContentType(contentType)
	}
	if ext == "" {
		return ""
	}
	base := filenameFromURL(url)
	if base == "" {
		base = "download"
	}
	return sanitizeFilename(base) + "-" + urlHash(url) + ext
}

// urlHash is a short hex digest of url without its fragment.
func urlHash(url string) string {
	if idx := strings.IndexByte(url, '#'); idx >= 0 {
		url = url[:idx]
	}
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:6])
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf"):
		return ".gltf"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "bmp"):
		return ".bmp"
	}
	return ""
}

var assetExts = map[string]bool{
	".glb": true, ".gltf": true, ".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".bmp": true,
}

func extensionFromURL(url string) string {
	ext := strings.ToLower(path.Ext(stripQuery(url)))
	if assetExts[ext] {
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	base := path.Base(stripQuery(url))
	if base == "/" || base == "." || strings.Contains(base, ":") {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
