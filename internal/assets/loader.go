// Package assets loads models and textures in the background and hands the results
// back to the frame thread.
package assets

import (
	"context"
	"fmt"
	"image"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"golang.org/x/sync/semaphore"

	"product-viewer/internal/material"
	"product-viewer/internal/scene"
)

// Options configure a Loader.
type Options struct {
	// Workers bounds concurrent decodes (default 4).
	Workers int
	// MaxTextureSize scales larger textures down (0 = keep full size).
	MaxTextureSize int
	// CacheDir receives downloaded remote assets (default "cache").
	CacheDir string
}

// Loader reads assets from a file system. Each request decodes in its own goroutine;
// callbacks are queued and run by Poll, so they always run on the caller's thread.
type Loader struct {
	fs      hackpadfs.FS
	fetcher *Fetcher
	sem     *semaphore.Weighted
	maxTex  int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending []func()
}

// NewLoader returns a loader reading from fsys.
func NewLoader(fsys hackpadfs.FS, opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.CacheDir == "" {
		opts.CacheDir = "cache"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fs:      fsys,
		fetcher: NewFetcher(fsys, opts.CacheDir),
		sem:     semaphore.NewWeighted(int64(opts.Workers)),
		maxTex:  opts.MaxTextureSize,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// NewOSLoader returns a loader rooted at the directory root on disk. The cache
// directory in opts is relative to root.
func NewOSLoader(root string, opts Options) (*Loader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	fsys := osfs.NewFS()
	sub, err := fsys.Sub(strings.TrimPrefix(filepath.ToSlash(abs), "/"))
	if err != nil {
		return nil, fmt.Errorf("assets: root %s: %w", root, err)
	}
	return NewLoader(sub, opts), nil
}

// Fetcher returns the downloader used for http(s) paths.
func (l *Loader) Fetcher() *Fetcher {
	return l.fetcher
}

// LoadModel decodes the glTF/GLB file at p into a node subtree.
func (l *Loader) LoadModel(p string, onLoad func(*scene.Node), onError func(error)) {
	l.run(p, onError, func(ctx context.Context) (func(), error) {
		data, err := l.read(ctx, p)
		if err != nil {
			return nil, err
		}
		root, err := DecodeModel(modelName(p), data)
		if err != nil {
			return nil, err
		}
		return func() {
			if onLoad != nil {
				onLoad(root)
			}
		}, nil
	})
}

// LoadTexture decodes the image at p as a texture with the given id.
func (l *Loader) LoadTexture(id, p string, onLoad func(*material.Texture), onError func(error)) {
	l.run(p, onError, func(ctx context.Context) (func(), error) {
		img, err := l.image(ctx, p)
		if err != nil {
			return nil, err
		}
		tex := newTexture(id, p, img)
		return func() {
			if onLoad != nil {
				onLoad(tex)
			}
		}, nil
	})
}

// LoadCubemap decodes six face images (+x, -x, +y, -y, +z, -z) into one cubemap texture.
// The faces must share a size.
func (l *Loader) LoadCubemap(id string, paths [6]string, onLoad func(*material.Texture), onError func(error)) {
	l.run(paths[0], onError, func(ctx context.Context) (func(), error) {
		var faces [6]image.Image
		for i, p := range paths {
			img, err := l.image(ctx, p)
			if err != nil {
				return nil, &LoadError{Path: p, Err: err}
			}
			if i > 0 && img.Bounds().Size() != faces[0].Bounds().Size() {
				return nil, &LoadError{Path: p, Err: fmt.Errorf("cubemap face %d is %v, want %v", i, img.Bounds().Size(), faces[0].Bounds().Size())}
			}
			faces[i] = img
		}
		tex := material.NewCubemap(id, faces)
		tex.Path = paths[0]
		return func() {
			if onLoad != nil {
				onLoad(tex)
			}
		}, nil
	})
}

// Poll runs the callbacks of every finished request and returns how many ran.
func (l *Loader) Poll() int {
	l.mu.Lock()
	done := l.pending
	l.pending = nil
	l.mu.Unlock()
	for _, fn := range done {
		fn()
	}
	return len(done)
}

// Wait blocks until every request issued so far has finished decoding.
// Callbacks still need a Poll.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels queued requests and waits for running ones.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}

func (l *Loader) run(p string, onError func(error), work func(ctx context.Context) (func(), error)) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.sem.Acquire(l.ctx, 1); err != nil {
			l.fail(p, onError, err)
			return
		}
		done, err := work(l.ctx)
		l.sem.Release(1)
		if err != nil {
			l.fail(p, onError, err)
			return
		}
		l.enqueue(done)
	}()
}

func (l *Loader) fail(p string, onError func(error), err error) {
	if _, ok := err.(*LoadError); !ok {
		err = &LoadError{Path: p, Err: err}
	}
	l.enqueue(func() {
		if onError != nil {
			onError(err)
		}
	})
}

func (l *Loader) enqueue(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

func (l *Loader) read(ctx context.Context, p string) ([]byte, error) {
	name := p
	if IsRemote(p) {
		cached, err := l.fetcher.Fetch(ctx, p)
		if err != nil {
			return nil, err
		}
		name = cached
	}
	data, err := hackpadfs.ReadFile(l.fs, cleanPath(name))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return data, nil
}

func (l *Loader) image(ctx context.Context, p string) (image.Image, error) {
	data, err := l.read(ctx, p)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data, l.maxTex)
}

// cleanPath turns a web-style asset path ("/texture/a.png", "./a.png") into a file system path.
func cleanPath(p string) string {
	p = path.Clean("/" + filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

func modelName(p string) string {
	base := path.Base(stripQuery(filepath.ToSlash(p)))
	return strings.TrimSuffix(base, path.Ext(base))
}
