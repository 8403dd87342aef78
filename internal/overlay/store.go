package overlay

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrAssetLoad is returned when a sticker image is missing or cannot be decoded.
var ErrAssetLoad = errors.New("sticker asset load failed")

// Asset is a decoded sticker image with its alpha channel.
type Asset struct {
	Kind  Kind
	Path  string
	Image *image.NRGBA
}

// Store resolves sticker kinds to files under a directory and keeps decoded
// assets in memory. Assets are never modified after load, so a cached asset
// may be shared by concurrent callers.
type Store struct {
	dir   string
	files map[Kind]string

	mu    sync.Mutex
	cache map[Kind]*Asset
}

// NewStore creates a store for the given directory and kind to file name mapping.
func NewStore(dir string, files map[Kind]string) *Store {
	f := make(map[Kind]string, len(files))
	for k, v := range files {
		f[k] = v
	}
	return &Store{
		dir:   dir,
		files: f,
		cache: make(map[Kind]*Asset),
	}
}

// Path returns the file path configured for kind.
func (s *Store) Path(kind Kind) (string, bool) {
	name, ok := s.files[kind]
	if !ok || name == "" {
		return "", false
	}
	if filepath.IsAbs(name) {
		return name, true
	}
	return filepath.Join(s.dir, name), true
}

// Available reports whether the asset file for kind exists on disk.
func (s *Store) Available(kind Kind) bool {
	path, ok := s.Path(kind)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load returns the decoded asset for kind, reading it from disk on first use.
func (s *Store) Load(kind Kind) (*Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.cache[kind]; ok {
		return a, nil
	}

	path, ok := s.Path(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no file configured for %s", ErrAssetLoad, kind)
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %w", ErrAssetLoad, kind, path, err)
	}

	a := &Asset{Kind: kind, Path: path, Image: img}
	s.cache[kind] = a
	return a, nil
}

// Forget drops every cached asset so the next Load reads from disk again.
func (s *Store) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[Kind]*Asset)
}

func decodeFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the sticker manifest
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
