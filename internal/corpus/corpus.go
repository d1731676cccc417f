// Package corpus discovers and loads algorithm documents from disk.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ppiankov/stepshape/internal/cache"
	"github.com/ppiankov/stepshape/internal/model"
	"github.com/ppiankov/stepshape/internal/shape"
)

// DefaultPattern matches every JSON document below the corpus root
const DefaultPattern = "**/*.json"

// Discover lists the files under root matching pattern, sorted by path
func Discover(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		path := filepath.Join(root, filepath.FromSlash(m))
		if fi, err := os.Stat(path); err != nil || fi.IsDir() {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return paths, nil
}

// DocumentName derives the algorithm name from a document path
func DocumentName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}

// Reader reads document files through a cache so that a file probed by
// the filter is not read from disk again during extraction
type Reader struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewReader creates a reader backed by c. A nil cache disables caching.
func NewReader(c cache.Cache, ttl time.Duration) *Reader {
	if c == nil {
		c = cache.Nop{}
	}
	return &Reader{cache: c, ttl: ttl}
}

// Read returns the raw contents of path
func (r *Reader) Read(path string) ([]byte, error) {
	key := cache.Key(path)
	if data, ok := r.cache.Get(key); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	_ = r.cache.Set(key, data, r.ttl)
	return data, nil
}

// Evict drops path from the cache once it is no longer needed
func (r *Reader) Evict(path string) {
	_ = r.cache.Delete(cache.Key(path))
}

// Load reads and parses the document at path
func (r *Reader) Load(path string) (*model.Document, error) {
	data, err := r.Read(path)
	if err != nil {
		return nil, err
	}

	root, err := shape.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}

	return &model.Document{
		Name: DocumentName(path),
		Path: path,
		Root: root,
	}, nil
}
