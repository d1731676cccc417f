// Package filter drops algorithm documents whose category is excluded.
package filter

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/stepshape/internal/model"
	"github.com/ppiankov/stepshape/internal/shape"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoCategory is returned when a document has no recognizable head marker
var ErrNoCategory = errors.New("category marker not found")

// Source reads raw document contents
type Source interface {
	Read(path string) ([]byte, error)
}

// Filter removes excluded documents from a path list
type Filter struct {
	source  Source
	workers int
	logger  *zap.Logger
}

// New creates a filter. workers bounds concurrent category probes.
func New(source Source, workers int, logger *zap.Logger) *Filter {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{
		source:  source,
		workers: workers,
		logger:  logger,
	}
}

// Apply returns the paths whose category is not in excluded, in input
// order. An empty set returns paths unchanged without reading anything.
// Documents whose category cannot be determined are dropped and logged.
func (f *Filter) Apply(ctx context.Context, paths []string, excluded model.CategorySet) ([]string, error) {
	if len(excluded) == 0 {
		return paths, nil
	}

	keep := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			keep[i] = f.retain(path, excluded)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("filter documents: %w", err)
	}

	out := make([]string, 0, len(paths))
	for i, path := range paths {
		if keep[i] {
			out = append(out, path)
		}
	}
	return out, nil
}

func (f *Filter) retain(path string, excluded model.CategorySet) bool {
	data, err := f.source.Read(path)
	if err != nil {
		f.logger.Warn("Dropping unreadable document", zap.String("file", path), zap.Error(err))
		return false
	}

	doc, err := shape.Parse(data)
	if err != nil {
		f.logger.Warn("Dropping unparseable document", zap.String("file", path), zap.Error(err))
		return false
	}

	key, err := HeadKey(doc)
	if err != nil {
		f.logger.Warn("Dropping document without category", zap.String("file", path), zap.Error(err))
		return false
	}

	if excluded.ContainsHeadKey(key) {
		f.logger.Debug("Excluding document", zap.String("file", path), zap.String("head", key))
		return false
	}
	return true
}

// HeadKey returns the category marker key under Algorithm.head. The head
// must be an object holding a single key, or exactly one key from the
// category table when other members are present.
func HeadKey(doc shape.Value) (string, error) {
	head, ok := doc.Path("Algorithm", "head")
	if !ok {
		return "", fmt.Errorf("%w: missing Algorithm.head", ErrNoCategory)
	}
	if head.Kind() != shape.KindObject {
		return "", fmt.Errorf("%w: Algorithm.head is %s, not object", ErrNoCategory, head.Kind())
	}

	members := head.Members()
	switch len(members) {
	case 0:
		return "", fmt.Errorf("%w: Algorithm.head is empty", ErrNoCategory)
	case 1:
		return members[0].Key, nil
	}

	var found []string
	for _, m := range members {
		if _, ok := model.CategoryForHeadKey(m.Key); ok {
			found = append(found, m.Key)
		}
	}
	if len(found) != 1 {
		return "", fmt.Errorf("%w: Algorithm.head has %d members and %d known markers", ErrNoCategory, len(members), len(found))
	}
	return found[0], nil
}
