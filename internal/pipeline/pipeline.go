package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/stepshape/internal/aggregate"
	"github.com/ppiankov/stepshape/internal/cache"
	"github.com/ppiankov/stepshape/internal/corpus"
	"github.com/ppiankov/stepshape/internal/filter"
	"github.com/ppiankov/stepshape/internal/model"
	"github.com/ppiankov/stepshape/internal/worker"
	"go.uber.org/zap"
)

// ErrEmptyStepType is returned when no step-type selector is given
var ErrEmptyStepType = errors.New("step type must not be empty")

// Pipeline orchestrates discovery, filtering, extraction and aggregation
type Pipeline struct {
	reader    *corpus.Reader
	filter    *filter.Filter
	extractor *worker.BatchExtractor
	cache     cache.Cache
	config    *model.Config
	logger    *zap.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var c cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, time.Minute)
	}
	reader := corpus.NewReader(c, cfg.Cache.TTL)

	return &Pipeline{
		reader:    reader,
		filter:    filter.New(reader, cfg.Concurrency.Workers, logger),
		extractor: worker.NewBatchExtractor(reader, cfg.Concurrency.Workers),
		cache:     c,
		config:    cfg,
		logger:    logger,
	}
}

// Request describes one analysis run
type Request struct {
	Folder  string   // Corpus root
	Step    string   // Step-type key
	Exclude []string // Category names
	Pattern string   // Discovery glob, defaults to **/*.json
}

// RequestFromConfig builds a request from the analysis settings
func RequestFromConfig(cfg *model.Config) Request {
	return Request{
		Folder:  cfg.Analysis.Folder,
		Step:    cfg.Analysis.Step,
		Exclude: cfg.Analysis.Exclude,
		Pattern: cfg.Analysis.Pattern,
	}
}

// Stats summarizes a completed run
type Stats struct {
	Discovered int
	Retained   int
	Failed     int
	Steps      int
	Shapes     int
}

// Result is the output of Analyze
type Result struct {
	Occurrences []model.Occurrence
	Stats       Stats
}

// Analyze extracts every step of req.Step from the corpus and groups them by
// abstracted shape. Configuration errors are returned before any document
// is read; per-document failures are logged and skipped.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*Result, error) {
	// 1. Validate configuration
	if strings.TrimSpace(req.Step) == "" {
		return nil, ErrEmptyStepType
	}
	excluded, err := model.ParseCategorySet(req.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclusion list: %w", err)
	}

	defer func() { _ = p.cache.Clear() }()

	// 2. Discover documents
	paths, err := corpus.Discover(req.Folder, req.Pattern)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	stats := Stats{Discovered: len(paths)}
	p.logger.Debug("Discovered documents", zap.String("folder", req.Folder), zap.Int("count", len(paths)))

	// 3. Filter by category
	paths, err = p.filter.Apply(ctx, paths, excluded)
	if err != nil {
		return nil, err
	}
	stats.Retained = len(paths)
	p.logger.Debug("Filtered documents", zap.Int("retained", len(paths)), zap.Int("excluded", stats.Discovered-len(paths)))

	// 4. Read, extract and abstract concurrently
	results := p.extractor.ExtractAll(ctx, paths, req.Step)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 5. Aggregate on this goroutine, in discovery order
	table := aggregate.NewTable()
	for _, r := range results {
		if r.Error != nil {
			stats.Failed++
			p.logger.Warn("Skipping document", zap.String("file", r.Path), zap.Error(r.Error))
			continue
		}
		if !r.HasBody {
			p.logger.Debug("Document has no Algorithm.body", zap.String("file", r.Path))
		}
		for _, step := range r.Steps {
			table.Record(step, r.Name)
		}
		stats.Steps += len(r.Steps)
	}
	stats.Shapes = table.Len()

	p.logger.Debug("Aggregated steps",
		zap.String("step", req.Step),
		zap.Int("steps", stats.Steps),
		zap.Int("shapes", stats.Shapes))

	return &Result{
		Occurrences: table.Occurrences(),
		Stats:       stats,
	}, nil
}
