package worker

import (
	"context"
	"sort"

	"github.com/ppiankov/stepshape/internal/model"
	"github.com/ppiankov/stepshape/internal/query"
	"github.com/ppiankov/stepshape/internal/shape"
)

// Loader loads parsed documents
type Loader interface {
	Load(path string) (*model.Document, error)
	Evict(path string)
}

// ExtractJob reads one document and abstracts every step of one type
type ExtractJob struct {
	Index    int // Position in discovery order
	Path     string
	StepType string
	Loader   Loader
}

// Execute executes the extraction job
func (j *ExtractJob) Execute(ctx context.Context) Result {
	res := &ExtractResult{Index: j.Index, Path: j.Path}
	if err := ctx.Err(); err != nil {
		res.Error = err
		return res
	}

	doc, err := j.Loader.Load(j.Path)
	// the document is discarded once its steps are extracted
	j.Loader.Evict(j.Path)
	if err != nil {
		res.Error = err
		return res
	}
	res.Name = doc.Name

	body, ok := query.Body(doc.Root)
	if !ok {
		return res
	}
	res.HasBody = true

	for _, step := range query.Extract(body, j.StepType) {
		res.Steps = append(res.Steps, shape.Abstract(step))
	}
	return res
}

// ExtractResult holds the abstracted steps of one document
type ExtractResult struct {
	Index   int
	Path    string
	Name    string
	HasBody bool
	Steps   []shape.Value
	Error   error
}

// GetError returns the error from the extraction
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchExtractor runs extraction jobs for many documents concurrently
type BatchExtractor struct {
	loader      Loader
	concurrency int
}

// NewBatchExtractor creates a new batch extractor
func NewBatchExtractor(loader Loader, concurrency int) *BatchExtractor {
	return &BatchExtractor{
		loader:      loader,
		concurrency: concurrency,
	}
}

// ExtractAll extracts stepType from every path. Results come back in the
// order of paths regardless of completion order. Paths not processed
// because ctx was cancelled are missing from the result.
func (b *BatchExtractor) ExtractAll(ctx context.Context, paths []string, stepType string) []*ExtractResult {
	if len(paths) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// submit from a separate goroutine so results drain while jobs queue
	go func() {
		defer pool.Close()
		for i, path := range paths {
			job := &ExtractJob{
				Index:    i,
				Path:     path,
				StepType: stepType,
				Loader:   b.loader,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	results := make([]*ExtractResult, 0, len(paths))
	for r := range pool.Results() {
		results = append(results, r.(*ExtractResult))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
