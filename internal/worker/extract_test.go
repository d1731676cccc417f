package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/stepshape/internal/model"
	"github.com/ppiankov/stepshape/internal/shape"
)

// mockLoader serves parsed documents from memory
type mockLoader struct {
	mu      sync.Mutex
	docs    map[string]string
	delay   map[string]time.Duration
	evicted []string
}

func (l *mockLoader) Load(path string) (*model.Document, error) {
	if d := l.delay[path]; d > 0 {
		time.Sleep(d)
	}
	raw, ok := l.docs[path]
	if !ok {
		return nil, errors.New("not found")
	}
	root, err := shape.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &model.Document{Name: path, Path: path, Root: root}, nil
}

func (l *mockLoader) Evict(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.evicted = append(l.evicted, path)
}

func marshalAll(t *testing.T, vs []shape.Value) []string {
	t.Helper()
	var out []string
	for _, v := range vs {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		out = append(out, string(b))
	}
	return out
}

func TestExtractJob_AbstractsSteps(t *testing.T) {
	loader := &mockLoader{docs: map[string]string{
		"A": `{"Algorithm":{"body":{"steps":[{"X":{"target":"a"}},{"X":{"target":"b","index":3}}]}}}`,
	}}

	res := (&ExtractJob{Path: "A", StepType: "X", Loader: loader}).Execute(context.Background()).(*ExtractResult)
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.HasBody {
		t.Error("expected body to be found")
	}

	got := marshalAll(t, res.Steps)
	want := []string{
		`{"X":{"target":"string"}}`,
		`{"X":{"target":"string","index":"number"}}`,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if len(loader.evicted) != 1 || loader.evicted[0] != "A" {
		t.Errorf("expected A to be evicted, got %v", loader.evicted)
	}
}

func TestExtractJob_NoBody(t *testing.T) {
	loader := &mockLoader{docs: map[string]string{"A": `{"X":{"target":"outside body"}}`}}

	res := (&ExtractJob{Path: "A", StepType: "X", Loader: loader}).Execute(context.Background()).(*ExtractResult)
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if res.HasBody || len(res.Steps) != 0 {
		t.Errorf("expected no body and no steps, got body=%v steps=%d", res.HasBody, len(res.Steps))
	}
}

func TestExtractJob_LoadError(t *testing.T) {
	loader := &mockLoader{docs: map[string]string{}}

	res := (&ExtractJob{Path: "missing", StepType: "X", Loader: loader}).Execute(context.Background())
	if res.GetError() == nil {
		t.Error("expected error, got nil")
	}
}

func TestBatchExtractor_PreservesOrder(t *testing.T) {
	loader := &mockLoader{
		docs: map[string]string{
			"slow": `{"Algorithm":{"body":{"X":1}}}`,
			"fast": `{"Algorithm":{"body":{"X":"s"}}}`,
			"bad":  `{`,
		},
		delay: map[string]time.Duration{"slow": 30 * time.Millisecond},
	}
	b := NewBatchExtractor(loader, 3)

	results := b.ExtractAll(context.Background(), []string{"slow", "bad", "fast"}, "X")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	wantPaths := []string{"slow", "bad", "fast"}
	for i, r := range results {
		if r.Path != wantPaths[i] || r.Index != i {
			t.Errorf("result %d: expected %s, got %s (index %d)", i, wantPaths[i], r.Path, r.Index)
		}
	}
	if results[1].Error == nil {
		t.Error("expected parse error for bad document")
	}
	if len(results[0].Steps) != 1 || len(results[2].Steps) != 1 {
		t.Errorf("expected one step from each valid document")
	}
}

func TestBatchExtractor_ManyDocuments(t *testing.T) {
	docs := make(map[string]string)
	var paths []string
	for i := 0; i < 100; i++ {
		p := string(rune('a'+i%26)) + string(rune('0'+i/26))
		docs[p] = `{"Algorithm":{"body":{"X":{"n":1}}}}`
		paths = append(paths, p)
	}
	b := NewBatchExtractor(&mockLoader{docs: docs}, 2)

	results := b.ExtractAll(context.Background(), paths, "X")
	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d out of order: %s", i, r.Path)
		}
	}
}

func TestBatchExtractor_Empty(t *testing.T) {
	b := NewBatchExtractor(&mockLoader{}, 2)
	if got := b.ExtractAll(context.Background(), nil, "X"); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestBatchExtractor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBatchExtractor(&mockLoader{docs: map[string]string{"A": `{}`}}, 1)
	results := b.ExtractAll(ctx, []string{"A"}, "X")
	for _, r := range results {
		if r.Error == nil {
			t.Errorf("expected cancelled job to report an error")
		}
	}
}
