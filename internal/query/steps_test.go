package query

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/stepshape/internal/shape"
)

func parse(t *testing.T, s string) shape.Value {
	t.Helper()
	v, err := shape.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return v
}

func render(t *testing.T, vs []shape.Value) []string {
	t.Helper()
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		out = append(out, string(b))
	}
	return out
}

func TestExtract_AnyDepth(t *testing.T) {
	body := parse(t, `{
		"steps": [
			{"X": {"target": "a"}},
			{"If": {"then": {"steps": [{"X": {"target": "b", "index": 1}}]}}},
			{"Y": {"X": null}}
		]
	}`)

	got := render(t, Extract(body, "X"))
	want := []string{
		`{"X":{"target":"a"}}`,
		`{"X":{"target":"b","index":1}}`,
		`{"X":null}`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected steps (-want +got):\n%s", diff)
	}
}

func TestExtract_PreOrderWithNestedMatches(t *testing.T) {
	body := parse(t, `{"X": {"inner": {"X": 1}}, "after": {"X": "s"}}`)

	got := render(t, Extract(body, "X"))
	want := []string{
		`{"X":{"inner":{"X":1}}}`,
		`{"X":1}`,
		`{"X":"s"}`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected traversal order (-want +got):\n%s", diff)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	body := parse(t, `{"steps": [{"Y": 1}, [2, 3], "X"]}`)
	if got := Extract(body, "X"); len(got) != 0 {
		t.Errorf("expected no steps, got %d", len(got))
	}
	if got := Extract(shape.String("X"), "X"); len(got) != 0 {
		t.Errorf("expected no steps from a primitive body, got %d", len(got))
	}
}

func TestBody(t *testing.T) {
	doc := parse(t, `{"Algorithm": {"head": {}, "body": {"steps": []}}}`)
	body, ok := Body(doc)
	if !ok {
		t.Fatal("expected body to be found")
	}
	if body.Kind() != shape.KindObject {
		t.Errorf("expected object body, got %v", body.Kind())
	}

	if _, ok := Body(parse(t, `{"Algorithm": {}}`)); ok {
		t.Error("expected missing body")
	}
}
