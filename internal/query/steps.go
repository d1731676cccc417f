// Package query locates step subtrees inside algorithm documents.
package query

import "github.com/ppiankov/stepshape/internal/shape"

// Body returns the Algorithm.body subtree of a parsed document
func Body(doc shape.Value) (shape.Value, bool) {
	return doc.Path("Algorithm", "body")
}

// Extract collects every value stored under the key stepType anywhere
// inside body, at any depth. Each hit is wrapped as {stepType: value}.
//
// Results are in depth-first pre-order: an object's own match comes
// before anything found inside its members, and members and array
// elements are visited in document order. Values nested inside a match
// are searched too.
func Extract(body shape.Value, stepType string) []shape.Value {
	var steps []shape.Value
	walk(body, stepType, &steps)
	return steps
}

func walk(node shape.Value, stepType string, steps *[]shape.Value) {
	switch node.Kind() {
	case shape.KindObject:
		if hit, ok := node.Get(stepType); ok {
			*steps = append(*steps, shape.Object(shape.Field(stepType, hit)))
		}
		for _, m := range node.Members() {
			walk(m.Value, stepType, steps)
		}
	case shape.KindArray:
		for _, item := range node.Items() {
			walk(item, stepType, steps)
		}
	}
}
