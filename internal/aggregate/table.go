// Package aggregate groups abstracted steps by structural equality.
package aggregate

import (
	"slices"

	"github.com/ppiankov/stepshape/internal/model"
	"github.com/ppiankov/stepshape/internal/shape"
)

// Table accumulates occurrence records in first-seen order. It is not
// safe for concurrent use; a single goroutine owns it for a whole run.
type Table struct {
	records []*model.Occurrence
	// fingerprint -> indexes into records; candidates are still
	// confirmed with shape.Equal
	index map[string][]int
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		index: make(map[string][]int),
	}
}

// Record adds one abstracted step seen in algorithm. A step equal to an
// existing record gains algorithm as an occurrence site unless already
// listed; anything else starts a new record at the end of the table.
func (t *Table) Record(step shape.Value, algorithm string) {
	fp := shape.Fingerprint(step)

	for _, i := range t.index[fp] {
		rec := t.records[i]
		if !shape.Equal(rec.Step, step) {
			continue
		}
		if !slices.Contains(rec.AppearsIn, algorithm) {
			rec.AppearsIn = append(rec.AppearsIn, algorithm)
		}
		return
	}

	t.index[fp] = append(t.index[fp], len(t.records))
	t.records = append(t.records, &model.Occurrence{
		Step:      step,
		AppearsIn: []string{algorithm},
	})
}

// Len returns the number of distinct shapes recorded
func (t *Table) Len() int {
	return len(t.records)
}

// Occurrences returns a snapshot of the records in first-seen order
func (t *Table) Occurrences() []model.Occurrence {
	out := make([]model.Occurrence, len(t.records))
	for i, rec := range t.records {
		out[i] = model.Occurrence{
			Step:      rec.Step,
			AppearsIn: slices.Clone(rec.AppearsIn),
		}
	}
	return out
}
