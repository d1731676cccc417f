package model

import "github.com/ppiankov/stepshape/internal/shape"

// Occurrence groups every algorithm in which one abstracted step shape appears
type Occurrence struct {
	Step      shape.Value `json:"step"`      // Representative abstracted step
	AppearsIn []string    `json:"appearsIn"` // Algorithm names in first-seen order
}

// Document is one parsed algorithm specification
type Document struct {
	Name string      // File base name without extension
	Path string      // Source path
	Root shape.Value // Whole parsed tree
}
