package model

import (
	"errors"
	"fmt"
	"sort"
)

// Category classifies an algorithm document by the head it declares
type Category string

const (
	CategoryAbstractOperation Category = "abstract operation"
	CategoryNumericMethod     Category = "numeric method"
	CategoryConcreteMethod    Category = "concrete method"
	CategoryInternalMethod    Category = "internal method"
	CategoryBuiltinMethod     Category = "builtin method"
	CategorySDO               Category = "sdo" // Syntax-directed operation
)

// ErrUnknownCategory is returned for names missing from the category table
var ErrUnknownCategory = errors.New("unknown algorithm category")

// categoryHeadKeys maps each category to the single key found under
// Algorithm.head in documents of that category
var categoryHeadKeys = map[Category]string{
	CategoryAbstractOperation: "AbstractOperationHead",
	CategoryNumericMethod:     "NumericMethodHead",
	CategoryConcreteMethod:    "ConcreteMethodHead",
	CategoryInternalMethod:    "InternalMethodHead",
	CategoryBuiltinMethod:     "BuiltinMethodHead",
	CategorySDO:               "SyntaxDirectedOperationHead",
}

// HeadKey returns the head marker key for the category
func (c Category) HeadKey() string {
	return categoryHeadKeys[c]
}

// Categories returns every known category sorted by name
func Categories() []Category {
	out := make([]Category, 0, len(categoryHeadKeys))
	for c := range categoryHeadKeys {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CategoryForHeadKey resolves a head marker key back to its category
func CategoryForHeadKey(key string) (Category, bool) {
	for c, k := range categoryHeadKeys {
		if k == key {
			return c, true
		}
	}
	return "", false
}

// ParseCategory validates a category name
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if _, ok := categoryHeadKeys[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

// CategorySet is a set of categories to exclude from analysis
type CategorySet map[Category]struct{}

// ParseCategorySet validates every name and builds a set
func ParseCategorySet(names []string) (CategorySet, error) {
	set := make(CategorySet, len(names))
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		set[c] = struct{}{}
	}
	return set, nil
}

// Contains reports whether c is in the set
func (s CategorySet) Contains(c Category) bool {
	_, ok := s[c]
	return ok
}

// ContainsHeadKey reports whether the category owning key is in the set
func (s CategorySet) ContainsHeadKey(key string) bool {
	c, ok := CategoryForHeadKey(key)
	return ok && s.Contains(c)
}
