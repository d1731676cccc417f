// Package shape models untyped JSON document trees and their structural
// abstractions.
package shape

import "strconv"

// Kind identifies the variant held by a Value
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind tag used in abstracted trees
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "undefined"
	}
}

// IsPrimitive reports whether the kind is a leaf
func (k Kind) IsPrimitive() bool {
	return k != KindArray && k != KindObject
}

// Member is a single key/value pair of an object
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON-like tree node. The zero Value is undefined.
type Value struct {
	kind    Kind
	text    string // string content, number literal, or "true"/"false"
	items   []Value
	members []Member
}

// Undefined returns the undefined value
func Undefined() Value { return Value{} }

// Null returns the null value
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// Number returns a number value from its JSON literal text
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// Float returns a number value
func Float(f float64) Value {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// String returns a string value
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Array returns an array value holding items in order
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns an object value. A repeated key replaces the earlier
// value but keeps the earlier position.
func Object(members ...Member) Value {
	out := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		out.set(m.Key, m.Value)
	}
	return out
}

// Field is shorthand for building a Member
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Kind returns the variant of v
func (v Value) Kind() Kind { return v.kind }

// Text returns the textual payload of a primitive
func (v Value) Text() string { return v.text }

// Items returns the elements of an array
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object in document order
func (v Value) Members() []Member { return v.members }

// Len returns the number of elements or members of a container
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get looks up key in an object
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Path follows a chain of object keys from v
func (v Value) Path(keys ...string) (Value, bool) {
	cur := v
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

func (v *Value) set(key string, val Value) {
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}
