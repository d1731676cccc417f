package shape

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"sort"
)

// Abstract replaces every primitive leaf of v with a string naming its
// kind. Containers keep their keys, order and length.
func Abstract(v Value) Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = Abstract(item)
		}
		return Value{kind: KindArray, items: items}
	case KindObject:
		members := make([]Member, len(v.members))
		for i, m := range v.members {
			members[i] = Member{Key: m.Key, Value: Abstract(m.Value)}
		}
		return Value{kind: KindObject, members: members}
	default:
		return String(v.kind.String())
	}
}

// Equal reports deep structural equality. Arrays compare in order,
// objects by key set regardless of member order, primitives by kind and
// text.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	default:
		return a.text == b.text
	}
}

// Fingerprint returns a content hash consistent with Equal: equal values
// always share a fingerprint. Distinct values may collide.
func Fingerprint(v Value) string {
	h := sha256.New()
	writeCanonical(h, v)
	return hex.EncodeToString(h.Sum(nil))
}

func writeCanonical(h hash.Hash, v Value) {
	h.Write([]byte{byte(v.kind)})

	switch v.kind {
	case KindArray:
		writeLen(h, len(v.items))
		for _, item := range v.items {
			writeCanonical(h, item)
		}
	case KindObject:
		writeLen(h, len(v.members))
		sorted := make([]Member, len(v.members))
		copy(sorted, v.members)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		for _, m := range sorted {
			writeText(h, m.Key)
			writeCanonical(h, m.Value)
		}
	default:
		writeText(h, v.text)
	}
}

func writeText(h hash.Hash, s string) {
	writeLen(h, len(s))
	h.Write([]byte(s))
}

func writeLen(h hash.Hash, n int) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(n))
	h.Write(b[:])
}
