package shape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes a single JSON document, keeping object member order
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return Value{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
		return Value{}, err
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q at offset %d", t, dec.InputOffset())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	out := Value{kind: KindObject, members: []Member{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not string", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("member %q: %w", key, err)
		}
		out.set(key, val)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return out, nil
}

// MarshalJSON encodes v with object members in document order.
// Undefined encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes data into v, keeping object member order
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindUndefined, KindNull:
		buf.WriteString("null")
	case KindBool, KindNumber:
		buf.WriteString(v.text)
	case KindString:
		return writeString(buf, v.text)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	buf.Write(b)
	return nil
}
