// Package jsonv is a hand-written JSON codec: a byte scanner, a
// recursive-descent parser, and a printer, built around a tagged-union
// Value type instead of reflection over Go structs. It intentionally
// does not use encoding/json — the completion API's request and
// response bodies are decoded and encoded entirely through this
// package.
package jsonv

import "fmt"

// Kind tags the variant a Value currently holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// member is one key/value pair of an object, kept in insertion order.
type member struct {
	key   string
	value Value
}

// Value is a tagged union over {null, bool, number, string, array,
// object}. The zero Value is null. Values compare by structural
// equality: arrays element-wise, objects by identical key sets with
// equal values (order-independent).
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	items   []Value
	members []member
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number wraps n.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps items (copied) as a JSON array.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// NewObject returns an empty JSON object.
func NewObject() Value { return Value{kind: KindObject} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// mismatch builds the type-mismatch failure for a typed accessor.
func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("jsonv: expected %s, got %s", want, v.kind)
}

// Bool returns v's boolean value, or a type-mismatch error.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.boolean, nil
}

// Number returns v's numeric value, or a type-mismatch error.
func (v Value) Number() (float64, error) {
	if v.kind != KindNumber {
		return 0, v.mismatch(KindNumber)
	}
	return v.number, nil
}

// String returns v's string value, or a type-mismatch error.
func (v Value) String() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.str, nil
}

// Array returns v's elements, or a type-mismatch error.
func (v Value) Array() ([]Value, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.items, nil
}

// Len returns the number of elements or members, 0 for any other kind.
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

// Get looks up key in an object value. The second return is false if v
// is not an object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.key == key {
			return m.value, true
		}
	}
	return Value{}, false
}

// Keys returns the object's member names in iteration order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.key
	}
	return keys
}

// Set inserts or overwrites key on an object value, returning the
// updated value. Duplicate keys are last-write-wins, in place: the
// member's original position in iteration order is kept.
func (v Value) Set(key string, val Value) Value {
	if v.kind != KindObject {
		v = NewObject()
	}
	for i, m := range v.members {
		if m.key == key {
			v.members[i].value = val
			return v
		}
	}
	v.members = append(v.members, member{key: key, value: val})
	return v
}

// Equal reports whether v and other are structurally equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number == other.number
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for _, m := range v.members {
			ov, ok := other.Get(m.key)
			if !ok || !m.value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
