package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Record is a loosely-typed input record decoded from JSON.
// No field is guaranteed to be present; use Get to read from it.
type Record map[string]any

// DecodeRecord decodes a single JSON object, keeping numbers as json.Number
// so they render with their original text.
func DecodeRecord(data []byte) (Record, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	rec := v.Record()
	if rec == nil {
		return nil, fmt.Errorf("record is %s, not an object", v.Kind())
	}
	return rec, nil
}

// DecodeValue decodes an arbitrary JSON document into a Value.
func DecodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after top-level value")
	}
	return Value{raw: raw, ok: true}, nil
}

// Get walks nested objects along path. Missing keys and non-object
// intermediates yield an absent Value.
func (r Record) Get(path ...string) Value {
	return Value{raw: map[string]any(r), ok: r != nil}.Get(path...)
}

// Value is an optional node of a decoded JSON tree.
// The zero Value is absent.
type Value struct {
	raw any
	ok  bool
}

// Get walks nested objects along path starting at v.
func (v Value) Get(path ...string) Value {
	cur := v
	for _, key := range path {
		m, isMap := cur.raw.(map[string]any)
		if !cur.ok || !isMap {
			return Value{}
		}
		next, found := m[key]
		cur = Value{raw: next, ok: found}
	}
	return cur
}

// Present reports whether the value exists and is not JSON null.
func (v Value) Present() bool {
	return v.ok && v.raw != nil
}

// Or returns v when present, otherwise other.
func (v Value) Or(other Value) Value {
	if v.Present() {
		return v
	}
	return other
}

// Kind names the JSON type of the value.
func (v Value) Kind() string {
	if !v.ok {
		return "absent"
	}
	switch v.raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// String renders a scalar as text. Absent, null, arrays and objects
// return def.
func (v Value) String(def string) string {
	if s, ok := scalarText(v.raw); ok && v.ok {
		return s
	}
	return def
}

// Strings renders every scalar element of an array. Non-array values
// yield nil; nested arrays and objects inside the array are dropped.
func (v Value) Strings() []string {
	items, ok := v.raw.([]any)
	if !v.ok || !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := scalarText(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// List returns the elements of an array, or nil.
func (v Value) List() []Value {
	items, ok := v.raw.([]any)
	if !v.ok || !ok {
		return nil
	}
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = Value{raw: item, ok: true}
	}
	return out
}

// Record returns the value as an object, or nil.
func (v Value) Record() Record {
	m, ok := v.raw.(map[string]any)
	if !v.ok || !ok {
		return nil
	}
	return Record(m)
}

// Truthy follows JSON-ish truthiness: null, false, 0, "", [] and {} are
// false; absent values are false.
func (v Value) Truthy() bool {
	if !v.ok {
		return false
	}
	switch t := v.raw.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// Bool returns the truthiness of a present value, or def when absent or null.
func (v Value) Bool(def bool) bool {
	if !v.Present() {
		return def
	}
	return v.Truthy()
}

func scalarText(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
