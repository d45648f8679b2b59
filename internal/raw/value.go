package raw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Value is a sealed interface over the loosely-typed shapes found in
// persistence-layer records. Only String, Number, Bool, Bytes, Map, and
// Undefined implement it.
//
// Undefined is a first-class variant: the origin application writes an
// explicit "undefined" marker into some records, and callers must treat it
// exactly like an absent field. Never assume a field's presence or type -
// always go through the Map accessors below.
type Value interface {
	value() // Sealed - only these types implement it
}

// Undefined represents an explicitly-undefined value, distinct in the wire
// format from absence but identical in meaning to consumers.
type Undefined struct{}

func (Undefined) value() {}

// String represents a string value.
type String string

func (String) value() {}

// Number represents a numeric value. The persistence layer does not
// distinguish integers from floats, so all numbers are float64.
type Number float64

func (Number) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Bytes represents a raw byte value.
type Bytes []byte

func (Bytes) value() {}

// Map represents a nested mapping of field names to Values.
type Map map[string]Value

func (Map) value() {}

// SortedKeys returns the map's keys in lexical order for deterministic
// iteration.
func (m Map) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Field returns the value for key. ok is false when the key is absent or the
// stored value is the explicit Undefined marker - the two cases are
// indistinguishable to callers by design.
func (m Map) Field(key string) (Value, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	if _, undef := v.(Undefined); undef {
		return nil, false
	}
	return v, true
}

// StringField returns the field as a string, coercing scalar values the way
// the origin application reads them back. ok is false for missing, undefined,
// and map-shaped values.
func (m Map) StringField(key string) (string, bool) {
	v, ok := m.Field(key)
	if !ok {
		return "", false
	}
	return Stringify(v)
}

// NumberField returns the field as a float64. Numeric strings are accepted
// since the store persists timestamps and versions in both shapes.
func (m Map) NumberField(key string) (float64, bool) {
	v, ok := m.Field(key)
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case Number:
		return float64(val), true
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// BoolField returns the field as a bool. The store persists booleans both
// natively and as the strings "true"/"false".
func (m Map) BoolField(key string) (bool, bool) {
	v, ok := m.Field(key)
	if !ok {
		return false, false
	}
	switch val := v.(type) {
	case Bool:
		return bool(val), true
	case String:
		switch strings.ToLower(strings.TrimSpace(string(val))) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// MapField returns the field as a nested Map. ok is false for any other
// shape. A nil Map is safe to index and call accessors on.
func (m Map) MapField(key string) (Map, bool) {
	v, ok := m.Field(key)
	if !ok {
		return nil, false
	}
	nested, ok := v.(Map)
	return nested, ok
}

// PopulatedCount returns the number of top-level fields that carry an actual
// value. Used as a resolution tie-break: the copy with fewer undefined
// fields wins.
func (m Map) PopulatedCount() int {
	n := 0
	for _, v := range m {
		if _, undef := v.(Undefined); !undef {
			n++
		}
	}
	return n
}

// Stringify coerces a scalar Value to its string form. Map values do not
// stringify; ok is false for them.
func Stringify(v Value) (string, bool) {
	switch val := v.(type) {
	case String:
		return string(val), true
	case Number:
		return strconv.FormatFloat(float64(val), 'f', -1, 64), true
	case Bool:
		return strconv.FormatBool(bool(val)), true
	case Bytes:
		return strings.ToValidUTF8(string(val), "�"), true
	default:
		return "", false
	}
}

// DecodeJSON decodes a JSON object into a Map. JSON null decodes to the
// explicit Undefined marker. Arrays decode to Undefined too: records carry
// list-valued auxiliaries (member rosters and the like) that the engine
// reads nothing from, and an extraneous array must never discard an
// otherwise-valid record.
func DecodeJSON(data []byte) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var top any
	if err := dec.Decode(&top); err != nil {
		return nil, fmt.Errorf("decode record value: %w", err)
	}

	obj, ok := top.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record value is %T, want object", top)
	}
	m, err := convertMap(obj)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func convertMap(obj map[string]any) (Map, error) {
	m := make(Map, len(obj))
	for k, v := range obj {
		val, err := convertValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		m[k] = val
	}
	return m, nil
}

func convertValue(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Undefined{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", val)
		}
		return Number(f), nil
	case map[string]any:
		return convertMap(val)
	case []any:
		// Member lists and similar arrays hold nothing any fallback
		// chain reads; treating them as undefined keeps the record.
		return Undefined{}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
