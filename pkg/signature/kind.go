package signature

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the JSON Schema type of a parameter.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindAny     Kind = "any"
)

// KindOf maps a JSON Schema "type" keyword onto a Kind. Absent, "null" and
// unknown types become KindAny.
func KindOf(schemaType string) Kind {
	switch Kind(schemaType) {
	case KindString, KindInteger, KindNumber, KindBoolean, KindArray, KindObject:
		return Kind(schemaType)
	default:
		return KindAny
	}
}

// GoType returns the Go type values of this kind decode into.
func (k Kind) GoType() reflect.Type {
	switch k {
	case KindString:
		return reflect.TypeOf("")
	case KindInteger:
		return reflect.TypeOf(int64(0))
	case KindNumber:
		return reflect.TypeOf(float64(0))
	case KindBoolean:
		return reflect.TypeOf(false)
	case KindArray:
		return reflect.TypeOf([]any(nil))
	case KindObject:
		return reflect.TypeOf(map[string]any(nil))
	default:
		return reflect.TypeOf((*any)(nil)).Elem()
	}
}

// Accepts reports whether v is an acceptable value for the kind.
func (k Kind) Accepts(v any) bool {
	if k == KindAny {
		return true
	}

	if n, ok := v.(json.Number); ok {
		switch k {
		case KindNumber:
			_, err := n.Float64()
			return err == nil
		case KindInteger:
			_, err := n.Int64()
			return err == nil
		default:
			return false
		}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}

	switch k {
	case KindString:
		return rv.Kind() == reflect.String
	case KindBoolean:
		return rv.Kind() == reflect.Bool
	case KindInteger:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			return f == math.Trunc(f) && !math.IsInf(f, 0)
		}
		return false
	case KindNumber:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case KindArray:
		return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
	case KindObject:
		return (rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String) || rv.Kind() == reflect.Struct
	}
	return false
}

// Parse converts a textual argument into a value of this kind.
func (k Kind) Parse(raw string) (any, error) {
	switch k {
	case KindString:
		return raw, nil
	case KindInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return n, nil
	case KindNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return f, nil
	case KindBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return b, nil
	case KindArray:
		var out []any
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("%q is not a JSON array", raw)
		}
		return out, nil
	case KindObject:
		var out map[string]any
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("%q is not a JSON object", raw)
		}
		return out, nil
	default:
		var out any
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return raw, nil
		}
		return out, nil
	}
}

// IsAbsent reports whether v stands for "argument not given": an untyped nil
// or a nil pointer, map, slice or interface.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
