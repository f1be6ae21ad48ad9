package record

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// FromStruct converts a Go struct into a flat Record.
//
// The struct is marshaled to JSON and unmarshaled into a map, so `json:"tag"`
// annotations and `omitempty` are respected. Records are flat by contract:
// nested objects and arrays are re-marshaled into their compact JSON string
// form rather than kept as nested containers, which keeps every field value a
// scalar the pipeline stages know how to coerce.
//
// The input must be a struct or a pointer to a struct; anything else returns
// an error.
func FromStruct[T any](v T) (Record, error) {
	val := reflect.ValueOf(v)
	if !val.IsValid() {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("FromStruct: failed to marshal input to JSON: %w", err)
	}

	var tempMap map[string]any
	if err := json.Unmarshal(jsonBytes, &tempMap); err != nil {
		return nil, fmt.Errorf("FromStruct: failed to unmarshal JSON to map: %w", err)
	}

	rec := make(Record, len(tempMap))
	for key, fieldVal := range tempMap {
		switch fieldVal.(type) {
		case map[string]any, []any:
			nested, err := json.Marshal(fieldVal)
			if err != nil {
				return nil, fmt.Errorf("FromStruct: error flattening nested value for key '%s': %w", key, err)
			}
			rec[key] = string(nested)
		default:
			rec[key] = fieldVal
		}
	}
	return rec, nil
}

// ToStruct converts a Record into a new instance of the struct type T. It is
// the inverse of FromStruct for scalar fields. The generic type T must be a
// struct type (or a pointer to one).
func ToStruct[T any](rec Record) (T, error) {
	var zero T

	if rec == nil {
		return zero, fmt.Errorf("ToStruct: input record cannot be nil")
	}

	typ := reflect.TypeOf(zero)
	if typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return zero, fmt.Errorf("ToStruct: generic type T must be a struct type, got %v", typ)
	}

	jsonBytes, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("ToStruct: failed to marshal record to JSON: %w", err)
	}

	var result T
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return zero, fmt.Errorf("ToStruct: failed to unmarshal JSON to target struct: %w", err)
	}
	return result, nil
}
