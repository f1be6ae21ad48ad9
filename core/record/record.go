// Package record defines the flat record model the processing engine operates
// on, along with the scalar coercion rules shared by every pipeline stage.
// A record is an opaque mapping from field name to a scalar value; the engine
// is schema-agnostic and only inspects the fields named by active criteria.
package record

import (
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Record is a flat mapping from field name to a scalar value (string, number,
// boolean, or nil). Field access is total: a missing field is reported via the
// second return value, never a panic.
type Record map[string]any

// Field returns the value stored under name and whether the field is present.
func (r Record) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Has reports whether the record carries a non-nil value for name.
func (r Record) Has(name string) bool {
	v, ok := r[name]
	return ok && v != nil
}

// Clone returns a shallow copy of the record. Stages that rewrite records
// operate on clones so the caller's slice is never mutated.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}

// ToFloat64 converts a value of the supported scalar types to a float64.
// It returns the converted value and a boolean indicating whether the
// conversion was successful. Strings are parsed; booleans do not coerce.
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Stringify returns the canonical string form of a scalar value. Nil maps to
// the empty string; floats that hold integral values render without a decimal
// point so that 42 and 42.0 stringify identically.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return Stringify(float64(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Fingerprint computes a structural hash over a record set. The hash covers
// the collection length and every record's sorted field/value pairs, so two
// collections with the same contents in the same order produce the same
// fingerprint and any difference in contents produces a different one.
func Fingerprint(records []Record) uint64 {
	d := xxhash.New()
	var buf [8]byte
	writeInt := func(n int) {
		v := uint64(n)
		for i := range 8 {
			buf[i] = byte(v >> (8 * i))
		}
		d.Write(buf[:])
	}

	writeInt(len(records))
	keys := make([]string, 0, 16)
	for _, rec := range records {
		keys = keys[:0]
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		writeInt(len(keys))
		for _, k := range keys {
			d.WriteString(k)
			d.WriteString("=")
			d.WriteString(Stringify(rec[k]))
			d.WriteString(";")
		}
	}
	return d.Sum64()
}
