package engine

import (
	"strings"

	"github.com/asaidimu/go-sift/core/record"
	"go.uber.org/zap"
)

// PredicateFunc is a caller-supplied predicate for a custom filter operator.
// It receives the record under evaluation and the full criterion, and reports
// whether the record matches. A returned error excludes the record and is
// logged; it never aborts the pipeline.
type PredicateFunc func(rec record.Record, criterion FilterCriterion) (bool, error)

// evaluateCriterion evaluates one criterion against one record. It is total:
// malformed criteria, absent fields and failed coercions all evaluate to
// "does not match" rather than erroring, so one bad filter degrades to an
// empty result instead of failing an entire screen.
func (e *Engine) evaluateCriterion(rec record.Record, c FilterCriterion) bool {
	if fn := e.customPredicate(c.Operator); fn != nil {
		ok, err := fn(rec, c)
		if err != nil {
			e.logger.Warn("custom predicate failed, excluding record",
				zap.String("operator", string(c.Operator)),
				zap.String("field", c.Field),
				zap.Error(err))
			return false
		}
		return ok
	}

	if !c.Operator.IsStandard() {
		e.logger.Warn("unsupported filter operator, treating as non-matching",
			zap.String("operator", string(c.Operator)),
			zap.String("field", c.Field))
		return false
	}

	fieldValue, present := rec.Field(c.Field)
	if !present || fieldValue == nil {
		// Absent and null values fail every operator except notEquals.
		return c.Operator == FilterOperatorNotEquals
	}

	switch c.Operator {
	case FilterOperatorEquals:
		return scalarEquals(fieldValue, c.Value, c.CaseSensitive)
	case FilterOperatorNotEquals:
		return !scalarEquals(fieldValue, c.Value, c.CaseSensitive)
	case FilterOperatorContains:
		return strings.Contains(fold(fieldValue, c.CaseSensitive), fold(c.Value, c.CaseSensitive))
	case FilterOperatorStartsWith:
		return strings.HasPrefix(fold(fieldValue, c.CaseSensitive), fold(c.Value, c.CaseSensitive))
	case FilterOperatorEndsWith:
		return strings.HasSuffix(fold(fieldValue, c.CaseSensitive), fold(c.Value, c.CaseSensitive))
	case FilterOperatorGreaterThan:
		fv, ok1 := record.ToFloat64(fieldValue)
		cv, ok2 := record.ToFloat64(c.Value)
		return ok1 && ok2 && fv > cv
	case FilterOperatorLessThan:
		fv, ok1 := record.ToFloat64(fieldValue)
		cv, ok2 := record.ToFloat64(c.Value)
		return ok1 && ok2 && fv < cv
	case FilterOperatorBetween:
		if c.SecondValue == nil {
			e.logger.Warn("between criterion missing second value, treating as non-matching",
				zap.String("field", c.Field))
			return false
		}
		return evaluateBetween(fieldValue, c.Value, c.SecondValue, c.CaseSensitive)
	case FilterOperatorIn:
		values, ok := toValueSlice(c.Value)
		if !ok {
			e.logger.Warn("in criterion value is not a set, treating as non-matching",
				zap.String("field", c.Field))
			return false
		}
		for _, v := range values {
			if scalarEquals(fieldValue, v, c.CaseSensitive) {
				return true
			}
		}
		return false
	}
	return false
}

// scalarEquals compares two scalar values, preferring numeric equality when
// both sides coerce to a number and falling back to (optionally case-folded)
// string comparison otherwise.
func scalarEquals(a, b any, caseSensitive bool) bool {
	if fa, ok := record.ToFloat64(a); ok {
		if fb, ok := record.ToFloat64(b); ok {
			return fa == fb
		}
	}
	return fold(a, caseSensitive) == fold(b, caseSensitive)
}

// evaluateBetween checks lo <= v <= hi, numerically when all three values
// coerce and lexicographically on folded strings otherwise. Both bounds are
// inclusive.
func evaluateBetween(v, lo, hi any, caseSensitive bool) bool {
	fv, ok1 := record.ToFloat64(v)
	flo, ok2 := record.ToFloat64(lo)
	fhi, ok3 := record.ToFloat64(hi)
	if ok1 && ok2 && ok3 {
		return fv >= flo && fv <= fhi
	}
	sv := fold(v, caseSensitive)
	return sv >= fold(lo, caseSensitive) && sv <= fold(hi, caseSensitive)
}

// fold returns the string form of a value, lower-cased unless the caller
// requested case-sensitive semantics.
func fold(v any, caseSensitive bool) string {
	s := record.Stringify(v)
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// toValueSlice normalizes the value of an "in" criterion into a []any.
func toValueSlice(v any) ([]any, bool) {
	switch vals := v.(type) {
	case []any:
		return vals, true
	case []string:
		out := make([]any, len(vals))
		for i, s := range vals {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(vals))
		for i, n := range vals {
			out[i] = n
		}
		return out, true
	case []float64:
		out := make([]any, len(vals))
		for i, f := range vals {
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}
