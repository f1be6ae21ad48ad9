package engine

import (
	"sort"
	"strings"

	"github.com/asaidimu/go-sift/core/record"
)

// SortRecords returns a new slice sorted by the given criteria in list order:
// the first criterion is the primary key and each subsequent one breaks ties.
// The sort is stable, so records equal under all criteria keep their original
// relative order. The input slice is left untouched.
//
// Fields that coerce to numbers on both sides compare numerically, everything
// else compares lexicographically on string coercion. Absent and null values
// sort last regardless of direction.
func SortRecords(records []record.Record, criteria []SortCriterion) []record.Record {
	if len(criteria) == 0 {
		return records
	}

	sorted := make([]record.Record, len(records))
	copy(sorted, records)

	cmp := buildComparator(criteria)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// buildComparator builds a multi-key comparator from an ordered list of sort
// criteria. It returns the first non-zero per-key comparison and falls back
// to 0 when all keys tie.
func buildComparator(criteria []SortCriterion) func(a, b record.Record) int {
	return func(a, b record.Record) int {
		for _, c := range criteria {
			if r := compareField(a, b, c); r != 0 {
				return r
			}
		}
		return 0
	}
}

func compareField(a, b record.Record, c SortCriterion) int {
	av, aok := a.Field(c.Field)
	bv, bok := b.Field(c.Field)
	aMissing := !aok || av == nil
	bMissing := !bok || bv == nil

	// Missing values sort last independent of direction.
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}

	r := compareValues(av, bv)
	if c.Direction == SortDirectionDesc {
		r = -r
	}
	return r
}

func compareValues(a, b any) int {
	if fa, ok := record.ToFloat64(a); ok {
		if fb, ok := record.ToFloat64(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(record.Stringify(a), record.Stringify(b))
}
