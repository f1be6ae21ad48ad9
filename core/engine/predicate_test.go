package engine

import (
	"errors"
	"testing"

	"github.com/asaidimu/go-sift/core/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(nil)
	require.NoError(t, err)
	return e
}

func TestEvaluateCriterion(t *testing.T) {
	e := newTestEngine(t)
	rec := record.Record{
		"name":   "Jansen",
		"age":    45,
		"region": "NH",
		"note":   nil,
	}

	cases := []struct {
		name      string
		criterion FilterCriterion
		want      bool
	}{
		{"equals string", FilterCriterion{Field: "name", Operator: FilterOperatorEquals, Value: "Jansen"}, true},
		{"equals is case-insensitive by default", FilterCriterion{Field: "name", Operator: FilterOperatorEquals, Value: "jansen"}, true},
		{"equals case-sensitive", FilterCriterion{Field: "name", Operator: FilterOperatorEquals, Value: "jansen", CaseSensitive: true}, false},
		{"equals numeric across types", FilterCriterion{Field: "age", Operator: FilterOperatorEquals, Value: 45.0}, true},
		{"notEquals", FilterCriterion{Field: "name", Operator: FilterOperatorNotEquals, Value: "Pietersen"}, true},
		{"contains", FilterCriterion{Field: "name", Operator: FilterOperatorContains, Value: "anse"}, true},
		{"contains folds case", FilterCriterion{Field: "name", Operator: FilterOperatorContains, Value: "JAN"}, true},
		{"startsWith", FilterCriterion{Field: "name", Operator: FilterOperatorStartsWith, Value: "Jan"}, true},
		{"endsWith", FilterCriterion{Field: "name", Operator: FilterOperatorEndsWith, Value: "sen"}, true},
		{"greaterThan", FilterCriterion{Field: "age", Operator: FilterOperatorGreaterThan, Value: 40}, true},
		{"greaterThan false", FilterCriterion{Field: "age", Operator: FilterOperatorGreaterThan, Value: 45}, false},
		{"greaterThan non-numeric field", FilterCriterion{Field: "name", Operator: FilterOperatorGreaterThan, Value: 10}, false},
		{"lessThan", FilterCriterion{Field: "age", Operator: FilterOperatorLessThan, Value: 50}, true},
		{"between inclusive lower", FilterCriterion{Field: "age", Operator: FilterOperatorBetween, Value: 45, SecondValue: 60}, true},
		{"between inclusive upper", FilterCriterion{Field: "age", Operator: FilterOperatorBetween, Value: 30, SecondValue: 45}, true},
		{"between outside", FilterCriterion{Field: "age", Operator: FilterOperatorBetween, Value: 50, SecondValue: 60}, false},
		{"between missing second value is non-matching", FilterCriterion{Field: "age", Operator: FilterOperatorBetween, Value: 30}, false},
		{"in", FilterCriterion{Field: "region", Operator: FilterOperatorIn, Value: []any{"NH", "ZH"}}, true},
		{"in typed slice", FilterCriterion{Field: "age", Operator: FilterOperatorIn, Value: []int{44, 45}}, true},
		{"in miss", FilterCriterion{Field: "region", Operator: FilterOperatorIn, Value: []any{"ZH"}}, false},
		{"in with non-set value is non-matching", FilterCriterion{Field: "region", Operator: FilterOperatorIn, Value: "NH"}, false},
		{"absent field fails equals", FilterCriterion{Field: "missing", Operator: FilterOperatorEquals, Value: "x"}, false},
		{"absent field fails greaterThan", FilterCriterion{Field: "missing", Operator: FilterOperatorGreaterThan, Value: 1}, false},
		{"absent field passes notEquals", FilterCriterion{Field: "missing", Operator: FilterOperatorNotEquals, Value: "x"}, true},
		{"null field fails equals", FilterCriterion{Field: "note", Operator: FilterOperatorEquals, Value: ""}, false},
		{"null field passes notEquals", FilterCriterion{Field: "note", Operator: FilterOperatorNotEquals, Value: "x"}, true},
		{"unsupported operator is non-matching", FilterCriterion{Field: "name", Operator: "regex", Value: ".*"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.evaluateCriterion(rec, tc.criterion))
		})
	}
}

func TestRegisterPredicate(t *testing.T) {
	e := newTestEngine(t)
	e.RegisterPredicate("isAdult", func(rec record.Record, c FilterCriterion) (bool, error) {
		age, ok := record.ToFloat64(rec[c.Field])
		return ok && age >= 18, nil
	})

	adult := record.Record{"age": 45}
	minor := record.Record{"age": 12}
	criterion := FilterCriterion{Field: "age", Operator: "isAdult"}

	assert.True(t, e.evaluateCriterion(adult, criterion))
	assert.False(t, e.evaluateCriterion(minor, criterion))
}

func TestCustomPredicateErrorExcludesRecord(t *testing.T) {
	e := newTestEngine(t)
	e.RegisterPredicate("broken", func(rec record.Record, c FilterCriterion) (bool, error) {
		return true, errors.New("boom")
	})

	rec := record.Record{"age": 45}
	assert.False(t, e.evaluateCriterion(rec, FilterCriterion{Field: "age", Operator: "broken"}))
}

func TestCustomPredicateOverridesStandardOperator(t *testing.T) {
	e := newTestEngine(t)
	e.RegisterPredicate(FilterOperatorEquals, func(rec record.Record, c FilterCriterion) (bool, error) {
		return false, nil
	})

	rec := record.Record{"name": "Jansen"}
	assert.False(t, e.evaluateCriterion(rec, FilterCriterion{Field: "name", Operator: FilterOperatorEquals, Value: "Jansen"}))
}
