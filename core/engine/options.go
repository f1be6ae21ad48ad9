// Package engine implements the generic record-processing pipeline: declarative
// filtering, multi-key stable sorting, substring and fuzzy search, streaming
// aggregation, pagination, and a bounded result cache. All configuration is
// passed explicitly through ProcessingOptions; no stage depends on external
// state, which is what allows the same functions to run inline, chunked, or
// inside an offload worker with identical results.
package engine

import (
	"github.com/asaidimu/go-sift/core/record"
)

// FilterOperator defines the set of operators usable in a filter criterion.
type FilterOperator string

// Supported filter operators.
const (
	FilterOperatorEquals      FilterOperator = "equals"
	FilterOperatorNotEquals   FilterOperator = "notEquals"
	FilterOperatorContains    FilterOperator = "contains"
	FilterOperatorGreaterThan FilterOperator = "greaterThan"
	FilterOperatorLessThan    FilterOperator = "lessThan"
	FilterOperatorBetween     FilterOperator = "between"
	FilterOperatorIn          FilterOperator = "in"
	FilterOperatorStartsWith  FilterOperator = "startsWith"
	FilterOperatorEndsWith    FilterOperator = "endsWith"
)

// standardFilterOperators is the set of built-in operators. Operators outside
// this set require a registered custom predicate.
var standardFilterOperators = map[FilterOperator]struct{}{
	FilterOperatorEquals:      {},
	FilterOperatorNotEquals:   {},
	FilterOperatorContains:    {},
	FilterOperatorGreaterThan: {},
	FilterOperatorLessThan:    {},
	FilterOperatorBetween:     {},
	FilterOperatorIn:          {},
	FilterOperatorStartsWith:  {},
	FilterOperatorEndsWith:    {},
}

// IsStandard checks if a filter operator is one of the built-in operators.
func (o FilterOperator) IsStandard() bool {
	_, ok := standardFilterOperators[o]
	return ok
}

// FilterCriterion defines a single condition records must satisfy to pass the
// filter stage. SecondValue is only meaningful for the "between" operator,
// which is inclusive on both bounds. String comparisons are case-insensitive
// unless CaseSensitive is set.
type FilterCriterion struct {
	Field         string         `json:"field"`
	Operator      FilterOperator `json:"operator"`
	Value         any            `json:"value"`
	SecondValue   any            `json:"secondValue,omitempty"`
	CaseSensitive bool           `json:"caseSensitive,omitempty"`
}

// SortDirection specifies the direction for sorting.
type SortDirection string

// Supported sort directions.
const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// SortCriterion defines the sort order for a single field. An ordered
// sequence of criteria defines a total order with the first entry as primary
// key and each subsequent entry as a tie-break.
type SortCriterion struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultFuzzyThreshold is the similarity score a fuzzy match must reach when
// the search spec does not set one explicitly.
const DefaultFuzzyThreshold = 0.7

// SearchSpec configures full-text matching across a subset of record fields.
// With Fuzzy set, matching uses a normalized edit-distance similarity and
// Threshold (defaulting to DefaultFuzzyThreshold) decides inclusion; otherwise
// matching is plain substring containment. An empty Fields list searches every
// field of each record.
type SearchSpec struct {
	Query         string   `json:"query"`
	Fields        []string `json:"fields,omitempty"`
	CaseSensitive bool     `json:"caseSensitive,omitempty"`
	Fuzzy         bool     `json:"fuzzy,omitempty"`
	Threshold     float64  `json:"threshold,omitempty"`
}

// threshold returns the effective similarity threshold.
func (s *SearchSpec) threshold() float64 {
	if s.Threshold <= 0 {
		return DefaultFuzzyThreshold
	}
	return s.Threshold
}

// AggregateOperation identifies a statistic computed by the aggregation stage.
type AggregateOperation string

// Supported aggregate operations.
const (
	AggregateCount   AggregateOperation = "count"
	AggregateSum     AggregateOperation = "sum"
	AggregateAverage AggregateOperation = "average"
	AggregateMin     AggregateOperation = "min"
	AggregateMax     AggregateOperation = "max"
	AggregateUnique  AggregateOperation = "unique"
	AggregateGroupBy AggregateOperation = "groupBy"
)

// AggregationSpec requests statistics for a single field. GroupByField is
// required when Operations includes "groupBy".
type AggregationSpec struct {
	Field        string               `json:"field"`
	Operations   []AggregateOperation `json:"operations"`
	GroupByField string               `json:"groupByField,omitempty"`
}

// PaginationSpec selects a 1-based page window. A page or page size below 1
// is treated as "everything": page 1 with a page size covering the whole set.
type PaginationSpec struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// ProcessingOptions is the full declarative instruction set for one pipeline
// run. Its canonical JSON form, combined with a fingerprint of the input
// record set, is the cache key.
type ProcessingOptions struct {
	Filters      []FilterCriterion `json:"filters,omitempty"`
	Sort         []SortCriterion   `json:"sort,omitempty"`
	Search       *SearchSpec       `json:"search,omitempty"`
	Pagination   *PaginationSpec   `json:"pagination,omitempty"`
	Aggregations []AggregationSpec `json:"aggregations,omitempty"`
}

// AggregationResult holds the statistics computed for one field. Only the
// members matching the requested operations are populated.
type AggregationResult struct {
	Count   *int           `json:"count,omitempty"`
	Sum     *float64       `json:"sum,omitempty"`
	Average *float64       `json:"average,omitempty"`
	Min     *float64       `json:"min,omitempty"`
	Max     *float64       `json:"max,omitempty"`
	Unique  []string       `json:"unique,omitempty"`
	Groups  map[string]int `json:"groups,omitempty"`
}

// ProcessingResult is the output of one pipeline run.
//
// Data holds the page window after filter, search, sort and pagination.
// TotalCount is the original input size and FilteredCount the size after
// filter and search but before pagination, so 0 <= len(Data) <=
// FilteredCount <= TotalCount always holds. ProcessingTime is the elapsed
// wall time in milliseconds; on a cache hit it reflects the lookup cost.
type ProcessingResult struct {
	Data           []record.Record              `json:"data"`
	TotalCount     int                          `json:"totalCount"`
	FilteredCount  int                          `json:"filteredCount"`
	Aggregations   map[string]AggregationResult `json:"aggregations,omitempty"`
	ProcessingTime float64                      `json:"processingTime"`
}
