package engine

// OptionsBuilder provides a fluent API for assembling ProcessingOptions.
// It allows the step-by-step construction of filters, sorting, search,
// pagination and aggregations, culminating in a final options value that
// feature surfaces pass to ProcessData unchanged.
type OptionsBuilder struct {
	options ProcessingOptions
}

// NewOptionsBuilder creates a new, empty options builder instance.
func NewOptionsBuilder() *OptionsBuilder {
	return &OptionsBuilder{}
}

// Build returns the constructed ProcessingOptions value.
func (b *OptionsBuilder) Build() ProcessingOptions {
	return b.options
}

// Reset clears all configuration, returning the builder to its initial state.
func (b *OptionsBuilder) Reset() *OptionsBuilder {
	b.options = ProcessingOptions{}
	return b
}

// CriterionBuilder builds a single filter criterion for a specific field.
// It is not intended to be used directly but is part of the fluent API.
type CriterionBuilder struct {
	parent        *OptionsBuilder
	field         string
	caseSensitive bool
}

// Where begins the construction of a filter criterion for a specific field.
func (b *OptionsBuilder) Where(field string) *CriterionBuilder {
	return &CriterionBuilder{parent: b, field: field}
}

// CaseSensitive makes string comparisons for this criterion case-sensitive.
func (cb *CriterionBuilder) CaseSensitive() *CriterionBuilder {
	cb.caseSensitive = true
	return cb
}

// Equals adds an equality criterion.
func (cb *CriterionBuilder) Equals(value any) *OptionsBuilder {
	return cb.add(FilterOperatorEquals, value, nil)
}

// NotEquals adds a not-equal criterion.
func (cb *CriterionBuilder) NotEquals(value any) *OptionsBuilder {
	return cb.add(FilterOperatorNotEquals, value, nil)
}

// Contains adds a substring containment criterion.
func (cb *CriterionBuilder) Contains(value any) *OptionsBuilder {
	return cb.add(FilterOperatorContains, value, nil)
}

// GreaterThan adds a numeric greater-than criterion.
func (cb *CriterionBuilder) GreaterThan(value any) *OptionsBuilder {
	return cb.add(FilterOperatorGreaterThan, value, nil)
}

// LessThan adds a numeric less-than criterion.
func (cb *CriterionBuilder) LessThan(value any) *OptionsBuilder {
	return cb.add(FilterOperatorLessThan, value, nil)
}

// Between adds an inclusive range criterion.
func (cb *CriterionBuilder) Between(lo, hi any) *OptionsBuilder {
	return cb.add(FilterOperatorBetween, lo, hi)
}

// In adds a set-membership criterion.
func (cb *CriterionBuilder) In(values ...any) *OptionsBuilder {
	return cb.add(FilterOperatorIn, values, nil)
}

// StartsWith adds a prefix criterion.
func (cb *CriterionBuilder) StartsWith(value any) *OptionsBuilder {
	return cb.add(FilterOperatorStartsWith, value, nil)
}

// EndsWith adds a suffix criterion.
func (cb *CriterionBuilder) EndsWith(value any) *OptionsBuilder {
	return cb.add(FilterOperatorEndsWith, value, nil)
}

// Custom adds a criterion with a custom operator, to be evaluated by a
// predicate registered on the engine.
func (cb *CriterionBuilder) Custom(operator FilterOperator, value any) *OptionsBuilder {
	return cb.add(operator, value, nil)
}

// add is an internal helper appending the built criterion to the options.
func (cb *CriterionBuilder) add(operator FilterOperator, value, secondValue any) *OptionsBuilder {
	cb.parent.options.Filters = append(cb.parent.options.Filters, FilterCriterion{
		Field:         cb.field,
		Operator:      operator,
		Value:         value,
		SecondValue:   secondValue,
		CaseSensitive: cb.caseSensitive,
	})
	return cb.parent
}

// OrderBy appends a sort criterion; criteria accumulate in tie-break order.
func (b *OptionsBuilder) OrderBy(field string, direction SortDirection) *OptionsBuilder {
	b.options.Sort = append(b.options.Sort, SortCriterion{Field: field, Direction: direction})
	return b
}

// OrderByAsc appends an ascending sort criterion for a field.
func (b *OptionsBuilder) OrderByAsc(field string) *OptionsBuilder {
	return b.OrderBy(field, SortDirectionAsc)
}

// OrderByDesc appends a descending sort criterion for a field.
func (b *OptionsBuilder) OrderByDesc(field string) *OptionsBuilder {
	return b.OrderBy(field, SortDirectionDesc)
}

// Search configures substring search over the given fields.
func (b *OptionsBuilder) Search(query string, fields ...string) *OptionsBuilder {
	b.options.Search = &SearchSpec{Query: query, Fields: fields}
	return b
}

// FuzzySearch configures fuzzy search over the given fields. A threshold of 0
// selects the default.
func (b *OptionsBuilder) FuzzySearch(query string, threshold float64, fields ...string) *OptionsBuilder {
	b.options.Search = &SearchSpec{Query: query, Fields: fields, Fuzzy: true, Threshold: threshold}
	return b
}

// Page selects a 1-based page window.
func (b *OptionsBuilder) Page(page, pageSize int) *OptionsBuilder {
	b.options.Pagination = &PaginationSpec{Page: page, PageSize: pageSize}
	return b
}

// Aggregate requests statistics for a field.
func (b *OptionsBuilder) Aggregate(field string, operations ...AggregateOperation) *OptionsBuilder {
	b.options.Aggregations = append(b.options.Aggregations, AggregationSpec{
		Field:      field,
		Operations: operations,
	})
	return b
}

// AggregateGroupedBy requests a groupBy aggregation of a field, partitioned
// by groupByField, alongside any additional operations.
func (b *OptionsBuilder) AggregateGroupedBy(field, groupByField string, operations ...AggregateOperation) *OptionsBuilder {
	b.options.Aggregations = append(b.options.Aggregations, AggregationSpec{
		Field:        field,
		Operations:   append(operations, AggregateGroupBy),
		GroupByField: groupByField,
	})
	return b
}
