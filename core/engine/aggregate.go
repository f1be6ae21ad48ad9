package engine

import (
	"sort"

	"github.com/asaidimu/go-sift/core/record"
	"go.uber.org/zap"
)

// Aggregate computes the requested statistics per field over a record set.
// The orchestrator feeds it the filtered and searched set before pagination,
// so the numbers describe exactly what the user currently sees.
//
// Numeric operations (sum, average, min, max) coerce field values to numbers
// and skip values that do not coerce; the average of zero numeric values is
// 0, not NaN. "unique" collects the sorted set of distinct stringified
// values. "groupBy" partitions the set by GroupByField and reports per-group
// record counts; a groupBy without a GroupByField is logged and skipped.
func (e *Engine) Aggregate(records []record.Record, specs []AggregationSpec) map[string]AggregationResult {
	if len(specs) == 0 {
		return nil
	}

	results := make(map[string]AggregationResult, len(specs))
	for _, spec := range specs {
		results[spec.Field] = e.aggregateField(records, spec)
	}
	return results
}

func (e *Engine) aggregateField(records []record.Record, spec AggregationSpec) AggregationResult {
	var res AggregationResult

	for _, op := range spec.Operations {
		switch op {
		case AggregateCount:
			n := len(records)
			res.Count = &n
		case AggregateSum:
			sum, _ := numericFold(records, spec.Field)
			res.Sum = &sum
		case AggregateAverage:
			sum, n := numericFold(records, spec.Field)
			avg := 0.0
			if n > 0 {
				avg = sum / float64(n)
			}
			res.Average = &avg
		case AggregateMin:
			if v, ok := numericExtreme(records, spec.Field, func(a, b float64) bool { return a < b }); ok {
				res.Min = &v
			}
		case AggregateMax:
			if v, ok := numericExtreme(records, spec.Field, func(a, b float64) bool { return a > b }); ok {
				res.Max = &v
			}
		case AggregateUnique:
			res.Unique = uniqueValues(records, spec.Field)
		case AggregateGroupBy:
			if spec.GroupByField == "" {
				e.logger.Warn("groupBy aggregation missing groupByField, skipping",
					zap.String("field", spec.Field))
				continue
			}
			res.Groups = groupCounts(records, spec.GroupByField)
		default:
			e.logger.Warn("unsupported aggregate operation, skipping",
				zap.String("operation", string(op)),
				zap.String("field", spec.Field))
		}
	}
	return res
}

// numericFold sums the numeric coercions of a field and reports how many
// values participated.
func numericFold(records []record.Record, field string) (float64, int) {
	var sum float64
	var n int
	for _, rec := range records {
		v, ok := rec.Field(field)
		if !ok {
			continue
		}
		if f, ok := record.ToFloat64(v); ok {
			sum += f
			n++
		}
	}
	return sum, n
}

func numericExtreme(records []record.Record, field string, better func(a, b float64) bool) (float64, bool) {
	var best float64
	found := false
	for _, rec := range records {
		v, ok := rec.Field(field)
		if !ok {
			continue
		}
		f, ok := record.ToFloat64(v)
		if !ok {
			continue
		}
		if !found || better(f, best) {
			best = f
			found = true
		}
	}
	return best, found
}

// uniqueValues returns the distinct stringified values of a field, sorted for
// a deterministic result. Absent and null values do not contribute.
func uniqueValues(records []record.Record, field string) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		v, ok := rec.Field(field)
		if !ok || v == nil {
			continue
		}
		seen[record.Stringify(v)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func groupCounts(records []record.Record, groupByField string) map[string]int {
	groups := make(map[string]int)
	for _, rec := range records {
		v, _ := rec.Field(groupByField)
		groups[record.Stringify(v)]++
	}
	return groups
}
