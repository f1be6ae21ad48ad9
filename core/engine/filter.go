package engine

import (
	"github.com/asaidimu/go-sift/core/record"
	"go.uber.org/zap"
)

// Filter returns the records that satisfy every criterion. Criteria combine
// as a logical AND and evaluation short-circuits per record on the first
// failing criterion; criteria are independent of each other, so the outcome
// does not depend on their order. An empty criteria list is the identity.
// The input slice is never modified.
func (e *Engine) Filter(records []record.Record, criteria []FilterCriterion) []record.Record {
	if len(criteria) == 0 {
		return records
	}

	filtered := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if e.matchesAll(rec, criteria) {
			filtered = append(filtered, rec)
		}
	}
	e.logger.Debug("records remaining after filter",
		zap.Int("in", len(records)),
		zap.Int("out", len(filtered)))
	return filtered
}

// Match reports whether a single record satisfies every criterion. This is
// the same predicate the filter stage applies, exposed for callers that need
// to test in-memory data against an active filter set.
func (e *Engine) Match(rec record.Record, criteria []FilterCriterion) bool {
	return e.matchesAll(rec, criteria)
}

func (e *Engine) matchesAll(rec record.Record, criteria []FilterCriterion) bool {
	for _, c := range criteria {
		if !e.evaluateCriterion(rec, c) {
			return false
		}
	}
	return true
}
