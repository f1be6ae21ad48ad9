package engine

import (
	"github.com/asaidimu/go-sift/core/record"
)

// Paginate slices the fully filtered, searched and sorted set into the page
// window described by spec. Pages are 1-based; a nil spec, or a page or page
// size below 1, returns the whole set. The window is clamped to the
// collection bounds and a page past the end yields an empty slice, not an
// error.
func Paginate(records []record.Record, spec *PaginationSpec) []record.Record {
	if spec == nil || spec.Page < 1 || spec.PageSize < 1 {
		return records
	}

	offset := (spec.Page - 1) * spec.PageSize
	if offset >= len(records) {
		return []record.Record{}
	}
	end := offset + spec.PageSize
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
