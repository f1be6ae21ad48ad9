package engine

import (
	"testing"

	"github.com/asaidimu/go-sift/core/record"
	"github.com/stretchr/testify/assert"
)

func numberedRecords(n int) []record.Record {
	records := make([]record.Record, n)
	for i := range records {
		records[i] = record.Record{"id": i + 1}
	}
	return records
}

func TestPaginate(t *testing.T) {
	records := numberedRecords(4)

	t.Run("second page", func(t *testing.T) {
		page := Paginate(records, &PaginationSpec{Page: 2, PageSize: 2})
		assert.Len(t, page, 2)
		assert.Equal(t, 3, page[0]["id"])
		assert.Equal(t, 4, page[1]["id"])
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		page := Paginate(records, &PaginationSpec{Page: 3, PageSize: 2})
		assert.Empty(t, page)
	})

	t.Run("last page is clamped", func(t *testing.T) {
		page := Paginate(records, &PaginationSpec{Page: 2, PageSize: 3})
		assert.Len(t, page, 1)
		assert.Equal(t, 4, page[0]["id"])
	})

	t.Run("nil spec returns everything", func(t *testing.T) {
		assert.Equal(t, records, Paginate(records, nil))
	})

	t.Run("page below 1 returns everything", func(t *testing.T) {
		assert.Equal(t, records, Paginate(records, &PaginationSpec{Page: 0, PageSize: 2}))
	})

	t.Run("page size below 1 returns everything", func(t *testing.T) {
		assert.Equal(t, records, Paginate(records, &PaginationSpec{Page: 1, PageSize: 0}))
	})

	t.Run("concatenated pages reconstruct the full sequence", func(t *testing.T) {
		records := numberedRecords(7)
		pageSize := 3
		var rebuilt []record.Record
		for page := 1; ; page++ {
			slice := Paginate(records, &PaginationSpec{Page: page, PageSize: pageSize})
			if len(slice) == 0 {
				break
			}
			rebuilt = append(rebuilt, slice...)
		}
		assert.Equal(t, records, rebuilt)
	})
}
