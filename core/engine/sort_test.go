package engine

import (
	"testing"

	"github.com/asaidimu/go-sift/core/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortRecords(t *testing.T) {
	t.Run("multi-key sort", func(t *testing.T) {
		records := []record.Record{
			{"region": "NH", "age": 45},
			{"region": "ZH", "age": 52},
			{"region": "NH", "age": 38},
		}
		sorted := SortRecords(records, []SortCriterion{
			{Field: "region", Direction: SortDirectionAsc},
			{Field: "age", Direction: SortDirectionDesc},
		})

		require.Len(t, sorted, 3)
		assert.Equal(t, 45, sorted[0]["age"])
		assert.Equal(t, 38, sorted[1]["age"])
		assert.Equal(t, "ZH", sorted[2]["region"])
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		records := []record.Record{
			{"region": "NH", "id": 1},
			{"region": "NH", "id": 2},
			{"region": "NH", "id": 3},
		}
		sorted := SortRecords(records, []SortCriterion{
			{Field: "region", Direction: SortDirectionAsc},
		})
		for i, rec := range sorted {
			assert.Equal(t, i+1, rec["id"])
		}
	})

	t.Run("numeric fields compare numerically", func(t *testing.T) {
		records := []record.Record{
			{"age": "100"},
			{"age": "9"},
		}
		sorted := SortRecords(records, []SortCriterion{{Field: "age", Direction: SortDirectionAsc}})
		assert.Equal(t, "9", sorted[0]["age"])
	})

	t.Run("non-numeric fields compare lexicographically", func(t *testing.T) {
		records := []record.Record{
			{"name": "Pietersen"},
			{"name": "Jansen"},
		}
		sorted := SortRecords(records, []SortCriterion{{Field: "name", Direction: SortDirectionAsc}})
		assert.Equal(t, "Jansen", sorted[0]["name"])
	})

	t.Run("null and absent sort last regardless of direction", func(t *testing.T) {
		records := []record.Record{
			{"age": nil},
			{"age": 45},
			{},
			{"age": 29},
		}
		asc := SortRecords(records, []SortCriterion{{Field: "age", Direction: SortDirectionAsc}})
		assert.Equal(t, 29, asc[0]["age"])
		assert.Equal(t, 45, asc[1]["age"])

		desc := SortRecords(records, []SortCriterion{{Field: "age", Direction: SortDirectionDesc}})
		assert.Equal(t, 45, desc[0]["age"])
		assert.Equal(t, 29, desc[1]["age"])
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		records := []record.Record{
			{"age": 45},
			{"age": 29},
		}
		_ = SortRecords(records, []SortCriterion{{Field: "age", Direction: SortDirectionAsc}})
		assert.Equal(t, 45, records[0]["age"])
	})

	t.Run("no criteria returns input order", func(t *testing.T) {
		records := []record.Record{{"id": 2}, {"id": 1}}
		sorted := SortRecords(records, nil)
		assert.Equal(t, records, sorted)
	})
}
