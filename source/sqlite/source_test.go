package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLoad(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE members (name TEXT, age INTEGER, balance REAL, active BOOLEAN, note TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO members VALUES
		('Jansen', 45, 12.50, 1, NULL),
		('Pietersen', 52, 0, 0, 'opgezegd')`)
	require.NoError(t, err)

	src := NewSource(db, nil)

	t.Run("load whole table", func(t *testing.T) {
		records, err := src.Load(context.Background(), "members")
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Jansen", records[0]["name"])
		assert.Equal(t, int64(45), records[0]["age"])
		assert.Equal(t, 12.5, records[0]["balance"])
		assert.Nil(t, records[0]["note"])
		assert.Equal(t, "opgezegd", records[1]["note"])
	})

	t.Run("load query with arguments", func(t *testing.T) {
		records, err := src.LoadQuery(context.Background(),
			`SELECT name FROM members WHERE age > ?`, 50)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Pietersen", records[0]["name"])
	})

	t.Run("missing table errors", func(t *testing.T) {
		_, err := src.Load(context.Background(), "nope")
		assert.Error(t, err)
	})
}
