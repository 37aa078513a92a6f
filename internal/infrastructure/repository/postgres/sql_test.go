package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	})

	t.Run("ignores other codes", func(t *testing.T) {
		assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
		assert.False(t, isUniqueViolation(sql.ErrNoRows))
	})
}

func TestAlignIDs(t *testing.T) {
	got := alignIDs([]int64{2, 3, 4}, map[int64]int64{4: 40, 2: 20})
	assert.Equal(t, []int64{20, 0, 40}, got)
}

func TestMissingFrom(t *testing.T) {
	assert.Equal(t, []int64{1, 3}, missingFrom([]int64{1, 2, 3}, []int64{2, 9}))
	assert.Empty(t, missingFrom([]int64{1}, []int64{1}))
}

func TestChunks(t *testing.T) {
	got := chunks([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, got)
	assert.Nil(t, chunks([]int{}, 2))
}

func TestNullConversions(t *testing.T) {
	id := int64(11)
	assert.Equal(t, sql.NullInt64{Int64: 11, Valid: true}, toNullInt64(&id))
	assert.False(t, toNullInt64(nil).Valid)
	assert.False(t, toNullString("").Valid)

	day := time.Date(1990, 10, 11, 0, 0, 0, 0, time.UTC)
	assert.True(t, toNullTime(&day).Valid)
}

func TestDecodeMembers(t *testing.T) {
	raw := []byte(`[
		{"id":1,"source_id":11,"name":"Player Eleven","position":"Forward","date_of_birth":"1990-10-11","nationality":"Argentina"},
		{"id":2,"source_id":null,"name":"Coach","position":"coach","date_of_birth":null,"nationality":null}
	]`)

	got, err := decodeMembers(3, raw)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].SourceID)
	assert.Equal(t, int64(11), *got[0].SourceID)
	assert.Equal(t, int64(3), got[0].CurrentTeam)
	assert.Equal(t, "1990-10-11", got[0].DateOfBirth.Format(time.DateOnly))

	assert.Nil(t, got[1].SourceID)
	assert.Nil(t, got[1].DateOfBirth)
	assert.True(t, got[1].IsCoach())
	assert.Empty(t, got[1].Nationality)
}

func TestDecodeMembers_BadDate(t *testing.T) {
	_, err := decodeMembers(1, []byte(`[{"id":1,"position":"x","date_of_birth":"11/10/1990"}]`))
	assert.Error(t, err)
}
