package querybuilder

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder_JoinFilterGroup(t *testing.T) {
	query, args, err := Select("m.current_team", "t.short_name").
		From("members m").
		Join("teams t", "t.id = m.current_team").
		Where(AnyID("m.current_team", []int64{1, 2}), ILike("m.name", Contains("mess"))).
		GroupBy("m.current_team", "t.short_name").
		OrderBy("m.current_team").
		ToSQL()
	require.NoError(t, err)

	want := "SELECT m.current_team, t.short_name FROM members m JOIN teams t ON t.id = m.current_team " +
		"WHERE m.current_team = ANY($1) AND m.name ILIKE $2 GROUP BY m.current_team, t.short_name ORDER BY m.current_team"
	assert.Equal(t, want, query)
	require.Len(t, args, 2)
	assert.Equal(t, pq.Array([]int64{1, 2}), args[0])
	assert.Equal(t, "%mess%", args[1])
}

func TestSelectBuilder_EmptyAnyIsFalse(t *testing.T) {
	query, args, err := Select("id").From("teams").Where(AnyID("source_id", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM teams WHERE FALSE", query)
	assert.Empty(t, args)
}

func TestSelectBuilder_EqPlaceholders(t *testing.T) {
	query, args, err := Select("id").From("competitions").
		Where(Eq("area_name", "Argentina"), Eq("code", "AR")).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM competitions WHERE area_name = $1 AND code = $2", query)
	assert.Equal(t, []any{"Argentina", "AR"}, args)
}

func TestSelectBuilder_Limit(t *testing.T) {
	query, args, err := Select("id").From("teams").
		Where(ILike("short_name", EscapeLike("Boca"))).
		OrderBy("id").
		Limit(1).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM teams WHERE short_name ILIKE $1 ORDER BY id LIMIT 1", query)
	assert.Equal(t, []any{"Boca"}, args)

	query, _, err = Select("id").From("teams").Limit(0).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM teams", query)
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("teams_competitions").
		Columns("competition_id", "team_id").
		Values(int64(10), int64(1)).
		Values(int64(10), int64(2)).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO teams_competitions (competition_id, team_id) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING", query)
	assert.Len(t, args, 4)
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("a", "b").Values(1).ToSQL()
	assert.Error(t, err)
}

func TestInsertModels(t *testing.T) {
	type row struct {
		SourceID  int64  `db:"source_id"`
		ShortName string `db:"short_name"`
		Ignored   string `db:"-"`
		internal  string
	}

	query, args, err := InsertModels("teams", []row{
		{SourceID: 2, ShortName: "Boca Juniors"},
		{SourceID: 3, ShortName: "River Plate", internal: "x"},
	}, "RETURNING id, source_id")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO teams (source_id, short_name) VALUES ($1, $2), ($3, $4) RETURNING id, source_id", query)
	assert.Equal(t, []any{int64(2), "Boca Juniors", int64(3), "River Plate"}, args)
}

func TestInsertModels_Empty(t *testing.T) {
	_, _, err := InsertModels[struct{}]("teams", nil, "")
	assert.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, EscapeLike(`100%_a\b`))
}
