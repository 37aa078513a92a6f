package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/league-importer/internal/domain/competition"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitionRepository_InsertIsConflictTolerant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCompetitionRepository(NewStore(Seed{}))

	id, created, err := repo.Insert(ctx, competition.Competition{SourceID: 10, Code: "AR", Name: "Liga"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), id)

	id, created, err = repo.Insert(ctx, competition.Competition{SourceID: 10, Code: "AR", Name: "Liga"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, id)

	exists, err := repo.Exists(ctx, "AR")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Len(t, repo.List(ctx), 1)
}

func TestCompetitionRepository_CodesAreCaseSensitive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(Seed{
		Competitions: []competition.Competition{{ID: 1, SourceID: 10, Code: "AR"}},
		Teams:        []team.Team{{ID: 1, SourceID: 100}},
		Links:        []teamcompetition.TeamCompetition{{CompetitionID: 1, TeamID: 1}},
	})
	repo := NewCompetitionRepository(store)

	exists, err := repo.Exists(ctx, "ar")
	require.NoError(t, err)
	assert.False(t, exists)

	links, err := NewTeamCompetitionRepository(store).ListByLeagueCode(ctx, "ar")
	require.NoError(t, err)
	assert.Empty(t, links)

	ids, err := repo.InsertMany(ctx, []competition.Competition{{SourceID: 11, Code: "ar"}, {SourceID: 12, Code: "AR"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 0}, ids)
}

func TestTeamRepository_SourceIDLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(Seed{Teams: []team.Team{{ID: 7, SourceID: 1, ShortName: "Racing"}}})
	repo := NewTeamRepository(store)

	missing, err := repo.FilterOutExistingBySourceIDs(ctx, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, missing)

	ids, err := repo.InsertMany(ctx, []team.Team{{SourceID: 2, ShortName: "Boca"}, {SourceID: 1, ShortName: "dup"}, {SourceID: 3, ShortName: "River"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{8, 0, 9}, ids)

	bySource, err := repo.GetIDsBySourceIDs(ctx, []int64{1, 3, 99})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 7, 3: 9}, bySource)

	found, ok, err := repo.GetByName(ctx, "boca")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(8), found.ID)

	_, ok, err = repo.GetByName(ctx, "bo")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemberRepository_ListByTeamsGroupsAndFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(Seed{Teams: []team.Team{
		{ID: 1, SourceID: 100, ShortName: "Boca"},
		{ID: 2, SourceID: 200, ShortName: "River"},
	}})
	repo := NewMemberRepository(store)

	_, err := repo.InsertMany(ctx, []member.Member{
		{Name: "Lionel Messi", Position: "Forward", CurrentTeam: 2},
		{Name: "Coach", Position: member.PositionCoach, CurrentTeam: 1},
		{Name: "Angel Di Maria", Position: "Winger", CurrentTeam: 2},
	})
	require.NoError(t, err)

	all, err := repo.ListByTeams(ctx, []int64{1, 2}, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Boca", all[0].TeamName)
	assert.Len(t, all[1].Members, 2)

	filtered, err := repo.ListByTeams(ctx, []int64{1, 2}, "MESS")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].TeamID)
	assert.Equal(t, "Lionel Messi", filtered[0].Members[0].Name)

	_, err = repo.Insert(ctx, member.Member{Name: "Ghost", CurrentTeam: 42})
	assert.Error(t, err)
	assert.Equal(t, 3, repo.Count())
}

func TestTeamCompetitionRepository_IgnoresDuplicatePairs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(Seed{
		Competitions: []competition.Competition{{ID: 1, SourceID: 10, Code: "AR"}},
		Teams:        []team.Team{{ID: 1, SourceID: 100}, {ID: 2, SourceID: 200}},
	})
	repo := NewTeamCompetitionRepository(store)

	inserted, err := repo.InsertMany(ctx, []teamcompetition.TeamCompetition{
		{CompetitionID: 1, TeamID: 1},
		{CompetitionID: 1, TeamID: 2},
		{CompetitionID: 1, TeamID: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	created, err := repo.Insert(ctx, teamcompetition.TeamCompetition{CompetitionID: 1, TeamID: 2})
	require.NoError(t, err)
	assert.False(t, created)

	links, err := repo.ListByLeagueCode(ctx, "AR")
	require.NoError(t, err)
	assert.Len(t, links, 2)

	links, err = repo.ListByLeagueCode(ctx, "PL")
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = repo.Insert(ctx, teamcompetition.TeamCompetition{CompetitionID: 9, TeamID: 1})
	assert.Error(t, err)
}
