package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/league-importer/internal/domain/competition"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
	basecache "github.com/riskibarqy/league-importer/internal/platform/cache"
)

// Writes pass straight through. Callers run InvalidateLeague after an import commits.

const (
	competitionExistsPrefix = "competition:exists:"
	teamNamePrefix          = "team:name:"
	teamMembersPrefix       = "member:teams:"
	leagueLinksPrefix       = "team_competition:code:"
)

// leagueKey keeps the code as given; stored codes are case-sensitive.
func leagueKey(prefix, code string) string {
	return prefix + code
}

// InvalidateLeague drops the reads a successful import of code can change:
// the league's existence and links, every team name lookup and every member
// listing. A listing read between the link and member steps of an import is
// keyed by the final team ids but holds only part of the members.
func InvalidateLeague(ctx context.Context, store *basecache.Store, code string) {
	store.Delete(ctx, leagueKey(competitionExistsPrefix, code))
	store.Delete(ctx, leagueKey(leagueLinksPrefix, code))
	store.DeletePrefix(ctx, teamNamePrefix)
	store.DeletePrefix(ctx, teamMembersPrefix)
}

type CompetitionRepository struct {
	next  competition.Repository
	cache *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{next: next, cache: cache}
}

func (r *CompetitionRepository) Insert(ctx context.Context, item competition.Competition) (int64, bool, error) {
	return r.next.Insert(ctx, item)
}

func (r *CompetitionRepository) InsertMany(ctx context.Context, items []competition.Competition) ([]int64, error) {
	return r.next.InsertMany(ctx, items)
}

func (r *CompetitionRepository) Exists(ctx context.Context, code string) (bool, error) {
	key := leagueKey(competitionExistsPrefix, code)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.Exists(ctx, code)
	})
	if err != nil {
		return false, err
	}

	exists, _ := v.(bool)
	return exists, nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) (int64, bool, error) {
	return r.next.Insert(ctx, item)
}

func (r *TeamRepository) InsertMany(ctx context.Context, items []team.Team) ([]int64, error) {
	return r.next.InsertMany(ctx, items)
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	key := teamNamePrefix + strings.ToLower(strings.TrimSpace(name))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedTeamByName{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByName)
	return cached.value, cached.exists, nil
}

// Source id lookups drive the import reconciliation and must see the latest rows.
func (r *TeamRepository) FilterOutExistingBySourceIDs(ctx context.Context, sourceIDs []int64) ([]int64, error) {
	return r.next.FilterOutExistingBySourceIDs(ctx, sourceIDs)
}

func (r *TeamRepository) GetIDsBySourceIDs(ctx context.Context, sourceIDs []int64) (map[int64]int64, error) {
	return r.next.GetIDsBySourceIDs(ctx, sourceIDs)
}

type cachedTeamByName struct {
	value  team.Team
	exists bool
}

type MemberRepository struct {
	next  member.Repository
	cache *basecache.Store
}

func NewMemberRepository(next member.Repository, cache *basecache.Store) *MemberRepository {
	return &MemberRepository{next: next, cache: cache}
}

func (r *MemberRepository) Insert(ctx context.Context, item member.Member) (int64, error) {
	return r.next.Insert(ctx, item)
}

func (r *MemberRepository) InsertMany(ctx context.Context, items []member.Member) ([]int64, error) {
	return r.next.InsertMany(ctx, items)
}

func (r *MemberRepository) ListByTeams(ctx context.Context, teamIDs []int64, nameFilter string) ([]member.TeamMembers, error) {
	key := teamMembersPrefix + joinIDs(teamIDs) + ":name:" + strings.ToLower(strings.TrimSpace(nameFilter))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeams(ctx, teamIDs, nameFilter)
		if err != nil {
			return nil, err
		}
		return cloneTeamMembers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]member.TeamMembers)
	return cloneTeamMembers(items), nil
}

type TeamCompetitionRepository struct {
	next  teamcompetition.Repository
	cache *basecache.Store
}

func NewTeamCompetitionRepository(next teamcompetition.Repository, cache *basecache.Store) *TeamCompetitionRepository {
	return &TeamCompetitionRepository{next: next, cache: cache}
}

func (r *TeamCompetitionRepository) Insert(ctx context.Context, item teamcompetition.TeamCompetition) (bool, error) {
	return r.next.Insert(ctx, item)
}

func (r *TeamCompetitionRepository) InsertMany(ctx context.Context, items []teamcompetition.TeamCompetition) (int, error) {
	return r.next.InsertMany(ctx, items)
}

func (r *TeamCompetitionRepository) ListByLeagueCode(ctx context.Context, code string) ([]teamcompetition.TeamCompetition, error) {
	key := leagueKey(leagueLinksPrefix, code)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeagueCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return append([]teamcompetition.TeamCompetition(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]teamcompetition.TeamCompetition)
	return append([]teamcompetition.TeamCompetition{}, items...), nil
}

func joinIDs(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func cloneTeamMembers(items []member.TeamMembers) []member.TeamMembers {
	out := make([]member.TeamMembers, 0, len(items))
	for _, item := range items {
		item.Members = append([]member.Member(nil), item.Members...)
		out = append(out, item)
	}
	return out
}
