package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/league-importer/internal/domain/member"
)

type MemberRepository struct {
	store *Store
}

func NewMemberRepository(store *Store) *MemberRepository {
	return &MemberRepository{store: store}
}

func (r *MemberRepository) Insert(ctx context.Context, item member.Member) (int64, error) {
	ids, err := r.InsertMany(ctx, []member.Member{item})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// InsertMany stores all items or none; every item must reference a stored team.
func (r *MemberRepository) InsertMany(_ context.Context, items []member.Member) ([]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		if _, ok := r.store.teams[item.CurrentTeam]; !ok {
			return nil, errMissingTeam(item.CurrentTeam)
		}
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		item.ID = 0
		ids = append(ids, r.store.insertMemberLocked(item))
	}
	return ids, nil
}

func (r *MemberRepository) ListByTeams(_ context.Context, teamIDs []int64, nameFilter string) ([]member.TeamMembers, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}
	needle := strings.ToLower(strings.TrimSpace(nameFilter))

	grouped := make(map[int64]*member.TeamMembers)
	for _, item := range r.store.members {
		if _, ok := wanted[item.CurrentTeam]; !ok {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		group, ok := grouped[item.CurrentTeam]
		if !ok {
			group = &member.TeamMembers{
				TeamID:   item.CurrentTeam,
				TeamName: r.store.teams[item.CurrentTeam].ShortName,
			}
			grouped[item.CurrentTeam] = group
		}
		group.Members = append(group.Members, item)
	}

	out := make([]member.TeamMembers, 0, len(grouped))
	for _, group := range grouped {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

// ListByTeam returns the members of one team in insertion order.
func (r *MemberRepository) ListByTeam(teamID int64) []member.Member {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []member.Member
	for _, item := range r.store.members {
		if item.CurrentTeam == teamID {
			out = append(out, item)
		}
	}
	return out
}

func (r *MemberRepository) Count() int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.members)
}
