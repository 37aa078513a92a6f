package memory

import (
	"context"
	"strings"

	"github.com/riskibarqy/league-importer/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) (int64, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item.ID = 0
	id, created := r.store.insertTeamLocked(item)
	return id, created, nil
}

func (r *TeamRepository) InsertMany(_ context.Context, items []team.Team) ([]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		item.ID = 0
		id, _ := r.store.insertTeamLocked(item)
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	name = strings.TrimSpace(name)
	var (
		found team.Team
		ok    bool
	)
	for _, item := range r.store.teams {
		if !strings.EqualFold(item.ShortName, name) {
			continue
		}
		if !ok || item.ID < found.ID {
			found, ok = item, true
		}
	}
	return found, ok, nil
}

func (r *TeamRepository) FilterOutExistingBySourceIDs(_ context.Context, sourceIDs []int64) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]int64, 0, len(sourceIDs))
	for _, sourceID := range sourceIDs {
		if _, exists := r.store.teamsBySourceID[sourceID]; !exists {
			out = append(out, sourceID)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetIDsBySourceIDs(_ context.Context, sourceIDs []int64) (map[int64]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[int64]int64, len(sourceIDs))
	for _, sourceID := range sourceIDs {
		if id, exists := r.store.teamsBySourceID[sourceID]; exists {
			out[sourceID] = id
		}
	}
	return out, nil
}

func (r *TeamRepository) Count() int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.teams)
}
