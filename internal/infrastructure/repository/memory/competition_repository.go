package memory

import (
	"context"

	"github.com/riskibarqy/league-importer/internal/domain/competition"
)

type CompetitionRepository struct {
	store *Store
}

func NewCompetitionRepository(store *Store) *CompetitionRepository {
	return &CompetitionRepository{store: store}
}

func (r *CompetitionRepository) Insert(_ context.Context, item competition.Competition) (int64, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item.ID = 0
	id, created := r.store.insertCompetitionLocked(item)
	return id, created, nil
}

func (r *CompetitionRepository) InsertMany(_ context.Context, items []competition.Competition) ([]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		item.ID = 0
		id, _ := r.store.insertCompetitionLocked(item)
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *CompetitionRepository) Exists(_ context.Context, code string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.competitionsByCode[code]
	return ok, nil
}

// List returns competitions ordered by id.
func (r *CompetitionRepository) List(_ context.Context) []competition.Competition {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.store.competitions))
	for id := int64(1); id <= r.store.nextCompetitionID; id++ {
		if item, ok := r.store.competitions[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
