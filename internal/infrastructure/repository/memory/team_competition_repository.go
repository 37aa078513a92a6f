package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
)

type TeamCompetitionRepository struct {
	store *Store
}

func NewTeamCompetitionRepository(store *Store) *TeamCompetitionRepository {
	return &TeamCompetitionRepository{store: store}
}

func (r *TeamCompetitionRepository) Insert(ctx context.Context, item teamcompetition.TeamCompetition) (bool, error) {
	inserted, err := r.InsertMany(ctx, []teamcompetition.TeamCompetition{item})
	return inserted == 1, err
}

func (r *TeamCompetitionRepository) InsertMany(_ context.Context, items []teamcompetition.TeamCompetition) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		if _, ok := r.store.competitions[item.CompetitionID]; !ok {
			return 0, fmt.Errorf("competition id=%d does not exist", item.CompetitionID)
		}
		if _, ok := r.store.teams[item.TeamID]; !ok {
			return 0, errMissingTeam(item.TeamID)
		}
	}

	inserted := 0
	for _, item := range items {
		if r.store.insertLinkLocked(item) {
			inserted++
		}
	}
	return inserted, nil
}

func (r *TeamCompetitionRepository) ListByLeagueCode(_ context.Context, code string) ([]teamcompetition.TeamCompetition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	competitionID, ok := r.store.competitionsByCode[code]
	if !ok {
		return []teamcompetition.TeamCompetition{}, nil
	}

	out := make([]teamcompetition.TeamCompetition, 0)
	for _, item := range r.store.linkOrder {
		if item.CompetitionID == competitionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func errMissingTeam(teamID int64) error {
	return fmt.Errorf("team id=%d does not exist", teamID)
}
