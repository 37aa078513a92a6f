package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
	qb "github.com/riskibarqy/league-importer/internal/platform/querybuilder"
)

type teamCompetitionTableModel struct {
	CompetitionID int64 `db:"competition_id"`
	TeamID        int64 `db:"team_id"`
}

type TeamCompetitionRepository struct {
	db *sqlx.DB
}

func NewTeamCompetitionRepository(db *sqlx.DB) *TeamCompetitionRepository {
	return &TeamCompetitionRepository{db: db}
}

func (r *TeamCompetitionRepository) Insert(ctx context.Context, item teamcompetition.TeamCompetition) (bool, error) {
	inserted, err := r.InsertMany(ctx, []teamcompetition.TeamCompetition{item})
	if err != nil {
		return false, err
	}
	return inserted == 1, nil
}

func (r *TeamCompetitionRepository) InsertMany(ctx context.Context, items []teamcompetition.TeamCompetition) (int, error) {
	inserted := 0
	for _, batch := range chunks(items, insertBatchSize) {
		models := make([]teamCompetitionTableModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, teamCompetitionTableModel{CompetitionID: item.CompetitionID, TeamID: item.TeamID})
		}

		query, args, err := qb.InsertModels("teams_competitions", models, "ON CONFLICT (competition_id, team_id) DO NOTHING")
		if err != nil {
			return inserted, fmt.Errorf("build insert teams competitions query: %w", err)
		}

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("insert teams competitions: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("rows affected teams competitions: %w", err)
		}
		inserted += int(affected)
	}

	return inserted, nil
}

func (r *TeamCompetitionRepository) ListByLeagueCode(ctx context.Context, code string) ([]teamcompetition.TeamCompetition, error) {
	query, args, err := qb.Select("tc.competition_id", "tc.team_id").
		From("teams_competitions tc").
		Join("competitions c", "c.id = tc.competition_id").
		Where(qb.Eq("c.code", code)).
		OrderBy("tc.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by league code query: %w", err)
	}

	var rows []teamCompetitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by league code: %w", err)
	}

	out := make([]teamcompetition.TeamCompetition, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamcompetition.TeamCompetition{CompetitionID: row.CompetitionID, TeamID: row.TeamID})
	}
	return out, nil
}
