package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-importer/internal/domain/competition"
	qb "github.com/riskibarqy/league-importer/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) Insert(ctx context.Context, item competition.Competition) (int64, bool, error) {
	query, args, err := qb.InsertModels("competitions", []competitionInsertModel{toCompetitionInsertModel(item)},
		"ON CONFLICT (code) DO NOTHING RETURNING id")
	if err != nil {
		return 0, false, fmt.Errorf("build insert competition query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if isNotFound(err) || isUniqueViolation(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("insert competition: %w", err)
	}

	return id, true, nil
}

func (r *CompetitionRepository) InsertMany(ctx context.Context, items []competition.Competition) ([]int64, error) {
	out := make([]int64, 0, len(items))
	for _, batch := range chunks(items, insertBatchSize) {
		models := make([]competitionInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, toCompetitionInsertModel(item))
		}

		query, args, err := qb.InsertModels("competitions", models, "ON CONFLICT (code) DO NOTHING RETURNING id, code")
		if err != nil {
			return nil, fmt.Errorf("build insert competitions query: %w", err)
		}

		var rows []competitionTableModel
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return nil, fmt.Errorf("insert competitions: %w", err)
		}

		byCode := make(map[string]int64, len(rows))
		for _, row := range rows {
			byCode[row.Code] = row.ID
		}
		seen := make(map[string]struct{}, len(batch))
		for _, item := range batch {
			// A code repeated inside the batch is only inserted once.
			if _, dup := seen[item.Code]; dup {
				out = append(out, 0)
				continue
			}
			seen[item.Code] = struct{}{}
			out = append(out, byCode[item.Code])
		}
	}

	return out, nil
}

func (r *CompetitionRepository) Exists(ctx context.Context, code string) (bool, error) {
	query, args, err := qb.Select("1").From("competitions").
		Where(qb.Eq("code", code)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build competition exists query: %w", err)
	}

	var found int
	if err := r.db.GetContext(ctx, &found, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check competition exists: %w", err)
	}

	return true, nil
}

func toCompetitionInsertModel(item competition.Competition) competitionInsertModel {
	return competitionInsertModel{
		SourceID: item.SourceID,
		Name:     item.Name,
		AreaName: item.AreaName,
		Code:     item.Code,
	}
}
