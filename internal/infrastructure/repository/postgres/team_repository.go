package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	qb "github.com/riskibarqy/league-importer/internal/platform/querybuilder"
)

const teamColumns = "id, source_id, short_name, address, area_name, tla"

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) (int64, bool, error) {
	ids, err := r.InsertMany(ctx, []team.Team{item})
	if err != nil {
		return 0, false, err
	}
	return ids[0], ids[0] != 0, nil
}

func (r *TeamRepository) InsertMany(ctx context.Context, items []team.Team) ([]int64, error) {
	out := make([]int64, 0, len(items))
	for _, batch := range chunks(items, insertBatchSize) {
		models := make([]teamInsertModel, 0, len(batch))
		keys := make([]int64, 0, len(batch))
		for _, item := range batch {
			models = append(models, teamInsertModel{
				SourceID:  item.SourceID,
				ShortName: item.ShortName,
				Address:   item.Address,
				AreaName:  item.AreaName,
				TLA:       item.TLA,
			})
			keys = append(keys, item.SourceID)
		}

		query, args, err := qb.InsertModels("teams", models, "ON CONFLICT (source_id) DO NOTHING RETURNING id, source_id")
		if err != nil {
			return nil, fmt.Errorf("build insert teams query: %w", err)
		}

		var rows []teamIDRow
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return nil, fmt.Errorf("insert teams: %w", err)
		}

		returned := make(map[int64]int64, len(rows))
		for _, row := range rows {
			returned[row.SourceID] = row.ID
		}
		out = append(out, alignIDs(keys, returned)...)
	}

	return out, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns).From("teams").
		Where(qb.ILike("short_name", qb.EscapeLike(strings.TrimSpace(name)))).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by name query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by name: %w", err)
	}

	return team.Team{
		ID:        row.ID,
		SourceID:  row.SourceID,
		ShortName: row.ShortName,
		Address:   row.Address,
		AreaName:  row.AreaName,
		TLA:       row.TLA,
	}, true, nil
}

func (r *TeamRepository) FilterOutExistingBySourceIDs(ctx context.Context, sourceIDs []int64) ([]int64, error) {
	if len(sourceIDs) == 0 {
		return []int64{}, nil
	}

	rows, err := r.selectBySourceIDs(ctx, sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("select existing teams: %w", err)
	}

	existing := make([]int64, 0, len(rows))
	for _, row := range rows {
		existing = append(existing, row.SourceID)
	}
	return missingFrom(sourceIDs, existing), nil
}

func (r *TeamRepository) GetIDsBySourceIDs(ctx context.Context, sourceIDs []int64) (map[int64]int64, error) {
	if len(sourceIDs) == 0 {
		return map[int64]int64{}, nil
	}

	rows, err := r.selectBySourceIDs(ctx, sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("select team ids by source ids: %w", err)
	}

	out := make(map[int64]int64, len(rows))
	for _, row := range rows {
		out[row.SourceID] = row.ID
	}
	return out, nil
}

func (r *TeamRepository) selectBySourceIDs(ctx context.Context, sourceIDs []int64) ([]teamIDRow, error) {
	query, args, err := qb.Select("id", "source_id").From("teams").
		Where(qb.AnyID("source_id", sourceIDs)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by source ids query: %w", err)
	}

	var rows []teamIDRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
