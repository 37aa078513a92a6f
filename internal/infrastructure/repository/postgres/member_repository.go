package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	qb "github.com/riskibarqy/league-importer/internal/platform/querybuilder"
)

const membersAggregate = `JSONB_AGG(jsonb_build_object(
	'id', m.id,
	'source_id', m.source_id,
	'name', m.name,
	'position', m.position,
	'date_of_birth', m.date_of_birth,
	'nationality', m.nationality
) ORDER BY m.id) AS members`

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Insert(ctx context.Context, item member.Member) (int64, error) {
	ids, err := r.InsertMany(ctx, []member.Member{item})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// InsertMany writes all members in one transaction.
func (r *MemberRepository) InsertMany(ctx context.Context, items []member.Member) ([]int64, error) {
	if len(items) == 0 {
		return []int64{}, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx insert members: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	out := make([]int64, 0, len(items))
	for _, batch := range chunks(items, insertBatchSize) {
		models := make([]memberInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, memberInsertModel{
				SourceID:    toNullInt64(item.SourceID),
				Name:        toNullString(item.Name),
				Position:    item.Position,
				DateOfBirth: toNullTime(item.DateOfBirth),
				Nationality: toNullString(item.Nationality),
				CurrentTeam: item.CurrentTeam,
			})
		}

		query, args, err := qb.InsertModels("members", models, "RETURNING id")
		if err != nil {
			return nil, fmt.Errorf("build insert members query: %w", err)
		}

		var ids []int64
		if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
			return nil, fmt.Errorf("insert members: %w", err)
		}
		if len(ids) != len(batch) {
			return nil, fmt.Errorf("insert members returned %d ids for %d rows", len(ids), len(batch))
		}
		out = append(out, sortedIDs(ids)...)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert members: %w", err)
	}
	return out, nil
}

func (r *MemberRepository) ListByTeams(ctx context.Context, teamIDs []int64, nameFilter string) ([]member.TeamMembers, error) {
	if len(teamIDs) == 0 {
		return []member.TeamMembers{}, nil
	}

	conditions := []qb.Condition{qb.AnyID("m.current_team", teamIDs)}
	if filter := strings.TrimSpace(nameFilter); filter != "" {
		conditions = append(conditions, qb.ILike("m.name", qb.Contains(filter)))
	}

	query, args, err := qb.Select("m.current_team AS team_id", "t.short_name AS team_name", membersAggregate).
		From("members m").
		Join("teams t", "t.id = m.current_team").
		Where(conditions...).
		GroupBy("m.current_team", "t.short_name").
		OrderBy("m.current_team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members by teams query: %w", err)
	}

	var rows []teamMembersRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members by teams: %w", err)
	}

	out := make([]member.TeamMembers, 0, len(rows))
	for _, row := range rows {
		members, err := decodeMembers(row.TeamID, row.Members)
		if err != nil {
			return nil, fmt.Errorf("decode members team_id=%d: %w", row.TeamID, err)
		}
		out = append(out, member.TeamMembers{
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Members:  members,
		})
	}
	return out, nil
}

func decodeMembers(teamID int64, raw []byte) ([]member.Member, error) {
	var items []memberJSON
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	out := make([]member.Member, 0, len(items))
	for _, item := range items {
		row := member.Member{
			ID:          item.ID,
			SourceID:    item.SourceID,
			Position:    item.Position,
			CurrentTeam: teamID,
		}
		if item.Name != nil {
			row.Name = *item.Name
		}
		if item.Nationality != nil {
			row.Nationality = *item.Nationality
		}
		if item.DateOfBirth != nil {
			parsed, err := time.Parse(time.DateOnly, *item.DateOfBirth)
			if err != nil {
				return nil, fmt.Errorf("parse date_of_birth member_id=%d: %w", item.ID, err)
			}
			row.DateOfBirth = &parsed
		}
		out = append(out, row)
	}
	return out, nil
}
