package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	"github.com/riskibarqy/league-importer/internal/usecase"
)

type leagueCodeParams struct {
	LeagueCode string `validate:"required,alphanum,max=16"`
	Name       string `validate:"omitempty,max=100"`
}

type teamNameParams struct {
	Name string `validate:"required,max=100"`
}

type importLeagueDTO struct {
	LeagueCode string `json:"league_code"`
	Message    string `json:"message"`
}

type teamDTO struct {
	ID        int64  `json:"id"`
	SourceID  int64  `json:"source_id"`
	ShortName string `json:"short_name"`
	TLA       string `json:"tla"`
	AreaName  string `json:"area_name"`
	Address   string `json:"address"`
}

type teamDetailsDTO struct {
	teamDTO
	Members []memberDTO `json:"members"`
}

type memberDTO struct {
	ID          int64  `json:"id"`
	SourceID    *int64 `json:"source_id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

type teamMembersDTO struct {
	TeamID   int64       `json:"team_id"`
	TeamName string      `json:"team_name"`
	Members  []memberDTO `json:"members"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return errors.Mark(errors.Wrap(err, "validate request"), usecase.ErrInvalidInput)
	}
	return nil
}

// withMembersRequested treats any non-empty members value as true unless it mentions "false".
func withMembersRequested(values []string) bool {
	joined := strings.TrimSpace(strings.Join(values, ","))
	return joined != "" && !strings.Contains(strings.ToLower(joined), "false")
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:        item.ID,
		SourceID:  item.SourceID,
		ShortName: item.ShortName,
		TLA:       item.TLA,
		AreaName:  item.AreaName,
		Address:   item.Address,
	}
}

func memberToDTO(item member.Member) memberDTO {
	out := memberDTO{
		ID:          item.ID,
		SourceID:    item.SourceID,
		Name:        item.Name,
		Position:    item.Position,
		Nationality: item.Nationality,
	}
	if item.DateOfBirth != nil {
		out.DateOfBirth = item.DateOfBirth.Format(time.DateOnly)
	}
	return out
}

func membersToDTO(items []member.Member) []memberDTO {
	out := make([]memberDTO, 0, len(items))
	for _, item := range items {
		out = append(out, memberToDTO(item))
	}
	return out
}
