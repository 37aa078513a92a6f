package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-importer/internal/domain/competition"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrCompetitionNotStored = errors.Mark(errors.New("competition does not exist in the database"), ErrNotFound)
	ErrCompetitionHasNoTeam = errors.Mark(errors.New("there are no teams for the given league"), ErrNotFound)
	ErrTeamNotStored        = errors.Mark(errors.New("team does not exist"), ErrNotFound)
)

// TeamDetails is a stored team, with its members when they were requested.
type TeamDetails struct {
	Team    team.Team
	Members []member.Member
}

type QueryService struct {
	competitionRepo competition.Repository
	teamRepo        team.Repository
	memberRepo      member.Repository
	linkRepo        teamcompetition.Repository
}

func NewQueryService(
	competitionRepo competition.Repository,
	teamRepo team.Repository,
	memberRepo member.Repository,
	linkRepo teamcompetition.Repository,
) *QueryService {
	return &QueryService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		memberRepo:      memberRepo,
		linkRepo:        linkRepo,
	}
}

// ListLeagueMembers returns the members of every team in the league, grouped
// by team. nameFilter keeps members whose name contains it.
func (s *QueryService) ListLeagueMembers(ctx context.Context, leagueCode, nameFilter string) ([]member.TeamMembers, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.ListLeagueMembers", leagueCodeAttr(leagueCode))
	defer span.End()

	code := NormalizeLeagueCode(leagueCode)
	if code == "" {
		return nil, errors.Wrap(ErrInvalidInput, "league code is required")
	}

	exists, err := s.competitionRepo.Exists(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "check competition exists")
	}
	if !exists {
		return nil, errors.Wrapf(ErrCompetitionNotStored, "code=%s", code)
	}

	links, err := s.linkRepo.ListByLeagueCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "list league teams")
	}
	if len(links) == 0 {
		return nil, errors.Wrapf(ErrCompetitionHasNoTeam, "code=%s", code)
	}

	teamIDs := make([]int64, 0, len(links))
	for _, link := range links {
		teamIDs = append(teamIDs, link.TeamID)
	}

	grouped, err := s.memberRepo.ListByTeams(ctx, teamIDs, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, errors.Wrap(err, "list members by teams")
	}
	if grouped == nil {
		grouped = []member.TeamMembers{}
	}
	return grouped, nil
}

// FindTeam looks a team up by its short name, case-insensitively.
func (s *QueryService) FindTeam(ctx context.Context, name string, withMembers bool) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.FindTeam", attribute.String("team.name", strings.TrimSpace(name)))
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return TeamDetails{}, errors.Wrap(ErrInvalidInput, "team name is required")
	}

	item, ok, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		return TeamDetails{}, errors.Wrap(err, "get team by name")
	}
	if !ok {
		return TeamDetails{}, errors.Wrapf(ErrTeamNotStored, "name=%s", name)
	}

	details := TeamDetails{Team: item}
	if !withMembers {
		return details, nil
	}

	grouped, err := s.memberRepo.ListByTeams(ctx, []int64{item.ID}, "")
	if err != nil {
		return TeamDetails{}, errors.Wrap(err, "list team members")
	}
	details.Members = []member.Member{}
	if len(grouped) > 0 {
		details.Members = grouped[0].Members
	}
	return details, nil
}
