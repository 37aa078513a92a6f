package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/league-importer/internal/domain/competition"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultImportMaxWorkers = 4

const (
	ImportOutcomeSuccess  = "success"
	ImportOutcomeExisting = "existing"
	ImportOutcomeNotFound = "not_found"
	ImportOutcomeInvalid  = "invalid"
	ImportOutcomeFailed   = "failed"
)

// ImportMetrics receives import outcomes; implementations must be safe for concurrent use.
type ImportMetrics interface {
	ObserveImport(outcome string, elapsed time.Duration)
	AddTeamsCreated(n int)
	AddMembersCreated(n int)
}

type ImportLeagueServiceConfig struct {
	// MaxWorkers bounds concurrent member inserts across new teams.
	MaxWorkers int
	Clock      clockwork.Clock
	Metrics    ImportMetrics
	Logger     *logging.Logger
	// AfterImport runs after every successful import, e.g. to drop cached reads.
	AfterImport func(ctx context.Context, code string)
}

type ImportLeagueService struct {
	provider        LeagueDataProvider
	competitionRepo competition.Repository
	teamRepo        team.Repository
	memberRepo      member.Repository
	linkRepo        teamcompetition.Repository

	maxWorkers  int
	clock       clockwork.Clock
	metrics     ImportMetrics
	logger      *logging.Logger
	afterImport func(ctx context.Context, code string)
}

func NewImportLeagueService(
	provider LeagueDataProvider,
	competitionRepo competition.Repository,
	teamRepo team.Repository,
	memberRepo member.Repository,
	linkRepo teamcompetition.Repository,
	cfg ImportLeagueServiceConfig,
) *ImportLeagueService {
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultImportMaxWorkers
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noopImportMetrics{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportLeagueService{
		provider:        provider,
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		memberRepo:      memberRepo,
		linkRepo:        linkRepo,
		maxWorkers:      maxWorkers,
		clock:           clock,
		metrics:         metrics,
		logger:          logger,
		afterImport:     cfg.AfterImport,
	}
}

type createdTeam struct {
	id      int64
	payload ExternalTeam
}

// ImportLeague stores the league identified by leagueCode together with the
// teams and members not stored yet, and links every team of the roster to it.
// Writes are not rolled back when a later step fails.
func (s *ImportLeagueService) ImportLeague(ctx context.Context, leagueCode string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportLeagueService.ImportLeague", leagueCodeAttr(leagueCode))
	defer span.End()

	code := NormalizeLeagueCode(leagueCode)
	ctx = logging.ContextWith(ctx, "league_code", code)
	started := s.clock.Now()
	defer func() {
		outcome := ImportOutcome(err)
		s.metrics.ObserveImport(outcome, s.clock.Since(started))
		if err != nil && outcome == ImportOutcomeFailed {
			failSpan(span, err)
		}
	}()

	if code == "" {
		return errors.Wrap(ErrInvalidInput, "league code is required")
	}

	remote, err := s.provider.FetchCompetition(ctx, code)
	if err != nil {
		return classifyFetchError(err, "fetch competition code=%s", code)
	}

	competitionID, created, err := s.competitionRepo.Insert(ctx, competition.Competition{
		SourceID: remote.ID,
		Name:     remote.Name,
		AreaName: remote.AreaName,
		Code:     code,
	})
	if err != nil {
		return errors.Wrapf(err, "insert competition code=%s", code)
	}
	if !created {
		return errors.Wrapf(ErrExistingLeague, "code=%s", code)
	}

	roster, err := s.provider.FetchCompetitionTeams(ctx, remote.ID)
	if err != nil {
		return classifyFetchError(err, "fetch teams competition_id=%d", remote.ID)
	}

	rosterBySourceID := make(map[int64]ExternalTeam, len(roster))
	rosterSourceIDs := make([]int64, 0, len(roster))
	for _, item := range roster {
		if _, dup := rosterBySourceID[item.ID]; dup {
			continue
		}
		rosterBySourceID[item.ID] = item
		rosterSourceIDs = append(rosterSourceIDs, item.ID)
	}

	missingSourceIDs, err := s.teamRepo.FilterOutExistingBySourceIDs(ctx, rosterSourceIDs)
	if err != nil {
		return errors.Wrap(err, "filter existing teams")
	}
	missing := make(map[int64]struct{}, len(missingSourceIDs))
	for _, sourceID := range missingSourceIDs {
		missing[sourceID] = struct{}{}
	}
	existingSourceIDs := make([]int64, 0, len(rosterSourceIDs)-len(missingSourceIDs))
	for _, sourceID := range rosterSourceIDs {
		if _, ok := missing[sourceID]; !ok {
			existingSourceIDs = append(existingSourceIDs, sourceID)
		}
	}

	newTeams, lostSourceIDs, err := s.insertMissingTeams(ctx, missingSourceIDs, rosterBySourceID)
	if err != nil {
		return err
	}
	existingSourceIDs = append(existingSourceIDs, lostSourceIDs...)

	teamIDs := make([]int64, 0, len(rosterSourceIDs))
	for _, item := range newTeams {
		teamIDs = append(teamIDs, item.id)
	}
	if len(existingSourceIDs) > 0 {
		idsBySourceID, err := s.teamRepo.GetIDsBySourceIDs(ctx, existingSourceIDs)
		if err != nil {
			return errors.Wrap(err, "resolve existing team ids")
		}
		for _, sourceID := range existingSourceIDs {
			id, ok := idsBySourceID[sourceID]
			if !ok {
				return errors.Newf("existing team source_id=%d has no stored row", sourceID)
			}
			teamIDs = append(teamIDs, id)
		}
	}

	if len(teamIDs) > 0 {
		links := make([]teamcompetition.TeamCompetition, 0, len(teamIDs))
		for _, teamID := range teamIDs {
			links = append(links, teamcompetition.TeamCompetition{CompetitionID: competitionID, TeamID: teamID})
		}
		if _, err := s.linkRepo.InsertMany(ctx, links); err != nil {
			return errors.Wrapf(err, "link teams to competition_id=%d", competitionID)
		}
	}

	if err := s.insertMembers(ctx, newTeams); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "league imported",
		"competition_id", competitionID,
		"teams_total", len(teamIDs),
		"teams_created", len(newTeams),
		"duration_ms", s.clock.Since(started).Milliseconds(),
	)
	if s.afterImport != nil {
		s.afterImport(ctx, code)
	}
	return nil
}

// insertMissingTeams returns the created teams and the source ids that another
// import stored between the existence check and the insert.
func (s *ImportLeagueService) insertMissingTeams(
	ctx context.Context,
	sourceIDs []int64,
	rosterBySourceID map[int64]ExternalTeam,
) ([]createdTeam, []int64, error) {
	if len(sourceIDs) == 0 {
		return nil, nil, nil
	}

	rows := make([]team.Team, 0, len(sourceIDs))
	payloads := make([]ExternalTeam, 0, len(sourceIDs))
	for _, sourceID := range sourceIDs {
		payload, ok := rosterBySourceID[sourceID]
		if !ok {
			return nil, nil, errors.Newf("team source_id=%d is not in the roster", sourceID)
		}
		payloads = append(payloads, payload)
		rows = append(rows, team.Team{
			SourceID:  payload.ID,
			ShortName: payload.ShortName,
			Address:   payload.Address,
			AreaName:  payload.AreaName,
			TLA:       payload.TLA,
		})
	}

	ids, err := s.teamRepo.InsertMany(ctx, rows)
	if err != nil {
		return nil, nil, errors.Wrap(err, "insert teams")
	}
	if len(ids) != len(rows) {
		return nil, nil, errors.Newf("insert teams returned %d ids for %d rows", len(ids), len(rows))
	}

	created := make([]createdTeam, 0, len(ids))
	var lost []int64
	for i, id := range ids {
		if id == 0 {
			lost = append(lost, payloads[i].ID)
			continue
		}
		created = append(created, createdTeam{id: id, payload: payloads[i]})
	}
	if len(lost) > 0 {
		s.logger.WarnContext(ctx, "teams stored concurrently by another import", "source_ids", lost)
	}
	s.metrics.AddTeamsCreated(len(created))
	return created, lost, nil
}

func (s *ImportLeagueService) insertMembers(ctx context.Context, teams []createdTeam) error {
	if len(teams) == 0 {
		return nil
	}

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.maxWorkers)
	for _, item := range teams {
		p.Go(func(ctx context.Context) error {
			rows := MembersForTeam(item.id, item.payload)
			if len(item.payload.Squad) == 0 {
				if _, err := s.memberRepo.Insert(ctx, rows[0]); err != nil {
					return errors.Wrapf(err, "insert coach team_id=%d", item.id)
				}
			} else if _, err := s.memberRepo.InsertMany(ctx, rows); err != nil {
				return errors.Wrapf(err, "insert squad team_id=%d", item.id)
			}
			s.metrics.AddMembersCreated(len(rows))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return errors.Wrap(err, "insert members")
	}
	return nil
}

// MembersForTeam maps a new team's payload to member rows: one per squad
// entry, or only the coach when the squad is empty.
func MembersForTeam(teamID int64, payload ExternalTeam) []member.Member {
	if len(payload.Squad) == 0 {
		coach := payload.Coach
		return []member.Member{{
			SourceID:    optionalID(coach.ID),
			Name:        coach.Name,
			Position:    member.PositionCoach,
			DateOfBirth: coach.DateOfBirth,
			Nationality: coach.Nationality,
			CurrentTeam: teamID,
		}}
	}

	out := make([]member.Member, 0, len(payload.Squad))
	for _, player := range payload.Squad {
		out = append(out, member.Member{
			SourceID:    optionalID(player.ID),
			Name:        player.Name,
			Position:    player.Position,
			DateOfBirth: player.DateOfBirth,
			Nationality: player.Nationality,
			CurrentTeam: teamID,
		})
	}
	return out
}

// NormalizeLeagueCode trims and upper-cases a league code.
func NormalizeLeagueCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ImportOutcome names the result of an import for logs and metrics.
func ImportOutcome(err error) string {
	switch {
	case err == nil:
		return ImportOutcomeSuccess
	case errors.Is(err, ErrExistingLeague):
		return ImportOutcomeExisting
	case errors.Is(err, ErrLeagueNotFound):
		return ImportOutcomeNotFound
	case errors.Is(err, ErrInvalidInput):
		return ImportOutcomeInvalid
	default:
		return ImportOutcomeFailed
	}
}

// classifyFetchError marks provider errors that reject the league code as
// ErrLeagueNotFound: a malformed code (errorCode 400) or an unknown one
// (error 404, or plain HTTP 404).
func classifyFetchError(err error, format string, args ...any) error {
	wrapped := errors.Wrapf(err, format, args...)

	var providerErr ProviderError
	if !errors.As(err, &providerErr) {
		return wrapped
	}
	if providerErr.ProviderErrorCode() == 400 ||
		providerErr.ProviderErrorStatus() == 404 ||
		providerErr.HTTPStatus() == 404 {
		return errors.Mark(wrapped, ErrLeagueNotFound)
	}
	return wrapped
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

type noopImportMetrics struct{}

func (noopImportMetrics) ObserveImport(string, time.Duration) {}
func (noopImportMetrics) AddTeamsCreated(int)                 {}
func (noopImportMetrics) AddMembersCreated(int)               {}
