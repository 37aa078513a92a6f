package usecase

import (
	"context"
	"time"
)

// LeagueDataProvider fetches league data from the upstream football data API.
type LeagueDataProvider interface {
	FetchCompetition(ctx context.Context, code string) (ExternalCompetition, error)
	FetchCompetitionTeams(ctx context.Context, competitionID int64) ([]ExternalTeam, error)
}

// ProviderError is implemented by provider errors that carry the upstream error payload.
type ProviderError interface {
	error
	HTTPStatus() int
	// ProviderErrorCode is the payload's "errorCode" field, 0 when absent.
	ProviderErrorCode() int
	// ProviderErrorStatus is the payload's "error" field, 0 when absent.
	ProviderErrorStatus() int
}

type ExternalCompetition struct {
	ID       int64
	Name     string
	Code     string
	AreaName string
}

type ExternalTeam struct {
	ID        int64
	ShortName string
	TLA       string
	Address   string
	AreaName  string
	Coach     ExternalMember
	Squad     []ExternalMember
}

// ExternalMember is a squad player or a coach. ID is 0 when the provider sends none.
type ExternalMember struct {
	ID          int64
	Name        string
	Position    string
	DateOfBirth *time.Time
	Nationality string
}
