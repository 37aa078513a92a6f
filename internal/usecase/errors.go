package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrExistingLeague rejects an import whose league code is already stored.
	ErrExistingLeague = errors.New("competition already exists in the database")
	// ErrLeagueNotFound means the provider does not know the league code.
	ErrLeagueNotFound = errors.New("competition does not exist in the provider")
)
