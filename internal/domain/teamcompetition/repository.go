package teamcompetition

import "context"

// Repository describes team-competition link persistence needs from use cases.
// Inserting an existing pair is a no-op.
type Repository interface {
	Insert(ctx context.Context, item TeamCompetition) (created bool, err error)
	InsertMany(ctx context.Context, items []TeamCompetition) (inserted int, err error)
	ListByLeagueCode(ctx context.Context, code string) ([]TeamCompetition, error)
}
