package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, item Team) (id int64, created bool, err error)
	// InsertMany returns ids aligned with items. A team whose source id was
	// inserted concurrently by someone else yields 0.
	InsertMany(ctx context.Context, items []Team) ([]int64, error)
	GetByName(ctx context.Context, name string) (Team, bool, error)
	// FilterOutExistingBySourceIDs returns the subset of sourceIDs with no stored team.
	FilterOutExistingBySourceIDs(ctx context.Context, sourceIDs []int64) ([]int64, error)
	// GetIDsBySourceIDs maps source id to surrogate id for the stored teams.
	GetIDsBySourceIDs(ctx context.Context, sourceIDs []int64) (map[int64]int64, error)
}
