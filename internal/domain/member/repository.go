package member

import "context"

// Repository describes member persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, item Member) (int64, error)
	InsertMany(ctx context.Context, items []Member) ([]int64, error)
	// ListByTeams groups members of teamIDs by team. A non-empty nameFilter keeps
	// members whose name contains it, case-insensitively; teams left without
	// members are omitted.
	ListByTeams(ctx context.Context, teamIDs []int64, nameFilter string) ([]TeamMembers, error)
}
