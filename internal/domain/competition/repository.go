package competition

import "context"

// Repository describes competition persistence needs from use cases.
type Repository interface {
	// Insert claims the competition code. created is false, with a zero id and
	// no error, when a row with the same code already exists.
	Insert(ctx context.Context, item Competition) (id int64, created bool, err error)
	// InsertMany returns ids aligned with items; a conflicting item yields 0.
	InsertMany(ctx context.Context, items []Competition) ([]int64, error)
	Exists(ctx context.Context, code string) (bool, error)
}
