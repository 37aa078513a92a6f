package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type importerFunc func(ctx context.Context, code string) error

func (f importerFunc) ImportLeague(ctx context.Context, code string) error {
	return f(ctx, code)
}

func TestBatchImporter_Import(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var seen []string
	importer := importerFunc(func(_ context.Context, code string) error {
		mu.Lock()
		seen = append(seen, code)
		mu.Unlock()

		switch code {
		case "AR":
			return errors.Wrap(ErrExistingLeague, "code=AR")
		case "XX":
			return errors.Mark(errors.New("unknown"), ErrLeagueNotFound)
		default:
			return nil
		}
	})

	batch := NewBatchImporter(importer, clockwork.NewFakeClock())
	result, err := batch.Import(context.Background(), BatchImportInput{
		Codes:      []string{"pl", "AR", " xx ", "PL", ""},
		MaxWorkers: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.WorkerCount)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Leagues, 3)
	assert.Equal(t, BatchImportLeagueResult{Code: "PL", Outcome: ImportOutcomeSuccess}, result.Leagues[0])
	assert.Equal(t, ImportOutcomeExisting, result.Leagues[1].Outcome)
	assert.Equal(t, "XX", result.Leagues[2].Code)
	assert.Equal(t, ImportOutcomeNotFound, result.Leagues[2].Outcome)
	assert.NotEmpty(t, result.Leagues[2].Message)
	assert.ElementsMatch(t, []string{"PL", "AR", "XX"}, seen)
}

func TestBatchImporter_Import_RequiresCodes(t *testing.T) {
	t.Parallel()

	batch := NewBatchImporter(importerFunc(func(context.Context, string) error { return nil }), nil)
	_, err := batch.Import(context.Background(), BatchImportInput{Codes: []string{" ", ""}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
