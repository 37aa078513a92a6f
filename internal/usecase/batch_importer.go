package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
)

// LeagueImporter imports one league by code.
type LeagueImporter interface {
	ImportLeague(ctx context.Context, leagueCode string) error
}

type BatchImportInput struct {
	Codes      []string
	MaxWorkers int
}

type BatchImportResult struct {
	WorkerCount  int                       `json:"worker_count"`
	SuccessCount int                       `json:"success_count"`
	FailedCount  int                       `json:"failed_count"`
	Leagues      []BatchImportLeagueResult `json:"leagues"`
}

type BatchImportLeagueResult struct {
	Code       string `json:"code"`
	Outcome    string `json:"outcome"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// BatchImporter runs independent imports for several league codes on a worker pool.
type BatchImporter struct {
	importer LeagueImporter
	clock    clockwork.Clock
}

func NewBatchImporter(importer LeagueImporter, clock clockwork.Clock) *BatchImporter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BatchImporter{importer: importer, clock: clock}
}

// Import never fails because one league fails; per-league errors land in the result.
// Results keep the order of the first occurrence of each code.
func (b *BatchImporter) Import(ctx context.Context, input BatchImportInput) (BatchImportResult, error) {
	codes := uniqueLeagueCodes(input.Codes)
	if len(codes) == 0 {
		return BatchImportResult{}, errors.Wrap(ErrInvalidInput, "at least one league code is required")
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(codes) {
		workerCount = len(codes)
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchImportResult{}, errors.Wrap(err, "create worker pool")
	}
	defer workerPool.Release()

	rows := make([]BatchImportLeagueResult, len(codes))
	var successCount atomic.Int32

	var workers sync.WaitGroup
	for i, code := range codes {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := b.clock.Now()
			importErr := b.importer.ImportLeague(ctx, code)
			row := BatchImportLeagueResult{
				Code:       code,
				Outcome:    ImportOutcome(importErr),
				DurationMs: b.clock.Since(start).Milliseconds(),
			}
			if importErr != nil {
				row.Message = importErr.Error()
			} else {
				successCount.Add(1)
			}
			rows[i] = row
		}); err != nil {
			workers.Done()
			workers.Wait()
			return BatchImportResult{}, errors.Wrap(err, "submit import to worker pool")
		}
	}
	workers.Wait()

	success := int(successCount.Load())
	return BatchImportResult{
		WorkerCount:  workerCount,
		SuccessCount: success,
		FailedCount:  len(codes) - success,
		Leagues:      rows,
	}, nil
}

func uniqueLeagueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = NormalizeLeagueCode(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
