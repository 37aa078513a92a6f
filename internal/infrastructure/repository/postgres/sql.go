package postgres

import (
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/lib/pq"
)

// insertBatchSize keeps multi-row inserts well under the 65535 bind parameter limit.
const insertBatchSize = 1000

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func toNullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func toNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

// alignIDs maps ids returned for a batch back onto the order of keys. Keys
// with no returned row map to 0.
func alignIDs(keys []int64, returned map[int64]int64) []int64 {
	out := make([]int64, len(keys))
	for i, key := range keys {
		out[i] = returned[key]
	}
	return out
}

// missingFrom returns the values of want absent from have, keeping want's order.
func missingFrom(want []int64, have []int64) []int64 {
	present := make(map[int64]struct{}, len(have))
	for _, v := range have {
		present[v] = struct{}{}
	}
	out := make([]int64, 0, len(want))
	for _, v := range want {
		if _, ok := present[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// sortedIDs orders ids drawn from one sequence by one INSERT statement, which
// matches the order of its VALUES rows.
func sortedIDs(ids []int64) []int64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func chunks[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
