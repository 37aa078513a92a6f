package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Batched member and team inserts expand to one placeholder tuple per row.
	valuesTuplesRegex = regexp.MustCompile(`VALUES (\([^()]*\))((?:, \([^()]*\))+)`)
	valuesTupleRegex  = regexp.MustCompile(`\([^()]*\)`)
)

// formatDBQueryForTrace keeps span attributes short: whitespace is collapsed,
// batched VALUES lists keep only their first tuple and the result is truncated.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = valuesTuplesRegex.ReplaceAllStringFunc(normalized, func(match string) string {
		parts := valuesTuplesRegex.FindStringSubmatch(match)
		extra := len(valuesTupleRegex.FindAllString(parts[2], -1))
		return fmt.Sprintf("VALUES %s /* +%d rows */", parts[1], extra)
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
