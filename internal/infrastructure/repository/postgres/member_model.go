package postgres

import "database/sql"

type memberInsertModel struct {
	SourceID    sql.NullInt64  `db:"source_id"`
	Name        sql.NullString `db:"name"`
	Position    string         `db:"position"`
	DateOfBirth sql.NullTime   `db:"date_of_birth"`
	Nationality sql.NullString `db:"nationality"`
	CurrentTeam int64          `db:"current_team"`
}

type teamMembersRow struct {
	TeamID   int64  `db:"team_id"`
	TeamName string `db:"team_name"`
	Members  []byte `db:"members"`
}

// memberJSON is one element of the jsonb_agg built by ListByTeams.
type memberJSON struct {
	ID          int64   `json:"id"`
	SourceID    *int64  `json:"source_id"`
	Name        *string `json:"name"`
	Position    string  `json:"position"`
	DateOfBirth *string `json:"date_of_birth"`
	Nationality *string `json:"nationality"`
}
