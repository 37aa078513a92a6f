package postgres

type competitionTableModel struct {
	ID       int64  `db:"id"`
	SourceID int64  `db:"source_id"`
	Name     string `db:"name"`
	AreaName string `db:"area_name"`
	Code     string `db:"code"`
}

type competitionInsertModel struct {
	SourceID int64  `db:"source_id"`
	Name     string `db:"name"`
	AreaName string `db:"area_name"`
	Code     string `db:"code"`
}
