package postgres

type teamTableModel struct {
	ID        int64  `db:"id"`
	SourceID  int64  `db:"source_id"`
	ShortName string `db:"short_name"`
	Address   string `db:"address"`
	AreaName  string `db:"area_name"`
	TLA       string `db:"tla"`
}

type teamInsertModel struct {
	SourceID  int64  `db:"source_id"`
	ShortName string `db:"short_name"`
	Address   string `db:"address"`
	AreaName  string `db:"area_name"`
	TLA       string `db:"tla"`
}

type teamIDRow struct {
	ID       int64 `db:"id"`
	SourceID int64 `db:"source_id"`
}
