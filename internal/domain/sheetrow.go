package domain

import "time"

// SheetRow is a row as persisted by the SQL and Redis stores
type SheetRow struct {
	ID         int64     `db:"id" json:"-"`
	StoreID    string    `db:"store_id" json:"storeId"`
	SheetName  string    `db:"sheet_name" json:"sheetName"`
	Cells      string    `db:"cells" json:"-"`
	AppendedAt time.Time `db:"appended_at" json:"appendedAt"`
}

type SheetRowTable struct {
	ID         string
	StoreID    string
	SheetName  string
	Cells      string
	AppendedAt string
}

func (t SheetRowTable) GetTableName() string {
	return "sheet_rows"
}

func GetSheetRowTable() SheetRowTable {
	return SheetRowTable{
		ID:         "id",
		StoreID:    "store_id",
		SheetName:  "sheet_name",
		Cells:      "cells",
		AppendedAt: "appended_at",
	}
}
