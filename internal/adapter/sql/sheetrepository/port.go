package sheetrepository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/core/ports/secondary"
	"gitlab.com/static-ip-db.net/internal/domain"
	querybuilder "gitlab.com/static-ip-db.net/internal/utils"
)

var _ secondary.SheetStore = (*SheetRepository)(nil)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSqlite   Dialect = "sqlite3"
)

var createTable = map[Dialect]string{
	DialectPostgres: `
		CREATE TABLE IF NOT EXISTS %s (
			id          BIGSERIAL PRIMARY KEY,
			store_id    TEXT NOT NULL,
			sheet_name  TEXT NOT NULL,
			cells       TEXT NOT NULL,
			appended_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	DialectSqlite: `
		CREATE TABLE IF NOT EXISTS %s (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			store_id    TEXT NOT NULL,
			sheet_name  TEXT NOT NULL,
			cells       TEXT NOT NULL,
			appended_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
}

// SheetRepository stores every sheet of every spreadsheet in one SQL table,
// one record per appended row.
type SheetRepository struct {
	db      *sqlx.DB
	dialect Dialect
	schema  string
	logger  primary.Logger
}

// Open connects with the driver matching dialect and verifies the connection
func Open(ctx context.Context, dialect Dialect, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(string(dialect), dsn)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSqlite {
		// one writer avoids "database is locked" under concurrent appends
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func New(db *sqlx.DB, dialect Dialect, schema string, logger primary.Logger) *SheetRepository {
	return &SheetRepository{
		db:      db,
		dialect: dialect,
		schema:  schema,
		logger:  logger,
	}
}

// EnsureSchema creates the rows table when it does not exist yet
func (r *SheetRepository) EnsureSchema(ctx context.Context) error {
	ddl, ok := createTable[r.dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", r.dialect)
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(ddl, r.table())); err != nil {
		r.logger.Error("Failed to create sheet rows table", "error", err)
		return fmt.Errorf("failed to create sheet rows table: %w", err)
	}
	return nil
}

func (r *SheetRepository) table() string {
	name := domain.GetSheetRowTable().GetTableName()
	if r.schema == "" {
		return name
	}
	return r.schema + "." + name
}

func (r *SheetRepository) Name() string {
	return string(r.dialect)
}

func (r *SheetRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SheetRepository) OpenSheet(ctx context.Context, storeID, sheetName string) (secondary.Sheet, error) {
	if err := r.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return &sheet{repo: r, storeID: storeID, sheetName: sheetName}, nil
}

// Rows returns the decoded cells of a sheet in append order
func (r *SheetRepository) Rows(ctx context.Context, storeID, sheetName string) ([][]interface{}, error) {
	tbl := domain.GetSheetRowTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.StoreID, tbl.SheetName, tbl.Cells, tbl.AppendedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.StoreID), storeID).
		And(fmt.Sprintf("%s = ?", tbl.SheetName), sheetName).
		OrderBy(tbl.ID, true).
		Build()

	var records []domain.SheetRow
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to select sheet rows: %w", err)
	}

	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		var cells []interface{}
		if err := json.Unmarshal([]byte(rec.Cells), &cells); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", rec.ID, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

type sheet struct {
	repo      *SheetRepository
	storeID   string
	sheetName string
}

func (s *sheet) AppendRow(ctx context.Context, cells []interface{}) error {
	encoded, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	tbl := domain.GetSheetRowTable()
	query, args := querybuilder.NewQueryBuilder(s.repo.schema).
		Insert(tbl.StoreID, tbl.SheetName, tbl.Cells).
		Into(tbl.GetTableName()).
		Values(s.storeID, s.sheetName, string(encoded)).
		Build()
	if query == "" {
		return errors.New("failed to build insert statement")
	}

	if _, err := s.repo.db.ExecContext(ctx, s.repo.db.Rebind(query), args...); err != nil {
		s.repo.logger.Error("Failed to insert sheet row", "spreadsheetId", s.storeID, "sheet", s.sheetName, "error", err)
		return fmt.Errorf("failed to insert sheet row: %w", err)
	}
	return nil
}
