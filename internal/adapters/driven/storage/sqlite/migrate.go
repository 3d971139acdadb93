package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/vitae/internal/logger"
)

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		raw_content TEXT,
		structured_content TEXT,
		uploaded_at DATETIME NOT NULL,
		group_id TEXT,
		embedding BLOB
	)
`

// legacyColumns existed in earlier schema generations and are dropped when present.
var legacyColumns = []string{"filename", "json_content", "job_data_json"}

// addedColumns were introduced after the first schema generation.
var addedColumns = []struct {
	name string
	decl string
}{
	{"raw_content", "TEXT"},
	{"structured_content", "TEXT"},
	{"group_id", "TEXT"},
	{"embedding", "BLOB"},
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_documents_type_uploaded ON documents(type, uploaded_at)",
	"CREATE INDEX IF NOT EXISTS idx_documents_group ON documents(group_id)",
}

// migrate brings the documents table to the canonical schema.
// Only failing to connect is an error; every schema step is best effort.
func (s *Store) migrate(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createDocumentsTable); err != nil {
		logger.Warn("Migration: creating documents table: %v", err)
	}

	cols, err := tableColumns(ctx, db, "documents")
	if err != nil {
		logger.Warn("Migration: reading documents columns: %v", err)
		cols = map[string]bool{}
	}

	for _, name := range legacyColumns {
		if !cols[name] {
			continue
		}
		// DROP COLUMN needs SQLite 3.35+; older engines keep the unused column.
		if _, err := db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE documents DROP COLUMN %s", name)); err != nil {
			logger.Warn("Migration: dropping legacy column %s: %v", name, err)
			continue
		}
		logger.Debug("Migration: dropped legacy column %s", name)
	}

	for _, col := range addedColumns {
		if cols[col.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE documents ADD COLUMN %s %s", col.name, col.decl)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Warn("Migration: adding column %s: %v", col.name, err)
			continue
		}
		logger.Debug("Migration: added column %s", col.name)
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Warn("Migration: creating index: %v", err)
		}
	}

	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		logger.Warn("Migration: enabling WAL: %v", err)
	} else {
		logger.Debug("Migration: journal mode %s", mode)
	}

	return nil
}

// tableColumns returns the set of column names of table.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("querying table info: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table info: %w", err)
	}
	return cols, nil
}
