package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/pipeline"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "vitae.db"

// dsnPragmas are applied to every connection.
const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

const documentColumns = "id, type, raw_content, structured_content, uploaded_at, group_id, embedding"

// Store is the SQLite document store. It holds no open connection between
// operations, so the zero-cost Store value may be shared freely.
type Store struct {
	path     string
	embedder driven.Embedder
}

// Option configures a Store.
type Option func(*Store)

// WithEmbedder sets the embedder used to compute missing embeddings on Save.
// Without one, documents are stored with whatever embedding they carry.
func WithEmbedder(embedder driven.Embedder) Option {
	return func(s *Store) {
		s.embedder = embedder
	}
}

// NewStore creates a SQLite store in the specified data directory and brings
// its schema up to date. If dataDir is empty, defaults to ~/.vitae/data.
func NewStore(dataDir string, opts ...Option) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".vitae", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{path: filepath.Join(dataDir, dbFileName)}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("initialising database: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// open returns a single-connection handle. Callers close it when done.
func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// withDB runs fn on a fresh connection and closes it afterwards.
func (s *Store) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save upserts a document. A missing embedding is computed first and set on
// doc. Type and upload time are fixed by the first save of an ID.
func (s *documentStore) Save(ctx context.Context, doc *domain.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	if doc.Embedding == nil && doc.HasText() && s.store.embedder != nil {
		doc.Embedding = pipeline.Embed(ctx, s.store.embedder, doc.ID, doc.Text())
	}

	err := s.store.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO documents (`+documentColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				raw_content = excluded.raw_content,
				structured_content = excluded.structured_content,
				group_id = excluded.group_id,
				embedding = excluded.embedding
		`, doc.ID, string(doc.Type), nullString(doc.RawContent), nullString(doc.StructuredContent),
			formatTime(doc.UploadedAt), nullString(doc.GroupID), embeddingArg(doc.Embedding))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("saving document: %w", err)
	}
	return doc.ID, nil
}

// GetByID retrieves a document, or nil when absent.
func (s *documentStore) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var doc *domain.Document
	err := s.store.withDB(ctx, func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
		d, err := scanDocument(row)
		if err != nil {
			return err
		}
		doc = d
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}

// GetByType returns documents of a type, newest first. Documents with equal
// upload times are returned most recently inserted first.
func (s *documentStore) GetByType(ctx context.Context, docType domain.DocumentType) ([]domain.Document, error) {
	return s.query(ctx, `
		SELECT `+documentColumns+` FROM documents
		WHERE type = ?
		ORDER BY uploaded_at DESC, rowid DESC
	`, string(docType))
}

// GetLatestResume returns the text of the newest résumé.
func (s *documentStore) GetLatestResume(ctx context.Context) (string, bool, error) {
	var raw, structured sql.NullString
	err := s.store.withDB(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `
			SELECT raw_content, structured_content FROM documents
			WHERE type = ?
			ORDER BY uploaded_at DESC, rowid DESC
			LIMIT 1
		`, string(domain.DocumentTypeResume)).Scan(&raw, &structured)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting latest resume: %w", err)
	}

	if strings.TrimSpace(structured.String) != "" {
		return structured.String, true, nil
	}
	return raw.String, true, nil
}

// GetByGroup returns a generation set ordered by type.
func (s *documentStore) GetByGroup(ctx context.Context, groupID string) ([]domain.Document, error) {
	docs, err := s.query(ctx, `
		SELECT `+documentColumns+` FROM documents
		WHERE group_id = ?
		ORDER BY uploaded_at ASC, rowid ASC
	`, groupID)
	if err != nil {
		return nil, err
	}
	domain.SortGenerationSet(docs)
	return docs, nil
}

// ListGroupIDs returns every group ID, most recently active group first.
func (s *documentStore) ListGroupIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.store.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT group_id FROM documents
			WHERE group_id IS NOT NULL AND group_id <> ''
			GROUP BY group_id
			ORDER BY MAX(uploaded_at) DESC, group_id
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return ids, nil
}

// Delete removes a document. Returns false when no row had that ID.
func (s *documentStore) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := s.store.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("deleting document: %w", err)
	}
	return affected > 0, nil
}

func (s *documentStore) query(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.store.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		docs, err = scanDocuments(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	return docs, nil
}

// ==================== Helper Functions ====================

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument scans a single document row.
func scanDocument(row rowScanner) (*domain.Document, error) {
	var (
		doc                   domain.Document
		docType               string
		raw, structured, grp  sql.NullString
		uploadedAt, embedding any
	)

	if err := row.Scan(&doc.ID, &docType, &raw, &structured, &uploadedAt, &grp, &embedding); err != nil {
		return nil, err
	}

	doc.Type = domain.DocumentType(docType)
	doc.RawContent = raw.String
	doc.StructuredContent = structured.String
	doc.GroupID = grp.String

	t, err := parseTime(uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	doc.UploadedAt = t

	vec, err := decodeEmbedding(embedding)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	doc.Embedding = vec

	return &doc, nil
}

// scanDocuments scans multiple document rows.
func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}
