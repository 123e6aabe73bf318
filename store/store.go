// Package store persists exported document trees in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsawler/outline/export"
)

// ErrNotFound is returned when a document id does not exist.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS blocks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	parent_id   INTEGER REFERENCES blocks(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	text        TEXT NOT NULL,
	type        TEXT NOT NULL,
	alignment   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS blocks_document ON blocks(document_id, parent_id, position);
`

// DocumentInfo describes a stored document
type DocumentInfo struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	Blocks    int
}

// Store is a SQLite-backed document store
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at dsn. Use ":memory:" for a
// private in-memory store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps in-memory databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=10000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument stores a record tree under name and returns the new document id.
func (s *Store) SaveDocument(ctx context.Context, name string, records []export.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (name, created_at) VALUES (?, ?)`,
		name, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO blocks (document_id, parent_id, position, text, type, alignment) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	if err := insertRecords(ctx, stmt, docID, sql.NullInt64{}, records); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return docID, nil
}

func insertRecords(ctx context.Context, stmt *sql.Stmt, docID int64, parent sql.NullInt64, records []export.Record) error {
	for pos, r := range records {
		res, err := stmt.ExecContext(ctx, docID, parent, pos, r.Text, r.Type, r.Alignment)
		if err != nil {
			return fmt.Errorf("failed to insert block: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := insertRecords(ctx, stmt, docID, sql.NullInt64{Int64: id, Valid: true}, r.SubBlocks); err != nil {
			return err
		}
	}
	return nil
}

type blockRow struct {
	id     int64
	parent sql.NullInt64
	record export.Record
}

// LoadDocument returns the record tree stored under id.
func (s *Store) LoadDocument(ctx context.Context, id int64) ([]export.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, parent_id, text, type, alignment FROM blocks
		 WHERE document_id = ? ORDER BY position, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()

	var all []blockRow
	for rows.Next() {
		var row blockRow
		if err := rows.Scan(&row.id, &row.parent, &row.record.Text, &row.record.Type, &row.record.Alignment); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		all = append(all, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildTree(all), nil
}

// buildTree links rows to their parents. rows must be ordered by position so
// that siblings come out in their stored order.
func buildTree(rows []blockRow) []export.Record {
	children := make(map[int64][]int)
	var roots []int
	for i, row := range rows {
		if row.parent.Valid {
			children[row.parent.Int64] = append(children[row.parent.Int64], i)
		} else {
			roots = append(roots, i)
		}
	}

	var build func(idx []int) []export.Record
	build = func(idx []int) []export.Record {
		if len(idx) == 0 {
			return nil
		}
		out := make([]export.Record, len(idx))
		for i, j := range idx {
			r := rows[j].record
			r.SubBlocks = build(children[rows[j].id])
			out[i] = r
		}
		return out
	}
	return build(roots)
}

// ListDocuments returns every stored document, oldest first.
func (s *Store) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.name, d.created_at, COUNT(b.id)
		 FROM documents d LEFT JOIN blocks b ON b.document_id = d.id
		 GROUP BY d.id ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var (
			info    DocumentInfo
			created string
		)
		if err := rows.Scan(&info.ID, &info.Name, &created, &info.Blocks); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		info.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("document %d: bad created_at %q: %w", info.ID, created, err)
		}
		docs = append(docs, info)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and its blocks.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	return nil
}
