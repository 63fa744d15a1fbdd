// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"conference-outreach/internal/common/database"
	"conference-outreach/internal/common/errors"
)

// PostgresStore persists tables and documents in PostgreSQL. Rows are
// stored as JSONB keyed by column header, ordered by an increasing id.
type PostgresStore struct {
	db *database.PostgresClient
}

// NewPostgres wraps a database client as a Store.
func NewPostgres(db *database.PostgresClient) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing tables when they do not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sheet_tables (
			name TEXT PRIMARY KEY,
			headers JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sheet_rows (
			id BIGSERIAL PRIMARY KEY,
			table_name TEXT NOT NULL REFERENCES sheet_tables(name),
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			folder_id TEXT NOT NULL,
			name TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return errors.NewStoreUnreachableError(err)
		}
	}
	return nil
}

func (p *PostgresStore) CreateTable(ctx context.Context, name string, headers []string) error {
	payload, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("marshal headers: %w", err)
	}

	_, err = p.db.Exec(ctx,
		`INSERT INTO sheet_tables (name, headers) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		name, payload,
	)
	if err != nil {
		return errors.NewStoreUnreachableError(err)
	}
	return nil
}

func (p *PostgresStore) AppendRow(ctx context.Context, table string, row Row) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	_, err = p.db.Exec(ctx,
		`INSERT INTO sheet_rows (table_name, data) VALUES ($1, $2)`,
		table, payload,
	)
	if err != nil {
		return errors.NewStoreUnreachableError(err)
	}
	return nil
}

func (p *PostgresStore) ReadAll(ctx context.Context, table string) ([]Row, error) {
	rows, err := p.db.Query(ctx,
		`SELECT data FROM sheet_rows WHERE table_name = $1 ORDER BY id`,
		table,
	)
	if err != nil {
		return nil, errors.NewStoreUnreachableError(err)
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.NewStoreUnreachableError(err)
		}
		var row Row
		if err := json.Unmarshal(payload, &row); err != nil {
			return nil, fmt.Errorf("unmarshal row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnreachableError(err)
	}
	return out, nil
}

func (p *PostgresStore) FindRow(ctx context.Context, table, column, value string) (Row, bool, error) {
	var payload []byte
	err := p.db.QueryRow(ctx,
		`SELECT data FROM sheet_rows WHERE table_name = $1 AND data->>$2 = $3 ORDER BY id LIMIT 1`,
		table, column, value,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewStoreUnreachableError(err)
	}

	var row Row
	if err := json.Unmarshal(payload, &row); err != nil {
		return nil, false, fmt.Errorf("unmarshal row: %w", err)
	}
	return row, true, nil
}

func (p *PostgresStore) UpdateRow(ctx context.Context, table, matchColumn, matchValue string, updates Row) error {
	payload, err := json.Marshal(updates)
	if err != nil {
		return fmt.Errorf("marshal updates: %w", err)
	}

	res, err := p.db.Exec(ctx,
		`UPDATE sheet_rows SET data = data || $1
		 WHERE id = (
			SELECT id FROM sheet_rows
			WHERE table_name = $2 AND data->>$3 = $4
			ORDER BY id LIMIT 1
		 )`,
		payload, table, matchColumn, matchValue,
	)
	if err != nil {
		return errors.NewStoreUnreachableError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStoreUnreachableError(err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("row", fmt.Sprintf("table: %s, %s=%s", table, matchColumn, matchValue))
	}
	return nil
}

func (p *PostgresStore) UpdateCell(ctx context.Context, table, matchColumn, matchValue, column, value string) error {
	return p.UpdateRow(ctx, table, matchColumn, matchValue, Row{column: value})
}

func (p *PostgresStore) CreateFolder(ctx context.Context, name string) (string, error) {
	id := uuid.NewString()
	err := p.db.QueryRow(ctx,
		`INSERT INTO folders (id, name) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		id, name,
	).Scan(&id)
	if err != nil {
		return "", errors.NewStoreUnreachableError(err)
	}
	return id, nil
}

func (p *PostgresStore) Upload(ctx context.Context, folderID, name, content string) (string, error) {
	id := uuid.NewString()
	_, err := p.db.Exec(ctx,
		`INSERT INTO documents (id, folder_id, name, content) VALUES ($1, $2, $3, $4)`,
		id, folderID, name, content,
	)
	if err != nil {
		return "", errors.NewDocumentUploadError(name, err)
	}
	return id, nil
}

func (p *PostgresStore) GetDocument(ctx context.Context, id string) (*Document, error) {
	doc := &Document{ID: id}
	err := p.db.QueryRow(ctx,
		`SELECT folder_id, name, content FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.Folder, &doc.Name, &doc.Content)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("document", fmt.Sprintf("id: %s", id))
	}
	if err != nil {
		return nil, errors.NewStoreUnreachableError(err)
	}
	return doc, nil
}
