// Package store provides the durable spreadsheet-like persistence layer
// used by the outreach pipeline. Tables hold ordered rows of named string
// cells, folders hold uploaded documents.
package store

import "context"

// Row is a single table row keyed by column header.
type Row map[string]string

// Document is an uploaded file stored under a folder.
type Document struct {
	ID      string `json:"id"`
	Folder  string `json:"folder"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Store is the durable persistence interface. Implementations keep row
// insertion order stable and treat CreateTable and CreateFolder as
// idempotent.
type Store interface {
	// CreateTable creates a table with the given column headers. It is a
	// no-op when the table already exists.
	CreateTable(ctx context.Context, name string, headers []string) error

	// AppendRow adds a row to the end of a table.
	AppendRow(ctx context.Context, table string, row Row) error

	// ReadAll returns every row of a table in insertion order. A missing
	// table reads as empty, not as an error.
	ReadAll(ctx context.Context, table string) ([]Row, error)

	// FindRow returns the first row whose column matches value.
	FindRow(ctx context.Context, table, column, value string) (Row, bool, error)

	// UpdateRow merges updates into the first row whose match column
	// equals matchValue. Returns NOT_FOUND when no row matches.
	UpdateRow(ctx context.Context, table, matchColumn, matchValue string, updates Row) error

	// UpdateCell sets one cell of the first row whose match column
	// equals matchValue. Returns NOT_FOUND when no row matches.
	UpdateCell(ctx context.Context, table, matchColumn, matchValue, column, value string) error

	// CreateFolder creates (or returns) a folder and its ID.
	CreateFolder(ctx context.Context, name string) (string, error)

	// Upload stores a document under a folder and returns its ID.
	Upload(ctx context.Context, folderID, name, content string) (string, error)

	// GetDocument retrieves an uploaded document by ID. Returns
	// NOT_FOUND for unknown IDs.
	GetDocument(ctx context.Context, id string) (*Document, error)
}
