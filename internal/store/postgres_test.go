package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-outreach/internal/common/database"
	"conference-outreach/internal/common/errors"
)

// ==========================
// Test Helper Functions
// ==========================

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgres(&database.PostgresClient{DB: db}), mock
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}

// ==========================
// Table Operations
// ==========================

func TestPostgresStore_CreateTable(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO sheet_tables`).
		WithArgs("approvals", mustMarshal(t, []string{"Participant Name", "Status"})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.CreateTable(context.Background(), "approvals", []string{"Participant Name", "Status"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendRow(t *testing.T) {
	s, mock := newMockStore(t)
	row := Row{"Participant Name": "Ada Lovelace", "Status": "Pending"}

	mock.ExpectExec(`INSERT INTO sheet_rows`).
		WithArgs("approvals", mustMarshal(t, row)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.AppendRow(context.Background(), "approvals", row)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReadAll(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"data"}).
		AddRow(mustMarshal(t, Row{"Name": "Ada Lovelace"})).
		AddRow(mustMarshal(t, Row{"Name": "Grace Hopper"}))
	mock.ExpectQuery(`SELECT data FROM sheet_rows WHERE table_name = \$1 ORDER BY id`).
		WithArgs("people").
		WillReturnRows(rows)

	out, err := s.ReadAll(context.Background(), "people")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Ada Lovelace", out[0]["Name"])
	assert.Equal(t, "Grace Hopper", out[1]["Name"])
}

func TestPostgresStore_ReadAll_EmptyTable(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT data FROM sheet_rows`).
		WithArgs("empty").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	out, err := s.ReadAll(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPostgresStore_UpdateRow_NoMatchIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE sheet_rows SET data = data`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateRow(context.Background(), "approvals", "Participant Name", "Nobody", Row{"Status": "Approved"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPostgresStore_UpdateRow_Match(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE sheet_rows SET data = data`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateRow(context.Background(), "approvals", "Participant Name", "Ada Lovelace", Row{"Status": "Approved"})
	require.NoError(t, err)
}

// ==========================
// Documents
// ==========================

func TestPostgresStore_Upload(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO documents`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := s.Upload(context.Background(), "folder-1", "Ada Lovelace - Message.md", "# Outreach Message")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestPostgresStore_GetDocument_Missing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT folder_id, name, content FROM documents`).
		WithArgs("no-such-id").
		WillReturnRows(sqlmock.NewRows([]string{"folder_id", "name", "content"}))

	_, err := s.GetDocument(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
