// internal/store/memory.go
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"conference-outreach/internal/common/errors"
)

// MemoryStore is an in-memory Store used for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	headers map[string][]string
	tables  map[string][]Row
	folders map[string]string // folder ID -> name
	docs    map[string]*Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		headers: make(map[string][]string),
		tables:  make(map[string][]Row),
		folders: make(map[string]string),
		docs:    make(map[string]*Document),
	}
}

func (m *MemoryStore) CreateTable(_ context.Context, name string, headers []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tables[name]; exists {
		return nil
	}
	m.headers[name] = append([]string(nil), headers...)
	m.tables[name] = []Row{}
	return nil
}

func (m *MemoryStore) AppendRow(_ context.Context, table string, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := make(Row, len(row))
	for k, v := range row {
		cloned[k] = v
	}
	m.tables[table] = append(m.tables[table], cloned)
	return nil
}

func (m *MemoryStore) ReadAll(_ context.Context, table string) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.tables[table]
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		cloned := make(Row, len(row))
		for k, v := range row {
			cloned[k] = v
		}
		out = append(out, cloned)
	}
	return out, nil
}

func (m *MemoryStore) FindRow(_ context.Context, table, column, value string) (Row, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, row := range m.tables[table] {
		if row[column] == value {
			cloned := make(Row, len(row))
			for k, v := range row {
				cloned[k] = v
			}
			return cloned, true, nil
		}
	}
	return nil, false, nil
}

func (m *MemoryStore) UpdateRow(_ context.Context, table, matchColumn, matchValue string, updates Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.tables[table] {
		if row[matchColumn] == matchValue {
			for k, v := range updates {
				row[k] = v
			}
			return nil
		}
	}
	return errors.NewNotFoundError("row", fmt.Sprintf("table: %s, %s=%s", table, matchColumn, matchValue))
}

func (m *MemoryStore) UpdateCell(ctx context.Context, table, matchColumn, matchValue, column, value string) error {
	return m.UpdateRow(ctx, table, matchColumn, matchValue, Row{column: value})
}

func (m *MemoryStore) CreateFolder(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.folders {
		if existing == name {
			return id, nil
		}
	}
	id := uuid.NewString()
	m.folders[id] = name
	return id, nil
}

func (m *MemoryStore) Upload(_ context.Context, folderID, name, content string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := &Document{
		ID:      uuid.NewString(),
		Folder:  folderID,
		Name:    name,
		Content: content,
	}
	m.docs[doc.ID] = doc
	return doc.ID, nil
}

func (m *MemoryStore) GetDocument(_ context.Context, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, errors.NewNotFoundError("document", fmt.Sprintf("id: %s", id))
	}
	cloned := *doc
	return &cloned, nil
}
