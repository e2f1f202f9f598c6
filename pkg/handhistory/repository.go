package handhistory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"pokercore/pkg/db"
)

// Repository stores hand histories
type Repository interface {
	Save(ctx context.Context, h *History) error
	Get(ctx context.Context, id uuid.UUID) (*History, error)
	ListByTable(ctx context.Context, table string, limit int) ([]*History, error)
}

// MemoryRepository keeps hand histories in process, it is used when no database is configured
// Histories are stored encoded so callers can never mutate a saved record
type MemoryRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	data  map[uuid.UUID][]byte
}

// NewMemoryRepository returns an empty MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[uuid.UUID][]byte),
	}
}

// Save stores or replaces a hand history
func (m *MemoryRepository) Save(_ context.Context, h *History) error {
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[h.ID]; !ok {
		m.order = append(m.order, h.ID)
	}
	m.data[h.ID] = b

	return nil
}

// Get returns a hand history by ID
func (m *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*History, error) {
	m.mu.RLock()
	b, ok := m.data[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	return decode(b)
}

// ListByTable returns the most recent hands of a table, newest first
func (m *MemoryRepository) ListByTable(_ context.Context, table string, limit int) ([]*History, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	histories := make([]*History, 0)
	for i := len(m.order) - 1; i >= 0 && (limit <= 0 || len(histories) < limit); i-- {
		h, err := decode(m.data[m.order[i]])
		if err != nil {
			return nil, err
		}

		if h.Table == table {
			histories = append(histories, h)
		}
	}

	return histories, nil
}

func decode(b []byte) (*History, error) {
	var h History
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, err
	}

	return &h, nil
}

// PostgresRepository stores hand histories in the hand_histories table
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a repository backed by the database handle
// A nil handle uses the shared instance
func NewPostgresRepository(dbh *sql.DB) *PostgresRepository {
	if dbh == nil {
		dbh = db.Instance()
	}

	return &PostgresRepository{db: dbh}
}

// Save stores or replaces a hand history
func (p *PostgresRepository) Save(ctx context.Context, h *History) error {
	const query = `
INSERT INTO hand_histories (id, table_name, started_at, pot, rake, body)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET table_name = EXCLUDED.table_name,
    started_at = EXCLUDED.started_at,
    pot = EXCLUDED.pot,
    rake = EXCLUDED.rake,
    body = EXCLUDED.body`

	body, err := json.Marshal(h)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, query, h.ID, h.Table, h.StartedAt, h.Pot, h.Rake, body)
	return err
}

func getHistoryByRow(row db.Scanner) (*History, error) {
	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return decode(body)
}

// Get returns a hand history by ID
func (p *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*History, error) {
	const query = `
SELECT body
FROM hand_histories
WHERE id = $1`

	return getHistoryByRow(p.db.QueryRowContext(ctx, query, id))
}

// ListByTable returns the most recent hands of a table, newest first
func (p *PostgresRepository) ListByTable(ctx context.Context, table string, limit int) ([]*History, error) {
	const query = `
SELECT body
FROM hand_histories
WHERE table_name = $1
ORDER BY started_at DESC
LIMIT $2`

	if limit <= 0 {
		limit = 100
	}

	rows, err := p.db.QueryContext(ctx, query, table, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := make([]*History, 0)
	for rows.Next() {
		h, err := getHistoryByRow(rows)
		if err != nil {
			return nil, err
		}

		histories = append(histories, h)
	}

	return histories, rows.Err()
}
