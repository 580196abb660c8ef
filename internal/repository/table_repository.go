package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/table-reservation/internal/model"
)

// ErrTableNotFound is returned when a table lookup fails.
var ErrTableNotFound = errors.New("table not found")

// TableRepo provides CRUD operations for restaurant tables.  Tables are
// the leaf entity of the system; reservations reference them by ID only.
// All timestamp fields are stored in UTC.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning tables and reservations.
func (r *TableRepo) DB() *sql.DB { return r.db }

// defaultTables is the canned set inserted by SeedDefaults into an
// empty registry.
var defaultTables = []model.Table{
	{Name: "Window 1", Capacity: 2},
	{Name: "Window 2", Capacity: 2},
	{Name: "Center 4", Capacity: 4},
	{Name: "Center 5", Capacity: 4},
	{Name: "Patio 6", Capacity: 6},
	{Name: "Banquet", Capacity: 8},
}

// List returns all tables ordered by ID.  When the registry is empty an
// empty slice is returned.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT id, name, capacity, created_at, updated_at FROM tables ORDER BY id`
	return r.queryTables(ctx, q)
}

// ListByMinCapacity returns all tables whose capacity is at least
// partySize, ordered by ID.  It is the first step of the availability
// check.
func (r *TableRepo) ListByMinCapacity(ctx context.Context, partySize uint32) ([]model.Table, error) {
	const q = `SELECT id, name, capacity, created_at, updated_at FROM tables WHERE capacity >= ? ORDER BY id`
	return r.queryTables(ctx, q, partySize)
}

func (r *TableRepo) queryTables(ctx context.Context, q string, args ...interface{}) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.Capacity, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a table by its ID.  It returns ErrTableNotFound
// when no row exists.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT id, name, capacity, created_at, updated_at FROM tables WHERE id = ?`
	var t model.Table
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.Capacity, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a new table.  Name and Capacity must be set; capacity
// validation happens in the handler.  After the insert the record is
// read back so the generated ID and timestamps are populated.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const qInsert = `INSERT INTO tables (name, capacity) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, t.Name, t.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	const qSelect = `SELECT id, name, capacity, created_at, updated_at FROM tables WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, t.ID).
		Scan(&t.ID, &t.Name, &t.Capacity, &t.CreatedAt, &t.UpdatedAt)
}

// Update writes name and capacity for an existing table.  Returns
// sql.ErrNoRows when the table does not exist.  Callers merge partial
// fields over the loaded record before calling.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
	const q = `UPDATE tables
	           SET name = ?, capacity = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Capacity, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a table unless a reservation on it starts strictly in
// the future, in which case ErrConflict is returned and nothing is
// deleted.  The guard and the delete run in one transaction so the
// guard cannot observe a half-deleted state.  Returns sql.ErrNoRows
// when the table does not exist.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const guard = `SELECT COUNT(*) FROM reservations WHERE table_id = ? AND start_time > UTC_TIMESTAMP()`
	var upcoming int64
	if err := tx.QueryRowContext(ctx, guard, id).Scan(&upcoming); err != nil {
		return err
	}
	if upcoming > 0 {
		return ErrConflict
	}

	const del = `DELETE FROM tables WHERE id = ?`
	res, err := tx.ExecContext(ctx, del, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SeedDefaults inserts the canned default tables when the registry is
// empty and reports how many rows were inserted.  Calling it against a
// non-empty registry is a no-op returning zero, so repeated bootstrap
// runs never duplicate the defaults.
func (r *TableRepo) SeedDefaults(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tables`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	query := `INSERT INTO tables (name, capacity) VALUES `
	args := make([]interface{}, 0, len(defaultTables)*2)
	for i, t := range defaultTables {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, t.Name, t.Capacity)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(defaultTables), nil
}
