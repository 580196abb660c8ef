package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/table-reservation/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations for reservations and the
// availability check that guards their creation.  Reservations reference
// tables by ID only; the reference is validated by the availability
// check at creation time, not by a foreign key.  All timestamps are
// stored in UTC.
type ReservationRepo struct {
	db     *sql.DB
	tables *TableRepo
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database.  The table repo backs the capacity filter of the
// availability check.
func NewReservationRepo(db *sql.DB, tables *TableRepo) *ReservationRepo {
	return &ReservationRepo{db: db, tables: tables}
}

const reservationColumns = `id, table_id, requester_email, start_time, duration_minutes, party_size, created_at`

func scanReservation(row interface{ Scan(...interface{}) error }, res *model.Reservation) error {
	return row.Scan(&res.ID, &res.TableID, &res.RequesterEmail, &res.StartTime,
		&res.DurationMinutes, &res.PartySize, &res.CreatedAt)
}

// AvailableTables returns the tables that can host a party of partySize
// for the half-open window [start, start+durationMinutes).  It loads
// the capacity-eligible tables, then every reservation on them in a
// single query, and applies FilterAvailableTables.  Any fetch error
// aborts the whole call; partial results are never returned.
func (r *ReservationRepo) AvailableTables(ctx context.Context, start time.Time, durationMinutes, partySize uint32) ([]model.Table, error) {
	candidates, err := r.tables.ListByMinCapacity(ctx, partySize)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []model.Table{}, nil
	}

	ids := make([]interface{}, 0, len(candidates))
	placeholders := make([]string, 0, len(candidates))
	for _, t := range candidates {
		ids = append(ids, t.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE table_id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byTable := make(map[uint64][]model.Reservation)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		byTable[res.TableID] = append(byTable[res.TableID], res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return FilterAvailableTables(candidates, byTable, start, durationMinutes, partySize), nil
}

// Create inserts a new reservation and reads the row back so the
// generated ID and created_at are populated.  The availability check
// runs in the handler before this call; there is no lock spanning the
// check and the insert, so two concurrent callers targeting the same
// window can both commit.  Correctness holds within one serialized
// caller only.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const qInsert = `INSERT INTO reservations (table_id, requester_email, start_time, duration_minutes, party_size)
	                 VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, qInsert,
		res.TableID, res.RequesterEmail, res.StartTime.UTC(), res.DurationMinutes, res.PartySize)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	const qSelect = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, qSelect, res.ID), res)
}

// GetByID retrieves a reservation by its ID.  Returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByRequester returns all reservations booked under the given
// identity, newest first.  When none exist an empty slice is returned.
func (r *ReservationRepo) ListByRequester(ctx context.Context, email string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE requester_email = ?
	           ORDER BY created_at DESC, id DESC`
	return r.queryReservations(ctx, q, email)
}

// ListAll returns every reservation in the store ordered by ID.  It
// backs the administrative listing.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY id`
	return r.queryReservations(ctx, q)
}

func (r *ReservationRepo) queryReservations(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable fields of an existing reservation.  The
// availability check is not re-run here: a patch that moves a
// reservation onto an occupied window is applied as given.  Existence
// is the caller's concern; MySQL reports zero affected rows for a
// no-op patch, so RowsAffected is not inspected.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET table_id = ?, start_time = ?, duration_minutes = ?, party_size = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		res.TableID, res.StartTime.UTC(), res.DurationMinutes, res.PartySize, res.ID)
	return err
}

// Delete removes a reservation by ID.  Removal is unconditional: a
// missing row is not an error and there are no cascading effects.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
