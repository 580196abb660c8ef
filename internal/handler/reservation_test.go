package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/table-reservation/internal/repository"
)

func newBookingHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	tables := repository.NewTableRepo(db)
	return NewReservationHandler(repository.NewReservationRepo(db, tables)), mock
}

// postReservation runs CreateReservation as an authenticated USER and
// returns the recorder.
func postReservation(t *testing.T, h *ReservationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("requester", "diner@example.com")
	c.Set("role", "USER")
	require.NoError(t, h.CreateReservation(c))
	return rec
}

const capacityQuery = `SELECT id, name, capacity, created_at, updated_at FROM tables WHERE capacity >= ? ORDER BY id`

func tableRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "capacity", "created_at", "updated_at"}).
		AddRow(1, "Center 4", 4, now, now)
}

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "table_id", "requester_email", "start_time", "duration_minutes", "party_size", "created_at"})
}

func TestCreateReservationConflictingWindow(t *testing.T) {
	h, mock := newBookingHandler(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(capacityQuery)).
		WithArgs(2).
		WillReturnRows(tableRows(now))
	// An existing 18:00 booking of the default length blocks 18:30.
	mock.ExpectQuery(`FROM reservations\s+WHERE table_id IN \(\?\)`).
		WithArgs(1).
		WillReturnRows(reservationRows().
			AddRow(5, 1, "other@example.com", time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), 60, 2, now))

	rec := postReservation(t, h, `{"table_id":1,"start_time":"2026-09-01T18:30:00Z","party_size":2}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "table not available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationUnknownTable(t *testing.T) {
	h, mock := newBookingHandler(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(capacityQuery)).
		WithArgs(1).
		WillReturnRows(tableRows(now))
	mock.ExpectQuery(`FROM reservations\s+WHERE table_id IN \(\?\)`).
		WithArgs(1).
		WillReturnRows(reservationRows())

	// Table 1 is free, but the request targets an id the availability
	// result does not contain.
	rec := postReservation(t, h, `{"table_id":99,"start_time":"2026-09-01T19:00:00Z"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "table not available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationMissingTableID(t *testing.T) {
	h, mock := newBookingHandler(t)

	rec := postReservation(t, h, `{"start_time":"2026-09-01T19:00:00Z"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
