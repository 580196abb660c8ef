// Package handler defines HTTP handlers for the reservation ledger.  The
// availability check and the booking path live here; both run on behalf
// of the requester identity extracted by the JWT middleware.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/queue"
	"github.com/iliyamo/table-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/table-reservation/internal/service"
)

// ReservationHandler serves the availability check, the booking path
// and reservation management.
type ReservationHandler struct {
	ReservationRepo *repository.ReservationRepo
}

// NewReservationHandler constructs a ReservationHandler with the provided
// repository, which must be non-nil.
func NewReservationHandler(reservationRepo *repository.ReservationRepo) *ReservationHandler {
	if reservationRepo == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{ReservationRepo: reservationRepo}
}

// AvailableTables handles GET /v1/tables/available.  It returns every
// table that can host the requested party for the requested window.  An
// empty items array means no table fits.
func (h *ReservationHandler) AvailableTables(c echo.Context) error {
	w, err := parseWindow(
		c.QueryParam("start_time"),
		c.QueryParam("duration_minutes"),
		c.QueryParam("party_size"),
	)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	tables, err := h.ReservationRepo.AvailableTables(c.Request().Context(), w.Start, w.DurationMinutes, w.PartySize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tables})
}

// CreateReservation handles POST /v1/reservations.  The availability
// check is re-run with the request parameters and the requested table
// must appear in the result; otherwise the booking is rejected with 409.
// The check and the insert are separate round-trips with no lock between
// them, so two concurrent callers can both succeed for the same window.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	requester, err := getRequester(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		TableID         uint64  `json:"table_id"`
		StartTime       string  `json:"start_time"`
		DurationMinutes *uint32 `json:"duration_minutes"`
		PartySize       *uint32 `json:"party_size"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_id is required"})
	}
	w, err := parseWindow(body.StartTime, optionalUint(body.DurationMinutes), optionalUint(body.PartySize))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	available, err := h.ReservationRepo.AvailableTables(ctx, w.Start, w.DurationMinutes, w.PartySize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	var booked *model.Table
	for i := range available {
		if available[i].ID == body.TableID {
			booked = &available[i]
			break
		}
	}
	if booked == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "table not available"})
	}

	res := &model.Reservation{
		TableID:         body.TableID,
		RequesterEmail:  requester,
		StartTime:       w.Start,
		DurationMinutes: w.DurationMinutes,
		PartySize:       w.PartySize,
	}
	if err := h.ReservationRepo.Create(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	// Notify downstream consumers.  Publish failures are logged by the
	// publisher and never fail the booking.
	event := queue.ReservationBookedEvent{
		ReservationID:   res.ID,
		TableID:         res.TableID,
		TableName:       booked.Name,
		RequesterEmail:  res.RequesterEmail,
		StartTime:       res.StartTime.UTC().Format(time.RFC3339),
		DurationMinutes: res.DurationMinutes,
		PartySize:       res.PartySize,
		BookedAt:        res.CreatedAt.UTC().Format(time.RFC3339),
	}
	_ = queue_publisher.PublishReservationBooked(ctx, event)

	return c.JSON(http.StatusCreated, res)
}

// ListMyReservations handles GET /v1/my-reservations.  It returns all
// reservations booked under the requester identity, newest first.
func (h *ReservationHandler) ListMyReservations(c echo.Context) error {
	requester, err := getRequester(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.ReservationRepo.ListByRequester(c.Request().Context(), requester)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteReservation handles DELETE /v1/reservations/:id.  A USER may
// cancel their own reservation, an ADMIN anyone's.  Removal is
// unconditional: an already-gone reservation yields 204, and no other
// entity is touched.
func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	requester, err := getRequester(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	existing, err := h.ReservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	if !isAdmin(c) && existing.RequesterEmail != requester {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.ReservationRepo.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}

// optionalUint renders an optional numeric field as the string form
// parseWindow expects, empty when absent.
func optionalUint(v *uint32) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}
