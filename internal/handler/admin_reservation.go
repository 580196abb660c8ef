// Administrative reservation endpoints: the unfiltered listing and the
// direct merge-patch update.  Both are registered under the ADMIN group.
package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/repository"
)

// ListAllReservations handles GET /v1/admin/reservations.
func (h *ReservationHandler) ListAllReservations(c echo.Context) error {
	items, err := h.ReservationRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateReservation handles PATCH /v1/admin/reservations/:id.  Provided
// fields are merged over the stored record and written as given; the
// availability check is not re-run, so a patch can move a reservation
// onto an occupied window.  Numeric fields must be positive when present
// and start_time must be RFC3339.
func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		TableID         *uint64 `json:"table_id"`
		StartTime       *string `json:"start_time"`
		DurationMinutes *uint32 `json:"duration_minutes"`
		PartySize       *uint32 `json:"party_size"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	res, err := h.ReservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}

	if body.TableID != nil {
		if *body.TableID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_id must be a positive integer"})
		}
		res.TableID = *body.TableID
	}
	if body.StartTime != nil {
		start, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.StartTime))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
		}
		res.StartTime = start.UTC()
	}
	if body.DurationMinutes != nil {
		if *body.DurationMinutes == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_minutes must be a positive integer"})
		}
		res.DurationMinutes = *body.DurationMinutes
	}
	if body.PartySize != nil {
		if *body.PartySize == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be a positive integer"})
		}
		res.PartySize = *body.PartySize
	}

	if err := h.ReservationRepo.Update(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update reservation"})
	}
	return c.JSON(http.StatusOK, res)
}
