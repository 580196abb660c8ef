package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/repository"
)

// getRequester extracts the requester identity placed in context by the
// JWT middleware.  The identity is an opaque string (the token subject,
// an email in practice); handlers never interpret it beyond equality.
func getRequester(c echo.Context) (string, error) {
	if s, ok := c.Get("requester").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing requester in context")
}

// isAdmin reports whether the current requester carries the ADMIN role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "ADMIN"
}

// parseID parses a numeric path parameter, rejecting zero.
func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// bookingWindow holds a validated availability window: the half-open
// interval [Start, Start+DurationMinutes) for a party of PartySize.
type bookingWindow struct {
	Start           time.Time
	DurationMinutes uint32
	PartySize       uint32
}

// parseWindow validates the raw window parameters shared by the
// availability query and the booking request.  start is required and
// must be RFC3339.  duration and party are optional; when omitted the
// ledger defaults apply, when present they must be positive integers.
func parseWindow(startRaw, durationRaw, partyRaw string) (bookingWindow, error) {
	w := bookingWindow{
		DurationMinutes: repository.DefaultDurationMinutes,
		PartySize:       repository.DefaultPartySize,
	}

	startRaw = strings.TrimSpace(startRaw)
	if startRaw == "" {
		return w, errors.New("start_time is required (RFC3339)")
	}
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return w, errors.New("start_time must be RFC3339")
	}
	w.Start = start.UTC()

	if durationRaw = strings.TrimSpace(durationRaw); durationRaw != "" {
		n, err := strconv.ParseUint(durationRaw, 10, 32)
		if err != nil || n == 0 {
			return w, errors.New("duration_minutes must be a positive integer")
		}
		w.DurationMinutes = uint32(n)
	}

	if partyRaw = strings.TrimSpace(partyRaw); partyRaw != "" {
		n, err := strconv.ParseUint(partyRaw, 10, 32)
		if err != nil || n == 0 {
			return w, errors.New("party_size must be a positive integer")
		}
		w.PartySize = uint32(n)
	}

	return w, nil
}
