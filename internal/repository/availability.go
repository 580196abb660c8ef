package repository

// availability.go holds the pure interval logic behind the availability
// check.  Keeping it free of database handles lets the overlap rules be
// exercised directly in tests.

import (
	"time"

	"github.com/iliyamo/table-reservation/internal/model"
)

// Defaults applied when a booking request omits the optional fields.
// They are defined once here; handlers and repositories must not carry
// their own literals for these values.
const (
	// DefaultDurationMinutes is assumed for requests and for stored
	// reservations whose duration is missing.
	DefaultDurationMinutes = 60
	// DefaultPartySize is assumed for requests that omit party_size.
	DefaultPartySize = 1
)

// effectiveDuration converts a stored duration to a time.Duration,
// substituting DefaultDurationMinutes when the stored value is zero.
func effectiveDuration(minutes uint32) time.Duration {
	if minutes == 0 {
		minutes = DefaultDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// overlaps reports whether an existing reservation conflicts with the
// half-open window [wantStart, wantStart+wantDur).  Two intervals
// conflict iff existingStart < wantEnd && wantStart < existingEnd, so a
// reservation ending exactly when another begins is not a conflict.
func overlaps(existing *model.Reservation, wantStart time.Time, wantDur time.Duration) bool {
	wantEnd := wantStart.Add(wantDur)
	existingEnd := existing.StartTime.Add(effectiveDuration(existing.DurationMinutes))
	return existing.StartTime.Before(wantEnd) && wantStart.Before(existingEnd)
}

// FilterAvailableTables returns the tables that can host a party of
// partySize for the window starting at start and lasting
// durationMinutes.  A table qualifies when its capacity is at least
// partySize and none of its reservations in byTable overlap the window.
// Tables with no entry in byTable are treated as fully free.
func FilterAvailableTables(tables []model.Table, byTable map[uint64][]model.Reservation, start time.Time, durationMinutes, partySize uint32) []model.Table {
	wantDur := effectiveDuration(durationMinutes)
	out := make([]model.Table, 0, len(tables))
	for _, t := range tables {
		if t.Capacity < partySize {
			continue
		}
		free := true
		for i := range byTable[t.ID] {
			if overlaps(&byTable[t.ID][i], start, wantDur) {
				free = false
				break
			}
		}
		if free {
			out = append(out, t)
		}
	}
	return out
}
