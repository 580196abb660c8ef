package model

import "time"

// Reservation books one table for a bounded time interval on behalf of
// one requester.  The interval is half-open: it spans
// [StartTime, StartTime+DurationMinutes).  A reservation's presence in
// the store is its only state; there is no status field, removal means
// cancellation.
//
// Fields:
//
//	ID              – primary key identifier.
//	TableID         – table being reserved.
//	RequesterEmail  – opaque identity of the user who booked it.
//	StartTime       – absolute start of the interval, stored in UTC.
//	DurationMinutes – length of the interval in minutes.
//	PartySize       – number of guests, never larger than the table capacity
//	                  at booking time.
//	CreatedAt       – insertion timestamp, immutable thereafter.
type Reservation struct {
	ID              uint64    `json:"id"`               // reservations.id
	TableID         uint64    `json:"table_id"`         // reservations.table_id
	RequesterEmail  string    `json:"requester_email"`  // reservations.requester_email
	StartTime       time.Time `json:"start_time"`       // reservations.start_time
	DurationMinutes uint32    `json:"duration_minutes"` // reservations.duration_minutes
	PartySize       uint32    `json:"party_size"`       // reservations.party_size
	CreatedAt       time.Time `json:"created_at"`       // reservations.created_at
}
