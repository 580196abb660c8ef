// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedEvent is published when a reservation is successfully
// created.  It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary database.
type ReservationBookedEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	TableID         uint64 `json:"table_id"`
	TableName       string `json:"table_name"`
	RequesterEmail  string `json:"requester_email"`
	StartTime       string `json:"start_time"`
	DurationMinutes uint32 `json:"duration_minutes"`
	PartySize       uint32 `json:"party_size"`
	BookedAt        string `json:"booked_at"`
}
