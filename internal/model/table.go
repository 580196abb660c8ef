package model

import "time"

// Table describes a physical seating unit in the restaurant.  Tables
// carry a display name and a fixed seating capacity which bounds the
// party size a reservation may bring.  Names are labels only and are
// not required to be unique.
//
// Fields:
//
//	ID        – primary key identifier, assigned by the store.
//	Name      – display label for the table.
//	Capacity  – maximum servable party size, always positive.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Table struct {
	ID        uint64    `json:"id"`         // tables.id
	Name      string    `json:"name"`       // tables.name
	Capacity  uint32    `json:"capacity"`   // tables.capacity
	CreatedAt time.Time `json:"created_at"` // tables.created_at
	UpdatedAt time.Time `json:"updated_at"` // tables.updated_at
}
