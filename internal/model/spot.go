package model

import "time"

// Spot statuses as the backend spells them in the spot inspection
// response. The single-letter codes the backend stores internally never
// reach the client.
const (
	SpotAvailable = "Available"
	SpotOccupied  = "Occupied"
)

// Spot is one parking space inside a lot as returned by the admin spot
// inspection endpoint. The occupant fields are only present while the
// spot is occupied; for an available spot the backend omits them
// entirely, which is why they are pointers and omitempty strings.
//
// Fields:
//
//	ID            – numeric spot identifier.
//	Status        – SpotAvailable or SpotOccupied.
//	VehicleNumber – occupant's vehicle registration, if occupied.
//	UserEmail     – occupant's email, if occupied.
//	ParkedSince   – when the occupant parked, if occupied.
type Spot struct {
	ID            int        `json:"id"`
	Status        string     `json:"status"`
	VehicleNumber string     `json:"vehicle_number,omitempty"`
	UserEmail     string     `json:"user_email,omitempty"`
	ParkedSince   *time.Time `json:"parked_since,omitempty"`
}
