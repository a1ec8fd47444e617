package model

// ParkingLot is the client-side projection of a lot as the backend
// returns it. The struct is recreated from the server response on every
// fetch; the local copy is a cache that is invalidated by refetching
// after any mutation, never patched in place.
//
// Fields:
//
//	ID             – numeric lot identifier.
//	Location       – prime location name shown in every table.
//	Address        – street address.
//	Pin            – postal pin code.
//	Price          – hourly price in rupees.
//	TotalSpots     – number of spots the lot was created with.
//	AvailableSpots – spots currently free.
//	OccupiedSpots  – spots currently taken.
//
// For every snapshot the backend guarantees
// AvailableSpots + OccupiedSpots == TotalSpots; the client displays the
// numbers as received and never recomputes them.
type ParkingLot struct {
	ID             int     `json:"id"`
	Location       string  `json:"location"`
	Address        string  `json:"address"`
	Pin            string  `json:"pin"`
	Price          float64 `json:"price"`
	TotalSpots     int     `json:"total_spots"`
	AvailableSpots int     `json:"available_spots"`
	OccupiedSpots  int     `json:"occupied_spots"`
}

// LotForm carries the fields an admin edits when creating or updating a
// lot. It doubles as the create/update request body, so the json tags
// match the wire contract exactly. The validate tags implement the
// client-side checks that must fail before any network call: a location
// is required, the hourly price must be positive and a lot needs at
// least one spot.
type LotForm struct {
	Location string  `json:"location" validate:"required"`
	Price    float64 `json:"price" validate:"gt=0"`
	Address  string  `json:"address"`
	Pin      string  `json:"pin"`
	Spots    int     `json:"spots" validate:"gt=0"`
}
