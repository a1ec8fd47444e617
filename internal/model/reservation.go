package model

import "time"

// Reservation statuses. The backend only ever emits StatusActive and
// StatusCompleted; StatusNeedsPayment and StatusPaid are derived on the
// client by splitting Completed on the paid flag. Display code should
// never see a raw Completed once the dashboard has taken ownership of a
// fetched list.
const (
	StatusActive       = "Active"
	StatusCompleted    = "Completed"
	StatusNeedsPayment = "Needs Payment"
	StatusPaid         = "Paid"
)

// Reservation is one row of the user's reservation history. A
// reservation is Active while the vehicle is still parked; vacating
// fills ReleaseTimestamp and the final ParkingCost, and a later payment
// flips Paid. The backend keeps at most one Active reservation per user
// at any time; the client relies on that invariant but never enforces
// it.
//
// Fields:
//
//	ReservationID    – numeric reservation identifier.
//	SpotID           – spot the vehicle occupies or occupied.
//	LotID            – lot the spot belongs to.
//	LotLocation      – lot name, denormalised for display.
//	VehicleNumber    – vehicle registration given at booking time.
//	ParkingTimestamp – when the spot was taken.
//	ReleaseTimestamp – when the spot was vacated, nil while Active.
//	ParkingCost      – final cost once vacated, nil while Active.
//	Status           – see the constants above.
//	Paid             – whether a payment record exists.
type Reservation struct {
	ReservationID    int        `json:"reservation_id"`
	SpotID           int        `json:"spot_id"`
	LotID            int        `json:"lot_id"`
	LotLocation      string     `json:"lot_location"`
	VehicleNumber    string     `json:"vehicle_number"`
	ParkingTimestamp time.Time  `json:"parking_timestamp"`
	ReleaseTimestamp *time.Time `json:"release_timestamp"`
	ParkingCost      *float64   `json:"parking_cost"`
	Status           string     `json:"status"`
	Paid             bool       `json:"paid"`
}

// BookingRequest is the body of POST /api/user/reserve-parking. The
// vehicle number is required; the validate tag backs the client-side
// check in the booking modal.
type BookingRequest struct {
	LotID         int    `json:"lot_id"`
	VehicleNumber string `json:"vehicle_number" validate:"required"`
}

// VacateResult is what the backend returns when the active spot is
// released. The dashboard must show FinalCost and VacatedAt exactly as
// received before the vacate modal may close.
type VacateResult struct {
	ReservationID int       `json:"reservation_id"`
	FinalCost     float64   `json:"final_cost"`
	VacatedAt     time.Time `json:"vacated_at"`
}
