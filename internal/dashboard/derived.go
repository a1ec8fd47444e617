package dashboard

import (
	"sort"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// DisplayStatus maps a backend reservation status onto what the tables
// show: Completed splits on the paid flag into Needs Payment or Paid,
// Active passes through, anything unknown passes through untouched.
func DisplayStatus(r model.Reservation) string {
	if r.Status == model.StatusCompleted {
		if r.Paid {
			return model.StatusPaid
		}
		return model.StatusNeedsPayment
	}
	return r.Status
}

// NormalizeReservations rewrites backend statuses to display statuses
// and orders all Active entries before everything else. The sort is
// stable so the backend's newest-first order is preserved within each
// group. The input slice is modified in place and returned.
func NormalizeReservations(rs []model.Reservation) []model.Reservation {
	for i := range rs {
		rs[i].Status = DisplayStatus(rs[i])
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Status == model.StatusActive && rs[j].Status != model.StatusActive
	})
	return rs
}

// HasActiveBooking reports whether any reservation is Active. The
// backend guarantees at most one; the client only ever asks "any?".
func HasActiveBooking(rs []model.Reservation) bool {
	for _, r := range rs {
		if r.Status == model.StatusActive {
			return true
		}
	}
	return false
}

// CanBook is the Book Now gate: booking is possible only when the lot
// has a free spot and the user holds no Active reservation.
func CanBook(lot model.ParkingLot, rs []model.Reservation) bool {
	return lot.AvailableSpots > 0 && !HasActiveBooking(rs)
}
