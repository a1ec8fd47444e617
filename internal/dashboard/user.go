package dashboard

import (
	"context"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// UserView names the user branch's two views, a plain toggle with no
// data loss in either direction.
type UserView string

const (
	UserViewBookParking UserView = "book_parking"
	UserViewStats       UserView = "user_stats"
)

// UserState is the user branch of the dashboard: the reservation table,
// the bookable lot list, the booking and vacate modals and the personal
// stats view.
type UserState struct {
	ctrl *Controller

	View UserView

	// Reservations is always the normalized form: display statuses,
	// Active entries first.
	Reservations []model.Reservation
	Lots         []model.ParkingLot

	Booking BookingWorkflow
	Vacate  VacateWorkflow

	// Stats view: monthly aggregates plus one chart slot per canvas.
	Reports          []model.MonthlyReport
	ReservationsSlot ChartSlot
	SpentSlot        ChartSlot
}

// Refresh refetches reservations and then lot availability. Both are
// fetched together because booking and vacating change both datasets;
// refreshing only one would leave the tables inconsistent.
func (u *UserState) Refresh(ctx context.Context) error {
	rs, err := u.ctrl.client.Reservations(ctx)
	if err != nil {
		return err
	}
	u.Reservations = NormalizeReservations(rs)

	lots, err := u.ctrl.client.UserLots(ctx)
	if err != nil {
		return err
	}
	u.Lots = lots
	return nil
}

// HasActiveBooking reports whether the user currently holds an Active
// reservation.
func (u *UserState) HasActiveBooking() bool {
	return HasActiveBooking(u.Reservations)
}

// CanBook is the Book Now gate for one lot.
func (u *UserState) CanBook(lot model.ParkingLot) bool {
	return CanBook(lot, u.Reservations)
}

// OpenBooking opens the booking modal for a lot. A click on a lot the
// user cannot book (no free spots, or an Active reservation already
// held) is the disabled-button case: nothing opens and no request is
// ever issued.
func (u *UserState) OpenBooking(lotID int) {
	lot := u.findLot(lotID)
	if lot == nil || !u.CanBook(*lot) {
		return
	}
	u.Booking.open(lotID)
}

// CancelBooking dismisses the booking modal without submitting.
func (u *UserState) CancelBooking() { u.Booking.close() }

// ConfirmBooking validates the vehicle number and submits the booking.
// Validation failures are alerted and returned before any network call
// with the modal left open. A backend refusal also leaves the modal
// open for retry. Success alerts the acknowledgement, closes the modal
// and refreshes both reservations and lot availability.
func (u *UserState) ConfirmBooking(ctx context.Context) error {
	if u.Booking.Phase != PhaseOpen {
		return nil
	}
	req := model.BookingRequest{LotID: u.Booking.LotID, VehicleNumber: u.Booking.VehicleNumber}
	if err := validate.Struct(req); err != nil {
		verr := &ValidationError{Message: "Please enter a vehicle number."}
		u.ctrl.alert.Alert(verr.Message)
		return verr
	}

	u.Booking.Phase = PhaseSubmitted
	msg, err := u.ctrl.client.ReserveParking(ctx, req)
	if err != nil {
		u.Booking.Phase = PhaseOpen
		return err
	}
	u.ctrl.alert.Alert(msg)
	u.Booking.close()
	return u.Refresh(ctx)
}

// OpenVacate opens the vacate modal for one of the user's Active
// reservations.
func (u *UserState) OpenVacate(reservationID int) {
	for _, r := range u.Reservations {
		if r.ReservationID == reservationID && r.Status == model.StatusActive {
			u.Vacate.open(r)
			return
		}
	}
}

// ConfirmVacate releases the active spot. On success the workflow moves
// to Confirmed rather than Closed, carrying the backend's exact final
// cost and release time, and the data underneath is refreshed. Only
// DismissVacate closes the modal, so the user always sees the financial
// result before it disappears. On failure the modal stays open for
// retry.
func (u *UserState) ConfirmVacate(ctx context.Context) error {
	if u.Vacate.Phase != PhaseOpen {
		return nil
	}
	res, err := u.ctrl.client.VacateParking(ctx)
	if err != nil {
		return err
	}
	u.Vacate.confirm(res)
	return u.Refresh(ctx)
}

// DismissVacate is the explicit close of the vacate modal, from either
// the Open (cancel) or Confirmed (acknowledge) phase.
func (u *UserState) DismissVacate() { u.Vacate.close() }

// PayNow settles one completed reservation. On success only that
// reservation is patched locally, paid flag plus display status, with
// no refetch. This is the single deliberate optimistic update in the
// dashboard: the action is idempotent and scoped to exactly one record.
func (u *UserState) PayNow(ctx context.Context, reservationID int) error {
	msg, err := u.ctrl.client.Pay(ctx, reservationID)
	if err != nil {
		return err
	}
	u.ctrl.alert.Alert(msg)
	for i := range u.Reservations {
		if u.Reservations[i].ReservationID == reservationID {
			u.Reservations[i].Paid = true
			u.Reservations[i].Status = model.StatusPaid
			break
		}
	}
	return nil
}

// OpenStats enters the personal stats view, fetches the monthly report
// and renders both charts through their slots (disposing whatever a
// previous entry rendered).
func (u *UserState) OpenStats(ctx context.Context) error {
	u.View = UserViewStats
	reports, err := u.ctrl.client.Reports(ctx)
	if err != nil {
		return err
	}
	u.Reports = reports

	months := make([]string, len(reports))
	counts := make([]float64, len(reports))
	spent := make([]float64, len(reports))
	for i, rep := range reports {
		months[i] = MonthLabel(rep.Month)
		counts[i] = float64(rep.TotalReservations)
		spent[i] = rep.TotalSpent
	}
	u.ReservationsSlot.Render(ChartBar, "Reservations per Month", months, counts)
	u.SpentSlot.Render(ChartBar, "Amount Spent per Month", months, spent)
	return nil
}

// BackToBooking toggles back to the booking view. Reservation and lot
// data survive the round trip untouched.
func (u *UserState) BackToBooking() { u.View = UserViewBookParking }

func (u *UserState) findLot(lotID int) *model.ParkingLot {
	for i := range u.Lots {
		if u.Lots[i].ID == lotID {
			return &u.Lots[i]
		}
	}
	return nil
}
