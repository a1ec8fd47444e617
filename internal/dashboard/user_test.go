package dashboard_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/parking-reservation-dashboard/internal/dashboard"
	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

func TestUserMountLoadsReservationsAndLots(t *testing.T) {
	e := newEnv(t)
	e.seedLot("Central", 50, 3)

	u := e.mountUser(t).User()
	assert.Equal(t, dashboard.UserViewBookParking, u.View)
	assert.Empty(t, u.Reservations)
	require.Len(t, u.Lots, 1)
	assert.True(t, u.CanBook(u.Lots[0]))
}

func TestBookingLifecycle(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()

	u.OpenBooking(lot.ID)
	require.Equal(t, dashboard.PhaseOpen, u.Booking.Phase)
	assert.Equal(t, lot.ID, u.Booking.LotID)
	assert.Empty(t, u.Booking.VehicleNumber, "the modal always opens with an empty field")

	u.Booking.VehicleNumber = "KA-01-1234"
	require.NoError(t, u.ConfirmBooking(context.Background()))
	assert.Equal(t, "Parking spot reserved successfully", e.alerts.last())
	assert.Equal(t, dashboard.PhaseClosed, u.Booking.Phase)

	// Both datasets were refreshed together.
	require.Len(t, u.Reservations, 1)
	assert.Equal(t, model.StatusActive, u.Reservations[0].Status)
	assert.Equal(t, "KA-01-1234", u.Reservations[0].VehicleNumber)
	assert.True(t, u.HasActiveBooking())
	assert.Equal(t, 0, u.Lots[0].AvailableSpots)
	assert.Equal(t, 1, u.Lots[0].OccupiedSpots)
}

func TestOpenBookingIneligibleIsNoop(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	other := e.seedLot("Airport", 80, 1)
	u := e.mountUser(t).User()

	u.OpenBooking(lot.ID)
	u.Booking.VehicleNumber = "KA-01-1234"
	require.NoError(t, u.ConfirmBooking(context.Background()))

	// Holding an Active reservation disables every Book Now button.
	u.OpenBooking(other.ID)
	assert.Equal(t, dashboard.PhaseClosed, u.Booking.Phase)

	// So does a lot with no free spots, and so does an unknown lot.
	e2 := newEnv(t)
	full := e2.seedLot("Tiny", 10, 1)
	state := e2.mountUser(t).User()
	admin := e2.srv.Store().FindUser("admin@gmail.com")
	_, err := e2.srv.Store().Reserve(admin.ID, full.ID, "MH-02-0001", time.Now())
	require.NoError(t, err)
	require.NoError(t, state.Refresh(context.Background()))

	// The whole disabled-button click sequence stays off the wire.
	ct := &countingTransport{}
	e2.client.SetHTTPClient(&http.Client{Transport: ct})

	state.OpenBooking(full.ID)
	assert.Equal(t, dashboard.PhaseClosed, state.Booking.Phase)
	require.NoError(t, state.ConfirmBooking(context.Background()))
	state.OpenBooking(full.ID + 100)
	assert.Equal(t, dashboard.PhaseClosed, state.Booking.Phase)
	assert.Equal(t, 0, ct.n, "a click on an unbookable lot never issues a request")
}

func TestCancelBookingDiscardsInput(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()

	u.OpenBooking(lot.ID)
	u.Booking.VehicleNumber = "half-typed"
	u.CancelBooking()
	assert.Equal(t, dashboard.BookingWorkflow{}, u.Booking)

	u.OpenBooking(lot.ID)
	assert.Empty(t, u.Booking.VehicleNumber)
}

func TestConfirmBookingValidationFailsBeforeNetwork(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()
	u.OpenBooking(lot.ID)

	ct := &countingTransport{}
	e.client.SetHTTPClient(&http.Client{Transport: ct})

	err := u.ConfirmBooking(context.Background())
	var verr *dashboard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, ct.n, "an empty vehicle number must never reach the wire")
	assert.Equal(t, "Please enter a vehicle number.", e.alerts.last())
	assert.Equal(t, dashboard.PhaseOpen, u.Booking.Phase, "the modal stays open for retry")
}

func TestConfirmBookingClosedModalIsNoop(t *testing.T) {
	e := newEnv(t)
	u := e.mountUser(t).User()

	ct := &countingTransport{}
	e.client.SetHTTPClient(&http.Client{Transport: ct})
	require.NoError(t, u.ConfirmBooking(context.Background()))
	assert.Equal(t, 0, ct.n)
}

func TestConfirmBookingBackendRefusalReopens(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()

	// The last spot disappears between opening the modal and submitting.
	u.OpenBooking(lot.ID)
	admin := e.srv.Store().FindUser("admin@gmail.com")
	_, err := e.srv.Store().Reserve(admin.ID, lot.ID, "MH-02-0001", time.Now())
	require.NoError(t, err)

	u.Booking.VehicleNumber = "KA-01-1234"
	err = u.ConfirmBooking(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Error: No available parking spots in this lot", e.alerts.last())
	assert.Equal(t, dashboard.PhaseOpen, u.Booking.Phase)
}

func TestVacateConfirmedPause(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()

	u.OpenBooking(lot.ID)
	u.Booking.VehicleNumber = "KA-01-1234"
	require.NoError(t, u.ConfirmBooking(context.Background()))
	resID := u.Reservations[0].ReservationID

	u.OpenVacate(resID)
	require.Equal(t, dashboard.PhaseOpen, u.Vacate.Phase)
	assert.Equal(t, resID, u.Vacate.Reservation.ReservationID)

	require.NoError(t, u.ConfirmVacate(context.Background()))
	assert.Equal(t, dashboard.PhaseConfirmed, u.Vacate.Phase, "the modal pauses on the result")
	assert.Equal(t, 50.0, u.Vacate.FinalCost, "under an hour still bills one full hour")
	assert.False(t, u.Vacate.VacatedAt.IsZero())

	// The tables underneath already reflect the release.
	require.Len(t, u.Reservations, 1)
	assert.Equal(t, model.StatusNeedsPayment, u.Reservations[0].Status)
	assert.False(t, u.HasActiveBooking())
	assert.Equal(t, 1, u.Lots[0].AvailableSpots)

	u.DismissVacate()
	assert.Equal(t, dashboard.VacateWorkflow{}, u.Vacate)
}

func TestOpenVacateOnlyForActive(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()

	u.OpenBooking(lot.ID)
	u.Booking.VehicleNumber = "KA-01-1234"
	require.NoError(t, u.ConfirmBooking(context.Background()))
	resID := u.Reservations[0].ReservationID
	u.OpenVacate(resID)
	require.NoError(t, u.ConfirmVacate(context.Background()))
	u.DismissVacate()

	// The reservation is Completed now; vacating it again is impossible.
	u.OpenVacate(resID)
	assert.Equal(t, dashboard.PhaseClosed, u.Vacate.Phase)
}

func TestConfirmVacateClosedModalIsNoop(t *testing.T) {
	e := newEnv(t)
	u := e.mountUser(t).User()

	ct := &countingTransport{}
	e.client.SetHTTPClient(&http.Client{Transport: ct})
	require.NoError(t, u.ConfirmVacate(context.Background()))
	assert.Equal(t, 0, ct.n)
}

// bookAndVacate runs one full park-and-release cycle and returns the
// completed reservation's ID.
func bookAndVacate(t *testing.T, u *dashboard.UserState, lotID int, vehicle string) int {
	t.Helper()
	u.OpenBooking(lotID)
	u.Booking.VehicleNumber = vehicle
	require.NoError(t, u.ConfirmBooking(context.Background()))
	resID := u.Reservations[0].ReservationID
	u.OpenVacate(resID)
	require.NoError(t, u.ConfirmVacate(context.Background()))
	u.DismissVacate()
	return resID
}

func TestPayNowPatchesOnlyThatReservation(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()

	firstID := bookAndVacate(t, u, lot.ID, "KA-01-1111")
	secondID := bookAndVacate(t, u, lot.ID, "KA-01-2222")
	require.Len(t, u.Reservations, 2)

	ct := &countingTransport{next: http.DefaultTransport}
	e.client.SetHTTPClient(&http.Client{Transport: ct})

	require.NoError(t, u.PayNow(context.Background(), firstID))
	assert.Equal(t, "Payment successful!", e.alerts.last())
	assert.Equal(t, 1, ct.n, "payment is the one optimistic update: no refetch follows")

	byID := make(map[int]model.Reservation, len(u.Reservations))
	for _, r := range u.Reservations {
		byID[r.ReservationID] = r
	}
	assert.Equal(t, model.StatusPaid, byID[firstID].Status)
	assert.True(t, byID[firstID].Paid)
	assert.Equal(t, model.StatusNeedsPayment, byID[secondID].Status)
	assert.False(t, byID[secondID].Paid)
}

func TestPayNowAlreadyPaid(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()

	resID := bookAndVacate(t, u, lot.ID, "KA-01-1234")
	require.NoError(t, u.PayNow(context.Background(), resID))

	err := u.PayNow(context.Background(), resID)
	require.Error(t, err)
	assert.Equal(t, "Error: This reservation has already been paid for.", e.alerts.last())
}

func TestUserStatsViewToggle(t *testing.T) {
	e := newEnv(t)
	lot := e.seedLot("Central", 50, 1)
	u := e.mountUser(t).User()
	bookAndVacate(t, u, lot.ID, "KA-01-1234")
	reservations := u.Reservations

	require.NoError(t, u.OpenStats(context.Background()))
	assert.Equal(t, dashboard.UserViewStats, u.View)
	require.NotEmpty(t, u.Reports)
	assert.Equal(t, 1, u.Reports[0].TotalReservations)
	assert.Equal(t, 50.0, u.Reports[0].TotalSpent)

	count := u.ReservationsSlot.Current()
	spent := u.SpentSlot.Current()
	require.NotNil(t, count)
	require.NotNil(t, spent)
	assert.Equal(t, dashboard.ChartBar, count.Kind)
	assert.Equal(t, []float64{1}, count.Values)
	assert.Equal(t, []float64{50}, spent.Values)

	// Re-entry disposes the previous handles.
	require.NoError(t, u.OpenStats(context.Background()))
	assert.True(t, count.Destroyed())
	assert.True(t, spent.Destroyed())

	// Toggling back loses no data.
	u.BackToBooking()
	assert.Equal(t, dashboard.UserViewBookParking, u.View)
	assert.Equal(t, reservations, u.Reservations)
}

func TestUserStatsEmptyHistoryStillCharts(t *testing.T) {
	e := newEnv(t)
	u := e.mountUser(t).User()

	require.NoError(t, u.OpenStats(context.Background()))
	require.Len(t, u.Reports, 1, "an empty history yields one zeroed current-month row")
	assert.Equal(t, 0, u.Reports[0].TotalReservations)
	assert.Equal(t, "N/A", u.Reports[0].MostUsedLot)
	require.NotNil(t, u.ReservationsSlot.Current())
}
