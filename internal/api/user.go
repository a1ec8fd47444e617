package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

type reservationsEnvelope struct {
	Reservations []model.Reservation `json:"reservations"`
}

type reportsEnvelope struct {
	Reports []model.MonthlyReport `json:"reports"`
}

// vacateEnvelope carries the acknowledgement message alongside the
// figures the vacate modal must display.
type vacateEnvelope struct {
	Message string `json:"message"`
	model.VacateResult
}

// UserLots lists every lot with live availability, the user-facing twin
// of AdminLots.
func (c *Client) UserLots(ctx context.Context) ([]model.ParkingLot, error) {
	var env lotsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/user/parking-lots", nil, &env); err != nil {
		return nil, err
	}
	return env.ParkingLots, nil
}

// Reservations returns the user's full reservation history exactly as
// the backend emits it: statuses are Active or Completed and unordered.
// Deriving display statuses and ordering is the dashboard's job, not the
// client's.
func (c *Client) Reservations(ctx context.Context) ([]model.Reservation, error) {
	var env reservationsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/user/reservations", nil, &env); err != nil {
		return nil, err
	}
	return env.Reservations, nil
}

// ReserveParking books a spot in the given lot for the given vehicle and
// returns the acknowledgement message. Booking changes both the
// reservation list and lot availability, so callers must refresh both.
func (c *Client) ReserveParking(ctx context.Context, req model.BookingRequest) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/user/reserve-parking", req, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// VacateParking releases the user's active spot. The backend computes
// the final cost and release time; both come back verbatim for the
// vacate modal to display.
func (c *Client) VacateParking(ctx context.Context) (model.VacateResult, error) {
	var env vacateEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/user/vacate-parking", nil, &env); err != nil {
		return model.VacateResult{}, err
	}
	return env.VacateResult, nil
}

// Pay settles the payment for one completed reservation.
func (c *Client) Pay(ctx context.Context, reservationID int) (string, error) {
	var env messageEnvelope
	path := fmt.Sprintf("/api/user/payment/%d", reservationID)
	if err := c.do(ctx, http.MethodPost, path, nil, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// Reports returns the user's per-month reservation and spend aggregates
// for the personal charts.
func (c *Client) Reports(ctx context.Context) ([]model.MonthlyReport, error) {
	var env reportsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/user/reports", nil, &env); err != nil {
		return nil, err
	}
	return env.Reports, nil
}
