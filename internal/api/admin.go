package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// Envelopes for the admin endpoints. The backend wraps every collection
// in a single-key object; the wrappers below unwrap them so callers only
// ever see slices and structs.
type lotsEnvelope struct {
	ParkingLots []model.ParkingLot `json:"parking_lots"`
}

type spotsEnvelope struct {
	Spots []model.Spot `json:"spots"`
}

type usersEnvelope struct {
	Users []model.RosterEntry `json:"users"`
}

type revenueEnvelope struct {
	Lots []model.LotRevenue `json:"lots"`
}

// AdminLots lists every parking lot with its live availability counters.
func (c *Client) AdminLots(ctx context.Context) ([]model.ParkingLot, error) {
	var env lotsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/admin/parking-lots", nil, &env); err != nil {
		return nil, err
	}
	return env.ParkingLots, nil
}

// CreateLot creates a lot (the backend also creates its spots) and
// returns the acknowledgement message. The caller is responsible for
// validating the form first and for refetching the list afterwards.
func (c *Client) CreateLot(ctx context.Context, form model.LotForm) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/admin/parking-lots", form, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// UpdateLot replaces the lot's editable fields.
func (c *Client) UpdateLot(ctx context.Context, lotID int, form model.LotForm) (string, error) {
	var env messageEnvelope
	path := fmt.Sprintf("/api/admin/parking-lots/%d", lotID)
	if err := c.do(ctx, http.MethodPut, path, form, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// DeleteLot removes a lot and its spots. The backend refuses while any
// spot is occupied; that refusal arrives as a *RequestError like any
// other backend message.
func (c *Client) DeleteLot(ctx context.Context, lotID int) (string, error) {
	var env messageEnvelope
	path := fmt.Sprintf("/api/admin/parking-lots/%d", lotID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// LotSpots returns the per-spot inspection view of one lot, including
// occupant details for occupied spots.
func (c *Client) LotSpots(ctx context.Context, lotID int) ([]model.Spot, error) {
	var env spotsEnvelope
	path := fmt.Sprintf("/api/admin/parking-lots/%d/spots", lotID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Spots, nil
}

// Roster lists every registered (non-admin) user with their current
// parking status.
func (c *Client) Roster(ctx context.Context) ([]model.RosterEntry, error) {
	var env usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

// Summary returns the overall and per-lot occupancy aggregates for the
// admin charts.
func (c *Client) Summary(ctx context.Context) (model.AdminSummary, error) {
	var out model.AdminSummary
	if err := c.do(ctx, http.MethodGet, "/api/admin/summary", nil, &out); err != nil {
		return model.AdminSummary{}, err
	}
	return out, nil
}

// RevenueSummary returns the collected revenue per lot.
func (c *Client) RevenueSummary(ctx context.Context) ([]model.LotRevenue, error) {
	var env revenueEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/admin/revenue-summary", nil, &env); err != nil {
		return nil, err
	}
	return env.Lots, nil
}
