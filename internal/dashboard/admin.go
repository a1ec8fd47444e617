package dashboard

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// AdminView names the admin branch's exclusive views. LotDetails, the
// spot inspection and the user roster are overlays on AdminViewLots,
// not views of their own.
type AdminView string

const (
	AdminViewLots  AdminView = "view_lots"
	AdminViewAdd   AdminView = "add_lot"
	AdminViewEdit  AdminView = "edit_lot"
	AdminViewStats AdminView = "view_stats"
)

// AdminStats bundles the two aggregates the stats view charts.
type AdminStats struct {
	Summary model.AdminSummary
	Revenue []model.LotRevenue
}

// AdminState is the admin branch of the dashboard. Transitions happen
// only through its methods, only in response to explicit user actions.
type AdminState struct {
	ctrl *Controller

	View   AdminView
	Lots   []model.ParkingLot
	Roster []model.RosterEntry

	// NewLot backs the add form; ShowAddForm resets it to defaults.
	NewLot model.LotForm

	// EditBuffer is an isolated copy of the lot being edited. Cancel
	// drops it without the underlying list entry ever noticing.
	EditBuffer *model.LotForm
	editLotID  int

	// SelectedLot backs the read-only details overlay. It is a copy of
	// the list entry, not a pointer into Lots.
	SelectedLot *model.ParkingLot

	// Spot inspection overlay.
	Spots        []model.Spot
	SpotsLotName string
	SpotsOpen    bool

	// Stats view: aggregates plus one owned chart slot per canvas.
	Stats         *AdminStats
	OccupancySlot ChartSlot
	RevenueSlot   ChartSlot
}

// RefreshLots refetches the lot list and lands on the list view. Every
// lot mutation funnels through here afterwards; there are no optimistic
// lot updates.
func (a *AdminState) RefreshLots(ctx context.Context) error {
	lots, err := a.ctrl.client.AdminLots(ctx)
	if err != nil {
		return err
	}
	a.Lots = lots
	a.View = AdminViewLots
	return nil
}

// RefreshRoster refetches the registered-users table shown under the
// lot list.
func (a *AdminState) RefreshRoster(ctx context.Context) error {
	roster, err := a.ctrl.client.Roster(ctx)
	if err != nil {
		return err
	}
	a.Roster = roster
	return nil
}

// ShowAddForm enters the add-lot view with a fresh form.
func (a *AdminState) ShowAddForm() {
	a.NewLot = model.LotForm{}
	a.View = AdminViewAdd
}

// ShowEditForm snapshots the chosen lot into the edit buffer and enters
// the edit view. The buffer is a deep copy: editing and cancelling must
// leave the list entry byte-for-byte unchanged.
func (a *AdminState) ShowEditForm(lotID int) error {
	lot := a.findLot(lotID)
	if lot == nil {
		return fmt.Errorf("unknown lot %d", lotID)
	}
	var buf model.LotForm
	if err := copier.Copy(&buf, lot); err != nil {
		return err
	}
	// Field names differ for the spot count; coerce it explicitly.
	buf.Spots = lot.TotalSpots
	a.EditBuffer = &buf
	a.editLotID = lotID
	a.View = AdminViewEdit
	return nil
}

// CancelForm discards whichever form is open and returns to the list.
func (a *AdminState) CancelForm() {
	a.View = AdminViewLots
	a.EditBuffer = nil
	a.editLotID = 0
}

// CreateLot validates the add form and submits it. Validation failures
// are alerted and returned before any network call. On success the
// backend's acknowledgement is alerted and the full list is refetched.
func (a *AdminState) CreateLot(ctx context.Context) error {
	if err := validate.Struct(a.NewLot); err != nil {
		verr := &ValidationError{Message: "Please fill all fields correctly."}
		a.ctrl.alert.Alert(verr.Message)
		return verr
	}
	msg, err := a.ctrl.client.CreateLot(ctx, a.NewLot)
	if err != nil {
		return err
	}
	a.ctrl.alert.Alert(msg)
	return a.RefreshLots(ctx)
}

// UpdateLot submits the edit buffer for the lot it was snapshotted from
// and refetches the list on success. On failure the edit view stays
// open with the buffer intact so the user can retry.
func (a *AdminState) UpdateLot(ctx context.Context) error {
	if a.EditBuffer == nil {
		return nil
	}
	msg, err := a.ctrl.client.UpdateLot(ctx, a.editLotID, *a.EditBuffer)
	if err != nil {
		return err
	}
	a.ctrl.alert.Alert(msg)
	a.EditBuffer = nil
	a.editLotID = 0
	return a.RefreshLots(ctx)
}

// DeleteLot issues the destructive call only when the caller has
// confirmed; an unconfirmed delete is a no-op, not an error.
func (a *AdminState) DeleteLot(ctx context.Context, lotID int, confirmed bool) error {
	if !confirmed {
		return nil
	}
	msg, err := a.ctrl.client.DeleteLot(ctx, lotID)
	if err != nil {
		return err
	}
	a.ctrl.alert.Alert(msg)
	return a.RefreshLots(ctx)
}

// ShowLotDetails opens the read-only details overlay for a lot.
func (a *AdminState) ShowLotDetails(lotID int) {
	if lot := a.findLot(lotID); lot != nil {
		sel := *lot
		a.SelectedLot = &sel
	}
}

// CloseLotDetails dismisses the details overlay.
func (a *AdminState) CloseLotDetails() { a.SelectedLot = nil }

// InspectSpots fetches a lot's per-spot detail and opens the inspection
// overlay. There is no mutation path from this view.
func (a *AdminState) InspectSpots(ctx context.Context, lotID int) error {
	lot := a.findLot(lotID)
	if lot == nil {
		return fmt.Errorf("unknown lot %d", lotID)
	}
	spots, err := a.ctrl.client.LotSpots(ctx, lotID)
	if err != nil {
		return err
	}
	a.Spots = spots
	a.SpotsLotName = lot.Location
	a.SpotsOpen = true
	return nil
}

// CloseSpots dismisses the spot inspection overlay.
func (a *AdminState) CloseSpots() {
	a.SpotsOpen = false
	a.Spots = nil
	a.SpotsLotName = ""
}

// OpenStats enters the stats view, fetches both aggregates and renders
// the two charts. The slots destroy whatever the previous entry
// rendered before installing the new handles, so re-entering the view
// never leaks a live chart.
func (a *AdminState) OpenStats(ctx context.Context) error {
	a.View = AdminViewStats
	summary, err := a.ctrl.client.Summary(ctx)
	if err != nil {
		return err
	}
	revenue, err := a.ctrl.client.RevenueSummary(ctx)
	if err != nil {
		return err
	}
	a.Stats = &AdminStats{Summary: summary, Revenue: revenue}

	occ := summary.OverallOccupancy
	a.OccupancySlot.Render(ChartDoughnut, "Occupancy",
		[]string{"Occupied", "Available"},
		[]float64{float64(occ.Occupied), float64(occ.Available)})

	labels := make([]string, len(revenue))
	values := make([]float64, len(revenue))
	for i, lot := range revenue {
		labels[i] = lot.Name
		values[i] = lot.Revenue
	}
	a.RevenueSlot.Render(ChartBar, "Revenue by Lot", labels, values)
	return nil
}

// CloseStats returns to the lot list. Chart handles stay in their slots
// and are disposed on the next render.
func (a *AdminState) CloseStats() { a.View = AdminViewLots }

func (a *AdminState) findLot(lotID int) *model.ParkingLot {
	for i := range a.Lots {
		if a.Lots[i].ID == lotID {
			return &a.Lots[i]
		}
	}
	return nil
}
