// Package stub is an in-process double of the parking backend. It
// implements the complete REST surface the dashboard consumes, from
// auth and lot CRUD through booking, vacating, payment and the
// aggregate endpoints, over an in-memory store, so the dashboard and
// its tests run without the real service. Behaviour mirrors the
// authoritative backend, including its exact response shapes, error
// messages and pricing rule (hours rounded up, one hour minimum).
package stub

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// Spot status codes as stored. The single letters never leave the
// store; views translate them to the wire spellings.
const (
	statusAvailable = "A"
	statusOccupied  = "O"
)

// apiError pairs an HTTP status with the message the handler should
// return. Store methods use it for every business-rule refusal so
// handlers stay thin.
type apiError struct {
	Code    int
	Message string
}

func (e *apiError) Error() string { return e.Message }

func errf(code int, format string, args ...any) *apiError {
	return &apiError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrEmailExists is returned by CreateUser for a duplicate email.
var ErrEmailExists = errors.New("email already exists")

// User is a registered account.
type User struct {
	ID           int
	Email        string
	Uname        string
	PasswordHash string
	Roles        []string
}

// Lot is a parking facility. Spot records are kept separately, keyed by
// a global spot ID sequence, exactly like the backend's schema.
type Lot struct {
	ID       int
	Location string
	Address  string
	Pin      string
	Price    float64
	Spots    int
}

type spotRec struct {
	ID     int
	LotID  int
	Status string
}

type reservationRec struct {
	ID        int
	SpotID    int
	UserID    int
	Vehicle   string
	ParkedAt  time.Time
	LeftAt    *time.Time
	Cost      float64
	CostFinal bool
}

type paymentRec struct {
	ID            int
	ReservationID int
	UserID        int
	Amount        float64
	Status        string
}

// Store is the in-memory state behind the stub. All access goes through
// its methods under one mutex; the HTTP layer holds no state of its own.
type Store struct {
	mu           sync.Mutex
	users        map[int]*User
	usersByEmail map[string]*User
	lots         map[int]*Lot
	spots        map[int]*spotRec
	reservations map[int]*reservationRec
	payments     map[int]*paymentRec

	nextUser    int
	nextLot     int
	nextSpot    int
	nextRes     int
	nextPayment int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int]*User),
		usersByEmail: make(map[string]*User),
		lots:         make(map[int]*Lot),
		spots:        make(map[int]*spotRec),
		reservations: make(map[int]*reservationRec),
		payments:     make(map[int]*paymentRec),
	}
}

// CreateUser registers an account. The email must be unused.
func (s *Store) CreateUser(email, uname, passwordHash string, roles []string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByEmail[email]; ok {
		return nil, ErrEmailExists
	}
	s.nextUser++
	u := &User{ID: s.nextUser, Email: email, Uname: uname, PasswordHash: passwordHash, Roles: roles}
	s.users[u.ID] = u
	s.usersByEmail[email] = u
	return u, nil
}

// FindUser looks an account up by email. Returns nil when absent.
func (s *Store) FindUser(email string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usersByEmail[email]
}

// GetUser looks an account up by ID. Returns nil when absent.
func (s *Store) GetUser(id int) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

// CreateLot creates a lot together with its spots, all available.
func (s *Store) CreateLot(form model.LotForm) *Lot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLot++
	lot := &Lot{
		ID:       s.nextLot,
		Location: form.Location,
		Address:  form.Address,
		Pin:      form.Pin,
		Price:    form.Price,
		Spots:    form.Spots,
	}
	s.lots[lot.ID] = lot
	for i := 0; i < form.Spots; i++ {
		s.addSpotLocked(lot.ID)
	}
	return lot
}

func (s *Store) addSpotLocked(lotID int) {
	s.nextSpot++
	s.spots[s.nextSpot] = &spotRec{ID: s.nextSpot, LotID: lotID, Status: statusAvailable}
}

// UpdateLot applies the editable fields and grows or shrinks the spot
// pool. Shrinking below the number of occupied spots is refused, as is
// removing more available spots than exist; a refused update leaves the
// lot untouched.
func (s *Store) UpdateLot(lotID int, form model.LotForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lot, ok := s.lots[lotID]
	if !ok {
		return errf(404, "Parking lot not found")
	}

	// Validate the spot arithmetic before touching anything: a refused
	// update must leave the lot exactly as it was.
	diff := form.Spots - lot.Spots
	if diff < 0 {
		occupied := s.countSpotsLocked(lotID, statusOccupied)
		if form.Spots < occupied {
			return errf(400, "Cannot reduce spots below number of occupied spots (%d).", occupied)
		}
		removable := s.spotIDsLocked(lotID, statusAvailable)
		if len(removable) < -diff {
			return errf(400, "Cannot reduce spots. Not enough available spots to remove.")
		}
		for _, id := range removable[:-diff] {
			delete(s.spots, id)
		}
	} else {
		for i := 0; i < diff; i++ {
			s.addSpotLocked(lotID)
		}
	}

	lot.Location = form.Location
	lot.Price = form.Price
	lot.Address = form.Address
	lot.Pin = form.Pin
	lot.Spots = form.Spots
	return nil
}

// DeleteLot removes a lot and its spots. Refused while any spot is
// occupied.
func (s *Store) DeleteLot(lotID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lots[lotID]; !ok {
		return errf(404, "Parking lot not found")
	}
	if s.countSpotsLocked(lotID, statusOccupied) > 0 {
		return errf(400, "Cannot delete parking lot. Some spots are still occupied.")
	}
	for _, id := range s.spotIDsLocked(lotID, statusAvailable) {
		delete(s.spots, id)
	}
	delete(s.lots, lotID)
	return nil
}

func (s *Store) countSpotsLocked(lotID int, status string) int {
	n := 0
	for _, sp := range s.spots {
		if sp.LotID == lotID && sp.Status == status {
			n++
		}
	}
	return n
}

// spotIDsLocked returns the lot's spot IDs with the given status, in
// ascending ID order so removal and allocation are deterministic.
func (s *Store) spotIDsLocked(lotID int, status string) []int {
	var ids []int
	for _, sp := range s.spots {
		if sp.LotID == lotID && sp.Status == status {
			ids = append(ids, sp.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

// LotsView projects every lot with its live availability counters,
// sorted by ID.
func (s *Store) LotsView() []model.ParkingLot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ParkingLot, 0, len(s.lots))
	for _, lot := range s.lots {
		available := s.countSpotsLocked(lot.ID, statusAvailable)
		out = append(out, model.ParkingLot{
			ID:             lot.ID,
			Location:       lot.Location,
			Address:        lot.Address,
			Pin:            lot.Pin,
			Price:          lot.Price,
			TotalSpots:     lot.Spots,
			AvailableSpots: available,
			OccupiedSpots:  lot.Spots - available,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SpotsView projects one lot's spots for the admin inspection modal.
// Occupant details are attached only to occupied spots.
func (s *Store) SpotsView(lotID int) []model.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int
	for _, sp := range s.spots {
		if sp.LotID == lotID {
			ids = append(ids, sp.ID)
		}
	}
	sort.Ints(ids)

	out := make([]model.Spot, 0, len(ids))
	for _, id := range ids {
		sp := s.spots[id]
		view := model.Spot{ID: sp.ID, Status: model.SpotAvailable}
		if sp.Status == statusOccupied {
			view.Status = model.SpotOccupied
			if r := s.activeReservationForSpotLocked(sp.ID); r != nil {
				view.VehicleNumber = r.Vehicle
				if u := s.users[r.UserID]; u != nil {
					view.UserEmail = u.Email
				}
				parked := r.ParkedAt
				view.ParkedSince = &parked
			}
		}
		out = append(out, view)
	}
	return out
}

func (s *Store) activeReservationForSpotLocked(spotID int) *reservationRec {
	for _, r := range s.reservations {
		if r.SpotID == spotID && r.LeftAt == nil {
			return r
		}
	}
	return nil
}

func (s *Store) activeReservationForUserLocked(userID int) *reservationRec {
	var latest *reservationRec
	for _, r := range s.reservations {
		if r.UserID == userID && r.LeftAt == nil {
			if latest == nil || r.ParkedAt.After(latest.ParkedAt) {
				latest = r
			}
		}
	}
	return latest
}

// Reserve books the first available spot of the lot for the user. The
// hourly price is snapshotted as the running cost until vacate finalises
// it.
func (s *Store) Reserve(userID, lotID int, vehicle string, now time.Time) (*reservationRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lot, ok := s.lots[lotID]
	if !ok {
		return nil, errf(404, "Parking lot not found")
	}
	free := s.spotIDsLocked(lotID, statusAvailable)
	if len(free) == 0 {
		return nil, errf(400, "No available parking spots in this lot")
	}
	spot := s.spots[free[0]]
	spot.Status = statusOccupied
	s.nextRes++
	r := &reservationRec{
		ID:       s.nextRes,
		SpotID:   spot.ID,
		UserID:   userID,
		Vehicle:  vehicle,
		ParkedAt: now.UTC(),
		Cost:     lot.Price,
	}
	s.reservations[r.ID] = r
	return r, nil
}

// Vacate releases the user's active spot and finalises the cost: hours
// rounded up to the next whole hour, one hour minimum, times the lot's
// hourly price.
func (s *Store) Vacate(userID int, now time.Time) (*reservationRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.activeReservationForUserLocked(userID)
	if r == nil {
		return nil, errf(404, "No active parking reservation found")
	}
	spot, ok := s.spots[r.SpotID]
	if !ok {
		return nil, errf(404, "Associated spot %d not found.", r.SpotID)
	}
	lot, ok := s.lots[spot.LotID]
	if !ok {
		return nil, errf(404, "Associated parking lot for spot %d not found.", spot.ID)
	}

	now = now.UTC()
	hours := now.Sub(r.ParkedAt).Hours()
	billed := math.Ceil(hours)
	if billed < 1 {
		billed = 1
	}
	r.Cost = billed * lot.Price
	r.CostFinal = true
	left := now
	r.LeftAt = &left
	spot.Status = statusAvailable
	return r, nil
}

// ReservationsView projects the user's history newest-first with raw
// backend statuses (Active/Completed) and the paid flag.
func (s *Store) ReservationsView(userID int) []model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []*reservationRec
	for _, r := range s.reservations {
		if r.UserID == userID {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ParkedAt.After(recs[j].ParkedAt) })

	out := make([]model.Reservation, 0, len(recs))
	for _, r := range recs {
		spot := s.spots[r.SpotID]
		view := model.Reservation{
			ReservationID:    r.ID,
			SpotID:           r.SpotID,
			VehicleNumber:    r.Vehicle,
			ParkingTimestamp: r.ParkedAt,
			Status:           model.StatusActive,
			Paid:             s.paidLocked(r.ID),
		}
		cost := r.Cost
		view.ParkingCost = &cost
		if spot != nil {
			view.LotID = spot.LotID
			if lot := s.lots[spot.LotID]; lot != nil {
				view.LotLocation = lot.Location
			}
		}
		if r.LeftAt != nil {
			view.Status = model.StatusCompleted
			view.ReleaseTimestamp = r.LeftAt
		}
		out = append(out, view)
	}
	return out
}

func (s *Store) paidLocked(reservationID int) bool {
	for _, p := range s.payments {
		if p.ReservationID == reservationID {
			return true
		}
	}
	return false
}

// Pay records a successful payment for one of the user's completed,
// unpaid reservations.
func (s *Store) Pay(userID, reservationID int) (*paymentRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[reservationID]
	if !ok || r.UserID != userID {
		return nil, errf(404, "Reservation not found or does not belong to user")
	}
	if r.LeftAt == nil {
		return nil, errf(400, "Cannot pay for a reservation that is still active.")
	}
	if s.paidLocked(reservationID) {
		return nil, errf(400, "This reservation has already been paid for.")
	}
	s.nextPayment++
	p := &paymentRec{
		ID:            s.nextPayment,
		ReservationID: reservationID,
		UserID:        userID,
		Amount:        r.Cost,
		Status:        "Success",
	}
	s.payments[p.ID] = p
	return p, nil
}

// ReportsView groups the user's reservations per calendar month, newest
// month first. A user with no history gets one zeroed row for the
// current month so the charts always have data.
func (s *Store) ReportsView(userID int, now time.Time) []model.MonthlyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	byMonth := make(map[string]*model.MonthlyReport)
	for _, r := range s.reservations {
		if r.UserID != userID {
			continue
		}
		month := r.ParkedAt.Format("2006-01")
		rep, ok := byMonth[month]
		if !ok {
			rep = &model.MonthlyReport{Month: month, MostUsedLot: "N/A"}
			byMonth[month] = rep
		}
		rep.TotalReservations++
		rep.TotalSpent += r.Cost
	}
	if len(byMonth) == 0 {
		return []model.MonthlyReport{{
			Month:       now.Format("2006-01"),
			MostUsedLot: "N/A",
		}}
	}
	out := make([]model.MonthlyReport, 0, len(byMonth))
	for _, rep := range byMonth {
		out = append(out, *rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// RosterView projects every plain-user account with its current parking
// status for the admin roster table.
func (s *Store) RosterView() []model.RosterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int
	for id, u := range s.users {
		if hasRole(u, "user") {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]model.RosterEntry, 0, len(ids))
	for _, id := range ids {
		u := s.users[id]
		entry := model.RosterEntry{ID: u.ID, Uname: u.Uname, Email: u.Email, Status: model.RosterIdle}
		if r := s.activeReservationForUserLocked(u.ID); r != nil {
			spotID := r.SpotID
			entry.CurrentSpot = &spotID
			entry.Status = model.RosterActive
		}
		out = append(out, entry)
	}
	return out
}

// SummaryView computes the overall and per-lot occupancy aggregates.
func (s *Store) SummaryView() model.AdminSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	var summary model.AdminSummary
	for _, sp := range s.spots {
		summary.OverallOccupancy.Total++
		if sp.Status == statusOccupied {
			summary.OverallOccupancy.Occupied++
		}
	}
	summary.OverallOccupancy.Available =
		summary.OverallOccupancy.Total - summary.OverallOccupancy.Occupied

	var lotIDs []int
	for id := range s.lots {
		lotIDs = append(lotIDs, id)
	}
	sort.Ints(lotIDs)
	for _, id := range lotIDs {
		lot := s.lots[id]
		available := s.countSpotsLocked(id, statusAvailable)
		summary.LotsBreakdown = append(summary.LotsBreakdown, model.LotOccupancy{
			Name:      lot.Location,
			Occupied:  lot.Spots - available,
			Available: available,
		})
	}
	return summary
}

// RevenueView sums the recorded cost of every reservation per lot.
// Reservations whose spot has since been deleted keep their money
// attributed to no lot, matching the backend's spot-based join.
func (s *Store) RevenueView() []model.LotRevenue {
	s.mu.Lock()
	defer s.mu.Unlock()
	revenue := make(map[int]float64)
	for _, r := range s.reservations {
		if sp, ok := s.spots[r.SpotID]; ok {
			revenue[sp.LotID] += r.Cost
		}
	}
	var lotIDs []int
	for id := range s.lots {
		lotIDs = append(lotIDs, id)
	}
	sort.Ints(lotIDs)
	out := make([]model.LotRevenue, 0, len(lotIDs))
	for _, id := range lotIDs {
		out = append(out, model.LotRevenue{Name: s.lots[id].Location, Revenue: revenue[id]})
	}
	return out
}

func hasRole(u *User, role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
