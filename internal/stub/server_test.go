package stub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/parking-reservation-dashboard/internal/api"
	"github.com/iliyamo/parking-reservation-dashboard/internal/config"
	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
	"github.com/iliyamo/parking-reservation-dashboard/internal/session"
	"github.com/iliyamo/parking-reservation-dashboard/internal/stub"
)

type noopAlerter struct{}

func (noopAlerter) Alert(string) {}

// harness exercises the stub through the same client the dashboard
// uses, so every assertion here is an assertion about the wire contract.
type harness struct {
	srv      *stub.Server
	client   *api.Client
	sessions *session.MemStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := stub.New(config.StubConfig{JWTSecret: "test-secret", BcryptCost: 4, TokenTTLMin: 60})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	sessions := session.NewMemStore()
	return &harness{
		srv:      srv,
		client:   api.New(ts.URL, sessions, noopAlerter{}),
		sessions: sessions,
	}
}

func (h *harness) login(t *testing.T, email, password string) model.AuthUser {
	t.Helper()
	u, err := h.client.Login(context.Background(), email, password)
	require.NoError(t, err)
	require.NoError(t, h.sessions.Save(session.Session{Token: u.AuthenticationToken, Roles: u.Roles}))
	return u
}

func TestLoginSeededAccounts(t *testing.T) {
	h := newHarness(t)

	admin := h.login(t, "admin@gmail.com", "admin@1234")
	assert.Equal(t, "Admin", admin.Uname)
	assert.Contains(t, admin.Roles, "admin")
	assert.NotEmpty(t, admin.AuthenticationToken)

	user := h.login(t, "user1@gmail.com", "user@1234")
	assert.Equal(t, []string{"user"}, user.Roles)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)
	_, err := h.client.Login(context.Background(), "admin@gmail.com", "wrong")
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "Invalid email or password", reqErr.Message)
}

func TestRegisterThenLogin(t *testing.T) {
	h := newHarness(t)
	msg, err := h.client.Register(context.Background(), model.RegisterRequest{
		Email:    "new@example.com",
		Uname:    "Newcomer",
		Password: "pass1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)

	u := h.login(t, "new@example.com", "pass1234")
	assert.Equal(t, []string{"user"}, u.Roles, "registration never grants admin")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newHarness(t)
	_, err := h.client.Register(context.Background(), model.RegisterRequest{
		Email:    "user1@gmail.com",
		Uname:    "Clone",
		Password: "pass1234",
	})
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "User already exists", reqErr.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	_, err := h.client.AdminLots(context.Background())
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "Authentication required", reqErr.Message)
}

func TestGarbageTokenRejected(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.sessions.Save(session.Session{Token: "not-a-jwt"}))
	_, err := h.client.AdminLots(context.Background())
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Invalid authentication token", reqErr.Message)
}

func TestRoleSeparation(t *testing.T) {
	h := newHarness(t)
	h.login(t, "user1@gmail.com", "user@1234")

	_, err := h.client.AdminLots(context.Background())
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.Status)
	assert.Equal(t, "Forbidden", reqErr.Message)

	h.login(t, "admin@gmail.com", "admin@1234")
	_, err = h.client.Reservations(context.Background())
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.Status)
}

// TestFullLifecycle drives the whole contract end to end: the admin
// creates a lot, the user books, vacates and pays, and the admin sees
// the money in the aggregates.
func TestFullLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.login(t, "admin@gmail.com", "admin@1234")
	msg, err := h.client.CreateLot(ctx, model.LotForm{
		Location: "Central", Price: 50, Address: "1 Main St", Pin: "560001", Spots: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Parking Lot created successfully", msg)

	lots, err := h.client.AdminLots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	lotID := lots[0].ID

	h.login(t, "user1@gmail.com", "user@1234")
	msg, err = h.client.ReserveParking(ctx, model.BookingRequest{LotID: lotID, VehicleNumber: "KA-01-1234"})
	require.NoError(t, err)
	assert.Equal(t, "Parking spot reserved successfully", msg)

	userLots, err := h.client.UserLots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, userLots[0].AvailableSpots)
	assert.Equal(t, 1, userLots[0].OccupiedSpots)

	res, err := h.client.VacateParking(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.FinalCost)
	assert.False(t, res.VacatedAt.IsZero())

	msg, err = h.client.Pay(ctx, res.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, "Payment successful!", msg)

	reservations, err := h.client.Reservations(ctx)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, model.StatusCompleted, reservations[0].Status, "the wire carries raw statuses")
	assert.True(t, reservations[0].Paid)

	reports, err := h.client.Reports(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, reports)
	assert.Equal(t, 50.0, reports[0].TotalSpent)

	h.login(t, "admin@gmail.com", "admin@1234")
	revenue, err := h.client.RevenueSummary(ctx)
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	assert.Equal(t, 50.0, revenue[0].Revenue)

	summary, err := h.client.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.OverallOccupancy.Total)
	assert.Equal(t, 0, summary.OverallOccupancy.Occupied)

	roster, err := h.client.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, model.RosterIdle, roster[0].Status)
}

func TestVacateWithoutBooking(t *testing.T) {
	h := newHarness(t)
	h.login(t, "user1@gmail.com", "user@1234")
	_, err := h.client.VacateParking(context.Background())
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, "No active parking reservation found", reqErr.Message)
}

func TestReserveRequiresVehicleNumber(t *testing.T) {
	h := newHarness(t)
	h.login(t, "user1@gmail.com", "user@1234")
	_, err := h.client.ReserveParking(context.Background(), model.BookingRequest{LotID: 1})
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Vehicle number is required", reqErr.Message)
}
