package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/parking-reservation-dashboard/internal/api"
	"github.com/iliyamo/parking-reservation-dashboard/internal/config"
	"github.com/iliyamo/parking-reservation-dashboard/internal/dashboard"
	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
	"github.com/iliyamo/parking-reservation-dashboard/internal/session"
	"github.com/iliyamo/parking-reservation-dashboard/internal/stub"
)

// env runs every dashboard test against an in-process backend with the
// seeded demo accounts, reached through a real api.Client.
type env struct {
	srv      *stub.Server
	client   *api.Client
	sessions *session.MemStore
	alerts   *alertLog
}

type alertLog struct {
	msgs []string
}

func (a *alertLog) Alert(msg string) { a.msgs = append(a.msgs, msg) }

func (a *alertLog) last() string {
	if len(a.msgs) == 0 {
		return ""
	}
	return a.msgs[len(a.msgs)-1]
}

// countingTransport counts round trips. With next nil every request
// fails instead of reaching the wire, which is how the tests prove a
// code path issues no request at all.
type countingTransport struct {
	next http.RoundTripper
	n    int
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.n++
	if t.next == nil {
		return nil, errors.New("unexpected network call")
	}
	return t.next.RoundTrip(req)
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := stub.New(config.StubConfig{JWTSecret: "test-secret", BcryptCost: 4, TokenTTLMin: 60})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	sessions := session.NewMemStore()
	alerts := &alertLog{}
	return &env{
		srv:      srv,
		client:   api.New(ts.URL, sessions, alerts),
		sessions: sessions,
		alerts:   alerts,
	}
}

func (e *env) login(t *testing.T, email, password string) {
	t.Helper()
	u, err := e.client.Login(context.Background(), email, password)
	require.NoError(t, err)
	require.NoError(t, e.sessions.Save(session.Session{
		Token: u.AuthenticationToken,
		Email: u.Email,
		Name:  u.Uname,
		Roles: u.Roles,
	}))
}

// mountAdmin logs the seeded admin in and mounts the controller.
func (e *env) mountAdmin(t *testing.T) *dashboard.Controller {
	t.Helper()
	e.login(t, "admin@gmail.com", "admin@1234")
	ctrl := dashboard.New(e.client, e.sessions, e.alerts)
	require.NoError(t, ctrl.Mount(context.Background()))
	return ctrl
}

// mountUser logs the seeded user in and mounts the controller.
func (e *env) mountUser(t *testing.T) *dashboard.Controller {
	t.Helper()
	e.login(t, "user1@gmail.com", "user@1234")
	ctrl := dashboard.New(e.client, e.sessions, e.alerts)
	require.NoError(t, ctrl.Mount(context.Background()))
	return ctrl
}

// seedLot creates a lot directly in the backing store.
func (e *env) seedLot(location string, price float64, spots int) *stub.Lot {
	return e.srv.Store().CreateLot(model.LotForm{
		Location: location,
		Price:    price,
		Address:  "1 Test Street",
		Pin:      "560001",
		Spots:    spots,
	})
}

func TestMountWithoutSessionRedirectsToLogin(t *testing.T) {
	e := newEnv(t)
	ctrl := dashboard.New(e.client, e.sessions, e.alerts)
	err := ctrl.Mount(context.Background())
	require.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestMountSelectsExactlyOneBranch(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		e := newEnv(t)
		ctrl := e.mountAdmin(t)
		require.Equal(t, session.RoleAdmin, ctrl.Role())
		require.NotNil(t, ctrl.Admin())
		require.Nil(t, ctrl.User())
	})

	t.Run("user", func(t *testing.T) {
		e := newEnv(t)
		ctrl := e.mountUser(t)
		require.Equal(t, session.RoleUser, ctrl.Role())
		require.NotNil(t, ctrl.User())
		require.Nil(t, ctrl.Admin())
	})
}

func TestLogoutClearsSession(t *testing.T) {
	e := newEnv(t)
	ctrl := e.mountUser(t)
	require.NoError(t, ctrl.Logout())

	s, err := e.sessions.Load()
	require.NoError(t, err)
	_, err = s.Resolve()
	require.ErrorIs(t, err, session.ErrUnauthenticated)
}
