// Package dashboard is the client-side state container behind both
// dashboards. It owns the view-mode state machine (admin: lot list,
// add/edit forms, stats; user: booking and personal stats), the modal
// workflows layered on top (booking, vacate, spot inspection), and the
// derived state the views need (display statuses, booking eligibility).
// All business decisions (pricing, allocation, the one-Active-
// reservation rule) live in the backend; this package only renders
// state and issues requests through the api client.
package dashboard

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/parking-reservation-dashboard/internal/api"
	"github.com/iliyamo/parking-reservation-dashboard/internal/session"
)

// validate backs the client-side form checks. Forms are validated
// before any network call so invalid input never reaches the wire.
var validate = validator.New()

// ValidationError is a client-side form failure, surfaced inline before
// any request is issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Controller is the dashboard's root state. After Mount it holds
// exactly one of the two branch states, selected by the session's role;
// the other stays nil for the controller's whole life. There is no
// terminal state: the controller lives until the caller drops it at
// logout or exit.
type Controller struct {
	client   *api.Client
	sessions session.Store
	alert    api.Alerter

	sess  session.Session
	role  session.Role
	admin *AdminState
	user  *UserState
}

// New wires a controller to its collaborators. Mount must be called
// before anything else.
func New(client *api.Client, sessions session.Store, alert api.Alerter) *Controller {
	return &Controller{client: client, sessions: sessions, alert: alert}
}

// Mount resolves the persisted session into a role and brings up the
// matching branch with its initial data. With no session it returns
// session.ErrUnauthenticated and the caller must show the login flow.
// Failed initial fetches are logged and alerted but do not fail the
// mount; the branch simply starts with empty tables, the same way the
// web dashboard stayed usable when a fetch failed.
func (c *Controller) Mount(ctx context.Context) error {
	s, err := c.sessions.Load()
	if err != nil {
		return err
	}
	role, err := s.Resolve()
	if err != nil {
		return err
	}
	c.sess = s
	c.role = role

	switch role {
	case session.RoleAdmin:
		c.admin = &AdminState{ctrl: c, View: AdminViewLots}
		if err := c.admin.RefreshLots(ctx); err != nil {
			log.Printf("dashboard: initial lot fetch: %v", err)
		}
		if err := c.admin.RefreshRoster(ctx); err != nil {
			log.Printf("dashboard: initial roster fetch: %v", err)
		}
	default:
		c.user = &UserState{ctrl: c, View: UserViewBookParking}
		if err := c.user.Refresh(ctx); err != nil {
			log.Printf("dashboard: initial user fetch: %v", err)
		}
	}
	return nil
}

// Role returns the branch the controller resolved at mount.
func (c *Controller) Role() session.Role { return c.role }

// Session returns the session the controller mounted with.
func (c *Controller) Session() session.Session { return c.sess }

// Admin returns the admin branch state, nil for user sessions.
func (c *Controller) Admin() *AdminState { return c.admin }

// User returns the user branch state, nil for admin sessions.
func (c *Controller) User() *UserState { return c.user }

// Logout clears the persisted session. The controller is dead
// afterwards; callers return to the login flow.
func (c *Controller) Logout() error {
	return c.sessions.Clear()
}
