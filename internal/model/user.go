package model

// Roster statuses for the admin user list: a user is Active while they
// hold a spot and Idle otherwise.
const (
	RosterActive = "Active"
	RosterIdle   = "Idle"
)

// RosterEntry is one row of the admin's registered-users table.
// CurrentSpot is nil for users who are not parked anywhere.
type RosterEntry struct {
	ID          int    `json:"id"`
	Uname       string `json:"uname"`
	Email       string `json:"email"`
	CurrentSpot *int   `json:"current_spot"`
	Status      string `json:"status"`
}

// AuthUser is the user object inside the login response. The
// authentication token it carries is opaque to the client; it is stored
// in the session and replayed on every request.
type AuthUser struct {
	Email               string   `json:"email"`
	Uname               string   `json:"uname"`
	Roles               []string `json:"roles"`
	AuthenticationToken string   `json:"authentication_token"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Uname    string `json:"uname" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}
