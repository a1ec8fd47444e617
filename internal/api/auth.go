package api

import (
	"context"
	"net/http"

	"github.com/iliyamo/parking-reservation-dashboard/internal/model"
)

// loginEnvelope mirrors the backend's nested login response:
// {"response": {"user": {...}}}.
type loginEnvelope struct {
	Response struct {
		User model.AuthUser `json:"user"`
	} `json:"response"`
}

// Login exchanges credentials for an authenticated user record carrying
// the token to persist. The caller builds the session from the result;
// Login itself does not touch the session store.
func (c *Client) Login(ctx context.Context, email, password string) (model.AuthUser, error) {
	var env loginEnvelope
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &env); err != nil {
		return model.AuthUser{}, err
	}
	return env.Response.User, nil
}

// Register creates a new user account with the plain "user" role and
// returns the acknowledgement message. Registration does not log the
// user in.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	var env messageEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}
