package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/iliyamo/parking-reservation-dashboard/internal/session"
)

// AuthHeader is the header the backend reads the authentication token
// from on every protected endpoint.
const AuthHeader = "Authentication-Token"

// Client issues authenticated JSON requests against the parking backend.
// The session store is consulted on every call so a login or logout in
// the same process is picked up immediately. The zero http.Client is
// used on purpose: the contract has no timeout or cancellation policy,
// so none is invented here.
type Client struct {
	base     string
	http     *http.Client
	sessions session.Store
	alert    Alerter
}

// New returns a Client for the backend at baseURL. The alerter receives
// every backend error message; pass an AlerterFunc writing to the
// terminal in production or a recording stub in tests.
func New(baseURL string, sessions session.Store, alert Alerter) *Client {
	return &Client{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		sessions: sessions,
		alert:    alert,
	}
}

// SetHTTPClient swaps the underlying http.Client. Tests use it to count
// round trips or to talk to an in-process server.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// messageEnvelope matches the `{message}` body the backend wraps both
// errors and mutation acknowledgements in.
type messageEnvelope struct {
	Message string `json:"message"`
}

// do performs one round trip. in, when non-nil, is marshalled as the
// JSON request body; out, when non-nil, receives the decoded JSON
// response. A 2xx response without a JSON content type (some deletes
// return nothing) leaves out untouched and returns nil.
//
// Failure behaviour, in order:
//   - transport failure  → *NetworkError, logged, alerted generically
//   - non-2xx status     → *RequestError carrying the decoded backend
//     message, alerted verbatim
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	url := c.base + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s, err := c.sessions.Load(); err == nil && s.Token != "" {
		req.Header.Set(AuthHeader, s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		nerr := &NetworkError{URL: url, Err: err}
		log.Printf("api: %v", nerr)
		c.alert.Alert("Error connecting to server.")
		return nerr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := decodeMessage(resp.Body)
		c.alert.Alert("Error: " + msg)
		return &RequestError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		// Empty result for non-JSON success bodies.
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeMessage extracts the backend's error message, falling back to a
// generic line when the body is not the expected `{message}` shape.
func decodeMessage(r io.Reader) string {
	var env messageEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil || env.Message == "" {
		return "API request failed"
	}
	return env.Message
}
