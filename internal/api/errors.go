// Package api is the thin REST client the dashboard talks through. It
// owns exactly one piece of behaviour: issue a request with the session's
// authentication token attached, decode the JSON that comes back, and
// surface backend error messages to the user. It never retries, never
// caches, never deduplicates and sets no timeout; every call is a fresh
// round trip and a slow backend simply makes the caller wait. That
// thinness is deliberate and is relied on by the layers above.
package api

import "fmt"

// Alerter delivers a blocking notification to the user, the terminal
// equivalent of a browser alert box. The client calls it once per failed
// request with the server-provided message so callers never have to.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a plain function to the Alerter interface.
type AlerterFunc func(message string)

func (f AlerterFunc) Alert(message string) { f(message) }

// RequestError reports a completed HTTP round trip that ended in a
// non-2xx status. Message is the backend's own words, decoded from the
// JSON error body; callers must not assume any part of the operation
// took effect.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// NetworkError reports a request that never completed: the transport
// itself failed before any status line arrived. It is surfaced to the
// user generically since there is no server message to show.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
