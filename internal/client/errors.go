package client

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrorBody caps how much of a failed response is kept for the
// error message.
const maxErrorBody = 512

// APIError is the single remote-failure kind: it covers transport
// errors, non-2xx responses, and undecodable payloads alike.  Exactly
// one of StatusCode/Err may be meaningful: StatusCode is zero when the
// request never produced a response, and Err is nil when the failure
// is purely an unexpected status.
type APIError struct {
	Op         string // operation being performed, e.g. "list users"
	Method     string
	URL        string
	StatusCode int    // HTTP status, zero if none was received
	Body       string // trimmed response snippet for non-2xx statuses
	Err        error  // underlying transport or decode error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s failed: %s %s returned %d: %v", e.Op, e.Method, e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s failed: %s %s returned %d: %s", e.Op, e.Method, e.URL, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s failed: %s %s returned %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a remote failure carrying a 404,
// the collaborator's way of saying the record does not exist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
