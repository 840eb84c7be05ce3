// Package client implements the HTTP JSON client for the remote
// directory, the "remote collaborator" every other part of the program
// talks through.  All failures surface as a single *APIError kind; see
// errors.go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/userdesk/userdesk/internal/model"
)

// userFields is the request body for create and update calls.  The
// collaborator assigns identifiers, so the body never carries one.
type userFields struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ListUsers fetches the whole collection.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, "list users", http.MethodGet, c.collectionURL(), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single record by identifier.  A missing record is
// reported as an *APIError satisfying IsNotFound.
func (c *Client) GetUser(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, "get user", http.MethodGet, c.itemURL(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a record from the given fields and returns the
// collaborator's view of it, identifier included.
func (c *Client) CreateUser(ctx context.Context, name, email, phone string) (*model.User, error) {
	var user model.User
	body := userFields{Name: name, Email: email, Phone: phone}
	if err := c.do(ctx, "create user", http.MethodPost, c.collectionURL(), &body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the editable fields of the record identified by
// id and returns the collaborator's response record.
func (c *Client) UpdateUser(ctx context.Context, id int, name, email, phone string) (*model.User, error) {
	var user model.User
	body := userFields{Name: name, Email: email, Phone: phone}
	if err := c.do(ctx, "update user", http.MethodPut, c.itemURL(id), &body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the record identified by id.  Any response body
// is ignored.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, "delete user", http.MethodDelete, c.itemURL(id), nil, nil)
}

// do issues one JSON request/response call.  payload, when non-nil, is
// marshaled as the request body; out, when non-nil, receives the
// decoded response.  Transport failures, non-2xx statuses, and
// malformed payloads all come back as *APIError.
func (c *Client) do(ctx context.Context, op, method, rawURL string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &APIError{Op: op, Method: method, URL: rawURL, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return &APIError{Op: op, Method: method, URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	slog.Debug("remote call", "method", method, "url", rawURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Method: method, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Op:         op,
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Method: method, URL: rawURL, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
