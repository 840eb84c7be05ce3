// Package model defines the user record shared by the client, the
// session, the stores, and the stand-in server.
package model

import "fmt"

// User is a single directory record.  The identifier is assigned by
// the remote collaborator (or by a store when running the stand-in
// server) and is expected, but not guaranteed, to be unique within a
// listing.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Card renders the record the way the session displays it:
// "name / email / phone".
func (u User) Card() string {
	return fmt.Sprintf("%s / %s / %s", u.Name, u.Email, u.Phone)
}

// Clone returns a copy of the slice so callers can hand out state
// without sharing backing arrays.
func Clone(users []User) []User {
	out := make([]User, len(users))
	copy(out, users)
	return out
}
