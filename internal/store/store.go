package store

import (
	"context"
	"sort"

	"github.com/userdesk/userdesk/internal/model"
)

// UserStore defines an interface for persisting and retrieving users
// behind the stand-in directory server.
//
// Implementations may use different backends (e.g. in-memory for tests
// and default serving, Redis when state should outlive the process).
// The HTTP handlers depend on this abstraction rather than a concrete
// data store, making it easy to substitute alternate implementations
// and improving testability.
//
// All methods accept a context for cancellation and deadlines.  They
// return an error if the operation failed.  When a user is not found,
// GetUser and UpdateUser return a nil *model.User and a nil error, and
// DeleteUser returns false and a nil error.
type UserStore interface {
	// CreateUser stores a new user with the provided name, email and
	// phone.  It returns the created user with an assigned identifier.
	// Identifiers are sequential starting from 1 and are never reused,
	// even after deletions.
	CreateUser(ctx context.Context, name, email, phone string) (*model.User, error)
	// GetUser returns the user identified by id, or nil if the user
	// does not exist.  A nil error is returned when the user isn't found.
	GetUser(ctx context.Context, id int) (*model.User, error)
	// ListUsers returns all users in the store, ordered by ascending
	// identifier so listings are stable across calls.
	ListUsers(ctx context.Context) ([]*model.User, error)
	// UpdateUser replaces the name, email and phone of the user
	// identified by id and returns the updated record, or nil if no
	// such user exists.
	UpdateUser(ctx context.Context, id int, name, email, phone string) (*model.User, error)
	// DeleteUser removes the user identified by id.  It reports whether
	// a user was removed.
	DeleteUser(ctx context.Context, id int) (bool, error)
	// ReplaceAll discards the current contents and installs the given
	// users wholesale, used when (re)loading a seed fixture.  The next
	// assigned identifier becomes max(id)+1.
	ReplaceAll(ctx context.Context, users []*model.User) error
}

// sortUsersByID orders a listing by ascending identifier in place.
func sortUsersByID(users []*model.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}
