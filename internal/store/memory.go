package store

import (
	"context"
	"sync"

	"github.com/userdesk/userdesk/internal/model"
)

// InMemoryStore is an implementation of UserStore backed by a simple
// in-memory map.  It is safe for concurrent use and is the default
// backend for the stand-in server as well as the backend used by unit
// tests.  Data stored in this store is not persisted beyond the
// lifetime of the process.
type InMemoryStore struct {
	mu     sync.Mutex
	users  map[int]*model.User
	nextID int
}

// NewInMemoryStore constructs an empty in-memory store.  The first
// created user receives identifier 1.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:  make(map[int]*model.User),
		nextID: 1,
	}
}

// CreateUser inserts a new user into the store and returns the created
// entity with an assigned identifier.  IDs are assigned sequentially
// starting from 1 and are not reused after deletions.  This method is
// safe for concurrent use.
func (s *InMemoryStore) CreateUser(ctx context.Context, name, email, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &model.User{
		ID:    s.nextID,
		Name:  name,
		Email: email,
		Phone: phone,
	}
	s.users[user.ID] = user
	s.nextID++
	return cloneUser(user), nil
}

// GetUser retrieves a user by id.  It returns (nil, nil) if the user
// does not exist.  This method is safe for concurrent use.
func (s *InMemoryStore) GetUser(ctx context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

// ListUsers returns all users stored, ordered by ascending identifier.
// This method is safe for concurrent use.
func (s *InMemoryStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, cloneUser(u))
	}
	sortUsersByID(users)
	return users, nil
}

// UpdateUser replaces the editable fields of the user identified by id.
// It returns (nil, nil) when the user does not exist.  This method is
// safe for concurrent use.
func (s *InMemoryStore) UpdateUser(ctx context.Context, id int, name, email, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u.Name = name
	u.Email = email
	u.Phone = phone
	return cloneUser(u), nil
}

// DeleteUser removes the user identified by id and reports whether a
// user was removed.  The next assigned identifier is unaffected, so
// identifiers are never handed out twice.  This method is safe for
// concurrent use.
func (s *InMemoryStore) DeleteUser(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

// ReplaceAll swaps the store contents for the provided users.  The next
// assigned identifier becomes one past the highest identifier seen.
// This method is safe for concurrent use.
func (s *InMemoryStore) ReplaceAll(ctx context.Context, users []*model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[int]*model.User, len(users))
	s.nextID = 1
	for _, u := range users {
		cp := cloneUser(u)
		s.users[cp.ID] = cp
		if cp.ID >= s.nextID {
			s.nextID = cp.ID + 1
		}
	}
	return nil
}

// cloneUser copies a record so that pointers handed to callers refer
// to stable memory rather than the store's own entries.
func cloneUser(u *model.User) *model.User {
	cp := *u
	return &cp
}
