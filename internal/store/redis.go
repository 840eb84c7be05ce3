package store

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"github.com/userdesk/userdesk/internal/model"
)

// directoryKey is the Redis key holding the entire directory document.
const directoryKey = "userdesk:users"

// directory is the JSON document stored in Redis.  It carries the next
// identifier alongside the records so that identifier assignment
// survives deletions and process restarts.
type directory struct {
	NextID int                 `json:"next_id"`
	Users  map[int]*model.User `json:"users"`
}

// RedisStore is an implementation of UserStore backed by a Redis key.
// It stores the whole directory in a single JSON document.  While this
// implementation is straightforward, it is not optimized for high
// concurrency or large data sets; consider per-user keys or hashes for
// production systems.  All operations replace the entire document on
// writes.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to a Redis instance at the provided address
// and returns a store using a single directory key.  A ping is
// performed to verify connectivity.
func NewRedisStore(addr, password string) (*RedisStore, error) {
	opts := &redis.Options{
		Addr:     addr,
		Password: password, // empty string means no auth
		DB:       0,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// CreateUser inserts a new user into Redis.  The entire directory is
// fetched, updated, and written back as one operation.
func (s *RedisStore) CreateUser(ctx context.Context, name, email, phone string) (*model.User, error) {
	dir, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:    dir.NextID,
		Name:  name,
		Email: email,
		Phone: phone,
	}
	dir.Users[user.ID] = user
	dir.NextID++
	if err := s.save(ctx, dir); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by id from Redis.  It returns (nil, nil) if
// the user does not exist.
func (s *RedisStore) GetUser(ctx context.Context, id int) (*model.User, error) {
	dir, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if u, ok := dir.Users[id]; ok {
		return u, nil
	}
	return nil, nil
}

// ListUsers returns all users stored in Redis ordered by ascending
// identifier.  On a fresh store or when the key doesn't exist, an
// empty slice and nil error are returned.
func (s *RedisStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	dir, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*model.User, 0, len(dir.Users))
	for _, u := range dir.Users {
		result = append(result, u)
	}
	sortUsersByID(result)
	return result, nil
}

// UpdateUser replaces the editable fields of the user identified by id.
// It returns (nil, nil) when the user does not exist.
func (s *RedisStore) UpdateUser(ctx context.Context, id int, name, email, phone string) (*model.User, error) {
	dir, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := dir.Users[id]
	if !ok {
		return nil, nil
	}
	u.Name = name
	u.Email = email
	u.Phone = phone
	if err := s.save(ctx, dir); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the user identified by id and reports whether a
// user was removed.  The stored next identifier is left untouched so
// identifiers are never reassigned.
func (s *RedisStore) DeleteUser(ctx context.Context, id int) (bool, error) {
	dir, err := s.fetch(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := dir.Users[id]; !ok {
		return false, nil
	}
	delete(dir.Users, id)
	if err := s.save(ctx, dir); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceAll swaps the stored directory for the provided users.  The
// next identifier becomes one past the highest identifier installed.
func (s *RedisStore) ReplaceAll(ctx context.Context, users []*model.User) error {
	dir := &directory{NextID: 1, Users: make(map[int]*model.User, len(users))}
	for _, u := range users {
		cp := *u
		dir.Users[cp.ID] = &cp
		if cp.ID >= dir.NextID {
			dir.NextID = cp.ID + 1
		}
	}
	return s.save(ctx, dir)
}

// fetch reads the JSON document from Redis and decodes it.  If the key
// does not exist, an empty directory with the next identifier at 1 is
// returned.  On any other error, an error is returned.
func (s *RedisStore) fetch(ctx context.Context) (*directory, error) {
	raw, err := s.client.Get(ctx, directoryKey).Result()
	if err == redis.Nil {
		return &directory{NextID: 1, Users: make(map[int]*model.User)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var dir directory
	if err := json.Unmarshal([]byte(raw), &dir); err != nil {
		return nil, fmt.Errorf("failed to unmarshal directory json: %w", err)
	}
	if dir.Users == nil {
		dir.Users = make(map[int]*model.User)
	}
	if dir.NextID < 1 {
		dir.NextID = 1
		for id := range dir.Users {
			if id >= dir.NextID {
				dir.NextID = id + 1
			}
		}
	}
	return &dir, nil
}

// save writes the directory document to Redis as a JSON blob.
func (s *RedisStore) save(ctx context.Context, dir *directory) error {
	data, err := json.Marshal(dir)
	if err != nil {
		return fmt.Errorf("failed to marshal directory: %w", err)
	}
	if err := s.client.Set(ctx, directoryKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
