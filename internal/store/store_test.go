package store_test

import (
	"context"
	"testing"

	"github.com/userdesk/userdesk/internal/model"
	"github.com/userdesk/userdesk/internal/store"
)

// TestInMemoryStoreCRUD exercises the basic Create/Get/List behavior of the
// in-memory store.  It ensures IDs are assigned sequentially from 1, data is
// persisted, and nonexistent lookups return nil without error.
func TestInMemoryStoreCRUD(t *testing.T) {
	s := store.NewInMemoryStore()
	ctx := context.Background()

	// Create a user and verify its contents.
	user, err := s.CreateUser(ctx, "Alice", "alice@example.com", "555-0100")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected id 1, got %d", user.ID)
	}
	if got, want := user.Name, "Alice"; got != want {
		t.Fatalf("expected name %q, got %q", want, got)
	}
	if got, want := user.Email, "alice@example.com"; got != want {
		t.Fatalf("expected email %q, got %q", want, got)
	}
	if got, want := user.Phone, "555-0100"; got != want {
		t.Fatalf("expected phone %q, got %q", want, got)
	}

	// Retrieve the same user by ID.
	got, err := s.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if got == nil || got.Name != "Alice" {
		t.Fatalf("unexpected user retrieved: %+v", got)
	}

	// List users should return exactly one entry.
	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].Name != "Alice" {
		t.Fatalf("expected first user to be Alice, got %s", users[0].Name)
	}

	// Requesting a nonexistent user should return nil without error.
	none, err := s.GetUser(ctx, 99)
	if err != nil {
		t.Fatalf("GetUser for nonexistent id returned error: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for nonexistent user, got %+v", none)
	}
}

// TestInMemoryStoreUpdateDelete covers the mutation half of the interface:
// updates replace only the editable fields, deletes report whether a record
// existed, and identifiers are never reused after a deletion.
func TestInMemoryStoreUpdateDelete(t *testing.T) {
	s := store.NewInMemoryStore()
	ctx := context.Background()

	first, err := s.CreateUser(ctx, "Alice", "alice@example.com", "555-0100")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if _, err := s.CreateUser(ctx, "Bob", "bob@example.com", "555-0101"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	// Update the first user and confirm the identifier survives.
	updated, err := s.UpdateUser(ctx, first.ID, "Alicia", "alicia@example.com", "555-0199")
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated == nil || updated.ID != first.ID || updated.Name != "Alicia" {
		t.Fatalf("unexpected updated user: %+v", updated)
	}

	// Updating a nonexistent user yields nil without error.
	missing, err := s.UpdateUser(ctx, 404, "X", "x@example.com", "0")
	if err != nil {
		t.Fatalf("UpdateUser for nonexistent id returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for nonexistent update, got %+v", missing)
	}

	// Delete the first user.
	found, err := s.DeleteUser(ctx, first.ID)
	if err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if !found {
		t.Fatalf("expected DeleteUser to find id %d", first.ID)
	}
	found, err = s.DeleteUser(ctx, first.ID)
	if err != nil {
		t.Fatalf("second DeleteUser returned error: %v", err)
	}
	if found {
		t.Fatalf("expected DeleteUser to miss already-deleted id %d", first.ID)
	}

	// The identifier of a deleted user must not be handed out again.
	third, err := s.CreateUser(ctx, "Carol", "carol@example.com", "555-0102")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("expected id 3 after a deletion, got %d", third.ID)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users after delete, got %d", len(users))
	}
	if users[0].ID > users[1].ID {
		t.Fatalf("expected ascending id order, got %d then %d", users[0].ID, users[1].ID)
	}
}

// TestInMemoryStoreReplaceAll verifies fixture-style wholesale replacement,
// including next-identifier recomputation from the installed records.
func TestInMemoryStoreReplaceAll(t *testing.T) {
	s := store.NewInMemoryStore()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "Old", "old@example.com", "0"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	seed := []*model.User{
		{ID: 7, Name: "Grace", Email: "grace@example.com", Phone: "555-0107"},
		{ID: 2, Name: "Dan", Email: "dan@example.com", Phone: "555-0102"},
	}
	if err := s.ReplaceAll(ctx, seed); err != nil {
		t.Fatalf("ReplaceAll returned error: %v", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users after replace, got %d", len(users))
	}
	if users[0].ID != 2 || users[1].ID != 7 {
		t.Fatalf("expected ids [2 7], got [%d %d]", users[0].ID, users[1].ID)
	}

	// The next created user continues one past the highest seeded id.
	next, err := s.CreateUser(ctx, "Heidi", "heidi@example.com", "555-0108")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if next.ID != 8 {
		t.Fatalf("expected id 8 after replace, got %d", next.ID)
	}

	// Mutating the seed slice afterwards must not affect the store.
	seed[0].Name = "mutated"
	got, err := s.GetUser(ctx, 7)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if got.Name != "Grace" {
		t.Fatalf("store contents aliased the seed slice: %+v", got)
	}
}
