// Package session implements the interactive directory view: a local
// snapshot of the user collection, a draft form for creating or
// editing one record, and a theme flag.  All mutations go through a
// Directory implementation (normally internal/client) and the local
// state only changes after the remote call succeeds.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/userdesk/userdesk/internal/model"
)

var (
	// ErrUnknownField is returned by SetField for anything other
	// than name, email or phone.
	ErrUnknownField = errors.New("unknown field")

	// ErrNoSuchRecord is returned by BeginEdit when the identifier
	// is not in the local snapshot.
	ErrNoSuchRecord = errors.New("no record with that id")

	// ErrDraftIncomplete is returned by Submit while any of the
	// three draft fields is still empty.  No remote call is made.
	ErrDraftIncomplete = errors.New("name, email and phone are required")
)

// Directory is the slice of the remote collaborator the session
// depends on.  *client.Client satisfies it.
type Directory interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, name, email, phone string) (*model.User, error)
	UpdateUser(ctx context.Context, id int, name, email, phone string) (*model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// Draft holds the in-progress form values.  All three fields must be
// filled before Submit will send anything.
type Draft struct {
	Name  string
	Email string
	Phone string
}

func (d Draft) complete() bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Email) != "" &&
		strings.TrimSpace(d.Phone) != ""
}

// Controller owns the session state.  Operations are serialized by an
// internal mutex, so a slow remote call never interleaves with a
// second mutation.
type Controller struct {
	mu     sync.Mutex
	dir    Directory
	logger *slog.Logger

	users   []model.User
	draft   Draft
	editing bool
	editID  int
	theme   Theme
	status  string
}

// NewController returns a controller with an empty snapshot.  A nil
// logger falls back to slog.Default().
func NewController(dir Directory, theme Theme, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{dir: dir, logger: logger, theme: theme}
}

// Load replaces the local snapshot with the remote collection.  On
// failure the snapshot is left exactly as it was; the error is logged,
// surfaced in the status line and returned.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.dir.ListUsers(ctx)
	if err != nil {
		c.logger.Error("list failed", "error", err)
		c.status = fmt.Sprintf("load failed: %v", err)
		return err
	}
	c.users = users
	c.status = fmt.Sprintf("loaded %d record(s)", len(users))
	return nil
}

// SetField writes one draft field.  Field names are case-insensitive.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		c.draft.Name = value
	case "email":
		c.draft.Email = value
	case "phone":
		c.draft.Phone = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// BeginEdit switches the form into edit mode for the given record and
// copies its fields into the draft, discarding whatever was typed so
// far.
func (c *Controller) BeginEdit(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.users {
		if u.ID == id {
			c.draft = Draft{Name: u.Name, Email: u.Email, Phone: u.Phone}
			c.editing = true
			c.editID = id
			c.status = fmt.Sprintf("editing record #%d", id)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrNoSuchRecord, id)
}

// CancelEdit clears the draft and drops back to create mode without
// touching the record list or the remote collection.  It reports
// whether an edit was actually in progress.
func (c *Controller) CancelEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	was := c.editing
	c.draft = Draft{}
	c.editing = false
	c.editID = 0
	if was {
		c.status = "edit cancelled"
	}
	return was
}

// Submit sends the draft to the remote collection: an update for the
// record under edit, a create otherwise.  On success the snapshot is
// patched locally, the draft is cleared and create mode restored.  On
// failure nothing changes, so the user can retry or cancel.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.draft.complete() {
		return ErrDraftIncomplete
	}
	if c.editing {
		return c.submitUpdate(ctx)
	}
	return c.submitCreate(ctx)
}

func (c *Controller) submitCreate(ctx context.Context) error {
	created, err := c.dir.CreateUser(ctx, c.draft.Name, c.draft.Email, c.draft.Phone)
	if err != nil {
		c.logger.Error("create failed", "error", err)
		c.status = fmt.Sprintf("create failed: %v", err)
		return err
	}

	rec := model.User{Name: c.draft.Name, Email: c.draft.Email, Phone: c.draft.Phone}
	if created != nil {
		rec = *created
	}
	if rec.ID <= 0 {
		// Collaborators that echo without assigning an id get a
		// locally unique one so edit and delete keep working.
		rec.ID = c.nextLocalID()
	}
	c.users = append(c.users, rec)
	c.draft = Draft{}
	c.status = fmt.Sprintf("created record #%d", rec.ID)
	c.logger.Info("record created", "id", rec.ID)
	return nil
}

func (c *Controller) submitUpdate(ctx context.Context) error {
	_, err := c.dir.UpdateUser(ctx, c.editID, c.draft.Name, c.draft.Email, c.draft.Phone)
	if err != nil {
		c.logger.Error("update failed", "id", c.editID, "error", err)
		c.status = fmt.Sprintf("update failed: %v", err)
		return err
	}

	for i := range c.users {
		if c.users[i].ID == c.editID {
			c.users[i].Name = c.draft.Name
			c.users[i].Email = c.draft.Email
			c.users[i].Phone = c.draft.Phone
		}
	}
	c.status = fmt.Sprintf("updated record #%d", c.editID)
	c.logger.Info("record updated", "id", c.editID)
	c.draft = Draft{}
	c.editing = false
	c.editID = 0
	return nil
}

// Delete removes a record remotely and, on success, drops every local
// entry carrying that identifier.  The draft and edit mode are left
// alone.
func (c *Controller) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dir.DeleteUser(ctx, id); err != nil {
		c.logger.Error("delete failed", "id", id, "error", err)
		c.status = fmt.Sprintf("delete failed: %v", err)
		return err
	}

	kept := make([]model.User, 0, len(c.users))
	removed := 0
	for _, u := range c.users {
		if u.ID == id {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	c.users = kept
	c.status = fmt.Sprintf("deleted %d record(s) with id %d", removed, id)
	c.logger.Info("record deleted", "id", id, "removed", removed)
	return nil
}

// ToggleTheme flips between the dark and light palettes.  It is purely
// presentational and never issues a remote call.
func (c *Controller) ToggleTheme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.theme = c.theme.Flip()
	return c.theme
}

// nextLocalID picks an identifier one past the largest in the
// snapshot, so deleting a record never reassigns its id to a newer
// one.  Callers hold c.mu.
func (c *Controller) nextLocalID() int {
	next := 1
	for _, u := range c.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	return next
}

// Users returns a copy of the local snapshot.
func (c *Controller) Users() []model.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.Clone(c.users)
}

// Draft returns the current form values.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Editing reports the record under edit, if any.
func (c *Controller) Editing() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editID, c.editing
}

// Theme returns the active palette.
func (c *Controller) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// Status returns the outcome line of the most recent operation.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
