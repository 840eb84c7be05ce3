package session_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdesk/userdesk/internal/model"
	"github.com/userdesk/userdesk/internal/session"
)

func TestMain(m *testing.M) {
	// Deterministic render output regardless of the test terminal.
	color.NoColor = true
	os.Exit(m.Run())
}

// fakeDirectory is a scriptable Directory: fixed results, injectable
// failures and call counters.
type fakeDirectory struct {
	users     []model.User
	listErr   error
	created   *model.User
	createErr error
	updateErr error
	deleteErr error

	listCalls    int
	createCalls  int
	updateCalls  int
	deleteCalls  int
	lastCreate   model.User
	lastUpdateID int
	lastDeleteID int
}

func (f *fakeDirectory) ListUsers(_ context.Context) ([]model.User, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return model.Clone(f.users), nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, name, email, phone string) (*model.User, error) {
	f.createCalls++
	f.lastCreate = model.User{Name: name, Email: email, Phone: phone}
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		u := *f.created
		return &u, nil
	}
	// Echo without an id, like collaborators that leave assignment
	// to the caller.
	return &model.User{Name: name, Email: email, Phone: phone}, nil
}

func (f *fakeDirectory) UpdateUser(_ context.Context, id int, name, email, phone string) (*model.User, error) {
	f.updateCalls++
	f.lastUpdateID = id
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &model.User{ID: id, Name: name, Email: email, Phone: phone}, nil
}

func (f *fakeDirectory) DeleteUser(_ context.Context, id int) error {
	f.deleteCalls++
	f.lastDeleteID = id
	return f.deleteErr
}

func newTestController(f *fakeDirectory) *session.Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return session.NewController(f, session.Dark, logger)
}

func TestLoadReplacesSnapshot(t *testing.T) {
	f := &fakeDirectory{users: []model.User{
		{ID: 1, Name: "A", Email: "a@x.com", Phone: "1"},
	}}
	c := newTestController(f)

	require.NoError(t, c.Load(context.Background()))

	users := c.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "A / a@x.com / 1", users[0].Card())
	assert.Equal(t, "loaded 1 record(s)", c.Status())

	var buf bytes.Buffer
	c.Render(&buf)
	assert.Contains(t, buf.String(), "A / a@x.com / 1")
}

func TestLoadFailureKeepsSnapshot(t *testing.T) {
	f := &fakeDirectory{users: []model.User{
		{ID: 1, Name: "A", Email: "a@x.com", Phone: "1"},
		{ID: 2, Name: "B", Email: "b@x.com", Phone: "2"},
	}}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))

	f.listErr = errors.New("collaborator down")
	err := c.Load(context.Background())
	require.Error(t, err)

	assert.Len(t, c.Users(), 2, "snapshot must survive a failed reload")
	assert.Contains(t, c.Status(), "load failed")
}

func TestSetField(t *testing.T) {
	c := newTestController(&fakeDirectory{})

	require.NoError(t, c.SetField("name", "A"))
	require.NoError(t, c.SetField("Email", "a@x.com"))
	require.NoError(t, c.SetField(" phone ", "1"))
	assert.Equal(t, session.Draft{Name: "A", Email: "a@x.com", Phone: "1"}, c.Draft())

	err := c.SetField("nickname", "Al")
	assert.ErrorIs(t, err, session.ErrUnknownField)
}

func TestSubmitRequiresAllFields(t *testing.T) {
	f := &fakeDirectory{}
	c := newTestController(f)

	require.NoError(t, c.SetField("name", "A"))
	require.NoError(t, c.SetField("email", "a@x.com"))

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, session.ErrDraftIncomplete)
	assert.Zero(t, f.createCalls, "an incomplete draft must not reach the collaborator")
}

func TestSubmitCreateAdoptsServerID(t *testing.T) {
	f := &fakeDirectory{created: &model.User{ID: 42, Name: "A", Email: "a@x.com", Phone: "1"}}
	c := newTestController(f)

	require.NoError(t, c.SetField("name", "A"))
	require.NoError(t, c.SetField("email", "a@x.com"))
	require.NoError(t, c.SetField("phone", "1"))
	require.NoError(t, c.Submit(context.Background()))

	users := c.Users()
	require.Len(t, users, 1)
	assert.Equal(t, 42, users[0].ID)
	assert.Equal(t, 1, f.createCalls, "exactly one create call per submit")
	assert.Equal(t, model.User{Name: "A", Email: "a@x.com", Phone: "1"}, f.lastCreate)

	assert.Equal(t, session.Draft{}, c.Draft(), "draft clears after a successful create")
	_, editing := c.Editing()
	assert.False(t, editing)
	assert.Contains(t, c.Status(), "created record #42")
}

func TestSubmitCreateFallsBackToLocalID(t *testing.T) {
	f := &fakeDirectory{users: []model.User{
		{ID: 5, Name: "E", Email: "e@x.com", Phone: "5"},
		{ID: 9, Name: "I", Email: "i@x.com", Phone: "9"},
	}}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.SetField("name", "A"))
	require.NoError(t, c.SetField("email", "a@x.com"))
	require.NoError(t, c.SetField("phone", "1"))
	require.NoError(t, c.Submit(context.Background()))

	users := c.Users()
	require.Len(t, users, 3)
	assert.Equal(t, 10, users[2].ID, "fallback id is one past the largest")
}

func TestSubmitCreateFallbackStartsAtOne(t *testing.T) {
	c := newTestController(&fakeDirectory{})

	require.NoError(t, c.SetField("name", "A"))
	require.NoError(t, c.SetField("email", "a@x.com"))
	require.NoError(t, c.SetField("phone", "1"))
	require.NoError(t, c.Submit(context.Background()))

	users := c.Users()
	require.Len(t, users, 1)
	assert.Equal(t, 1, users[0].ID)
}

func TestSubmitCreateFailureKeepsDraft(t *testing.T) {
	f := &fakeDirectory{createErr: errors.New("boom")}
	c := newTestController(f)

	require.NoError(t, c.SetField("name", "A"))
	require.NoError(t, c.SetField("email", "a@x.com"))
	require.NoError(t, c.SetField("phone", "1"))

	err := c.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, session.Draft{Name: "A", Email: "a@x.com", Phone: "1"}, c.Draft())
	assert.Empty(t, c.Users())
	assert.Contains(t, c.Status(), "create failed")
}

func TestEditLifecycle(t *testing.T) {
	f := &fakeDirectory{users: []model.User{
		{ID: 1, Name: "A", Email: "a@x.com", Phone: "1"},
		{ID: 2, Name: "B", Email: "b@x.com", Phone: "2"},
	}}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.BeginEdit(2))
	id, editing := c.Editing()
	assert.True(t, editing)
	assert.Equal(t, 2, id)
	assert.Equal(t, session.Draft{Name: "B", Email: "b@x.com", Phone: "2"}, c.Draft())

	require.NoError(t, c.SetField("phone", "2-2"))
	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, 1, f.updateCalls)
	assert.Equal(t, 2, f.lastUpdateID)

	users := c.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "2-2", users[1].Phone)
	assert.Equal(t, 2, users[1].ID, "updating must not renumber the record")

	_, editing = c.Editing()
	assert.False(t, editing, "a successful update returns to create mode")
	assert.Equal(t, session.Draft{}, c.Draft())
}

func TestBeginEditUnknownID(t *testing.T) {
	c := newTestController(&fakeDirectory{})
	err := c.BeginEdit(99)
	assert.ErrorIs(t, err, session.ErrNoSuchRecord)
}

func TestSubmitUpdateFailureStaysEditing(t *testing.T) {
	f := &fakeDirectory{
		users:     []model.User{{ID: 1, Name: "A", Email: "a@x.com", Phone: "1"}},
		updateErr: errors.New("boom"),
	}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.BeginEdit(1))
	require.NoError(t, c.SetField("name", "Z"))

	err := c.Submit(context.Background())
	require.Error(t, err)

	id, editing := c.Editing()
	assert.True(t, editing, "a failed update keeps the form in edit mode")
	assert.Equal(t, 1, id)
	assert.Equal(t, "Z", c.Draft().Name, "the typed values survive for a retry")
	assert.Equal(t, "A", c.Users()[0].Name, "the snapshot stays untouched")
	assert.Contains(t, c.Status(), "update failed")
}

func TestCancelEdit(t *testing.T) {
	f := &fakeDirectory{users: []model.User{{ID: 1, Name: "A", Email: "a@x.com", Phone: "1"}}}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.BeginEdit(1))

	assert.True(t, c.CancelEdit())
	_, editing := c.Editing()
	assert.False(t, editing)
	assert.Equal(t, session.Draft{}, c.Draft())

	assert.False(t, c.CancelEdit(), "cancelling twice is a no-op")
	assert.Len(t, c.Users(), 1, "cancel never touches the records")
}

func TestDeleteRemovesEveryMatch(t *testing.T) {
	f := &fakeDirectory{users: []model.User{
		{ID: 7, Name: "A", Email: "a@x.com", Phone: "1"},
		{ID: 8, Name: "B", Email: "b@x.com", Phone: "2"},
		{ID: 7, Name: "C", Email: "c@x.com", Phone: "3"},
	}}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.Delete(context.Background(), 7))

	assert.Equal(t, 1, f.deleteCalls)
	assert.Equal(t, 7, f.lastDeleteID)

	users := c.Users()
	require.Len(t, users, 1, "every entry with the id goes, not just the first")
	assert.Equal(t, "B", users[0].Name)
	assert.Contains(t, c.Status(), "deleted 2 record(s)")
}

func TestDeleteFailureKeepsSnapshot(t *testing.T) {
	f := &fakeDirectory{
		users:     []model.User{{ID: 1, Name: "A", Email: "a@x.com", Phone: "1"}},
		deleteErr: errors.New("boom"),
	}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))

	err := c.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Len(t, c.Users(), 1)
	assert.Contains(t, c.Status(), "delete failed")
}

func TestToggleThemeIsPurelyLocal(t *testing.T) {
	f := &fakeDirectory{users: []model.User{{ID: 1, Name: "A", Email: "a@x.com", Phone: "1"}}}
	c := newTestController(f)
	require.NoError(t, c.Load(context.Background()))

	var before bytes.Buffer
	c.Render(&before)

	th := c.ToggleTheme()
	assert.Equal(t, "light", th.Name)
	th = c.ToggleTheme()
	assert.Equal(t, "dark", th.Name)

	var after bytes.Buffer
	c.Render(&after)
	assert.Equal(t, before.String(), after.String(), "two toggles restore the original view")

	assert.Equal(t, 1, f.listCalls, "theme switches never call the collaborator")
	assert.Zero(t, f.createCalls+f.updateCalls+f.deleteCalls)
}
