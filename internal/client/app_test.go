package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hijabstore/internal/model"
)

// fakeAPI records calls and serves canned data.
type fakeAPI struct {
	users      []model.UserSummary
	login      *model.User
	products   []model.Product
	err        error
	searchErr  error
	calls      []string
	lastAPIKey string
}

func (f *fakeAPI) Register(_ context.Context, email, _, role string) (*model.RegisteredUser, error) {
	f.calls = append(f.calls, "register")
	if f.err != nil {
		return nil, f.err
	}
	return &model.RegisteredUser{Email: email, Role: role, APIKey: "HIJAB-NEWKEY01"}, nil
}

func (f *fakeAPI) Login(context.Context, string, string) (*model.User, error) {
	f.calls = append(f.calls, "login")
	if f.err != nil {
		return nil, f.err
	}
	return f.login, nil
}

func (f *fakeAPI) Search(_ context.Context, keyword, apiKey string) ([]model.Product, error) {
	f.calls = append(f.calls, "search:"+keyword)
	f.lastAPIKey = apiKey
	return f.products, f.searchErr
}

func (f *fakeAPI) ListUsers(_ context.Context, apiKey string) ([]model.UserSummary, error) {
	f.calls = append(f.calls, "list")
	f.lastAPIKey = apiKey
	out := make([]model.UserSummary, len(f.users))
	copy(out, f.users)
	return out, f.err
}

func (f *fakeAPI) DeleteUser(_ context.Context, _ string, id uint) error {
	f.calls = append(f.calls, fmt.Sprintf("delete:%d", id))
	return f.err
}

func (f *fakeAPI) UpdateUserEmail(_ context.Context, _ string, id uint, email string) error {
	f.calls = append(f.calls, fmt.Sprintf("edit:%d", id))
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Email = email
		}
	}
	return f.err
}

var (
	adminRow = &model.User{ID: 1, Email: "admin@x.com", Password: "p1", Role: "admin", APIKey: "HIJAB-ADMIN001"}
	userRow  = &model.User{ID: 2, Email: "u@x.com", Password: "p2", Role: "user", APIKey: "HIJAB-USER0001"}
)

func TestApp_RegisterStaysSignedOut(t *testing.T) {
	api := &fakeAPI{}
	app := NewApp(api, nil)

	user, msg, err := app.Register(context.Background(), "a@x.com", "p1", "user")
	require.NoError(t, err)
	assert.Equal(t, "HIJAB-NEWKEY01", user.APIKey)
	assert.Equal(t, MsgRegistered, msg)
	assert.Equal(t, ScreenUnauthenticated, app.Screen())
	assert.Nil(t, app.Session())
}

func TestApp_RegisterShowsServiceMessage(t *testing.T) {
	api := &fakeAPI{err: &APIError{StatusCode: 400, Message: "Email sudah terdaftar!"}}
	_, _, err := NewApp(api, nil).Register(context.Background(), "a@x.com", "p1", "")
	assert.EqualError(t, err, "Email sudah terdaftar!")

	api.err = ErrUnreachable
	_, _, err = NewApp(api, nil).Register(context.Background(), "a@x.com", "p1", "")
	assert.EqualError(t, err, MsgAuthFailed)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestApp_LoginPersistsSessionWithoutPassword(t *testing.T) {
	store := &MemorySessionStore{}
	api := &fakeAPI{login: userRow}
	app := NewApp(api, store)

	s, err := app.Login(context.Background(), "u@x.com", "p2")
	require.NoError(t, err)
	assert.Equal(t, ScreenAuthenticated, app.Screen())
	assert.Equal(t, "HIJAB-USER0001", s.APIKey)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{ID: 2, Email: "u@x.com", Role: "user", APIKey: "HIJAB-USER0001"}, *saved)
	assert.Equal(t, []string{"login"}, api.calls)
}

func TestApp_LoginFailureStaysSignedOut(t *testing.T) {
	api := &fakeAPI{err: &APIError{StatusCode: 401, Message: "Email atau Password salah!"}}
	app := NewApp(api, nil)

	_, err := app.Login(context.Background(), "u@x.com", "bad")
	assert.EqualError(t, err, "Email atau Password salah!")
	assert.Equal(t, ScreenUnauthenticated, app.Screen())
}

func TestApp_StartRestoresSession(t *testing.T) {
	store := &MemorySessionStore{}
	require.NoError(t, store.Save(NewSession(adminRow)))
	api := &fakeAPI{users: []model.UserSummary{adminRow.Summary()}}

	app := NewApp(api, store)
	require.NoError(t, app.Start(context.Background()))

	assert.Equal(t, ScreenAuthenticated, app.Screen())
	assert.Len(t, app.Users(), 1)
	assert.Equal(t, "HIJAB-ADMIN001", api.lastAPIKey)
}

func TestApp_Logout(t *testing.T) {
	store := &MemorySessionStore{}
	app := NewApp(&fakeAPI{login: userRow}, store)
	_, err := app.Login(context.Background(), "u@x.com", "p2")
	require.NoError(t, err)

	require.NoError(t, app.Logout())
	assert.Equal(t, ScreenUnauthenticated, app.Screen())
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestApp_SearchGate(t *testing.T) {
	api := &fakeAPI{
		login: userRow,
		products: []model.Product{
			{ID: 1, Name: "Pashmina Silk", Category: "Pashmina", Price: decimal.NewFromInt(85000)},
		},
	}
	app := NewApp(api, nil)

	_, err := app.Search(context.Background(), "HIJAB-USER0001", "Pashmina")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = app.Login(context.Background(), "u@x.com", "p2")
	require.NoError(t, err)

	_, err = app.Search(context.Background(), "HIJAB-WRONG001", "Pashmina")
	assert.ErrorIs(t, err, ErrWrongAPIKey)
	_, err = app.Search(context.Background(), "HIJAB-USER0001", "")
	assert.ErrorIs(t, err, ErrEmptyKeyword)
	assert.Equal(t, []string{"login"}, api.calls)

	res, err := app.Search(context.Background(), "HIJAB-USER0001", "Pashmina")
	require.NoError(t, err)
	assert.Len(t, res.Products, 1)
	assert.Empty(t, res.Notice)
	assert.Len(t, app.Products(), 1)

	api.products = []model.Product{}
	res, err = app.Search(context.Background(), "HIJAB-USER0001", "gamis")
	require.NoError(t, err)
	assert.Equal(t, MsgNotFound, res.Notice)
	assert.Empty(t, app.Products())

	api.searchErr = ErrUnreachable
	_, err = app.Search(context.Background(), "HIJAB-USER0001", "Pashmina")
	assert.EqualError(t, err, MsgSearchOffline)
}

func TestApp_AdminOperations(t *testing.T) {
	api := &fakeAPI{
		login: adminRow,
		users: []model.UserSummary{adminRow.Summary(), userRow.Summary()},
	}
	app := NewApp(api, nil)
	ctx := context.Background()

	_, err := app.Login(ctx, "admin@x.com", "p1")
	require.NoError(t, err)
	require.Len(t, app.Users(), 2)

	require.NoError(t, app.EditUser(ctx, 2, "renamed@x.com"))
	assert.Equal(t, "renamed@x.com", app.Users()[1].Email)

	api.calls = nil
	require.NoError(t, app.DeleteUser(ctx, 2))
	assert.Equal(t, []string{"delete:2"}, api.calls)
	require.Len(t, app.Users(), 1)
	assert.Equal(t, uint(1), app.Users()[0].ID)
}

func TestApp_AdminOperationsNeedAdmin(t *testing.T) {
	app := NewApp(&fakeAPI{login: userRow}, nil)
	ctx := context.Background()

	_, err := app.LoadUsers(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = app.Login(ctx, "u@x.com", "p2")
	require.NoError(t, err)

	_, err = app.LoadUsers(ctx)
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.ErrorIs(t, app.DeleteUser(ctx, 1), ErrNotAdmin)
	assert.ErrorIs(t, app.EditUser(ctx, 1, "x@x.com"), ErrNotAdmin)
}

func TestApp_DeleteFailureKeepsList(t *testing.T) {
	api := &fakeAPI{login: adminRow, users: []model.UserSummary{adminRow.Summary(), userRow.Summary()}}
	app := NewApp(api, nil)
	_, err := app.Login(context.Background(), "admin@x.com", "p1")
	require.NoError(t, err)

	api.err = &APIError{StatusCode: 404, Message: "User tidak ditemukan"}
	err = app.DeleteUser(context.Background(), 2)
	assert.EqualError(t, err, "User tidak ditemukan")
	assert.Len(t, app.Users(), 2)
}
