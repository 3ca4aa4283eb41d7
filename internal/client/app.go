package client

import (
	"context"
	"errors"

	"hijabstore/internal/logger"
	"hijabstore/internal/model"
)

// Screen is the view the user is on.
type Screen int

const (
	ScreenUnauthenticated Screen = iota
	ScreenAuthenticated
)

func (s Screen) String() string {
	if s == ScreenAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Messages shown to the user.
const (
	MsgRegistered     = "Berhasil Daftar! Silakan Login."
	MsgAuthFailed     = "Error Login/Register"
	MsgNotFound       = "Tipe kerudung tidak ditemukan di database."
	MsgSearchOffline  = "Gagal koneksi ke database lokal. Pastikan server sudah dijalankan!"
	MsgGenericFailure = "Terjadi kesalahan, coba lagi."
)

var (
	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("Silakan login terlebih dahulu.")
	// ErrWrongAPIKey is returned when the typed key is not the session's key.
	ErrWrongAPIKey = errors.New("API Key Salah! Silakan gunakan key Anda yang tertera di dashboard.")
	// ErrEmptyKeyword is returned when searching without a keyword.
	ErrEmptyKeyword = errors.New("Ketik tipe kerudung (contoh: Pashmina)")
	// ErrNotAdmin is returned when a non-admin calls an admin operation.
	ErrNotAdmin = errors.New("Fitur ini khusus admin.")
)

// API is the slice of the service the App needs. *Client implements it.
type API interface {
	Register(ctx context.Context, email, password, role string) (*model.RegisteredUser, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Search(ctx context.Context, keyword, apiKey string) ([]model.Product, error)
	ListUsers(ctx context.Context, apiKey string) ([]model.UserSummary, error)
	DeleteUser(ctx context.Context, apiKey string, id uint) error
	UpdateUserEmail(ctx context.Context, apiKey string, id uint, email string) error
}

var _ API = (*Client)(nil)

// SearchResult is the outcome of a search. Notice is set when there is
// something to tell the user besides the list.
type SearchResult struct {
	Products []model.Product
	Notice   string
}

// App holds the client's view state: the current screen, the session, the
// last search results and, for admins, the user list. It is not safe for
// concurrent use.
type App struct {
	api   API
	store SessionStore

	screen   Screen
	session  *Session
	products []model.Product
	users    []model.UserSummary
}

// NewApp builds an App on the unauthenticated screen. Call Start to pick up a
// saved session.
func NewApp(api API, store SessionStore) *App {
	if store == nil {
		store = &MemorySessionStore{}
	}
	return &App{api: api, store: store}
}

func (a *App) Screen() Screen             { return a.screen }
func (a *App) Products() []model.Product  { return a.products }
func (a *App) Users() []model.UserSummary { return a.users }

// Session returns the current session, or nil when signed out.
func (a *App) Session() *Session {
	if a.session == nil {
		return nil
	}
	s := *a.session
	return &s
}

// Start restores a saved session. Admins also get the user list loaded.
func (a *App) Start(ctx context.Context) error {
	s, err := a.store.Load()
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	a.enter(ctx, *s)
	return nil
}

// Register creates an account and stays signed out. The returned string is
// the message to show.
func (a *App) Register(ctx context.Context, email, password, role string) (*model.RegisteredUser, string, error) {
	user, err := a.api.Register(ctx, email, password, role)
	if err != nil {
		return nil, "", userFacing(err, MsgAuthFailed)
	}
	return user, MsgRegistered, nil
}

// Login signs in, persists the session and switches to the authenticated screen.
func (a *App) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, userFacing(err, MsgAuthFailed)
	}

	s := NewSession(user)
	if err := a.store.Save(s); err != nil {
		return nil, err
	}
	a.enter(ctx, s)
	return a.Session(), nil
}

// Logout forgets the session everywhere.
func (a *App) Logout() error {
	a.screen = ScreenUnauthenticated
	a.session = nil
	a.products = nil
	a.users = nil
	return a.store.Clear()
}

// Search checks the typed key against the session key locally, then queries
// the catalog.
func (a *App) Search(ctx context.Context, inputKey, keyword string) (*SearchResult, error) {
	if a.session == nil {
		return nil, ErrNotLoggedIn
	}
	if inputKey != a.session.APIKey {
		return nil, ErrWrongAPIKey
	}
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	a.products = nil
	products, err := a.api.Search(ctx, keyword, a.session.APIKey)
	if err != nil {
		return nil, userFacing(err, MsgSearchOffline)
	}

	a.products = products
	res := &SearchResult{Products: products}
	if len(products) == 0 {
		res.Notice = MsgNotFound
	}
	return res, nil
}

// LoadUsers refreshes the admin user list.
func (a *App) LoadUsers(ctx context.Context) ([]model.UserSummary, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	users, err := a.api.ListUsers(ctx, a.session.APIKey)
	if err != nil {
		return nil, userFacing(err, MsgGenericFailure)
	}
	a.users = users
	return users, nil
}

// EditUser changes a user's email and reloads the list.
func (a *App) EditUser(ctx context.Context, id uint, email string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.api.UpdateUserEmail(ctx, a.session.APIKey, id, email); err != nil {
		return userFacing(err, MsgGenericFailure)
	}
	_, err := a.LoadUsers(ctx)
	return err
}

// DeleteUser deletes a user and drops it from the local list without refetching.
func (a *App) DeleteUser(ctx context.Context, id uint) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.api.DeleteUser(ctx, a.session.APIKey, id); err != nil {
		return userFacing(err, MsgGenericFailure)
	}

	kept := make([]model.UserSummary, 0, len(a.users))
	for _, u := range a.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	a.users = kept
	return nil
}

func (a *App) enter(ctx context.Context, s Session) {
	a.session = &s
	a.screen = ScreenAuthenticated
	if !s.IsAdmin() {
		return
	}
	if _, err := a.LoadUsers(ctx); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("failed to load admin user list")
	}
}

func (a *App) requireAdmin() error {
	if a.session == nil {
		return ErrNotLoggedIn
	}
	if !a.session.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// messageError shows msg while keeping the cause for errors.Is/As.
type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }

// userFacing turns err into the message to show: the service's own message
// when it sent one, def otherwise.
func userFacing(err error, def string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr
	}
	return &messageError{msg: def, err: err}
}
