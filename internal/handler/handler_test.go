package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/model"
)

type stubAuthService struct {
	registered *model.RegisteredUser
	user       *model.User
	err        error
}

func (s *stubAuthService) Register(_ context.Context, email, _, role string) (*model.RegisteredUser, error) {
	return s.registered, s.err
}

func (s *stubAuthService) Login(context.Context, string, string) (*model.User, error) {
	return s.user, s.err
}

type stubUserService struct {
	users     []model.UserSummary
	err       error
	deletedID uint
}

func (s *stubUserService) ListUsers(context.Context) ([]model.UserSummary, error) {
	return s.users, s.err
}

func (s *stubUserService) DeleteUser(_ context.Context, id uint) error {
	s.deletedID = id
	return s.err
}

func (s *stubUserService) UpdateEmail(context.Context, uint, string) error {
	return s.err
}

type stubProductService struct {
	products []model.Product
	err      error
}

func (s *stubProductService) Search(context.Context, string) ([]model.Product, error) {
	return s.products, s.err
}

func (s *stubProductService) Seed(_ context.Context, products []model.Product) (int, error) {
	return len(products), s.err
}

type okValidator struct{}

func (okValidator) Validate(interface{}) error { return nil }

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = okValidator{}
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireHTTPError(t *testing.T, err error, code int) apperrors.ErrorResponse {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, code, he.Code)
	body, ok := he.Message.(apperrors.ErrorResponse)
	require.True(t, ok)
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registered: &model.RegisteredUser{Email: "a@x.com", Role: "user", APIKey: "HIJAB-ABCDEFGH"}}
	c, rec := newContext(http.MethodPost, "/api/register", `{"email":"a@x.com","password":"p1"}`)

	require.NoError(t, NewAuthHandler(svc).Register(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pesan":"Registrasi Berhasil!","user":{"email":"a@x.com","role":"user","apiKey":"HIJAB-ABCDEFGH"}}`, rec.Body.String())
}

func TestAuthHandler_RegisterErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantPesan string
		wantError string
	}{
		{"missing fields", apperrors.ErrMissingCredentials, http.StatusBadRequest, "Email dan Password wajib diisi!", ""},
		{"taken", apperrors.ErrEmailTaken, http.StatusBadRequest, "Email sudah terdaftar!", ""},
		{"store", apperrors.Store(errors.New("Duplicate entry")), http.StatusInternalServerError, "", "Duplicate entry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/register", `{"email":"a@x.com"}`)
			err := NewAuthHandler(&stubAuthService{err: tt.err}).Register(c)

			body := requireHTTPError(t, err, tt.wantCode)
			assert.Equal(t, tt.wantPesan, body.Pesan)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	user := &model.User{ID: 1, Email: "a@x.com", Password: "p1", Role: "admin", APIKey: "HIJAB-ABCDEFGH"}
	c, rec := newContext(http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p1"}`)

	require.NoError(t, NewAuthHandler(&stubAuthService{user: user}).Login(c))
	assert.JSONEq(t, `{"pesan":"Login Berhasil","user":{"id":1,"email":"a@x.com","password":"p1","role":"admin","apiKey":"HIJAB-ABCDEFGH"}}`, rec.Body.String())

	c, _ = newContext(http.MethodPost, "/api/login", `{"email":"a@x.com","password":"bad"}`)
	err := NewAuthHandler(&stubAuthService{err: apperrors.ErrInvalidCredentials}).Login(c)
	body := requireHTTPError(t, err, http.StatusUnauthorized)
	assert.Equal(t, "Email atau Password salah!", body.Pesan)
}

func TestUserHandler_ListUsers(t *testing.T) {
	svc := &stubUserService{users: []model.UserSummary{{ID: 1, Email: "a@x.com", Role: "admin", APIKey: "HIJAB-ABCDEFGH"}}}
	c, rec := newContext(http.MethodGet, "/api/admin/users", "")

	require.NoError(t, NewUserHandler(svc).ListUsers(c))
	assert.JSONEq(t, `[{"id":1,"email":"a@x.com","role":"admin","apiKey":"HIJAB-ABCDEFGH"}]`, rec.Body.String())
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("numeric id", func(t *testing.T) {
		svc := &stubUserService{}
		c, rec := newContext(http.MethodDelete, "/", "")
		c.SetParamNames("id")
		c.SetParamValues("42")

		require.NoError(t, NewUserHandler(svc).DeleteUser(c))
		assert.Equal(t, uint(42), svc.deletedID)
		assert.JSONEq(t, `{"pesan":"User berhasil dihapus!"}`, rec.Body.String())
	})

	for _, raw := range []string{"abc", "0", "-1"} {
		t.Run("bad id "+raw, func(t *testing.T) {
			svc := &stubUserService{}
			c, _ := newContext(http.MethodDelete, "/", "")
			c.SetParamNames("id")
			c.SetParamValues(raw)

			body := requireHTTPError(t, NewUserHandler(svc).DeleteUser(c), http.StatusNotFound)
			assert.Equal(t, "User tidak ditemukan", body.Pesan)
			assert.Zero(t, svc.deletedID)
		})
	}
}

func TestUserHandler_UpdateUser(t *testing.T) {
	c, rec := newContext(http.MethodPut, "/", `{"email":"new@x.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, NewUserHandler(&stubUserService{}).UpdateUser(c))
	assert.JSONEq(t, `{"pesan":"User berhasil diupdate!"}`, rec.Body.String())

	c, _ = newContext(http.MethodPut, "/", `{"email":""}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	body := requireHTTPError(t, NewUserHandler(&stubUserService{err: apperrors.ErrMissingEmail}).UpdateUser(c), http.StatusBadRequest)
	assert.Equal(t, "Email wajib diisi!", body.Pesan)
}

func TestProductHandler_Search(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/hijab?keyword=Pash", "")
	svc := &stubProductService{products: []model.Product{}}
	require.NoError(t, NewProductHandler(svc).Search(c))
	assert.JSONEq(t, `[]`, rec.Body.String())

	c, _ = newContext(http.MethodGet, "/api/hijab", "")
	err := NewProductHandler(&stubProductService{err: errors.New("ER_NO_SUCH_TABLE")}).Search(c)
	body := requireHTTPError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Gagal mencari data hijab", body.Pesan)
	assert.Equal(t, "ER_NO_SUCH_TABLE", body.Error)
}

func TestHealthHandler_Ready(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("dial tcp: connection refused") })

	tests := []struct {
		name       string
		db, cache  Pinger
		wantCode   int
		wantStatus string
	}{
		{"all up", up, up, http.StatusOK, `"status":"ok"`},
		{"redis down", up, down, http.StatusOK, `"status":"degraded"`},
		{"mysql down", down, up, http.StatusServiceUnavailable, `"status":"unavailable"`},
		{"nothing configured", nil, nil, http.StatusOK, `"status":"ok"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/health/ready", "")
			require.NoError(t, NewHealthHandler(tt.db, tt.cache).Ready(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantStatus)
		})
	}
}
