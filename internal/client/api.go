// Package client talks to the hijab store service and keeps the view state of
// a signed-in user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hijabstore/internal/model"
)

// DefaultBaseURL is where a locally started service listens.
const DefaultBaseURL = "http://localhost:5000/api"

// ErrUnreachable wraps transport failures: the service is down or the
// connection broke before a response arrived.
var ErrUnreachable = errors.New("service unreachable")

// APIError is a non-2xx answer from the service. Message is the envelope's
// pesan, or its error field when pesan is absent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client is an HTTP client for the service's /api routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient builds a Client for baseURL, e.g. http://localhost:5000/api.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Pesan string `json:"pesan"`
	Error string `json:"error"`
}

type registerResponse struct {
	Pesan string               `json:"pesan"`
	User  model.RegisteredUser `json:"user"`
}

type loginResponse struct {
	Pesan string     `json:"pesan"`
	User  model.User `json:"user"`
}

// Register creates an account. It does not sign in.
func (c *Client) Register(ctx context.Context, email, password, role string) (*model.RegisteredUser, error) {
	body := map[string]string{"email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	var out registerResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login returns the stored user record.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var out loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Search lists products whose category or name contains keyword. apiKey is
// sent as X-API-Key; servers that do not check keys ignore it.
func (c *Client) Search(ctx context.Context, keyword, apiKey string) ([]model.Product, error) {
	products := []model.Product{}
	path := "/hijab?keyword=" + url.QueryEscape(keyword)
	if err := c.do(ctx, http.MethodGet, path, apiKey, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListUsers returns every user, admins first.
func (c *Client) ListUsers(ctx context.Context, apiKey string) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	if err := c.do(ctx, http.MethodGet, "/admin/users", apiKey, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user by id.
func (c *Client) DeleteUser(ctx context.Context, apiKey string, id uint) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+strconv.FormatUint(uint64(id), 10), apiKey, nil, nil)
}

// UpdateUserEmail changes a user's email.
func (c *Client) UpdateUserEmail(ctx context.Context, apiKey string, id uint, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPut, "/admin/users/"+strconv.FormatUint(uint64(id), 10), apiKey, body, nil)
}

func (c *Client) do(ctx context.Context, method, path, apiKey string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		msg := env.Pesan
		if msg == "" {
			msg = env.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
