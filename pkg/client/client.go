// Package client is a Go client for the blog HTTP API.
//
// Authentication state lives in an explicit Session value returned by Login
// and passed to every protected call; the Client itself holds no token.
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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNoSession is returned by protected calls made without a logged-in session.
var ErrNoSession = errors.New("no active session")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blog api: %d %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Session carries the bearer token of a logged-in user.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// Active reports whether the session holds a token.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostList struct {
	Blogs       []Post `json:"blogs"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage,omitempty"`
}

type SignupResult struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Signup(ctx context.Context, email, password string) (*SignupResult, error) {
	var res SignupResult
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, credentials{email, password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Login exchanges credentials for a new Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var res struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, credentials{email, password}, &res); err != nil {
		return nil, err
	}
	return &Session{Token: res.Token, UserID: res.UserID, Email: res.Email}, nil
}

func (c *Client) ListPosts(ctx context.Context, page, limit int) (*PostList, error) {
	var res PostList
	if err := c.do(ctx, http.MethodGet, "/api/blogs"+pageQuery(page, limit), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListPostsByAuthor(ctx context.Context, userID string, page, limit int) (*PostList, error) {
	var res PostList
	path := "/api/blogs/user/" + url.PathEscape(userID) + pageQuery(page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/api/blogs/"+url.PathEscape(id), nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, s *Session, title, content string) (*Post, error) {
	if !s.Active() {
		return nil, ErrNoSession
	}

	var post Post
	body := map[string]string{"title": title, "content": content}
	if err := c.do(ctx, http.MethodPost, "/api/blogs", s, body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost sends a partial update; nil fields are left unchanged.
func (c *Client) UpdatePost(ctx context.Context, s *Session, id string, title, content *string) (*Post, error) {
	if !s.Active() {
		return nil, ErrNoSession
	}

	body := struct {
		Title   *string `json:"title,omitempty"`
		Content *string `json:"content,omitempty"`
	}{title, content}

	var res struct {
		Blog Post `json:"blog"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/blogs/"+url.PathEscape(id), s, body, &res); err != nil {
		return nil, err
	}
	return &res.Blog, nil
}

func (c *Client) DeletePost(ctx context.Context, s *Session, id string) error {
	if !s.Active() {
		return ErrNoSession
	}
	return c.do(ctx, http.MethodDelete, "/api/blogs/"+url.PathEscape(id), s, nil, nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, path string, s *Session, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Active() {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
