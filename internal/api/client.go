// Package api is the typed HTTP client for the blog platform's REST
// backend. Every method performs exactly one request — no retries — and
// attaches a bearer token when one is supplied. Failures are returned as
// *Error values the caller maps to user-facing messages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blogfront/internal/models"
)

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 15 * time.Second

// Client talks to the backend REST API (base path /api).
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the given base URL (e.g. "http://localhost:8000/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the register request body. The backend rejects it when
// PasswordConfirmation does not match Password; the same check is applied
// client-side before sending.
type Registration struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// PostInput is the create/update request body for a post.
type PostInput struct {
	Title      string              `json:"title" validate:"required,max=255"`
	Content    string              `json:"content" validate:"max=100000"`
	CategoryID int64               `json:"category_id" validate:"required"`
	IsActive   models.ActiveStatus `json:"is_active" validate:"required,oneof=Yes No"`
}

// AuthResult is the payload of a successful login or register call.
type AuthResult struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

type postsResponse struct {
	Posts []models.Post `json:"posts"`
}

type postResponse struct {
	Post models.Post `json:"post"`
}

type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

// Login exchanges credentials for a token and user snapshot.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/login", "", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns a token and user snapshot.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/register", "", reg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}

// CurrentUser fetches the user the token belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPosts fetches all posts with their embedded author and category.
func (c *Client) ListPosts(ctx context.Context, token string) ([]models.Post, error) {
	var result postsResponse
	if err := c.do(ctx, http.MethodGet, "/posts", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, token string, id int64) (*models.Post, error) {
	var result postResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), token, nil, &result); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// CreatePost creates a post and returns the backend's copy of it.
func (c *Client) CreatePost(ctx context.Context, token string, input PostInput) (*models.Post, error) {
	var result postResponse
	if err := c.do(ctx, http.MethodPost, "/posts", token, input, &result); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// UpdatePost replaces a post's fields and returns the updated copy.
func (c *Client) UpdatePost(ctx context.Context, token string, id int64, input PostInput) (*models.Post, error) {
	var result postResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), token, input, &result); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), token, nil, nil)
}

// ListCategories fetches the category reference data.
func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var result categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// do performs one HTTP round trip. When token is empty the request goes
// out unauthenticated. A nil out discards the response body; error
// responses are decoded into *Error.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api unmarshal: %w", err)
	}

	return nil
}
