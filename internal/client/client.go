// Package client is the typed data layer the public site and the admin
// console use to talk to the API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/01moynul/agencyhub/internal/models"
)

// ErrNotAuthenticated is returned by admin calls made without a stored token.
var ErrNotAuthenticated = errors.New("not logged in")

// APIError is a non-success answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client calls the agency API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore sets where the session token is kept.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a Client for the API at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  &MemoryTokenStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewPlan is the input for AddPrice.
type NewPlan struct {
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// NewProject is the input for AddProject. Image is streamed as the
// multipart "image" part under ImageName.
type NewProject struct {
	Title       string
	Description string
	Category    string
	Link        string
	ImageName   string
	Image       io.Reader
}

// Contact is the public inquiry form.
type Contact struct {
	Email       string `json:"email" validate:"required,email"`
	PriceCardID string `json:"priceCardId" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type idBody struct {
	ID string `json:"id"`
}

// --- Session ---

// Login exchanges admin credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", body, false, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return errors.New("login response carried no token")
	}
	return c.tokens.Save(Session{Token: out.Token, ExpiresAt: out.ExpiresAt})
}

// Logout forgets the stored token.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Authenticated reports whether a usable token is stored.
func (c *Client) Authenticated() bool {
	s, err := c.tokens.Load()
	return err == nil && s.Valid(time.Now())
}

// --- Price Plans ---

func (c *Client) ListPrices(ctx context.Context) ([]models.PricePlan, error) {
	var out struct {
		Prices []models.PricePlan `json:"prices"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/price/all", nil, false, &out)
	return out.Prices, err
}

func (c *Client) GetPrice(ctx context.Context, id string) (*models.PricePlan, error) {
	var out struct {
		Price *models.PricePlan `json:"price"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/price/single", idBody{ID: id}, false, &out); err != nil {
		return nil, err
	}
	return out.Price, nil
}

func (c *Client) AddPrice(ctx context.Context, plan NewPlan) (*models.PricePlan, error) {
	var out struct {
		Price *models.PricePlan `json:"price"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/price/add", plan, true, &out); err != nil {
		return nil, err
	}
	return out.Price, nil
}

func (c *Client) RemovePrice(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/price/remove", idBody{ID: id}, true, nil)
}

// --- Projects ---

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out struct {
		Projects []models.Project `json:"projects"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/project/all", nil, false, &out)
	return out.Projects, err
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var out struct {
		Project *models.Project `json:"project"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/project/single", idBody{ID: id}, false, &out); err != nil {
		return nil, err
	}
	return out.Project, nil
}

func (c *Client) AddProject(ctx context.Context, p NewProject) (*models.Project, error) {
	if p.Image == nil {
		return nil, errors.New("project image is required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"title", p.Title},
		{"description", p.Description},
		{"category", p.Category},
		{"link", p.Link},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}

	name := filepath.Base(p.ImageName)
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	fw, err := mw.CreateFormFile("image", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, p.Image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out struct {
		Project *models.Project `json:"project"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/project/add", &buf, mw.FormDataContentType(), true, &out); err != nil {
		return nil, err
	}
	return out.Project, nil
}

func (c *Client) RemoveProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/project/remove", idBody{ID: id}, true, nil)
}

// --- Queries ---

// SubmitQuery posts the public contact form.
func (c *Client) SubmitQuery(ctx context.Context, contact Contact) error {
	return c.doJSON(ctx, http.MethodPost, "/api/query/add", contact, false, nil)
}

func (c *Client) ListQueries(ctx context.Context) ([]models.QueryWithPlan, error) {
	var out struct {
		Queries []models.QueryWithPlan `json:"queries"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/query/all", nil, true, &out)
	return out.Queries, err
}

func (c *Client) RemoveQuery(ctx context.Context, id string) error {
	path := "/api/query/remove?" + url.Values{"id": {id}}.Encode()
	return c.doJSON(ctx, http.MethodGet, path, nil, true, nil)
}

// --- Transport ---

func (c *Client) doJSON(ctx context.Context, method, path string, in any, admin bool, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, admin, out)
}

// do sends one request and decodes the {success, message} envelope.
// A 401 on an admin call drops the stored token.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, admin bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if admin {
		s, err := c.tokens.Load()
		if err != nil || !s.Valid(time.Now()) {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if resp.StatusCode >= 400 || !env.Success {
		if admin && resp.StatusCode == http.StatusUnauthorized {
			_ = c.tokens.Clear()
		}
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
