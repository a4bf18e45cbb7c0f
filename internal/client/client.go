// Package client is a JSON client for the resume builder API that carries the
// stored bearer token and ends the session centrally when the API rejects it.
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

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

const (
	LoginPath    = "/api/auth/login"
	RegisterPath = "/api/auth/register"
	ProfilePath  = "/api/auth/profile"
	ResumesPath  = "/api/resume"
)

// ErrUnauthenticated means the stored session was rejected and has been cleared.
var ErrUnauthenticated = errors.New("session expired or invalid")

// APIError is a non-2xx response other than an expired session.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: status %d: %s: %s", e.Status, e.Code, e.Message)
}

// Client calls the API on behalf of one session.
type Client struct {
	baseURL   string
	http      *http.Client
	session   SessionStore
	navigator Navigator
}

// New builds a Client. A nil session keeps the token in memory and a nil
// navigator ignores redirects.
func New(baseURL string, session SessionStore, navigator Navigator) *Client {
	if session == nil {
		session = &MemorySession{}
	}
	if navigator == nil {
		navigator = NavigatorFunc(func(string) {})
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
		session:   session,
		navigator: navigator,
	}
}

// Do sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.session.Get()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !isCredentialPath(path) {
		telemetry.Info("client.session_expired", map[string]any{"path": path})
		if err := c.session.Clear(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		c.navigator.Navigate("/")
		return ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isCredentialPath reports whether a 401 from path is a credential failure
// for the caller rather than an expired session.
func isCredentialPath(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path == LoginPath || path == RegisterPath
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &envelope) == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

// Session is the register/login response.
type Session struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Profile is the signed-in account.
type Profile struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResumeSummary is one entry of the resume list.
type ResumeSummary struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Resume is a stored resume with its data.
type Resume struct {
	ID        string           `json:"_id"`
	Title     string           `json:"title"`
	Template  string           `json:"template"`
	Thumbnail string           `json:"thumbnail,omitempty"`
	Data      model.ResumeData `json:"data"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ResumeInput is the body of a create or update.
type ResumeInput struct {
	Title     string            `json:"title,omitempty"`
	Template  string            `json:"template,omitempty"`
	Thumbnail string            `json:"thumbnail,omitempty"`
	Data      *model.ResumeData `json:"data,omitempty"`
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	return c.authenticate(ctx, RegisterPath, map[string]string{"name": name, "email": email, "password": password})
}

// Login signs in and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	return c.authenticate(ctx, LoginPath, map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (Session, error) {
	var sess Session
	if err := c.Do(ctx, http.MethodPost, path, body, &sess); err != nil {
		return Session{}, err
	}
	if err := c.session.Set(sess.Token); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Logout forgets the stored token.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	err := c.Do(ctx, http.MethodGet, ProfilePath, nil, &p)
	return p, err
}

func (c *Client) ListResumes(ctx context.Context) ([]ResumeSummary, error) {
	var list []ResumeSummary
	err := c.Do(ctx, http.MethodGet, ResumesPath, nil, &list)
	return list, err
}

func (c *Client) GetResume(ctx context.Context, id string) (Resume, error) {
	var r Resume
	err := c.Do(ctx, http.MethodGet, ResumesPath+"/"+url.PathEscape(id), nil, &r)
	return r, err
}

// SaveResume creates a resume when id is empty and updates it otherwise.
func (c *Client) SaveResume(ctx context.Context, id string, in ResumeInput) (Resume, error) {
	var r Resume
	var err error
	if id == "" {
		err = c.Do(ctx, http.MethodPost, ResumesPath, in, &r)
	} else {
		err = c.Do(ctx, http.MethodPut, ResumesPath+"/"+url.PathEscape(id), in, &r)
	}
	return r, err
}

func (c *Client) DeleteResume(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, ResumesPath+"/"+url.PathEscape(id), nil, nil)
}

// RenderResume lays out a stored resume. An empty style uses the saved template.
func (c *Client) RenderResume(ctx context.Context, id, style string, containerWidth float64) (render.Document, error) {
	q := url.Values{}
	if style != "" {
		q.Set("style", style)
	}
	if containerWidth > 0 {
		q.Set("width", strconv.FormatFloat(containerWidth, 'f', -1, 64))
	}
	path := ResumesPath + "/" + url.PathEscape(id) + "/render"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var doc render.Document
	err := c.Do(ctx, http.MethodGet, path, nil, &doc)
	return doc, err
}
