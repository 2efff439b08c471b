package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GenericErrorMessage stands in when the server's reply carries no parseable
// error body.
const GenericErrorMessage = "Server error. Please try again."

// APIError is a rejection from the server. Message is the server's own text
// and is shown to the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	store   Store
}

func New(baseURL string, store Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// NewWithHTTPClient is for tests that need a custom transport.
func NewWithHTTPClient(baseURL string, store Store, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc, store: store}
}

func (c *Client) Session() (Session, error) {
	return c.store.Load()
}

// --- auth ---

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var sess Session
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &sess, false)
	if err != nil {
		return Session{}, err
	}
	if err := c.store.Save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (Session, error) {
	var sess Session
	err := c.do(ctx, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &sess, false)
	if err != nil {
		return Session{}, err
	}
	if err := c.store.Save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (c *Client) Logout() error {
	return c.store.Clear()
}

// --- attendance ---

func (c *Client) MyHistory(ctx context.Context, days int) (History, error) {
	var h History
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/attendance?days=%d", days), nil, &h, true)
	return h, err
}

func (c *Client) UserHistory(ctx context.Context, userID string, days int) (History, error) {
	var h History
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/attendance/%s?days=%d", userID, days), nil, &h, true)
	return h, err
}

func (c *Client) AllEmployees(ctx context.Context, days int) ([]EmployeeAttendance, error) {
	var list []EmployeeAttendance
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/attendance/admin/all?days=%d", days), nil, &list, true)
	return list, err
}

// MarkArrival clocks a user in. Each call carries a fresh Idempotency-Key
// so a double submission replays the first result instead of marking twice.
func (c *Client) MarkArrival(ctx context.Context, userID, date string) (Record, error) {
	var r Record
	err := c.doIdempotent(ctx, "/api/attendance/mark-arrival", map[string]string{
		"userId": userID,
		"date":   date,
	}, &r)
	return r, err
}

// MarkExit clocks a user out; the server computes workingHours.
func (c *Client) MarkExit(ctx context.Context, userID, date string) (Record, error) {
	var r Record
	err := c.doIdempotent(ctx, "/api/attendance/mark-exit", map[string]string{
		"userId": userID,
		"date":   date,
	}, &r)
	return r, err
}

// ExportReport downloads the xlsx report.
func (c *Client) ExportReport(ctx context.Context, days int) ([]byte, error) {
	resp, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/api/reports/export?days=%d", days), nil, true, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: GenericErrorMessage}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, body)
	}
	return body, nil
}

// --- excuses ---

func (c *Client) SubmitExcuse(ctx context.Context, date, message string) (Excuse, error) {
	// Blocked client-side before any network call.
	if err := ValidateExcuse(date, message); err != nil {
		return Excuse{}, err
	}
	var e Excuse
	err := c.do(ctx, http.MethodPost, "/api/excuses", map[string]string{
		"date":    date,
		"message": message,
	}, &e, true)
	return e, err
}

func (c *Client) MyExcuses(ctx context.Context) ([]Excuse, error) {
	var list []Excuse
	err := c.do(ctx, http.MethodGet, "/api/excuses", nil, &list, true)
	return list, err
}

func (c *Client) PendingExcuses(ctx context.Context) ([]Excuse, error) {
	var list []Excuse
	err := c.do(ctx, http.MethodGet, "/api/excuses/pending", nil, &list, true)
	return list, err
}

func (c *Client) DecideExcuse(ctx context.Context, id, status string) (Excuse, error) {
	var e Excuse
	err := c.do(ctx, http.MethodPatch, "/api/excuses/"+id, map[string]string{
		"status": status,
	}, &e, true)
	return e, err
}

// --- users ---

func (c *Client) Users(ctx context.Context) ([]Profile, error) {
	var list []Profile
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &list, true)
	return list, err
}

func (c *Client) CreateUser(ctx context.Context, username, email, password, role string) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPost, "/api/users", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}, &p, true)
	return p, err
}

// UpdateUser replaces a user's editable fields. Password is optional and
// omitted from the payload when empty; the other fields always travel.
func (c *Client) UpdateUser(ctx context.Context, id, username, email, role, password string) (Profile, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"role":     role,
	}
	if password != "" {
		body["password"] = password
	}
	var p Profile
	err := c.do(ctx, http.MethodPatch, "/api/users/"+id, body, &p, true)
	return p, err
}

func (c *Client) ChangeRole(ctx context.Context, id, role string) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPatch, "/api/users/"+id+"/role", map[string]string{
		"role": role,
	}, &p, true)
	return p, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	sess, err := c.store.Load()
	if err == nil && !CanDeleteUser(sess.User.ID, id) {
		return &APIError{Status: http.StatusBadRequest, Message: "You cannot delete your own account"}
	}
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, nil, nil, true)
}

// --- profile self-service ---

func (c *Client) UpdateMe(ctx context.Context, username string) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPatch, "/api/me", map[string]string{
		"username": username,
	}, &p, true)
	if err != nil {
		return Profile{}, err
	}

	// Keep the cached profile in step with the server.
	if sess, lerr := c.store.Load(); lerr == nil && sess.Authenticated() {
		sess.User = p
		_ = c.store.Save(sess)
	}
	return p, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if err := ValidatePassword(next, confirm); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/api/me/password", map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}, nil, true)
}

// --- rules ---

func (c *Client) Rules(ctx context.Context) (Rules, error) {
	var r Rules
	err := c.do(ctx, http.MethodGet, "/api/rules", nil, &r, true)
	return r, err
}

func (c *Client) UpdateRules(ctx context.Context, content string) (Rules, error) {
	var r Rules
	err := c.do(ctx, http.MethodPut, "/api/rules", map[string]string{
		"content": content,
	}, &r, true)
	return r, err
}

// --- plumbing ---

func (c *Client) request(ctx context.Context, method, path string, body any, authed bool, extra http.Header) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range extra {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if authed {
		sess, err := c.store.Load()
		if err != nil || !sess.Authenticated() {
			return nil, &APIError{Status: http.StatusUnauthorized, Message: "Not signed in"}
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	return c.http.Do(req)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	return c.doWithHeaders(ctx, method, path, body, out, authed, nil)
}

// doIdempotent is the POST path for the mark endpoints; the generated key
// lets the server dedupe retries of the same submission.
func (c *Client) doIdempotent(ctx context.Context, path string, body, out any) error {
	return c.doWithHeaders(ctx, http.MethodPost, path, body, out, true, http.Header{
		"Idempotency-Key": []string{uuid.NewString()},
	})
}

func (c *Client) doWithHeaders(ctx context.Context, method, path string, body, out any, authed bool, extra http.Header) error {
	resp, err := c.request(ctx, method, path, body, authed, extra)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: GenericErrorMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: GenericErrorMessage}
	}
	return nil
}

// parseError surfaces the server's own message when the body carries one.
func parseError(status int, body []byte) error {
	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		return &APIError{Status: status, Message: wire.Error}
	}
	return &APIError{Status: status, Message: GenericErrorMessage}
}
