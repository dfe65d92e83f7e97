// Package api is the HTTP client for the NoteIt REST API.
//
// Every operation is a single request. Failures come back as a
// *RequestError (the server answered with a non-success status) or a
// *TransportError (no answer at all), and are logged before being returned.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/amonks/noteit/note"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// RequestIDHeader carries a per-request UUID for correlating logs.
const RequestIDHeader = "X-Request-ID"

// DeviceSource supplies the device identifier sent with list and create.
type DeviceSource interface {
	ID() string
}

// Options configures a Client.
type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient defaults to a plain &http.Client{}.
	HTTPClient *http.Client

	Device DeviceSource

	// Logger receives one record per failed request. Nil discards.
	Logger *slog.Logger
}

// Client calls the notes API.
type Client struct {
	baseURL string
	client  *http.Client
	device  DeviceSource
	logger  *slog.Logger
}

// NewClient creates a client from opts.
func NewClient(opts Options) *Client {
	baseURL := normalizeBaseURL(opts.BaseURL)
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: baseURL,
		client:  httpClient,
		device:  opts.Device,
		logger:  logger,
	}
}

func normalizeBaseURL(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = DefaultBaseURL
	}
	addr = strings.TrimRight(addr, "/")
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return addr
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DeviceID returns the identifier sent with list and create requests.
func (c *Client) DeviceID() string {
	if c.device == nil {
		return ""
	}
	return c.device.ID()
}

type createRequest struct {
	DeviceID   string      `json:"deviceId"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	IsFavorite bool        `json:"isFavorite"`
	Todos      []note.Todo `json:"todos"`
}

type updateRequest struct {
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	IsFavorite bool        `json:"isFavorite"`
	Todos      []note.Todo `json:"todos"`
}

type favoriteRequest struct {
	IsFavorite bool `json:"isFavorite"`
}

// ListNotes returns the notes owned by this device.
func (c *Client) ListNotes(ctx context.Context) ([]note.Note, error) {
	path := "/notes/?deviceId=" + url.QueryEscape(c.DeviceID())
	var notes []note.Note
	if err := c.do(ctx, "fetch notes", http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return notes, nil
}

// GetNote returns one note with its todos.
func (c *Client) GetNote(ctx context.Context, id int) (note.NoteWithTodos, error) {
	var n note.NoteWithTodos
	err := c.do(ctx, "fetch note", http.MethodGet, notePath(id, ""), nil, &n)
	return n, err
}

// CreateNote creates a note owned by this device.
func (c *Client) CreateNote(ctx context.Context, in note.Input) (note.NoteWithTodos, error) {
	payload := createRequest{
		DeviceID:   c.DeviceID(),
		Title:      in.Title,
		Content:    in.Content,
		IsFavorite: in.IsFavorite,
		Todos:      todosPayload(in.Todos),
	}
	var n note.NoteWithTodos
	err := c.do(ctx, "create note", http.MethodPost, "/notes/create/", payload, &n)
	return n, err
}

// UpdateNote replaces a note's title, content, favorite flag and todos.
func (c *Client) UpdateNote(ctx context.Context, id int, in note.Input) (note.NoteWithTodos, error) {
	payload := updateRequest{
		Title:      in.Title,
		Content:    in.Content,
		IsFavorite: in.IsFavorite,
		Todos:      todosPayload(in.Todos),
	}
	var n note.NoteWithTodos
	err := c.do(ctx, "update note", http.MethodPut, notePath(id, "update/"), payload, &n)
	return n, err
}

// DeleteNote deletes a note.
func (c *Client) DeleteNote(ctx context.Context, id int) error {
	return c.do(ctx, "delete note", http.MethodDelete, notePath(id, "delete/"), nil, nil)
}

// SetFavorite sets only the favorite flag of a note.
func (c *Client) SetFavorite(ctx context.Context, id int, favorite bool) (note.Note, error) {
	var n note.Note
	err := c.do(ctx, "update favorite", http.MethodPatch, notePath(id, "favorite/"), favoriteRequest{IsFavorite: favorite}, &n)
	return n, err
}

func notePath(id int, suffix string) string {
	return "/notes/" + strconv.Itoa(id) + "/" + suffix
}

// todosPayload keeps an empty list encoded as [] so the server clears todos.
func todosPayload(todos []note.Todo) []note.Todo {
	if todos == nil {
		return []note.Todo{}
	}
	return todos
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any, dest any) error {
	requestID := uuid.NewString()
	err := c.roundTrip(ctx, op, method, path, requestID, payload, dest)
	if err != nil {
		attrs := []any{
			"op", op,
			"method", method,
			"path", path,
			"request_id", requestID,
			"kind", KindOf(err).String(),
			"err", err,
		}
		c.logger.ErrorContext(ctx, "notes api request failed", attrs...)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path, requestID string, payload any, dest any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readErrorResponse(op, resp)
	}
	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func readErrorResponse(op string, resp *http.Response) error {
	reqErr := &RequestError{
		Op:         op,
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if message, ok := payload["error"].(string); ok {
			reqErr.Detail = message
		}
	}
	return reqErr
}

func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return code
}
