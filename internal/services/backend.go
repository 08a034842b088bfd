package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// Backend talks to the MLM platform's REST API on behalf of an admin.
type Backend struct {
	baseURL    string
	httpClient *http.Client
	debug      bool
}

// NewBackend builds a Backend client for the given base URL.
func NewBackend(baseURL string, timeout time.Duration, debug bool) *Backend {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Backend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		debug:      debug,
	}
}

// BaseURL exposes the configured backend base URL.
func (b *Backend) BaseURL() string {
	return b.baseURL
}

// Request captures inputs for a backend API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Token  string
}

// Response bundles the HTTP response metadata.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// BackendError is returned for any non-2xx backend response.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// ErrNetwork wraps transport failures reaching the backend.
var ErrNetwork = errors.New("backend unreachable")

// URL joins the base URL, endpoint path and query.
func (b *Backend) URL(path string, query url.Values) (string, error) {
	u, err := url.Parse(b.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse backend base URL: %w", err)
	}

	segments := splitPathSegments(u.Path)
	segments = append(segments, splitPathSegments(path)...)
	u.Path = "/" + strings.Join(segments, "/")

	if len(query) > 0 {
		values := u.Query()
		for k, vals := range query {
			for _, v := range vals {
				if v != "" {
					values.Add(k, v)
				}
			}
		}
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

// Do performs a JSON backend request with the admin's bearer token.
func (b *Backend) Do(ctx context.Context, opts Request) (*Response, error) {
	if opts.Method == "" {
		return nil, errors.New("request method is required")
	}
	if strings.Trim(opts.Path, "/") == "" {
		return nil, errors.New("request path is required")
	}

	targetURL, err := b.URL(opts.Path, opts.Query)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, targetURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setBearer(req, opts.Token)

	return b.do(req)
}

// Get is a shorthand for a GET request.
func (b *Backend) Get(ctx context.Context, token, path string, query url.Values) (*Response, error) {
	return b.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Token: token})
}

// Send is a shorthand for a mutating request carrying a JSON body.
func (b *Backend) Send(ctx context.Context, token, method, path string, body any) (*Response, error) {
	return b.Do(ctx, Request{Method: method, Path: path, Body: body, Token: token})
}

// Stream fetches a non-JSON resource such as a product image.
func (b *Backend) Stream(ctx context.Context, token, path string) (*Response, error) {
	targetURL, err := b.URL(path, nil)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	setBearer(req, token)

	return b.do(req)
}

// UploadFile is one file part of a multipart upload.
type UploadFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Upload forwards a multipart form to the backend.
func (b *Backend) Upload(ctx context.Context, token, path string, fields map[string]string, files []UploadFile) (*Response, error) {
	targetURL, err := b.URL(path, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := writer.CreatePart(filePartHeader(f))
		if err != nil {
			return nil, fmt.Errorf("create form file %s: %w", f.Filename, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("copy form file %s: %w", f.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setBearer(req, token)

	return b.do(req)
}

func (b *Backend) do(req *http.Request) (*Response, error) {
	started := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		// Skip requests the caller already abandoned.
		if req.Context().Err() == nil {
			log.Printf("[Backend] %s %s failed: %v", req.Method, req.URL.Path, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if b.debug {
		log.Printf("[Backend] %s %s -> %d (%s, %d bytes)", req.Method, req.URL.Path, resp.StatusCode, time.Since(started), len(respBody))
	}

	out := &Response{
		Status: resp.StatusCode,
		Body:   respBody,
		Header: resp.Header.Clone(),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &BackendError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
	}
	return out, nil
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func filePartHeader(f UploadFile) textproto.MIMEHeader {
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	field := f.Field
	if field == "" {
		field = "images"
	}
	return textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(field), escapeQuotes(f.Filename))},
		"Content-Type":        {ct},
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if s, ok := payload.Error.(string); ok && s != "" {
			return s
		}
	}
	switch status {
	case http.StatusUnauthorized:
		return "You are not authorized to perform this action."
	case http.StatusForbidden:
		return "Access denied. Insufficient permissions."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "Please check your input and try again."
	}
	return "Server error. Please try again later."
}

func splitPathSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}
