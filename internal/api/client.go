// Package api provides a REST client for the AuditIQ compliance backend.
// It implements a deep module interface - simple resource methods hiding
// request construction, auth, and error-body normalization.
//
// The backend follows the FastAPI error convention: failed requests carry
// a JSON body with a "detail" field that is either a human-readable string
// or an array of validation errors. Responses with status 204 or an empty
// body are success-with-no-payload.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// maxDetailLen bounds error text taken from non-JSON bodies (proxies
// sometimes return HTML pages).
const maxDetailLen = 300

// Error is a normalized backend error carrying the HTTP status and the
// server-provided detail message.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Detail, e.Status)
}

// UserMessage maps an error to the text shown to the user:
// server detail for client errors, a generic retry hint for server
// errors, and a reachability message for transport failures.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status >= 500:
			return "Server error, please retry in a moment"
		case apiErr.Detail != "":
			return apiErr.Detail
		default:
			return fmt.Sprintf("Request failed (%d)", apiErr.Status)
		}
	}
	if err != nil {
		return "Cannot reach server"
	}
	return ""
}

// Client is an authenticated HTTP client for the AuditIQ backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
}

// New creates a client for the given base URL. Every request attaches a
// bearer token obtained from the token source.
func New(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		tokens:  tokens,
	}
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// put issues an authenticated JSON PUT and decodes the response into out.
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// post issues an authenticated JSON POST and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// del issues an authenticated DELETE. 2xx and 204 are success.
func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do executes one JSON request with auth and error normalization.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// postForm issues an authenticated multipart POST built from fields and an
// optional file part, decoding the JSON response into out.
func (c *Client) postForm(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write form field %s: %w", name, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("copy file payload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

// send attaches auth headers, executes the request, and decodes the
// response or normalizes the error body.
func (c *Client) send(req *http.Request, out interface{}) error {
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("obtain access token: %w", err)
		}
		token.SetAuthHeader(req)
	}
	if req.Method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Detail: parseErrorBody(resp)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseErrorBody extracts a single human-readable message from a failed
// response. String details pass through, validation arrays collapse to a
// fixed message, and non-JSON bodies fall back to truncated raw text.
func parseErrorBody(resp *http.Response) string {
	fallback := fmt.Sprintf("Request failed (%d)", resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fallback
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Detail  json.RawMessage `json:"detail"`
			Message string          `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil {
			var detail string
			if json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
				return detail
			}
			var details []json.RawMessage
			if json.Unmarshal(body.Detail, &details) == nil && len(details) > 0 {
				return "Request validation failed."
			}
			if body.Message != "" {
				return body.Message
			}
		}
		return fallback
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return fallback
	}
	if len(text) > maxDetailLen {
		text = text[:maxDetailLen]
	}
	return text
}
