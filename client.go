package pastemyst

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the PasteMyst v2 API root.
	DefaultBaseURL = "https://paste.myst.rs/api/v2"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is a PasteMyst API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithToken sets the auth token attached to requests. Get one from
// https://paste.myst.rs/user/settings. The token is sent per request and
// never stored anywhere else.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client. Use this to configure
// transport-level concerns such as timeouts and proxies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new PasteMyst client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do builds the request, runs it, and interprets the response. Every
// operation, blocking or async, goes through this single path: body encoding
// and status handling are therefore identical across both forms.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return &Error{Code: ErrValidation, Message: "encoding request body", Err: err}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Code: ErrTransport, Message: "creating request", Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		// The upstream API takes the raw token, no "Bearer" prefix.
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Code: ErrTransport, Message: "making request", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Code: ErrTransport, Message: "reading response", Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Code: ErrDecode, Message: "decoding response", Err: err}
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &Error{Code: ErrUnauthorized, Message: serverMessage(data, "unauthorized")}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Code: ErrNotFound, Message: serverMessage(data, "not found")}
	case resp.StatusCode < 500:
		return &Error{Code: ErrValidation, Message: serverMessage(data, fmt.Sprintf("request rejected with status %d", resp.StatusCode))}
	default:
		return &Error{Code: ErrTransport, Message: fmt.Sprintf("server error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))}
	}
}

// serverMessage extracts the server-provided error message from an error
// body, falling back to the raw body and then to fallback.
func serverMessage(body []byte, fallback string) string {
	var wire struct {
		StatusMessage string `json:"statusMessage"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.StatusMessage != "" {
		return wire.StatusMessage
	}
	if msg := strings.TrimSpace(string(body)); msg != "" && !strings.HasPrefix(msg, "{") {
		return msg
	}
	return fallback
}
