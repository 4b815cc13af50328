// Package relay provides a Go client for the judgerelay HTTP API.
//
// Usage:
//
//	client := relay.New("http://localhost:3000")
//
//	res, err := client.Submit(ctx, relay.SubmitRequest{
//	    Username:   "alice",
//	    Language:   "Python (3.11.2)",
//	    SourceCode: "print('hello')",
//	})
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to a judgerelay server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client. baseURL is the server root (e.g. "http://localhost:3000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	return doRequest[HealthResponse](ctx, c, http.MethodGet, "/health", nil, nil)
}

// Languages lists the accepted language labels.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	out, err := doRequest[resultEnvelope[[]Language]](ctx, c, http.MethodGet, "/languages", nil, nil)
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}

// Submit runs source code and waits for the stored result.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	out, err := doRequest[resultEnvelope[SubmitResult]](ctx, c, http.MethodPost, "/submit", nil, req)
	if err != nil {
		return nil, err
	}
	return &out.Result, nil
}

// Submissions lists stored submissions. A nil opts returns every row.
func (c *Client) Submissions(ctx context.Context, opts *ListOptions) ([]Submission, error) {
	out, err := doRequest[resultEnvelope[[]Submission]](ctx, c, http.MethodGet, "/submissions", opts.query(), nil)
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}

// Result fetches the engine's current view of a submission token.
func (c *Client) Result(ctx context.Context, token string) (*ExecutionResult, error) {
	out, err := doRequest[resultEnvelope[ExecutionResult]](ctx, c, http.MethodGet, "/result/"+url.PathEscape(token), nil, nil)
	if err != nil {
		return nil, err
	}
	return &out.Result, nil
}

// --- internal helpers ---

type resultEnvelope[T any] struct {
	Message string `json:"message"`
	Result  T      `json:"result"`
}

func doRequest[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*T, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("relay: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("relay: decode response: %w", err)
	}
	return &out, nil
}

func parseError(resp *http.Response) *APIError {
	e := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		e.Message = body.Message
	} else {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}
