package code

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultJudge0URL is the hosted Judge0 CE endpoint on RapidAPI.
const DefaultJudge0URL = "https://judge0-ce.p.rapidapi.com"

// Judge0Config holds the connection settings for a Judge0 CE instance.
// URL is the base URL of the Judge0 server (e.g. "http://judge0-server:2358").
// RapidAPIKey/RapidAPIHost authenticate against the hosted RapidAPI endpoint;
// AuthToken is sent as X-Auth-Token to a self-hosted server with AUTHN_TOKEN set.
type Judge0Config struct {
	URL          string
	AuthToken    string
	RapidAPIKey  string
	RapidAPIHost string
	Timeout      time.Duration
}

func (c Judge0Config) hasCredentials() bool {
	return c.AuthToken != "" || (c.RapidAPIKey != "" && c.RapidAPIHost != "")
}

// Judge0Provider calls the Judge0 CE REST API.
type Judge0Provider struct {
	cfg    Judge0Config
	url    string
	client *http.Client
}

// NewJudge0Provider constructs a Judge0Provider from the given config.
func NewJudge0Provider(cfg Judge0Config) *Judge0Provider {
	if cfg.URL == "" {
		cfg.URL = DefaultJudge0URL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Judge0Provider{
		cfg:    cfg,
		url:    strings.TrimRight(cfg.URL, "/"),
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type submitRequest struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

type submissionResponse struct {
	Token         string  `json:"token"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Time          *string `json:"time"`
	Memory        *int    `json:"memory"`
	Status        *Status `json:"status"`
}

// Submit creates an asynchronous submission and returns its token.
// Source and stdin must already be base64-encoded.
func (p *Judge0Provider) Submit(ctx context.Context, languageID int, encodedSource, encodedStdin string) (string, error) {
	bodyJSON, err := json.Marshal(submitRequest{
		LanguageID: languageID,
		SourceCode: encodedSource,
		Stdin:      encodedStdin,
	})
	if err != nil {
		return "", &UpstreamError{Op: "submit", Err: fmt.Errorf("marshal request: %w", err)}
	}

	var raw submissionResponse
	if err := p.do(ctx, "submit", http.MethodPost, "/submissions", bytes.NewReader(bodyJSON), &raw); err != nil {
		return "", err
	}
	if raw.Token == "" {
		return "", &UpstreamError{Op: "submit", Err: errors.New("response carried no token")}
	}
	return raw.Token, nil
}

// FetchResult retrieves the current state of a submission. The returned
// stdout/stderr are still base64-encoded.
func (p *Judge0Provider) FetchResult(ctx context.Context, token string) (*ExecutionResult, error) {
	var raw submissionResponse
	if err := p.do(ctx, "fetch result", http.MethodGet, "/submissions/"+url.PathEscape(token), nil, &raw); err != nil {
		return nil, err
	}

	res := &ExecutionResult{
		Token:         raw.Token,
		Stdout:        raw.Stdout,
		Stderr:        raw.Stderr,
		CompileOutput: raw.CompileOutput,
		Time:          raw.Time,
		Memory:        raw.Memory,
	}
	if res.Token == "" {
		res.Token = token
	}
	if raw.Status != nil {
		res.Status = *raw.Status
	}
	return res, nil
}

func (p *Judge0Provider) do(ctx context.Context, op, method, path string, body io.Reader, out any) error {
	if !p.cfg.hasCredentials() {
		return &UpstreamError{Op: op, Err: ErrMissingCredentials}
	}

	req, err := http.NewRequestWithContext(ctx, method,
		p.url+path+"?base64_encoded=true&fields=*", body)
	if err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.cfg.RapidAPIKey != "" {
		req.Header.Set("X-RapidAPI-Key", p.cfg.RapidAPIKey)
		req.Header.Set("X-RapidAPI-Host", p.cfg.RapidAPIHost)
	}
	if p.cfg.AuthToken != "" {
		req.Header.Set("X-Auth-Token", p.cfg.AuthToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: errorMessage(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage extracts Judge0's {"error": "..."} or RapidAPI's
// {"message": "..."} body, falling back to a generic message.
func errorMessage(r io.Reader) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return errors.New(body.Error)
		}
		if body.Message != "" {
			return errors.New(body.Message)
		}
	}
	return errors.New("unexpected response")
}
