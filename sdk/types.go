package relay

import (
	"net/url"
	"strconv"
	"time"
)

// HealthResponse is returned by the /health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// Language is one accepted language label and its engine ID.
type Language struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// SubmitRequest is the body of POST /submit. Language must match a label
// from Languages exactly.
type SubmitRequest struct {
	Username   string `json:"username"`
	Language   string `json:"language"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// SubmitResult echoes the submission with its decoded output. Stdout and
// Stderr are nil when the program wrote nothing to them.
type SubmitResult struct {
	SourceCode    string  `json:"source_code"`
	Stdin         string  `json:"stdin"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// ExecutionResult is returned by GET /result/:token.
type ExecutionResult struct {
	Token         string  `json:"token"`
	Status        string  `json:"status"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
}

// Submission is a stored submission record.
type Submission struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Language   string    `json:"languages"`
	Stdin      *string   `json:"stdin"`
	SourceCode *string   `json:"source_code"`
	Output     *string   `json:"output"`
	Stderr     *string   `json:"stderr"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListOptions pages through stored submissions. A zero Limit returns every
// matching row; Limit and Offset must fit in 32 bits.
type ListOptions struct {
	Limit  int
	Offset int
	Since  time.Time
}

func (o *ListOptions) query() url.Values {
	if o == nil {
		return nil
	}
	q := url.Values{}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if !o.Since.IsZero() {
		q.Set("since", o.Since.UTC().Format(time.RFC3339))
	}
	return q
}
