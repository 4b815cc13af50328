package code

import (
	"context"
	"errors"
	"fmt"
)

// Judge0 status IDs below this value mean the job has not finished yet
// (1 = In Queue, 2 = Processing).
const firstTerminalStatus = 3

var (
	// ErrMissingCredentials is returned when no engine credentials are configured.
	ErrMissingCredentials = errors.New("judge0 credentials are not configured")
	// ErrResultPending is returned when polling gives up before a terminal status.
	ErrResultPending = errors.New("judge0 result still pending")
)

// Status is the engine-reported state of a submission.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Terminal reports whether the engine has finished with the submission.
func (s Status) Terminal() bool {
	return s.ID >= firstTerminalStatus
}

// ExecutionResult is a submission as returned by the engine. Stdout, Stderr
// and CompileOutput are still transport-encoded; nil means the engine
// produced nothing on that stream.
type ExecutionResult struct {
	Token         string
	Stdout        *string
	Stderr        *string
	CompileOutput *string
	Status        Status
	Time          *string
	Memory        *int
}

// Provider defines the two calls the relay makes against an execution engine.
// Each call is a single attempt.
type Provider interface {
	Submit(ctx context.Context, languageID int, encodedSource, encodedStdin string) (string, error)
	FetchResult(ctx context.Context, token string) (*ExecutionResult, error)
}

// UpstreamError wraps any network or engine failure.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("judge0 %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("judge0 %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
