// Package submission runs a submission through the execution engine and
// records the outcome.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gsarma/judgerelay/internal/code"
	"github.com/gsarma/judgerelay/internal/events"
	"github.com/gsarma/judgerelay/internal/language"
	"github.com/gsarma/judgerelay/internal/store"
)

// Request is a single incoming submission.
type Request struct {
	Username   string
	Language   string
	SourceCode string
	Stdin      string
}

// Result is what the caller gets back once a submission completed.
// Stdout and Stderr are nil when the program wrote nothing to them.
type Result struct {
	Token         string  `json:"-"`
	SourceCode    string  `json:"source_code"`
	Stdin         string  `json:"stdin"`
	Stderr        *string `json:"stderr"`
	Stdout        *string `json:"stdout"`
	CompileOutput *string `json:"compile_output,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// Page selects a slice of stored submissions. The zero Page means all rows.
// A zero Limit applies no row cap.
type Page struct {
	Since  *time.Time
	Limit  int32
	Offset int32
}

func (p Page) all() bool {
	return p.Since == nil && p.Limit <= 0 && p.Offset <= 0
}

// Service wires the registry, engine client, store and event publisher.
type Service struct {
	provider  code.Provider
	queries   store.Querier
	publisher events.Publisher
	poll      code.PollConfig
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets where completion events are sent.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithPollConfig bounds result polling.
func WithPollConfig(cfg code.PollConfig) Option {
	return func(s *Service) { s.poll = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(provider code.Provider, queries store.Querier, opts ...Option) *Service {
	s := &Service{
		provider:  provider,
		queries:   queries,
		publisher: events.Nop{},
		poll:      code.DefaultPollConfig,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit validates, executes, decodes and records one submission. Every
// step runs at most once; a failure before the insert leaves no record.
func (s *Service) Submit(ctx context.Context, req Request) (*Result, error) {
	languageID, ok := language.Resolve(req.Language)
	if !ok {
		return nil, ErrInvalidLanguage
	}
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidRequest)
	}

	token, err := s.provider.Submit(ctx, languageID,
		code.EncodeForTransport(req.SourceCode),
		code.EncodeForTransport(req.Stdin))
	if err != nil {
		return nil, &UpstreamError{Stage: StageSubmit, Err: err}
	}

	res, err := s.fetch(ctx, token, true)
	if err != nil {
		return nil, err
	}
	res.SourceCode = req.SourceCode
	res.Stdin = req.Stdin

	row, err := s.queries.InsertCodeSubmission(ctx, store.InsertCodeSubmissionParams{
		Username:   req.Username,
		Languages:  req.Language,
		Stdin:      storable(&req.Stdin),
		SourceCode: storable(&req.SourceCode),
		Output:     storable(res.Stdout),
		Stderr:     storable(res.Stderr),
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	if err := s.publisher.Publish(ctx, events.Completed{
		SubmissionID: row.ID,
		Token:        token,
		Username:     req.Username,
		Language:     req.Language,
		Status:       res.Status,
		CreatedAt:    row.CreatedAt,
	}); err != nil {
		s.log.Warn("publish completion event", "submission_id", row.ID, "error", err)
	}

	return res, nil
}

// Result fetches and decodes the current state of a submission once,
// without polling or persisting.
func (s *Service) Result(ctx context.Context, token string) (*Result, error) {
	return s.fetch(ctx, token, false)
}

// List returns stored submissions; the zero Page returns every row.
func (s *Service) List(ctx context.Context, p Page) ([]store.CodeSubmission, error) {
	var (
		rows []store.CodeSubmission
		err  error
	)
	if p.all() {
		rows, err = s.queries.ListCodeSubmissions(ctx)
	} else {
		arg := store.ListCodeSubmissionsPageParams{
			Since:  p.Since,
			Offset: max(p.Offset, 0),
		}
		if p.Limit > 0 {
			arg.Limit = pgtype.Int4{Int32: p.Limit, Valid: true}
		}
		rows, err = s.queries.ListCodeSubmissionsPage(ctx, arg)
	}
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return rows, nil
}

func (s *Service) fetch(ctx context.Context, token string, wait bool) (*Result, error) {
	var (
		exec *code.ExecutionResult
		err  error
	)
	if wait {
		exec, err = code.WaitForResult(ctx, s.provider, token, s.poll)
	} else {
		exec, err = s.provider.FetchResult(ctx, token)
	}
	if err != nil {
		return nil, &UpstreamError{Stage: StageFetch, Err: err}
	}

	stdout, err := code.DecodeFromTransport(exec.Stdout)
	if err != nil {
		return nil, &UpstreamError{Stage: StageFetch, Err: fmt.Errorf("stdout: %w", err)}
	}
	stderr, err := code.DecodeFromTransport(exec.Stderr)
	if err != nil {
		return nil, &UpstreamError{Stage: StageFetch, Err: fmt.Errorf("stderr: %w", err)}
	}
	compileOutput, err := code.DecodeFromTransport(exec.CompileOutput)
	if err != nil {
		return nil, &UpstreamError{Stage: StageFetch, Err: fmt.Errorf("compile_output: %w", err)}
	}

	return &Result{
		Token:         token,
		Stdout:        stdout,
		Stderr:        stderr,
		CompileOutput: compileOutput,
		Status:        exec.Status.Description,
	}, nil
}

// storable converts s to a nullable TEXT value. Postgres rejects NUL bytes
// and invalid UTF-8 in TEXT columns.
func storable(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	v := strings.ToValidUTF8(*s, "�")
	v = strings.ReplaceAll(v, "\x00", "")
	return pgtype.Text{String: v, Valid: true}
}
