package store

import (
	"context"
)

type Querier interface {
	InsertCodeSubmission(ctx context.Context, arg InsertCodeSubmissionParams) (CodeSubmission, error)
	ListCodeSubmissions(ctx context.Context) ([]CodeSubmission, error)
	ListCodeSubmissionsPage(ctx context.Context, arg ListCodeSubmissionsPageParams) ([]CodeSubmission, error)
}

var _ Querier = (*Queries)(nil)
