package code

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedFetcher struct {
	results []*ExecutionResult
	errs    []error
	calls   int
}

func (f *scriptedFetcher) FetchResult(_ context.Context, token string) (*ExecutionResult, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i], nil
}

var fastPoll = PollConfig{Attempts: 5, Interval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestWaitForResult_ImmediateTerminal(t *testing.T) {
	f := &scriptedFetcher{results: []*ExecutionResult{{Token: "t", Status: Status{ID: 3}}}}

	res, err := WaitForResult(context.Background(), f, "t", fastPoll)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Status.ID)
	assert.Equal(t, 1, f.calls)
}

func TestWaitForResult_PollsUntilTerminal(t *testing.T) {
	f := &scriptedFetcher{results: []*ExecutionResult{
		{Status: Status{ID: 1, Description: "In Queue"}},
		{Status: Status{ID: 2, Description: "Processing"}},
		{Status: Status{ID: 6, Description: "Compilation Error"}},
	}}

	res, err := WaitForResult(context.Background(), f, "t", fastPoll)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Status.ID)
	assert.Equal(t, 3, f.calls)
}

func TestWaitForResult_GivesUpAfterAttempts(t *testing.T) {
	f := &scriptedFetcher{results: []*ExecutionResult{{Status: Status{ID: 2, Description: "Processing"}}}}

	_, err := WaitForResult(context.Background(), f, "t", fastPoll)
	assert.ErrorIs(t, err, ErrResultPending)
	var upErr *UpstreamError
	assert.True(t, errors.As(err, &upErr))
	assert.Equal(t, fastPoll.Attempts, f.calls)
}

func TestWaitForResult_FetchErrorIsNotRetried(t *testing.T) {
	boom := &UpstreamError{Op: "fetch result", Err: errors.New("boom")}
	f := &scriptedFetcher{
		results: []*ExecutionResult{{Status: Status{ID: 1}}},
		errs:    []error{nil, boom},
	}

	_, err := WaitForResult(context.Background(), f, "t", fastPoll)
	assert.Same(t, boom, err)
	assert.Equal(t, 2, f.calls)
}

func TestWaitForResult_ContextCancelled(t *testing.T) {
	f := &scriptedFetcher{results: []*ExecutionResult{{Status: Status{ID: 1}}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WaitForResult(ctx, f, "t", PollConfig{Attempts: 3, Interval: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.calls)
}
