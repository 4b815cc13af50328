package code

import (
	"context"
	"fmt"
	"time"
)

// PollConfig bounds how long WaitForResult keeps asking for a result.
type PollConfig struct {
	Attempts    int
	Interval    time.Duration
	MaxInterval time.Duration
}

// DefaultPollConfig is used for any zero field of a PollConfig.
var DefaultPollConfig = PollConfig{
	Attempts:    10,
	Interval:    500 * time.Millisecond,
	MaxInterval: 4 * time.Second,
}

func (c PollConfig) withDefaults() PollConfig {
	if c.Attempts <= 0 {
		c.Attempts = DefaultPollConfig.Attempts
	}
	if c.Interval <= 0 {
		c.Interval = DefaultPollConfig.Interval
	}
	if c.MaxInterval < c.Interval {
		c.MaxInterval = c.Interval
	}
	return c
}

// ResultFetcher is the subset of Provider the poller needs.
type ResultFetcher interface {
	FetchResult(ctx context.Context, token string) (*ExecutionResult, error)
}

// WaitForResult fetches the result for token until the engine reports a
// terminal status. Between attempts it sleeps, doubling the interval up to
// MaxInterval. A failed fetch is returned immediately; only a job that is
// still queued or processing is asked for again.
func WaitForResult(ctx context.Context, f ResultFetcher, token string, cfg PollConfig) (*ExecutionResult, error) {
	cfg = cfg.withDefaults()
	wait := cfg.Interval

	var last *ExecutionResult
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		res, err := f.FetchResult(ctx, token)
		if err != nil {
			return nil, err
		}
		if res.Status.Terminal() {
			return res, nil
		}
		last = res
		if attempt == cfg.Attempts {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &UpstreamError{Op: "fetch result", Err: ctx.Err()}
		case <-timer.C:
		}
		wait *= 2
		if wait > cfg.MaxInterval {
			wait = cfg.MaxInterval
		}
	}

	return nil, &UpstreamError{
		Op:  "fetch result",
		Err: fmt.Errorf("%w after %d attempts (status %q)", ErrResultPending, cfg.Attempts, last.Status.Description),
	}
}
