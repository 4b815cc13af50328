package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Unavailable returns a DBTX whose every call fails with err wrapped. It
// stands in for a pool that could not be configured so queries surface a
// storage error instead of the process refusing to start.
func Unavailable(err error) DBTX {
	return unavailable{err: fmt.Errorf("database unavailable: %w", err)}
}

type unavailable struct{ err error }

func (u unavailable) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, u.err
}

func (u unavailable) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, u.err
}

func (u unavailable) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return errRow{err: u.err}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
