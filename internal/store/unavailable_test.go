package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsarma/judgerelay/internal/store"
)

func TestUnavailable_EveryQueryFails(t *testing.T) {
	cause := errors.New("DATABASE_URL is empty")
	q := store.New(store.Unavailable(cause))
	ctx := context.Background()

	_, err := q.InsertCodeSubmission(ctx, store.InsertCodeSubmissionParams{Username: "alice", Languages: "Bash (5.0.0)"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	_, err = q.ListCodeSubmissions(ctx)
	assert.ErrorIs(t, err, cause)

	_, err = q.ListCodeSubmissionsPage(ctx, store.ListCodeSubmissionsPageParams{Offset: 1})
	assert.ErrorIs(t, err, cause)

	assert.ErrorIs(t, store.Migrate(ctx, store.Unavailable(cause)), cause)
}
