package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsarma/judgerelay/internal/store"
)

// openTx connects to TEST_DATABASE_URL and returns queries bound to a
// transaction that is rolled back when the test ends.
func openTx(t *testing.T) (*store.Queries, pgx.Tx) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(ctx) })

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { tx.Rollback(ctx) })

	require.NoError(t, store.Migrate(ctx, tx))
	require.NoError(t, store.Migrate(ctx, tx), "migrate must be idempotent")
	_, err = tx.Exec(ctx, "DELETE FROM code_submissions")
	require.NoError(t, err)
	return store.New(tx), tx
}

func TestInsertAndList(t *testing.T) {
	q, _ := openTx(t)
	ctx := context.Background()

	row, err := q.InsertCodeSubmission(ctx, store.InsertCodeSubmissionParams{
		Username:   "alice",
		Languages:  "Python (3.11.2)",
		Stdin:      pgtype.Text{String: "", Valid: true},
		SourceCode: pgtype.Text{String: "print('Hello')", Valid: true},
		Output:     pgtype.Text{String: "Hello\n", Valid: true},
	})
	require.NoError(t, err)
	assert.NotZero(t, row.ID)
	assert.False(t, row.Stderr.Valid)
	assert.WithinDuration(t, time.Now(), row.CreatedAt, 24*time.Hour)

	_, err = q.InsertCodeSubmission(ctx, store.InsertCodeSubmissionParams{Username: "bob", Languages: "Bash (5.0.0)"})
	require.NoError(t, err)

	all, err := q.ListCodeSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "bob", all[1].Username)

	page, err := q.ListCodeSubmissionsPage(ctx, store.ListCodeSubmissionsPageParams{Limit: pgtype.Int4{Int32: 1, Valid: true}, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "bob", page[0].Username)

	page, err = q.ListCodeSubmissionsPage(ctx, store.ListCodeSubmissionsPageParams{Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1, "a NULL limit returns every remaining row")

	future := time.Now().Add(48 * time.Hour)
	page, err = q.ListCodeSubmissionsPage(ctx, store.ListCodeSubmissionsPageParams{Since: &future, Limit: pgtype.Int4{Int32: 10, Valid: true}})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestInsert_MissingUsernameViolatesConstraint(t *testing.T) {
	q, tx := openTx(t)
	ctx := context.Background()

	_, err := tx.Exec(ctx, "SAVEPOINT before_insert")
	require.NoError(t, err)
	_, err = q.InsertCodeSubmission(ctx, store.InsertCodeSubmissionParams{Languages: "Bash (5.0.0)"})
	// Empty string is allowed by NOT NULL; only a real NULL is rejected.
	require.NoError(t, err)

	_, err = tx.Exec(ctx, "INSERT INTO code_submissions (languages) VALUES ('x')")
	assert.Error(t, err)
	_, _ = tx.Exec(ctx, "ROLLBACK TO SAVEPOINT before_insert")
}
