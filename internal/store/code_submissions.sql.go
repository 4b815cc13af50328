package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertCodeSubmission = `-- name: InsertCodeSubmission :one
INSERT INTO code_submissions (username, languages, stdin, source_code, output, stderr)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, username, languages, stdin, source_code, output, stderr, created_at
`

type InsertCodeSubmissionParams struct {
	Username   string
	Languages  string
	Stdin      pgtype.Text
	SourceCode pgtype.Text
	Output     pgtype.Text
	Stderr     pgtype.Text
}

func (q *Queries) InsertCodeSubmission(ctx context.Context, arg InsertCodeSubmissionParams) (CodeSubmission, error) {
	row := q.db.QueryRow(ctx, insertCodeSubmission,
		arg.Username,
		arg.Languages,
		arg.Stdin,
		arg.SourceCode,
		arg.Output,
		arg.Stderr,
	)
	var i CodeSubmission
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Languages,
		&i.Stdin,
		&i.SourceCode,
		&i.Output,
		&i.Stderr,
		&i.CreatedAt,
	)
	return i, err
}

const listCodeSubmissions = `-- name: ListCodeSubmissions :many
SELECT id, username, languages, stdin, source_code, output, stderr, created_at
FROM code_submissions
ORDER BY id
`

func (q *Queries) ListCodeSubmissions(ctx context.Context) ([]CodeSubmission, error) {
	rows, err := q.db.Query(ctx, listCodeSubmissions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CodeSubmission{}
	for rows.Next() {
		var i CodeSubmission
		if err := rows.Scan(
			&i.ID,
			&i.Username,
			&i.Languages,
			&i.Stdin,
			&i.SourceCode,
			&i.Output,
			&i.Stderr,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCodeSubmissionsPage = `-- name: ListCodeSubmissionsPage :many
SELECT id, username, languages, stdin, source_code, output, stderr, created_at
FROM code_submissions
WHERE $1::timestamp IS NULL OR created_at >= $1::timestamp
ORDER BY id
LIMIT $2 OFFSET $3
`

type ListCodeSubmissionsPageParams struct {
	Since  *time.Time
	Limit  pgtype.Int4
	Offset int32
}

func (q *Queries) ListCodeSubmissionsPage(ctx context.Context, arg ListCodeSubmissionsPageParams) ([]CodeSubmission, error) {
	rows, err := q.db.Query(ctx, listCodeSubmissionsPage, arg.Since, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CodeSubmission{}
	for rows.Next() {
		var i CodeSubmission
		if err := rows.Scan(
			&i.ID,
			&i.Username,
			&i.Languages,
			&i.Stdin,
			&i.SourceCode,
			&i.Output,
			&i.Stderr,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
