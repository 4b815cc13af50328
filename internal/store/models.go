package store

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// CodeSubmission is one row of code_submissions. Rows are never updated.
type CodeSubmission struct {
	ID         int32       `json:"id"`
	Username   string      `json:"username"`
	Languages  string      `json:"languages"`
	Stdin      pgtype.Text `json:"stdin"`
	SourceCode pgtype.Text `json:"source_code"`
	Output     pgtype.Text `json:"output"`
	Stderr     pgtype.Text `json:"stderr"`
	CreatedAt  time.Time   `json:"created_at"`
}
