package store

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS code_submissions (
    id SERIAL PRIMARY KEY,
    username VARCHAR(255) NOT NULL,
    languages VARCHAR(255) NOT NULL,
    stdin TEXT,
    source_code TEXT,
    output TEXT,
    stderr TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)
`

// Migrate creates the code_submissions table if it does not exist.
// It is safe to run on every start.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create code_submissions: %w", err)
	}
	return nil
}
