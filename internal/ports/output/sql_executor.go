package output

import (
	"context"

	"arbfix/internal/domain/entities"
)

// SQLExecutor runs a raw SQL statement against one target (an RPC endpoint or
// a direct connection). Every call is a single attempt, never retried.
type SQLExecutor interface {
	Endpoint() string
	Exec(ctx context.Context, sql string) entities.Attempt
}

// PatchArchive persists patches that could not be applied remotely, for manual
// execution later.
type PatchArchive interface {
	// Store writes patch verbatim and returns the written path. seq orders
	// patches stored within the same run.
	Store(patch entities.SQLPatch, seq int) (string, error)
}
