package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"arbfix/internal/domain/entities"
	"arbfix/internal/ports/output"
)

var _ output.SQLExecutor = (*Executor)(nil)

// execer is the subset of pgxpool.Pool used by Executor.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Executor runs patches over a direct Postgres connection.
type Executor struct {
	db    execer
	label string
}

// NewExecutor wraps db; label identifies the target in reports and should not
// carry credentials.
func NewExecutor(db execer, label string) *Executor {
	return &Executor{db: db, label: label}
}

func (e *Executor) Endpoint() string {
	return e.label
}

// Exec runs sql without arguments, which pgx sends over the simple protocol,
// so multi-statement patches (DROP + CREATE) go through as one call.
func (e *Executor) Exec(ctx context.Context, sql string) entities.Attempt {
	a := entities.Attempt{Endpoint: e.label}
	tag, err := e.db.Exec(ctx, sql)
	if err != nil {
		a.Err = fmt.Errorf("exec: %w", err)
		return a
	}
	a.Body = tag.String()
	return a
}
