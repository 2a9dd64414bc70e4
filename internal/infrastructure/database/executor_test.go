package database

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecer struct {
	got []string
	err error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.got = append(f.got, sql)
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("CREATE FUNCTION"), nil
}

func TestExecutorSuccess(t *testing.T) {
	db := &fakeExecer{}
	ex := NewExecutor(db, "postgres://db.internal")

	a := ex.Exec(context.Background(), "CREATE FUNCTION f() RETURNS int AS $$ SELECT 1 $$ LANGUAGE sql;")
	require.NoError(t, a.Err)
	assert.Equal(t, "postgres://db.internal", a.Endpoint)
	assert.Equal(t, "CREATE FUNCTION", a.Body)
	assert.Len(t, db.got, 1)
}

func TestExecutorFailure(t *testing.T) {
	db := &fakeExecer{err: errors.New("permission denied for schema public")}
	a := NewExecutor(db, "pg").Exec(context.Background(), "SELECT 1;")
	assert.False(t, a.OK())
	assert.Contains(t, a.Err.Error(), "permission denied")
}

// Runs against a real database only when one is provided.
func TestExecutorPostgres(t *testing.T) {
	dsn := os.Getenv("ARBFIX_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ARBFIX_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, nil)
	require.NoError(t, err)
	defer pool.Close()

	a := NewExecutor(pool, "test").Exec(ctx, "DROP FUNCTION IF EXISTS arbfix_probe(); CREATE FUNCTION arbfix_probe() RETURNS int AS $$ SELECT 1 $$ LANGUAGE sql;")
	require.NoError(t, a.Err)
	_ = NewExecutor(pool, "test").Exec(ctx, "DROP FUNCTION IF EXISTS arbfix_probe();")
}
