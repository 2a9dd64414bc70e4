package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbfix/internal/application"
	"arbfix/internal/domain"
	"arbfix/internal/domain/entities"
	"arbfix/internal/ports/output"
)

type fakeExecutor struct {
	name  string
	ok    bool
	calls []string
}

func (f *fakeExecutor) Endpoint() string { return f.name }

func (f *fakeExecutor) Exec(_ context.Context, sql string) entities.Attempt {
	f.calls = append(f.calls, sql)
	if f.ok {
		return entities.Attempt{Endpoint: f.name, StatusCode: 200}
	}
	return entities.Attempt{Endpoint: f.name, StatusCode: 404, Err: fmt.Errorf("%w 404", domain.ErrUnexpectedCode)}
}

type memArchive struct {
	stored map[string]string
	err    error
}

func (m *memArchive) Store(p entities.SQLPatch, seq int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.stored == nil {
		m.stored = map[string]string{}
	}
	path := fmt.Sprintf("sql/%02d_%s.up.sql", seq, p.Name)
	m.stored[path] = p.SQL
	return path, nil
}

var patches = []entities.SQLPatch{
	{Name: "add_option_translations", SQL: "CREATE FUNCTION a();"},
	{Name: "get_pending_translations", SQL: "CREATE FUNCTION b();"},
}

func TestSubmitFirstEndpointWins(t *testing.T) {
	exec := &fakeExecutor{name: "exec", ok: true}
	query := &fakeExecutor{name: "query", ok: true}
	archive := &memArchive{}

	svc := application.NewSQLPatchService([]output.SQLExecutor{exec, query}, archive, nil)
	results, err := svc.Submit(context.Background(), patches)
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Applied)
		assert.Equal(t, "exec", r.AppliedBy)
		assert.Len(t, r.Attempts, 1)
		assert.Empty(t, r.FallbackPath)
	}
	assert.Empty(t, query.calls)
	assert.Empty(t, archive.stored)
}

func TestSubmitFallsThroughToNextEndpoint(t *testing.T) {
	exec := &fakeExecutor{name: "exec"}
	query := &fakeExecutor{name: "query", ok: true}

	svc := application.NewSQLPatchService([]output.SQLExecutor{exec, query}, &memArchive{}, nil)
	results, err := svc.Submit(context.Background(), patches[:1])
	require.NoError(t, err)

	assert.True(t, results[0].Applied)
	assert.Equal(t, "query", results[0].AppliedBy)
	require.Len(t, results[0].Attempts, 2)
	assert.ErrorIs(t, results[0].Attempts[0].Err, domain.ErrUnexpectedCode)
	assert.Equal(t, []string{"CREATE FUNCTION a();"}, exec.calls)
}

func TestSubmitArchivesUnappliedPatches(t *testing.T) {
	exec := &fakeExecutor{name: "exec"}
	query := &fakeExecutor{name: "query"}
	archive := &memArchive{}

	svc := application.NewSQLPatchService([]output.SQLExecutor{exec, query}, archive, nil)
	results, err := svc.Submit(context.Background(), patches)
	require.NoError(t, err)

	assert.Len(t, exec.calls, 2)
	assert.Len(t, query.calls, 2)
	for i, r := range results {
		assert.False(t, r.Applied)
		assert.Len(t, r.Attempts, 2)
		require.NotEmpty(t, r.FallbackPath)
		assert.Equal(t, patches[i].SQL, archive.stored[r.FallbackPath])
	}
}

func TestSubmitArchiveFailureIsReported(t *testing.T) {
	svc := application.NewSQLPatchService([]output.SQLExecutor{&fakeExecutor{name: "exec"}}, &memArchive{err: errors.New("read-only")}, nil)
	results, err := svc.Submit(context.Background(), patches[:1])
	require.NoError(t, err)
	assert.EqualError(t, results[0].FallbackErr, "read-only")
	assert.Empty(t, results[0].FallbackPath)
}

func TestSubmitWithoutExecutors(t *testing.T) {
	archive := &memArchive{}
	svc := application.NewSQLPatchService(nil, archive, nil)
	results, err := svc.Submit(context.Background(), patches[:1])
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Attempts[0].Err, domain.ErrNoEndpoint)
	assert.Len(t, archive.stored, 1)
}

func TestSubmitRejectsEmptyPatch(t *testing.T) {
	svc := application.NewSQLPatchService(nil, &memArchive{}, nil)
	_, err := svc.Submit(context.Background(), []entities.SQLPatch{{Name: "blank", SQL: " \n"}})
	assert.ErrorIs(t, err, domain.ErrEmptyPatch)
}
