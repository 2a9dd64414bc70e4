package sqlpatches

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbfix/internal/domain"
)

func TestDefaults(t *testing.T) {
	patches, err := Defaults()
	require.NoError(t, err)
	require.Len(t, patches, 2)

	assert.Equal(t, "add_option_translations", patches[0].Name)
	assert.Contains(t, patches[0].SQL, "CREATE OR REPLACE FUNCTION add_option_translations(")
	assert.Equal(t, "get_pending_translations", patches[1].Name)
	assert.Contains(t, patches[1].SQL, "RETURNS TABLE (")
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("drop_everything")
	assert.ErrorIs(t, err, domain.ErrUnknownPatch)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fix_votes.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1;\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fix_votes", p.Name)
	assert.Equal(t, "SELECT 1;\n", p.SQL)

	empty := filepath.Join(dir, "empty.sql")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	_, err = LoadFile(empty)
	assert.ErrorIs(t, err, domain.ErrEmptyPatch)
}
