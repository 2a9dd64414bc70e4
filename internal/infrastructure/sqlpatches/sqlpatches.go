// Package sqlpatches exposes the SQL function patches shipped with the tool
// and reads operator-supplied ones from disk.
package sqlpatches

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arbfix/internal/domain"
	"arbfix/internal/domain/entities"
)

//go:embed *.sql
var builtinFS embed.FS

// DefaultNames is the order the built-in patches are submitted in.
var DefaultNames = []string{"add_option_translations", "get_pending_translations"}

// Builtin returns the embedded patch called name.
func Builtin(name string) (entities.SQLPatch, error) {
	data, err := builtinFS.ReadFile(name + ".sql")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.SQLPatch{}, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownPatch, name, strings.Join(BuiltinNames(), ", "))
		}
		return entities.SQLPatch{}, err
	}
	return entities.SQLPatch{Name: name, SQL: string(data)}, nil
}

// Defaults returns every built-in patch in submission order.
func Defaults() ([]entities.SQLPatch, error) {
	out := make([]entities.SQLPatch, 0, len(DefaultNames))
	for _, name := range DefaultNames {
		p, err := Builtin(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func BuiltinNames() []string {
	matches, _ := fs.Glob(builtinFS, "*.sql")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".sql"))
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a patch from disk, naming it after the file.
func LoadFile(filename string) (entities.SQLPatch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return entities.SQLPatch{}, fmt.Errorf("read patch: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if strings.TrimSpace(string(data)) == "" {
		return entities.SQLPatch{}, fmt.Errorf("%w: %s", domain.ErrEmptyPatch, name)
	}
	return entities.SQLPatch{Name: name, SQL: string(data)}, nil
}
