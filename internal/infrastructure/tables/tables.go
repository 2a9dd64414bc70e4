// Package tables loads translation tables from TOML, either the built-in ones
// embedded in the binary or a file supplied by the operator.
package tables

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"arbfix/internal/domain"
	"arbfix/internal/domain/entities"
	"arbfix/pkg/arbname"
)

//go:embed *.toml
var builtinFS embed.FS

type tableFile struct {
	Name    string      `toml:"name"`
	Key     string      `toml:"key"`
	Entries []entryFile `toml:"entries"`
}

type entryFile struct {
	File  string `toml:"file"`
	Value string `toml:"value"`
}

// Builtin returns the embedded table called name.
func Builtin(name string) (entities.TranslationTable, error) {
	data, err := builtinFS.ReadFile(name + ".toml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.TranslationTable{}, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownTable, name, strings.Join(BuiltinNames(), ", "))
		}
		return entities.TranslationTable{}, err
	}
	return Parse(data, name)
}

// BuiltinNames lists the embedded tables, sorted.
func BuiltinNames() []string {
	matches, _ := fs.Glob(builtinFS, "*.toml")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".toml"))
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a table from a TOML file on disk.
func LoadFile(filename string) (entities.TranslationTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return entities.TranslationTable{}, fmt.Errorf("read table: %w", err)
	}
	fallback := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return Parse(data, fallback)
}

// Parse decodes and validates a TOML table. defaultName is used when the
// document has no name field.
func Parse(data []byte, defaultName string) (entities.TranslationTable, error) {
	var tf tableFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return entities.TranslationTable{}, fmt.Errorf("%w: %v", domain.ErrInvalidTable, err)
	}

	t := entities.TranslationTable{Name: tf.Name, Key: strings.TrimSpace(tf.Key)}
	if t.Name == "" {
		t.Name = defaultName
	}
	for _, e := range tf.Entries {
		t.Entries = append(t.Entries, entities.Entry{File: strings.TrimSpace(e.File), Value: e.Value})
	}
	if err := Validate(t); err != nil {
		return entities.TranslationTable{}, err
	}
	return t, nil
}

// Validate checks the table's key and that every entry names a distinct ARB
// file with a recognisable locale.
func Validate(t entities.TranslationTable) error {
	if t.Key == "" {
		return fmt.Errorf("%w: key is required", domain.ErrInvalidTable)
	}
	if len(t.Entries) == 0 {
		return fmt.Errorf("%w: table %q has no entries", domain.ErrInvalidTable, t.Name)
	}
	seen := make(map[string]struct{}, len(t.Entries))
	for i, e := range t.Entries {
		if _, err := arbname.Parse(e.File); err != nil {
			return fmt.Errorf("%w: entry %d: %v", domain.ErrInvalidTable, i+1, err)
		}
		if _, dup := seen[e.File]; dup {
			return fmt.Errorf("%w: entry %d: duplicate file %q", domain.ErrInvalidTable, i+1, e.File)
		}
		seen[e.File] = struct{}{}
	}
	return nil
}
