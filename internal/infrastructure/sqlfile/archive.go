// Package sqlfile archives SQL patches on disk, named so that the directory is
// a valid golang-migrate file source.
package sqlfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arbfix/internal/domain/entities"
	"arbfix/internal/ports/output"
)

var _ output.PatchArchive = (*Archive)(nil)

// Archive writes <version>_<name>.up.sql files into Dir.
type Archive struct {
	Dir string
	Now func() time.Time
}

func NewArchive(dir string) *Archive {
	return &Archive{Dir: dir, Now: time.Now}
}

// Store writes the patch SQL verbatim. Existing files are never overwritten.
func (a *Archive) Store(patch entities.SQLPatch, seq int) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create sql dir: %w", err)
	}
	path := filepath.Join(a.Dir, FileName(a.Now(), seq, patch.Name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.WriteString(patch.SQL); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// FileName builds the migration file name for a patch stored at t.
func FileName(t time.Time, seq int, name string) string {
	return fmt.Sprintf("%s%02d_%s.up.sql", t.UTC().Format("20060102150405"), seq%100, sanitize(name))
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "patch"
	}
	return b.String()
}
