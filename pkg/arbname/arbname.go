// Package arbname parses Flutter ARB file names such as app_pt_BR.arb.
package arbname

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

const Ext = ".arb"

var ErrInvalidName = errors.New("arbname: invalid ARB file name")

// Name is a parsed <prefix>_<locale>.arb file name.
type Name struct {
	Prefix string
	Locale language.Tag
}

// Parse splits file into its prefix and locale. Locale subtags use
// underscores (pt_BR, es_419, zh_TW). When the prefix itself contains
// underscores, the leftmost split whose remainder is a valid tag wins.
func Parse(file string) (Name, error) {
	if file != filepath.Base(file) || strings.ContainsAny(file, `/\`) {
		return Name{}, fmt.Errorf("%w: %q is not a bare file name", ErrInvalidName, file)
	}
	stem, ok := strings.CutSuffix(file, Ext)
	if !ok || stem == "" {
		return Name{}, fmt.Errorf("%w: %q must end in %s", ErrInvalidName, file, Ext)
	}

	for i := 0; i < len(stem); i++ {
		if stem[i] != '_' || i == 0 || i == len(stem)-1 {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(stem[i+1:], "_", "-"))
		if err != nil {
			continue
		}
		return Name{Prefix: stem[:i], Locale: tag}, nil
	}
	return Name{}, fmt.Errorf("%w: %q has no <prefix>_<locale> form", ErrInvalidName, file)
}

// String rebuilds the file name using underscores between subtags.
func (n Name) String() string {
	return n.Prefix + "_" + strings.ReplaceAll(n.Locale.String(), "-", "_") + Ext
}
