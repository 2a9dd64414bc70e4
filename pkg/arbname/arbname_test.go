package arbname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	cases := []struct {
		file   string
		prefix string
		tag    language.Tag
	}{
		{"app_en.arb", "app", language.English},
		{"app_pt_BR.arb", "app", language.BrazilianPortuguese},
		{"app_es_419.arb", "app", language.LatinAmericanSpanish},
		{"app_zh_TW.arb", "app", language.MustParse("zh-TW")},
		{"intl_messages_de.arb", "intl_messages", language.German},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			n, err := Parse(c.file)
			require.NoError(t, err)
			assert.Equal(t, c.prefix, n.Prefix)
			assert.Equal(t, c.tag.String(), n.Locale.String())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, file := range []string{"", "app_en.json", "l10n/app_en.arb", "app.arb", "_en.arb", "app_.arb", "app_!!.arb"} {
		t.Run(file, func(t *testing.T) {
			_, err := Parse(file)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestString(t *testing.T) {
	n, err := Parse("app_pt_BR.arb")
	require.NoError(t, err)
	assert.Equal(t, "app_pt_BR.arb", n.String())
}
