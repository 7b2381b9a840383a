package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zikaron/yahrzeit/internal/config"
)

func TestNewTranslator_DetectsLocales(t *testing.T) {
	tr := NewTranslator(config.DefaultLanguage)
	require.NotNil(t, tr)
	assert.ElementsMatch(t, []string{"en", "he"}, tr.SupportedLanguages)
}

func TestTranslator_Summaries(t *testing.T) {
	tests := []struct {
		desc string
		lang string
		name string
		want string
	}{
		{desc: "hebrew summary", lang: "he", name: "משה", want: "יארצייט: משה"},
		{desc: "english summary", lang: "en", name: "Moshe", want: "Yahrzeit: Moshe"},
		{desc: "unknown language falls back", lang: "tlh", name: "Moshe", want: "יארצייט: Moshe"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f := NewTranslator(tt.lang).SummaryFunc()
			assert.Equal(t, tt.want, f(tt.name))
		})
	}
}

func TestTranslator_MsgData(t *testing.T) {
	tr := NewTranslator("en")
	got := tr.MsgData(config.TKeyTodayHeader, map[string]interface{}{"Date": "ה' בטבת התשפ\"ד"})
	assert.Equal(t, "Yahrzeits for ה' בטבת התשפ\"ד:", got)
}

func TestTranslator_MissingKeyReturnsKey(t *testing.T) {
	tr := NewTranslator("en")
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"))
}

// Every key referenced from code must exist in every locale, otherwise a
// language silently degrades to raw keys.
func TestLocaleIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyEvtSummary,
		config.TKeyTodayHeader,
		config.TKeyTodayNone,
		config.TKeyNeedsReview,
	}
	for _, lang := range config.SupportedLanguages {
		tr := NewTranslator(lang)
		for _, key := range keys {
			got := tr.MsgData(key, map[string]interface{}{"Name": "x", "Date": "y"})
			assert.NotEqual(t, key, got, "lang %s missing key %s", lang, key)
		}
	}
}
