package intl

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestGetSupportedLanguages(t *testing.T) {
	require.Len(t, GetSupportedLanguages(nil), 2)

	filtered := GetSupportedLanguages([]string{"zh", "fr"})
	require.Len(t, filtered, 1)
	require.Equal(t, "zh", filtered[0].Code)
}

func TestT(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	_, err := bundle.ParseMessageFileBytes([]byte(`{"Greeting": "hello"}`), "en.json")
	require.NoError(t, err)

	ctx := context.Background()
	require.Equal(t, "fallback", T(ctx, "Greeting", "fallback"))

	ctx = WithLocalizer(ctx, i18n.NewLocalizer(bundle, "en"))
	require.Equal(t, "hello", T(ctx, "Greeting", "fallback"))
	require.Equal(t, "fallback", T(ctx, "Missing", "fallback"))
}

func TestUseLocale_Default(t *testing.T) {
	require.Equal(t, language.English, UseLocale(context.Background()))
	ctx := WithLocale(context.Background(), language.Chinese)
	require.Equal(t, language.Chinese, UseLocale(ctx))
}
