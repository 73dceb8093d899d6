package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/intl"
)

// LocaleSource gives the localizer middleware access to the application bundle.
type LocaleSource interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

const langQueryParam = "lang"

func languageTagsFromCodes(codes []string) []language.Tag {
	supported := intl.GetSupportedLanguages(codes)
	tags := make([]language.Tag, len(supported))
	for i, lang := range supported {
		tags[i] = lang.Tag
	}
	return tags
}

func userLocale(ctx context.Context) (language.Tag, bool) {
	u, err := composables.UseUser(ctx)
	if err != nil || !u.IsLogged() {
		return language.Und, false
	}
	tag, err := language.Parse(u.UILanguage().String())
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

func matchSupported(defaultLocale language.Tag, supported []language.Tag, candidates []language.Tag) language.Tag {
	if len(supported) == 0 {
		return defaultLocale
	}
	if len(candidates) == 0 {
		candidates = []language.Tag{defaultLocale}
	}
	_, idx, _ := language.NewMatcher(supported).Match(candidates...)
	return supported[idx]
}

// requestLocale prefers an explicit ?lang= override, then the user's UI language,
// then the Accept-Language header.
func requestLocale(r *http.Request, defaultLocale language.Tag, supported []language.Tag) language.Tag {
	if q := r.URL.Query().Get(langQueryParam); q != "" {
		if tag, err := language.Parse(q); err == nil {
			return matchSupported(defaultLocale, supported, []language.Tag{tag})
		}
	}
	if tag, ok := userLocale(r.Context()); ok {
		return matchSupported(defaultLocale, supported, []language.Tag{tag})
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		tags = nil
	}
	return matchSupported(defaultLocale, supported, tags)
}

func ProvideLocalizer(app LocaleSource) mux.MiddlewareFunc {
	bundle := app.Bundle()
	supported := languageTagsFromCodes(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := requestLocale(r, language.English, supported)
			ctx := intl.WithLocalizer(r.Context(), i18n.NewLocalizer(bundle, locale.String()))
			ctx = intl.WithLocale(ctx, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
