package output

// Translator exposes a minimal i18n contract for user-facing messages.
// Implementations provide message lookup + templating for a given locale.
type T interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale, key string, data map[string]any) string
}

// Resolver returns the localized name or description of a settings path.
// Bundle values are returned verbatim, never rendered as templates.
type Resolver interface {
	// Resolve looks up path+"."+field in locale, then in the fallback
	// locale. A missing description yields "", a missing name an error.
	Resolve(path, field, locale string) (string, error)
}
