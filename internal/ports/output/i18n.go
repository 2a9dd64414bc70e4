package output

// T renders the operator-facing lines of a report (summaries, hints).
type T interface {
	// T renders the message identified by key for locale, or for the
	// translator's default locale when locale is empty. data fills template
	// placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
