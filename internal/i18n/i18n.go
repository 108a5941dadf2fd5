package i18n

// Package i18n holds the bilingual text dictionary for the booking flow and
// the Locale object handed to anything that renders user-facing text. There
// is no ambient language state: callers receive a Locale (language code plus
// lookup) explicitly.

const (
	// DefaultLanguage is the fallback for unknown language codes and
	// for keys missing from a translation table.
	DefaultLanguage = "en"
)

// Bundle is an immutable set of keyed translation tables.
type Bundle struct {
	tables map[string]map[string]string
}

// Locale couples a language code with its lookup function.
type Locale struct {
	Lang   string
	bundle *Bundle
}

// NewBundle returns the built-in English/Hindi dictionary.
func NewBundle() *Bundle {
	return &Bundle{tables: translations}
}

// Languages lists the language codes the bundle carries.
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.tables))
	for lang := range b.tables {
		out = append(out, lang)
	}
	return out
}

// Table returns the full translation table for a language, or nil when the
// language is unknown.
func (b *Bundle) Table(lang string) map[string]string {
	return b.tables[lang]
}

// Locale returns the Locale for a language code, falling back to the
// default language when the code is unknown.
func (b *Bundle) Locale(lang string) *Locale {
	if _, ok := b.tables[lang]; !ok {
		lang = DefaultLanguage
	}
	return &Locale{Lang: lang, bundle: b}
}

// T looks a key up in the locale's table. Missing keys fall back to the
// default language, then to the key itself so that a typo is visible
// rather than silent.
func (l *Locale) T(key string) string {
	if msg, ok := l.bundle.tables[l.Lang][key]; ok {
		return msg
	}
	if msg, ok := l.bundle.tables[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}
