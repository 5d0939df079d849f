package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SanitizeToken converts a string to a filesystem-safe token. ASCII letters,
// digits, dots, hyphens and underscores are kept; every other rune becomes an
// underscore. Case is preserved because platform video IDs are case-sensitive.
// Returns "unknown" for empty input.
func SanitizeToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if strings.Trim(out, "_.") == "" {
		return "unknown"
	}
	return out
}

// TitleCase capitalizes each word of a sub-topic title using the casing rules
// of the given language tag ("tr" uppercases i to İ). Unknown tags fall back
// to language-neutral rules.
func TitleCase(value, lang string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return cases.Title(tag, cases.NoLower).String(value)
}

// Truncate returns at most limit runes of value.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for idx := range value {
		if count == limit {
			return value[:idx]
		}
		count++
	}
	return value
}
