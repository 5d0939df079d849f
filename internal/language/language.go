package language

import (
	"sort"
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1
	code3   string // ISO 639-2 primary
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string
	words   []string
}

var languages = []entry{
	{"tr", "tur", "", "Turkish", []string{"turkish", "türkçe", "turkce"}},
	{"en", "eng", "", "English", []string{"english"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"az", "aze", "", "Azerbaijani", []string{"azerbaijani"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts a language code, BCP 47 tag (e.g. "tr-TR", "en-orig") or
// language word to ISO 639-1. Returns empty string for unrecognized input.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if base := baseLanguage(code); base != "" {
		if e := lookup(base); e != nil {
			return e.code2
		}
		if len(base) == 2 {
			return base
		}
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// ToISO3 converts any recognized language code to ISO 639-2.
// Returns "und" for unrecognized input.
func ToISO3(code string) string {
	if e := lookup(ToISO2(code)); e != nil {
		return e.code3
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 3 {
		return code
	}
	return "und"
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(ToISO2(code)); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// baseLanguage returns the base subtag of a BCP 47 tag. Caption track keys
// such as "en-orig" are not valid tags, so the first segment is tried as well.
func baseLanguage(code string) string {
	if tag, err := xlanguage.Parse(code); err == nil {
		base, confidence := tag.Base()
		if confidence != xlanguage.No {
			return base.String()
		}
	}
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		if tag, err := xlanguage.Parse(code[:idx]); err == nil {
			base, _ := tag.Base()
			return base.String()
		}
	}
	return ""
}

// NormalizeList deduplicates and normalizes a list of language codes to ISO 639-1,
// preserving order.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		trimmed := strings.ToLower(strings.TrimSpace(code))
		if trimmed == "" {
			continue
		}
		if mapped := ToISO2(trimmed); mapped != "" {
			trimmed = mapped
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

// SelectTrack picks the caption track key to use from the available keys.
// Each priority language is tried in order, first as an exact key and then by
// base language (so "tr" matches "tr-TR"). When nothing matches, the first
// available key in sorted order is returned. Returns "" when available is empty.
func SelectTrack(available []string, priority []string) string {
	if len(available) == 0 {
		return ""
	}
	keys := append([]string(nil), available...)
	sort.Strings(keys)
	for _, want := range priority {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		for _, key := range keys {
			if strings.ToLower(key) == want {
				return key
			}
		}
		wantBase := ToISO2(want)
		for _, key := range keys {
			if wantBase != "" && ToISO2(key) == wantBase {
				return key
			}
		}
	}
	return keys[0]
}
