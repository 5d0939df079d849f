package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := map[string]string{
		"www.youtube.com_watch_v_dQw4w9WgXcQ": "www.youtube.com_watch_v_dQw4w9WgXcQ",
		"a b/c":                               "a_b_c",
		"çay":                                 "_ay",
		"":                                    "unknown",
		"///":                                 "unknown",
	}
	for input, want := range tests {
		if got := SanitizeToken(input); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("  python   temelleri ", "en"); got != "Python Temelleri" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := TitleCase("istanbul", "tr"); got != "İstanbul" {
		t.Fatalf("expected Turkish dotted capital, got %q", got)
	}
	if got := TitleCase("for LOOPS", "not a tag!"); got != "For LOOPS" {
		t.Fatalf("expected neutral casing that keeps acronyms, got %q", got)
	}
	if TitleCase("   ", "en") != "" {
		t.Fatal("expected empty title")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("çğüşöı", 3); got != "çğü" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if Truncate("abc", 0) != "" {
		t.Fatal("expected empty string for zero limit")
	}
}
