package transcript

import (
	"errors"
	"strings"
	"testing"

	"curator/internal/services"
)

var longText = strings.Repeat("Python değişkenleri veri saklamak için kullanılır. ", 4)

func TestValidatorRejectsShortText(t *testing.T) {
	v := NewValidator(50)
	cases := []string{"", "   ", "kısa metin", strings.Repeat("a", 49), "  " + strings.Repeat("ğ", 49) + "  "}
	for _, text := range cases {
		if v.IsValid(text) {
			t.Fatalf("expected %q to be rejected", text)
		}
	}
	if !v.IsValid(strings.Repeat("ğ", 50)) {
		t.Fatal("expected 50 runes to pass regardless of byte length")
	}
}

func TestValidatorRejectsBlockSignaturesInAnyCase(t *testing.T) {
	v := NewValidator(50)
	signatures := []string{
		"Our systems have detected UNUSUAL TRAFFIC from your computer network",
		"automated Queries",
		"Please solve this CAPTCHA",
		"<HTML><head>",
		"<!DOCTYPE html>",
		"Error 429",
		"Too Many Requests",
		"Sign in to confirm you're not a bot",
		"ACCESS DENIED",
	}
	for _, signature := range signatures {
		text := longText + signature + longText
		err := v.Check(text)
		if err == nil {
			t.Fatalf("expected signature %q to be rejected", signature)
		}
		if !errors.Is(err, ErrValidation) || !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected validation markers, got %v", err)
		}
	}
}

func TestValidatorAcceptsOrdinaryText(t *testing.T) {
	if err := NewValidator(0).Check(longText); err != nil {
		t.Fatalf("expected valid text, got %v", err)
	}
	if NewValidator(0).MinLength != DefaultMinLength {
		t.Fatal("expected default minimum length")
	}
}

func TestIsBlockError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("HTTP Error 429: Too Many Requests"), true},
		{errors.New("Your IP has been blocked"), true},
		{errors.New("request from ip 1.2.3.4 rejected"), true},
		{errors.New("Sign in to confirm you’re not a bot"), true},
		{services.Wrap(services.ErrBlocked, "ytdlp", "subs", "", nil), true},
		{errors.New("no subtitles for language tr"), false},
		{errors.New("skipping description download"), false},
		{errors.New("HTTP Error 429"), true},
		{errors.New("ERROR: [youtube] x429abcdefg: Private video"), false},
	}
	for _, tc := range cases {
		if got := IsBlockError(tc.err); got != tc.want {
			t.Fatalf("IsBlockError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
