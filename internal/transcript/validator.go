package transcript

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMinLength is the minimum trimmed transcript length in runes.
const DefaultMinLength = 50

// blockSignatures are lowercase markers of provider block pages and HTML error
// responses returned in place of caption data.
var blockSignatures = []string{
	"our systems have detected unusual traffic",
	"automated queries",
	"captcha",
	"<html",
	"<!doctype",
	"<body",
	"</html>",
	"error 429",
	"too many requests",
	"sign in to confirm you're not a bot",
	"access denied",
}

// Validator rejects transcripts that are too short or are disguised error pages.
type Validator struct {
	MinLength int
}

// NewValidator returns a Validator with the given minimum length. Values of
// zero or less use DefaultMinLength.
func NewValidator(minLength int) Validator {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return Validator{MinLength: minLength}
}

// IsValid reports whether text is usable as a transcript.
func (v Validator) IsValid(text string) bool {
	return v.Check(text) == nil
}

// Check returns an error wrapping ErrValidation that names the rejection reason.
func (v Validator) Check(text string) error {
	minLength := v.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: empty text", ErrValidation)
	}
	if n := utf8.RuneCountInString(trimmed); n < minLength {
		return fmt.Errorf("%w: too short (%d < %d characters)", ErrValidation, n, minLength)
	}
	if signature, ok := BlockSignature(trimmed); ok {
		return fmt.Errorf("%w: contains block signature %q", ErrValidation, signature)
	}
	return nil
}

// BlockSignature returns the first provider block-page signature found in
// text, matched case-insensitively.
func BlockSignature(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, signature := range blockSignatures {
		if strings.Contains(lower, signature) {
			return signature, true
		}
	}
	return "", false
}
