package transcript

import (
	"html"
	"regexp"
	"strings"
)

var (
	inlineTagPattern  = regexp.MustCompile(`<[^>]*>`)
	xmlTextPattern    = regexp.MustCompile(`(?s)<(?:text|p)\b[^>]*>(.*?)</(?:text|p)>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripMarkup converts a WebVTT, SRT or timed-text XML caption payload into
// plain text. Cue numbers, timing lines, headers and inline tags are removed,
// entities are unescaped, and consecutive duplicate lines (rolling automatic
// captions) are collapsed.
func StripMarkup(payload string) string {
	payload = strings.TrimPrefix(payload, "\ufeff")
	payload = strings.ReplaceAll(payload, "\r\n", "\n")
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return ""
	}
	if looksLikeTimedTextXML(trimmed) {
		return stripTimedTextXML(trimmed)
	}
	return stripCueText(trimmed)
}

func looksLikeTimedTextXML(payload string) bool {
	if !strings.HasPrefix(payload, "<") {
		return false
	}
	lower := strings.ToLower(payload[:min(len(payload), 512)])
	return strings.HasPrefix(lower, "<?xml") || strings.Contains(lower, "<transcript") || strings.Contains(lower, "<timedtext") || strings.Contains(lower, "<tt")
}

func stripTimedTextXML(payload string) string {
	matches := xmlTextPattern.FindAllStringSubmatch(payload, -1)
	lines := make([]string, 0, len(matches))
	for _, match := range matches {
		lines = appendCueLine(lines, match[1])
	}
	return strings.Join(lines, " ")
}

func stripCueText(payload string) string {
	var lines []string
	skipBlock := false
	for _, raw := range strings.Split(payload, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}
		switch {
		case strings.HasPrefix(line, "WEBVTT"),
			strings.HasPrefix(line, "Kind:"),
			strings.HasPrefix(line, "Language:"):
			continue
		case strings.HasPrefix(line, "NOTE"), line == "STYLE", line == "REGION":
			skipBlock = true
			continue
		case strings.Contains(line, "-->"):
			continue
		case isNumeric(line):
			continue
		}
		lines = appendCueLine(lines, line)
	}
	return strings.Join(lines, " ")
}

func appendCueLine(lines []string, raw string) []string {
	text := inlineTagPattern.ReplaceAllString(raw, "")
	text = html.UnescapeString(text)
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if text == "" {
		return lines
	}
	if len(lines) > 0 && lines[len(lines)-1] == text {
		return lines
	}
	return append(lines, text)
}

func isNumeric(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
