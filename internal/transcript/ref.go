package transcript

import (
	"net/url"
	"regexp"
	"strings"

	"curator/internal/services"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoRef identifies one platform video. Identity is the platform ID.
type VideoRef struct {
	ID    string
	URL   string
	Title string
}

// NewVideoRef builds a reference with the canonical watch URL for id.
func NewVideoRef(id, title string) VideoRef {
	id = strings.TrimSpace(id)
	return VideoRef{ID: id, URL: CanonicalURL(id), Title: strings.TrimSpace(title)}
}

// CanonicalURL returns the watch URL for a platform video ID.
func CanonicalURL(id string) string {
	return watchURLPrefix + id
}

// ValidVideoID reports whether id looks like a platform video ID.
func ValidVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}

// ParseVideoRef derives a VideoRef from a watch, short-link, shorts, embed or
// live URL, or from a bare video ID.
func ParseVideoRef(raw string) (VideoRef, error) {
	raw = strings.TrimSpace(raw)
	if ValidVideoID(raw) {
		return NewVideoRef(raw, ""), nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return VideoRef{}, services.Wrap(services.ErrValidation, "transcript", "parse url", raw, err)
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		switch {
		case segments[0] == "watch":
			id = parsed.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
			id = segments[1]
		}
	}
	if !ValidVideoID(id) {
		return VideoRef{}, services.Wrap(services.ErrValidation, "transcript", "parse url", "no video id in "+raw, nil)
	}
	return NewVideoRef(id, ""), nil
}
