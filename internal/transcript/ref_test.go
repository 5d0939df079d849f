package transcript

import (
	"errors"
	"testing"

	"curator/internal/services"
)

func TestParseVideoRef(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"http://youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=10", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/shorts/a_b-c1234_Z", "a_b-c1234_Z"},
		{"youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		ref, err := ParseVideoRef(tc.in)
		if err != nil {
			t.Fatalf("ParseVideoRef(%q) error: %v", tc.in, err)
		}
		if ref.ID != tc.want {
			t.Fatalf("ParseVideoRef(%q) id = %q, want %q", tc.in, ref.ID, tc.want)
		}
		if ref.URL != "https://www.youtube.com/watch?v="+tc.want {
			t.Fatalf("unexpected canonical url %q", ref.URL)
		}
	}
}

func TestParseVideoRefRejectsOtherURLs(t *testing.T) {
	for _, in := range []string{"", "https://example.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=short", "https://www.youtube.com/channel/xyz"} {
		if _, err := ParseVideoRef(in); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("ParseVideoRef(%q) expected validation error, got %v", in, err)
		}
	}
}
