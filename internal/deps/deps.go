package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"curator/internal/services"
)

// Requirement defines an external binary curator shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Requirements lists the binaries a run needs. uvx is only required when the
// speech-to-text tier is enabled.
func Requirements(ytdlpBinary string, whisperxEnabled bool) []Requirement {
	if strings.TrimSpace(ytdlpBinary) == "" {
		ytdlpBinary = "yt-dlp"
	}
	return []Requirement{
		{Name: "yt-dlp", Command: ytdlpBinary, Description: "Search, captions and audio download"},
		{Name: "FFmpeg", Command: "ffmpeg", Description: "Audio extraction for speech-to-text", Optional: !whisperxEnabled},
		{Name: "uvx", Command: "uvx", Description: "Runs WhisperX", Optional: !whisperxEnabled},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch path, err := exec.LookPath(cmd); {
		case cmd == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		default:
			status.Available = true
			status.Path = path
		}
		results = append(results, status)
	}
	return results
}

// Missing returns a configuration error listing required binaries that are
// unavailable, or nil.
func Missing(statuses []Status) error {
	var errs []error
	for _, status := range statuses {
		if status.Available || status.Optional {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %s", status.Name, status.Detail))
	}
	if len(errs) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "deps", "check", "missing required binaries", errors.Join(errs...))
}
