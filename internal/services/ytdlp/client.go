package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"curator/internal/services"
	"curator/internal/transcript"
)

const defaultBinary = "yt-dlp"

// CommandRunner executes a command and returns its stdout. Errors should
// include stderr so block conditions can be recognized.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Config holds yt-dlp invocation settings.
type Config struct {
	Binary      string
	CookiesPath string
	TempDir     string
}

// Client runs yt-dlp.
type Client struct {
	cfg    Config
	runner CommandRunner
	pacer  Waiter
}

// Option customizes a Client.
type Option func(*Client)

// WithCommandRunner replaces process execution (for testing).
func WithCommandRunner(runner CommandRunner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithPacer makes every invocation wait on pacer first.
func WithPacer(pacer Waiter) Option {
	return func(c *Client) { c.pacer = pacer }
}

// New builds a Client.
func New(cfg Config, opts ...Option) *Client {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = defaultBinary
	}
	c := &Client{cfg: cfg, runner: runCommand}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResult struct {
	Entries []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"entries"`
}

// Search returns up to limit videos for query using flat ytsearch extraction.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]transcript.VideoRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "ytdlp", "search", "query is required", nil)
	}
	if limit <= 0 {
		limit = 1
	}
	args := c.baseArgs("--flat-playlist", "-J")
	args = append(args, fmt.Sprintf("ytsearch%d:%s", limit, query))
	out, err := c.run(ctx, "search", args...)
	if err != nil {
		return nil, err
	}
	var result searchResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "search", "decode search output", err)
	}
	refs := make([]transcript.VideoRef, 0, len(result.Entries))
	for _, entry := range result.Entries {
		if !transcript.ValidVideoID(entry.ID) {
			continue
		}
		refs = append(refs, transcript.NewVideoRef(entry.ID, entry.Title))
		if len(refs) == limit {
			break
		}
	}
	return refs, nil
}

// FetchCaptions downloads the uploaded (non-automatic) captions of ref in lang
// and returns the raw WebVTT payload.
func (c *Client) FetchCaptions(ctx context.Context, ref transcript.VideoRef, lang string) (string, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "", services.Wrap(services.ErrValidation, "ytdlp", "captions", "language is required", nil)
	}
	dir, err := c.scratchDir("subs-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	args := c.baseArgs("--skip-download", "--write-subs", "--no-write-auto-subs",
		"--sub-langs", lang, "--sub-format", "vtt",
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"))
	args = append(args, ref.URL)
	if _, err := c.run(ctx, "captions", args...); err != nil {
		return "", err
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if len(matches) == 0 {
		return "", services.Wrap(services.ErrNotFound, "ytdlp", "captions", fmt.Sprintf("no uploaded %s captions", lang), nil)
	}
	sort.Strings(matches)
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}
	return string(data), nil
}

type videoMetadata struct {
	AutomaticCaptions map[string][]struct {
		Ext  string `json:"ext"`
		URL  string `json:"url"`
		Name string `json:"name"`
	} `json:"automatic_captions"`
}

// AutoCaptions returns the automatic caption tracks of ref keyed by language.
func (c *Client) AutoCaptions(ctx context.Context, ref transcript.VideoRef) (map[string][]transcript.CaptionTrack, error) {
	args := c.baseArgs("-J", "--skip-download", "--no-playlist")
	args = append(args, ref.URL)
	out, err := c.run(ctx, "metadata", args...)
	if err != nil {
		return nil, err
	}
	var meta videoMetadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "metadata", "decode metadata", err)
	}
	tracks := make(map[string][]transcript.CaptionTrack, len(meta.AutomaticCaptions))
	for lang, formats := range meta.AutomaticCaptions {
		for _, format := range formats {
			tracks[lang] = append(tracks[lang], transcript.CaptionTrack{Ext: format.Ext, URL: format.URL, Name: format.Name})
		}
	}
	return tracks, nil
}

// DownloadAudio extracts the audio track of ref as MP3 at dest and returns the
// written path.
func (c *Client) DownloadAudio(ctx context.Context, ref transcript.VideoRef, dest string) (string, error) {
	stem := strings.TrimSuffix(dest, filepath.Ext(dest))
	if err := os.MkdirAll(filepath.Dir(stem), 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}
	args := c.baseArgs("--no-playlist", "-f", "bestaudio/best",
		"-x", "--audio-format", "mp3", "--audio-quality", "192K",
		"-o", stem+".%(ext)s")
	args = append(args, ref.URL)
	if _, err := c.run(ctx, "audio", args...); err != nil {
		return "", err
	}
	audioPath := stem + ".mp3"
	if info, err := os.Stat(audioPath); err != nil || info.Size() == 0 {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "audio", "yt-dlp produced no audio file (is ffmpeg installed?)", err)
	}
	return audioPath, nil
}

// Version returns the installed yt-dlp version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.runner(ctx, c.cfg.Binary, "--version")
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "version", "", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) baseArgs(extra ...string) []string {
	args := []string{"--no-warnings", "--quiet", "--ignore-config"}
	if cookies := strings.TrimSpace(c.cfg.CookiesPath); cookies != "" {
		args = append(args, "--cookies", cookies)
	}
	return append(args, extra...)
}

func (c *Client) scratchDir(prefix string) (string, error) {
	base := c.cfg.TempDir
	if base != "" {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(base, prefix)
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	return dir, nil
}

func (c *Client) run(ctx context.Context, op string, args ...string) ([]byte, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}
	out, err := c.runner(ctx, c.cfg.Binary, args...)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return nil, services.Wrap(services.ErrConfiguration, "ytdlp", op, c.cfg.Binary+" is not installed or not on PATH", err)
	}
	if transcript.IsBlockError(err) {
		return nil, services.Wrap(services.ErrBlocked, "ytdlp", op, "", err)
	}
	return nil, services.Wrap(services.ErrExternalTool, "ytdlp", op, "", err)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
