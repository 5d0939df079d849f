package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file locations for pipeline artifacts.
type Paths struct {
	OutputDir     string `toml:"output_dir"`
	TranscriptDir string `toml:"transcript_dir"`
	TempDir       string `toml:"temp_dir"`
	LogDir        string `toml:"log_dir"`
}

// LLM contains the OpenAI-compatible connection used for decomposition and judging.
type LLM struct {
	Provider       string  `toml:"provider"`
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	Referer        string  `toml:"referer"`
	Title          string  `toml:"title"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Gemini contains settings for the Gemini judging backend (llm.provider = "gemini").
type Gemini struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// Search contains settings for candidate video discovery.
type Search struct {
	Backend       string `toml:"backend"`
	YouTubeAPIKey string `toml:"youtube_api_key"`
	Language      string `toml:"language"`
}

// Captions contains settings for caption-based transcript tiers.
type Captions struct {
	PrimaryLanguage  string `toml:"primary_language"`
	FallbackLanguage string `toml:"fallback_language"`
	YTDLPBinary      string `toml:"ytdlp_binary"`
	CookiesPath      string `toml:"cookies_path"`
}

// WhisperX contains settings for the speech-to-text fallback tier.
type WhisperX struct {
	Enabled     bool   `toml:"enabled"`
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
}

// Scoring contains settings for the relevance scorer and transcript validation.
type Scoring struct {
	MaxTranscriptChars  int `toml:"max_transcript_chars"`
	MinTranscriptLength int `toml:"min_transcript_length"`
	AggregatorMinLength int `toml:"aggregator_min_length"`
}

// Pipeline contains settings for the topic run.
type Pipeline struct {
	CandidatesPerSubtopic int    `toml:"candidates_per_subtopic"`
	QueryMode             string `toml:"query_mode"`
	RequestDelaySeconds   int    `toml:"request_delay_seconds"`
	ResetTranscripts      bool   `toml:"reset_transcripts"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Metrics contains configuration for run metrics export.
type Metrics struct {
	TextfilePath string `toml:"textfile_path"`
}

// Config encapsulates all configuration values for curator.
//
// Configuration sections by subsystem:
//   - Paths: report, transcript, temp and log locations
//   - LLM: judging and decomposition endpoint
//   - Gemini: alternative judging backend
//   - Search: candidate discovery backend
//   - Captions: caption language priority and yt-dlp settings
//   - WhisperX: speech-to-text fallback
//   - Scoring: transcript truncation and validation thresholds
//   - Pipeline: candidates, query composition and pacing
//   - Logging: log format and level
//   - Metrics: Prometheus textfile export
type Config struct {
	Paths    Paths    `toml:"paths"`
	LLM      LLM      `toml:"llm"`
	Gemini   Gemini   `toml:"gemini"`
	Search   Search   `toml:"search"`
	Captions Captions `toml:"captions"`
	WhisperX WhisperX `toml:"whisperx"`
	Scoring  Scoring  `toml:"scoring"`
	Pipeline Pipeline `toml:"pipeline"`
	Logging  Logging  `toml:"logging"`
	Metrics  Metrics  `toml:"metrics"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/curator/config.toml")
}

// Load locates, parses, and validates a configuration file. Variables from a
// .env file in the working directory are loaded first without overriding the
// real environment. The returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("CURATOR_CONFIG"))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("curator.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a pipeline run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.TranscriptDir, c.Paths.TempDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SessionReportPath returns the location of the cumulative analysis report.
func (c *Config) SessionReportPath() string {
	return filepath.Join(c.Paths.OutputDir, SessionReportFile)
}

// BestVideosPath returns the location of the winning video list.
func (c *Config) BestVideosPath() string {
	return filepath.Join(c.Paths.OutputDir, BestVideosFile)
}

// CandidateLinksPath returns the location of the per-subtopic candidate link file.
func (c *Config) CandidateLinksPath() string {
	return filepath.Join(c.Paths.OutputDir, CandidateLinksFile)
}

// LockPath returns the location of the artifact lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.OutputDir, ".curator.lock")
}

// RequestDelay returns the pause applied before each outbound network call.
func (c *Config) RequestDelay() time.Duration {
	if c.Pipeline.RequestDelaySeconds <= 0 {
		return 0
	}
	return time.Duration(c.Pipeline.RequestDelaySeconds) * time.Second
}

// CaptionLanguages returns the caption language priority list.
func (c *Config) CaptionLanguages() []string {
	langs := make([]string, 0, 2)
	for _, lang := range []string{c.Captions.PrimaryLanguage, c.Captions.FallbackLanguage} {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		duplicate := false
		for _, existing := range langs {
			if existing == lang {
				duplicate = true
				break
			}
		}
		if !duplicate {
			langs = append(langs, lang)
		}
	}
	return langs
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains connection settings for the judging and decomposition client.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	MaxTokens      int
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the OpenAI-compatible connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Temperature:    c.LLM.Temperature,
		MaxTokens:      c.LLM.MaxTokens,
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}
