package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeGemini()
	c.normalizeSearch()
	if err := c.normalizeCaptions(); err != nil {
		return err
	}
	c.normalizeWhisperX()
	c.normalizeScoring()
	c.normalizePipeline()
	c.normalizeLogging()
	return c.normalizeMetrics()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscriptDir) == "" {
		c.Paths.TranscriptDir = defaultTranscriptDir
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = defaultTempDir
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}
	c.LLM.APIKey = envOverride(c.LLM.APIKey, "OPENAI_API_KEY", "OPENROUTER_API_KEY")
	c.LLM.BaseURL = envOverride(c.LLM.BaseURL, "OPENAI_API_URL")
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = defaultLLMMaxTokens
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = envOverride(c.Gemini.APIKey, "GEMINI_API_KEY")
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
}

func (c *Config) normalizeSearch() {
	c.Search.Backend = strings.ToLower(strings.TrimSpace(c.Search.Backend))
	if c.Search.Backend == "" {
		c.Search.Backend = SearchBackendYTDLP
	}
	c.Search.YouTubeAPIKey = envOverride(c.Search.YouTubeAPIKey, "YOUTUBE_API_KEY")
	c.Search.Language = strings.ToLower(strings.TrimSpace(c.Search.Language))
}

func (c *Config) normalizeCaptions() error {
	c.Captions.PrimaryLanguage = strings.ToLower(strings.TrimSpace(c.Captions.PrimaryLanguage))
	c.Captions.FallbackLanguage = strings.ToLower(strings.TrimSpace(c.Captions.FallbackLanguage))
	if c.Captions.PrimaryLanguage == "" {
		c.Captions.PrimaryLanguage = defaultPrimaryLanguage
	}
	c.Captions.YTDLPBinary = strings.TrimSpace(c.Captions.YTDLPBinary)
	if c.Captions.YTDLPBinary == "" {
		c.Captions.YTDLPBinary = defaultYTDLPBinary
	}
	if strings.TrimSpace(c.Captions.CookiesPath) != "" {
		var err error
		if c.Captions.CookiesPath, err = expandPath(strings.TrimSpace(c.Captions.CookiesPath)); err != nil {
			return fmt.Errorf("captions.cookies_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = defaultWhisperXModel
	}
	c.WhisperX.VADMethod = strings.ToLower(strings.TrimSpace(c.WhisperX.VADMethod))
	if c.WhisperX.VADMethod == "" {
		c.WhisperX.VADMethod = defaultWhisperXVADMethod
	}
	c.WhisperX.HFToken = envOverride(c.WhisperX.HFToken, "HUGGING_FACE_HUB_TOKEN", "HF_TOKEN")
}

func (c *Config) normalizeScoring() {
	if c.Scoring.MaxTranscriptChars <= 0 {
		c.Scoring.MaxTranscriptChars = defaultMaxTranscriptChars
	}
	if c.Scoring.MinTranscriptLength <= 0 {
		c.Scoring.MinTranscriptLength = defaultMinTranscriptLength
	}
	if c.Scoring.AggregatorMinLength <= 0 {
		c.Scoring.AggregatorMinLength = defaultAggregatorMinLength
	}
}

func (c *Config) normalizePipeline() {
	c.Pipeline.QueryMode = strings.ToLower(strings.TrimSpace(c.Pipeline.QueryMode))
	if c.Pipeline.QueryMode == "" {
		c.Pipeline.QueryMode = QueryModeTopicSubtopic
	}
	if c.Pipeline.CandidatesPerSubtopic <= 0 {
		c.Pipeline.CandidatesPerSubtopic = defaultCandidatesPerSubtopic
	}
	if c.Pipeline.RequestDelaySeconds < 0 {
		c.Pipeline.RequestDelaySeconds = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func (c *Config) normalizeMetrics() error {
	c.Metrics.TextfilePath = strings.TrimSpace(c.Metrics.TextfilePath)
	if c.Metrics.TextfilePath == "" {
		return nil
	}
	var err error
	if c.Metrics.TextfilePath, err = expandPath(c.Metrics.TextfilePath); err != nil {
		return fmt.Errorf("metrics.textfile_path: %w", err)
	}
	return nil
}

// envOverride returns the first non-empty environment value among keys,
// falling back to the trimmed configured value. Environment variables take
// precedence over the config file for credentials and endpoints.
func envOverride(current string, keys ...string) string {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return strings.TrimSpace(current)
}
