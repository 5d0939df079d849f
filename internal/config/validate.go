package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	return c.validatePipeline()
}

// RequireJudge reports a configuration error when no judging credentials are available.
// Commands that never call the language model skip this check.
func (c *Config) RequireJudge() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if strings.TrimSpace(c.Gemini.APIKey) == "" {
			return errors.New("gemini.api_key is required when llm.provider is \"gemini\" (or set GEMINI_API_KEY)")
		}
	default:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/curator/config.toml"
			}
			return fmt.Errorf("llm.api_key is required. Set OPENAI_API_KEY env var or edit %s (create with 'curator config init')", defaultPath)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TranscriptDir) == "" {
		return errors.New("paths.transcript_dir must be set")
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	return nil
}

func (c *Config) validateSearch() error {
	switch c.Search.Backend {
	case SearchBackendYTDLP:
	case SearchBackendYouTubeAPI:
		if c.Search.YouTubeAPIKey == "" {
			return errors.New("search.youtube_api_key must be set when search.backend is \"youtube_api\" (or set YOUTUBE_API_KEY)")
		}
	default:
		return fmt.Errorf("search.backend must be %q or %q, got %q", SearchBackendYTDLP, SearchBackendYouTubeAPI, c.Search.Backend)
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	if !c.WhisperX.Enabled {
		return nil
	}
	switch c.WhisperX.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("whisperx.vad_method must be \"silero\" or \"pyannote\", got %q", c.WhisperX.VADMethod)
	}
	return nil
}

func (c *Config) validateScoring() error {
	if c.Scoring.MaxTranscriptChars <= 0 {
		return errors.New("scoring.max_transcript_chars must be positive")
	}
	if c.Scoring.MinTranscriptLength <= 0 {
		return errors.New("scoring.min_transcript_length must be positive")
	}
	if c.Scoring.AggregatorMinLength < c.Scoring.MinTranscriptLength {
		return errors.New("scoring.aggregator_min_length must be >= scoring.min_transcript_length")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	switch c.Pipeline.QueryMode {
	case QueryModeTopicSubtopic, QueryModeSubtopic:
	default:
		return fmt.Errorf("pipeline.query_mode must be %q or %q, got %q", QueryModeTopicSubtopic, QueryModeSubtopic, c.Pipeline.QueryMode)
	}
	if c.Pipeline.CandidatesPerSubtopic > 50 {
		return errors.New("pipeline.candidates_per_subtopic must be <= 50")
	}
	return nil
}
