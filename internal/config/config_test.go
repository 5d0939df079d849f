package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"curator/internal/config"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY",
		"OPENROUTER_API_KEY",
		"OPENAI_API_URL",
		"GEMINI_API_KEY",
		"YOUTUBE_API_KEY",
		"HF_TOKEN",
		"HUGGING_FACE_HUB_TOKEN",
		"CURATOR_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigUsesEnvKeyAndExpandsPaths(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OPENAI_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, ".local", "share", "curator")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Paths.TranscriptDir != filepath.Join(wantOutput, "transcripts") {
		t.Fatalf("unexpected transcript dir: %q", cfg.Paths.TranscriptDir)
	}
	if cfg.LLM.APIKey != "test-key" {
		t.Fatalf("expected LLM key from env, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != config.Default().LLM.BaseURL {
		t.Fatalf("unexpected LLM base url: %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Temperature != 0.3 || cfg.LLM.MaxTokens != 1500 {
		t.Fatalf("unexpected LLM sampling defaults: %v %d", cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	}
	if cfg.Scoring.MaxTranscriptChars != 2000 {
		t.Fatalf("expected 2000 char judge prefix, got %d", cfg.Scoring.MaxTranscriptChars)
	}
	if cfg.Scoring.MinTranscriptLength != 50 || cfg.Scoring.AggregatorMinLength != 100 {
		t.Fatalf("unexpected validation thresholds: %+v", cfg.Scoring)
	}
	if cfg.Pipeline.CandidatesPerSubtopic != 2 {
		t.Fatalf("expected 2 candidates per subtopic, got %d", cfg.Pipeline.CandidatesPerSubtopic)
	}
	if cfg.Pipeline.QueryMode != config.QueryModeTopicSubtopic {
		t.Fatalf("unexpected query mode %q", cfg.Pipeline.QueryMode)
	}
	if cfg.RequestDelay() != time.Second {
		t.Fatalf("unexpected request delay %s", cfg.RequestDelay())
	}
	if got := cfg.CaptionLanguages(); len(got) != 2 || got[0] != "tr" || got[1] != "en" {
		t.Fatalf("unexpected caption languages %v", got)
	}
	if cfg.SessionReportPath() != filepath.Join(wantOutput, "analiz_sonuclari.json") {
		t.Fatalf("unexpected report path %q", cfg.SessionReportPath())
	}
	if cfg.BestVideosPath() != filepath.Join(wantOutput, "en_iyi_video.txt") {
		t.Fatalf("unexpected best videos path %q", cfg.BestVideosPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearCredentialEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "curator.toml")

	type payload struct {
		LLM struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"llm"`
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Pipeline struct {
			CandidatesPerSubtopic int    `toml:"candidates_per_subtopic"`
			QueryMode             string `toml:"query_mode"`
			RequestDelaySeconds   int    `toml:"request_delay_seconds"`
		} `toml:"pipeline"`
	}
	custom := payload{}
	custom.LLM.APIKey = "abc123"
	custom.LLM.BaseURL = "https://example.com/v1/chat/completions"
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Pipeline.CandidatesPerSubtopic = 5
	custom.Pipeline.QueryMode = " Subtopic "
	custom.Pipeline.RequestDelaySeconds = 0
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.LLM.APIKey != "abc123" {
		t.Fatalf("expected LLM key from file, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "https://example.com/v1/chat/completions" {
		t.Fatalf("expected base url override, got %q", cfg.LLM.BaseURL)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir %q", cfg.Paths.OutputDir)
	}
	if cfg.Pipeline.CandidatesPerSubtopic != 5 {
		t.Fatalf("expected 5 candidates, got %d", cfg.Pipeline.CandidatesPerSubtopic)
	}
	if cfg.Pipeline.QueryMode != config.QueryModeSubtopic {
		t.Fatalf("expected normalized query mode, got %q", cfg.Pipeline.QueryMode)
	}
	if cfg.RequestDelay() != 0 {
		t.Fatalf("expected zero delay, got %s", cfg.RequestDelay())
	}
}

func TestLoadHonoursCuratorConfigEnv(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "alt.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nlevel = \"DEBUG\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CURATOR_CONFIG", configPath)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected env config path, got %q exists=%v", resolved, exists)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercase level, got %q", cfg.Logging.Level)
	}
}

func TestEnvVarOverridesConfigFileForAPIKeys(t *testing.T) {
	clearCredentialEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "curator.toml")

	type payload struct {
		LLM struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"llm"`
		Gemini struct {
			APIKey string `toml:"api_key"`
		} `toml:"gemini"`
		Search struct {
			YouTubeAPIKey string `toml:"youtube_api_key"`
		} `toml:"search"`
		WhisperX struct {
			HFToken string `toml:"hf_token"`
		} `toml:"whisperx"`
	}
	custom := payload{}
	custom.LLM.APIKey = "file-llm"
	custom.LLM.BaseURL = "https://file.example/v1/chat/completions"
	custom.Gemini.APIKey = "file-gemini"
	custom.Search.YouTubeAPIKey = "file-youtube"
	custom.WhisperX.HFToken = "file-hf"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "env-llm")
	t.Setenv("OPENAI_API_URL", "https://env.example/v1/chat/completions")
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("YOUTUBE_API_KEY", "env-youtube")
	t.Setenv("HF_TOKEN", "env-hf")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.LLM.APIKey != "env-llm" {
		t.Errorf("expected LLM key from env, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "https://env.example/v1/chat/completions" {
		t.Errorf("expected LLM url from env, got %q", cfg.LLM.BaseURL)
	}
	if cfg.Gemini.APIKey != "env-gemini" {
		t.Errorf("expected Gemini key from env, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Search.YouTubeAPIKey != "env-youtube" {
		t.Errorf("expected YouTube key from env, got %q", cfg.Search.YouTubeAPIKey)
	}
	if cfg.WhisperX.HFToken != "env-hf" {
		t.Errorf("expected HuggingFace token from env, got %q", cfg.WhisperX.HFToken)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "OPENAI_API_KEY") {
		t.Fatalf("sample config missing API key hint: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}

	if runtime.GOOS != "windows" {
		if !strings.Contains(cfg.Paths.OutputDir, "curator") {
			t.Fatalf("expected output dir to contain curator, got %q", cfg.Paths.OutputDir)
		}
	}
	if cfg.Scoring.MaxTranscriptChars != 2000 {
		t.Fatalf("expected sample judge prefix 2000, got %d", cfg.Scoring.MaxTranscriptChars)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg = config.Default()
	cfg.LLM.Provider = "anthropic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	cfg = config.Default()
	cfg.LLM.Temperature = 3
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for temperature out of range")
	}

	cfg = config.Default()
	cfg.Search.Backend = config.SearchBackendYouTubeAPI
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when youtube_api backend has no key")
	}

	cfg = config.Default()
	cfg.Pipeline.QueryMode = "topic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown query mode")
	}

	cfg = config.Default()
	cfg.Scoring.AggregatorMinLength = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when aggregator threshold is below validator threshold")
	}

	cfg = config.Default()
	cfg.WhisperX.VADMethod = "webrtc"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown VAD method")
	}
}

func TestRequireJudge(t *testing.T) {
	cfg := config.Default()
	if err := cfg.RequireJudge(); err == nil {
		t.Fatal("expected error without LLM key")
	}
	cfg.LLM.APIKey = "key"
	if err := cfg.RequireJudge(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = config.Default()
	cfg.LLM.Provider = config.ProviderGemini
	if err := cfg.RequireJudge(); err == nil {
		t.Fatal("expected error without Gemini key")
	}
	cfg.Gemini.APIKey = "g"
	if err := cfg.RequireJudge(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCaptionLanguagesDeduplicates(t *testing.T) {
	cfg := config.Default()
	cfg.Captions.FallbackLanguage = "tr"
	if got := cfg.CaptionLanguages(); len(got) != 1 || got[0] != "tr" {
		t.Fatalf("expected single language, got %v", got)
	}
}
