package config

// Artifact file names written into paths.output_dir.
const (
	SessionReportFile  = "analiz_sonuclari.json"
	BestVideosFile     = "en_iyi_video.txt"
	CandidateLinksFile = "video_linkleri.txt"
)

// Query composition modes for sub-topic searches.
const (
	QueryModeTopicSubtopic = "topic_subtopic"
	QueryModeSubtopic      = "subtopic"
)

// Judging providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Search backends.
const (
	SearchBackendYTDLP      = "ytdlp"
	SearchBackendYouTubeAPI = "youtube_api"
)

const (
	defaultOutputDir             = "~/.local/share/curator"
	defaultTranscriptDir         = "~/.local/share/curator/transcripts"
	defaultTempDir               = "~/.cache/curator/tmp"
	defaultLogDir                = "~/.local/share/curator/logs"
	defaultLLMBaseURL            = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel              = "openai/gpt-oss-20b:free"
	defaultLLMTemperature        = 0.3
	defaultLLMMaxTokens          = 1500
	defaultLLMReferer            = "https://github.com/curator/curator"
	defaultLLMTitle              = "Curator"
	defaultLLMTimeoutSeconds     = 60
	defaultGeminiModel           = "gemini-2.5-flash"
	defaultSearchLanguage        = "tr"
	defaultPrimaryLanguage       = "tr"
	defaultFallbackLanguage      = "en"
	defaultYTDLPBinary           = "yt-dlp"
	defaultWhisperXModel         = "base"
	defaultWhisperXVADMethod     = "silero"
	defaultMaxTranscriptChars    = 2000
	defaultMinTranscriptLength   = 50
	defaultAggregatorMinLength   = 100
	defaultCandidatesPerSubtopic = 2
	defaultRequestDelaySeconds   = 1
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogRetentionDays      = 14
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:     defaultOutputDir,
			TranscriptDir: defaultTranscriptDir,
			TempDir:       defaultTempDir,
			LogDir:        defaultLogDir,
		},
		LLM: LLM{
			Provider:       ProviderOpenAI,
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Temperature:    defaultLLMTemperature,
			MaxTokens:      defaultLLMMaxTokens,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Gemini: Gemini{
			Model: defaultGeminiModel,
		},
		Search: Search{
			Backend:  SearchBackendYTDLP,
			Language: defaultSearchLanguage,
		},
		Captions: Captions{
			PrimaryLanguage:  defaultPrimaryLanguage,
			FallbackLanguage: defaultFallbackLanguage,
			YTDLPBinary:      defaultYTDLPBinary,
		},
		WhisperX: WhisperX{
			Enabled:   true,
			Model:     defaultWhisperXModel,
			VADMethod: defaultWhisperXVADMethod,
		},
		Scoring: Scoring{
			MaxTranscriptChars:  defaultMaxTranscriptChars,
			MinTranscriptLength: defaultMinTranscriptLength,
			AggregatorMinLength: defaultAggregatorMinLength,
		},
		Pipeline: Pipeline{
			CandidatesPerSubtopic: defaultCandidatesPerSubtopic,
			QueryMode:             QueryModeTopicSubtopic,
			RequestDelaySeconds:   defaultRequestDelaySeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
