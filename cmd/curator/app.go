package main

import (
	"context"
	"fmt"
	"log/slog"

	"curator/internal/config"
	"curator/internal/curation"
	"curator/internal/pacing"
	"curator/internal/scoring"
	"curator/internal/services"
	"curator/internal/services/gemini"
	"curator/internal/services/llm"
	"curator/internal/services/whisperx"
	"curator/internal/services/youtubeapi"
	"curator/internal/services/ytdlp"
	"curator/internal/transcript"
)

// app holds the collaborators shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	platform *pacing.Pacer
	ytdlp    *ytdlp.Client
	store    *transcript.Store
	resolver *transcript.Resolver
}

func newApp(cfg *config.Config, logger *slog.Logger) *app {
	platform := pacing.New(cfg.RequestDelay())
	yt := ytdlp.New(ytdlp.Config{
		Binary:      cfg.Captions.YTDLPBinary,
		CookiesPath: cfg.Captions.CookiesPath,
		TempDir:     cfg.Paths.TempDir,
	}, ytdlp.WithPacer(platform))

	validator := transcript.NewValidator(cfg.Scoring.MinTranscriptLength)
	languages := cfg.CaptionLanguages()
	strategies := []transcript.Strategy{
		transcript.DirectCaptions{Fetcher: yt, Languages: languages},
		transcript.AutoCaptions{
			Source:    yt,
			Payloads:  transcript.NewHTTPFetcher(nil, platform),
			Languages: languages,
			Validator: validator,
		},
	}
	if cfg.WhisperX.Enabled {
		strategies = append(strategies, transcript.SpeechToText{
			Downloader: yt,
			Transcriber: whisperx.NewService(whisperx.Config{
				Model:       cfg.WhisperX.Model,
				CUDAEnabled: cfg.WhisperX.CUDAEnabled,
				VADMethod:   cfg.WhisperX.VADMethod,
				HFToken:     cfg.WhisperX.HFToken,
			}),
			TempDir: cfg.Paths.TempDir,
		})
	}

	store := transcript.NewStore(cfg.Paths.TranscriptDir, validator, logger)
	resolver := transcript.NewResolver(store, validator, logger, strategies,
		transcript.WithStoredReuse(!cfg.Pipeline.ResetTranscripts))

	return &app{
		cfg:      cfg,
		logger:   logger,
		platform: platform,
		ytdlp:    yt,
		store:    store,
		resolver: resolver,
	}
}

// judge returns the configured language model client.
func (a *app) judge(ctx context.Context) (llm.Completer, error) {
	if err := a.cfg.RequireJudge(); err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	pacer := pacing.New(a.cfg.RequestDelay())
	if a.cfg.LLM.Provider == config.ProviderGemini {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      a.cfg.Gemini.APIKey,
			Model:       a.cfg.Gemini.Model,
			Temperature: a.cfg.LLM.Temperature,
			MaxTokens:   a.cfg.LLM.MaxTokens,
		}, gemini.WithPacer(pacer))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	llmCfg := a.cfg.GetLLM()
	return llm.NewClient(llm.Config{
		APIKey:         llmCfg.APIKey,
		BaseURL:        llmCfg.BaseURL,
		Model:          llmCfg.Model,
		Temperature:    llmCfg.Temperature,
		MaxTokens:      llmCfg.MaxTokens,
		Referer:        llmCfg.Referer,
		Title:          llmCfg.Title,
		TimeoutSeconds: llmCfg.TimeoutSeconds,
	}, llm.WithPacer(pacer)), nil
}

func (a *app) scorer(judge llm.Completer) *scoring.Scorer {
	return scoring.NewScorer(judge, a.cfg.Scoring.MaxTranscriptChars, a.logger)
}

func (a *app) searcher(ctx context.Context) (curation.Searcher, error) {
	if a.cfg.Search.Backend == config.SearchBackendYouTubeAPI {
		client, err := youtubeapi.NewClient(ctx, youtubeapi.Config{
			APIKey:   a.cfg.Search.YouTubeAPIKey,
			Language: a.cfg.Search.Language,
		}, a.platform)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return a.ytdlp, nil
}

func (a *app) pipeline(ctx context.Context) (*curation.Pipeline, error) {
	judge, err := a.judge(ctx)
	if err != nil {
		return nil, err
	}
	searcher, err := a.searcher(ctx)
	if err != nil {
		return nil, err
	}

	cfg := a.cfg
	session := curation.NewSession(cfg.SessionReportPath())
	best := curation.NewBestVideoList(cfg.BestVideosPath())
	metrics := curation.NewMetrics()
	aggregator := curation.NewAggregator(
		a.resolver,
		a.scorer(judge),
		transcript.NewValidator(cfg.Scoring.AggregatorMinLength),
		session,
		best,
		metrics,
		a.logger,
	)
	return curation.NewPipeline(curation.Options{
		LockPath:              cfg.LockPath(),
		CandidatesPerSubtopic: cfg.Pipeline.CandidatesPerSubtopic,
		QueryMode:             cfg.Pipeline.QueryMode,
		ResetTranscripts:      cfg.Pipeline.ResetTranscripts,
		MetricsTextfile:       cfg.Metrics.TextfilePath,
	}, curation.Deps{
		Decomposer:  curation.NewLLMDecomposer(judge, a.logger),
		Searcher:    searcher,
		Aggregator:  aggregator,
		Session:     session,
		Best:        best,
		Links:       curation.NewCandidateLinks(cfg.CandidateLinksPath()),
		Transcripts: a.store,
		Metrics:     metrics,
		Logger:      a.logger,
	}), nil
}

func (c *commandContext) app() (*app, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, logger), nil
}
