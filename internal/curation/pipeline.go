package curation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"curator/internal/logging"
	"curator/internal/services"
	"curator/internal/transcript"
)

// Query composition modes.
const (
	QueryModeTopicSubtopic = "topic_subtopic"
	QueryModeSubtopic      = "subtopic"
)

// DefaultCandidatesPerSubtopic is the search limit when none is configured.
const DefaultCandidatesPerSubtopic = 2

// Decomposer splits a topic into ordered sub-topics.
type Decomposer interface {
	Decompose(ctx context.Context, topic string) ([]string, error)
}

// Searcher returns candidate videos for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]transcript.VideoRef, error)
}

// TranscriptResetter clears stored transcripts.
type TranscriptResetter interface {
	Reset() (int, error)
}

// Options configures a Pipeline.
type Options struct {
	LockPath              string
	CandidatesPerSubtopic int
	QueryMode             string
	// ResetTranscripts clears the transcript store at run start.
	ResetTranscripts bool
	// MetricsTextfile, when set, receives the run metrics after each run.
	MetricsTextfile string
}

// Winner is the selected video of one sub-topic.
type Winner struct {
	Subtopic string
	Video    transcript.VideoRef
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunID     string
	Topic     string
	Subtopics []string
	Winners   []Winner
	Skipped   []string
	Started   time.Time
	Finished  time.Time
}

// Pipeline runs a topic end to end.
type Pipeline struct {
	opts        Options
	decomposer  Decomposer
	searcher    Searcher
	aggregator  *Aggregator
	session     *Session
	best        *BestVideoList
	links       *CandidateLinks
	transcripts TranscriptResetter
	metrics     *Metrics
	logger      *slog.Logger
	now         func() time.Time
	newRunID    func() string
}

// Deps bundles the collaborators of a Pipeline.
type Deps struct {
	Decomposer  Decomposer
	Searcher    Searcher
	Aggregator  *Aggregator
	Session     *Session
	Best        *BestVideoList
	Links       *CandidateLinks
	Transcripts TranscriptResetter
	Metrics     *Metrics
	Logger      *slog.Logger
	// Now and NewRunID default to time.Now and uuid.NewString.
	Now      func() time.Time
	NewRunID func() string
}

// NewPipeline builds a Pipeline.
func NewPipeline(opts Options, deps Deps) *Pipeline {
	if opts.CandidatesPerSubtopic <= 0 {
		opts.CandidatesPerSubtopic = DefaultCandidatesPerSubtopic
	}
	if opts.QueryMode == "" {
		opts.QueryMode = QueryModeTopicSubtopic
	}
	p := &Pipeline{
		opts:        opts,
		decomposer:  deps.Decomposer,
		searcher:    deps.Searcher,
		aggregator:  deps.Aggregator,
		session:     deps.Session,
		best:        deps.Best,
		links:       deps.Links,
		transcripts: deps.Transcripts,
		metrics:     deps.Metrics,
		logger:      logging.NewComponentLogger(deps.Logger, "pipeline"),
		now:         deps.Now,
		newRunID:    deps.NewRunID,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
	return p
}

// Query composes the search query for a sub-topic.
func (p *Pipeline) Query(topic, subtopic string) string {
	if p.opts.QueryMode == QueryModeSubtopic {
		return strings.TrimSpace(subtopic)
	}
	return strings.TrimSpace(topic + " " + subtopic)
}

// Run processes topic. Per sub-topic failures are logged and skipped; the
// returned error covers lock contention, decomposition failure, artifact
// reset failure, configuration errors and cancellation.
func (p *Pipeline) Run(ctx context.Context, topic string) (RunSummary, error) {
	topic = strings.TrimSpace(topic)
	summary := RunSummary{Topic: topic, Started: p.now()}
	if topic == "" {
		return summary, services.Wrap(services.ErrValidation, "pipeline", "run", "topic is empty", nil)
	}

	if p.opts.LockPath != "" {
		lock := NewArtifactLock(p.opts.LockPath)
		if err := lock.Acquire(); err != nil {
			return summary, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				p.logger.Warn("artifact lock release failed", logging.Error(err))
			}
		}()
	}

	summary.RunID = p.newRunID()
	ctx = services.WithRunID(ctx, summary.RunID)
	p.logger.InfoContext(ctx, "run started", logging.String(logging.FieldTopic, topic))

	subtopics, err := p.decomposer.Decompose(ctx, topic)
	if err != nil {
		return summary, fmt.Errorf("decompose topic: %w", err)
	}
	if len(subtopics) == 0 {
		return summary, services.Wrap(services.ErrExternalTool, "pipeline", "decompose", "no sub-topics returned", nil)
	}
	summary.Subtopics = subtopics

	if err := p.resetArtifacts(ctx, topic, summary.Started); err != nil {
		return summary, err
	}

	for _, subtopic := range subtopics {
		if err := ctx.Err(); err != nil {
			return p.finish(ctx, summary), err
		}
		sctx := services.WithSubtopic(ctx, subtopic)
		winner, result, err := p.processSubtopic(sctx, topic, subtopic)
		p.metrics.SubtopicProcessed(result)
		if err != nil {
			return p.finish(ctx, summary), err
		}
		if result == SubtopicWinner {
			summary.Winners = append(summary.Winners, Winner{Subtopic: subtopic, Video: winner})
		} else {
			summary.Skipped = append(summary.Skipped, subtopic)
		}
	}

	summary = p.finish(ctx, summary)
	return summary, ctx.Err()
}

func (p *Pipeline) resetArtifacts(ctx context.Context, topic string, started time.Time) error {
	if err := p.session.Reset(topic, started); err != nil {
		return err
	}
	if err := p.best.Reset(); err != nil {
		return err
	}
	if p.opts.ResetTranscripts && p.transcripts != nil {
		removed, err := p.transcripts.Reset()
		if err != nil {
			return fmt.Errorf("reset transcripts: %w", err)
		}
		p.logger.InfoContext(ctx, "transcript store reset", logging.Int("removed", removed))
	}
	return nil
}

// processSubtopic returns a non-nil error only when ctx is done.
func (p *Pipeline) processSubtopic(ctx context.Context, topic, subtopic string) (transcript.VideoRef, string, error) {
	query := p.Query(topic, subtopic)
	found, err := p.searcher.Search(ctx, query, p.opts.CandidatesPerSubtopic)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return transcript.VideoRef{}, SubtopicSearchFailed, ctxErr
		}
		attrs := []logging.Attr{
			logging.Error(err),
			logging.String("query", query),
			logging.String("reason", services.Classify(err)),
			logging.String(logging.FieldImpact, "sub-topic skipped"),
		}
		if !services.IsSkippable(err) {
			logging.ErrorWithContext(ctx, p.logger, "search misconfigured", "search_misconfigured", attrs...)
		} else {
			logging.WarnWithContext(ctx, p.logger, "search failed", "search_failed", attrs...)
		}
		return transcript.VideoRef{}, SubtopicSearchFailed, nil
	}

	if err := p.links.Write(found); err != nil {
		logging.WarnWithContext(ctx, p.logger, "candidate links write failed", "links_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "sub-topic skipped"),
		)
		return transcript.VideoRef{}, SubtopicNoCandidates, nil
	}
	candidates, err := p.links.Read()
	if err != nil {
		logging.WarnWithContext(ctx, p.logger, "no candidates for sub-topic", "no_candidates",
			logging.Error(err),
			logging.String("query", query),
			logging.String(logging.FieldImpact, "sub-topic skipped"),
		)
		return transcript.VideoRef{}, SubtopicNoCandidates, nil
	}
	restoreTitles(candidates, found)
	p.logger.InfoContext(ctx, "candidates found",
		logging.String("query", query),
		logging.Int("candidates", len(candidates)),
	)

	winner, ok := p.aggregator.ProcessSubtopic(ctx, subtopic, candidates)
	if err := ctx.Err(); err != nil {
		return transcript.VideoRef{}, SubtopicNoTranscript, err
	}
	if !ok {
		return transcript.VideoRef{}, SubtopicNoTranscript, nil
	}
	return winner, SubtopicWinner, nil
}

func (p *Pipeline) finish(ctx context.Context, summary RunSummary) RunSummary {
	summary.Finished = p.now()
	p.metrics.RunFinished(summary.Finished.Sub(summary.Started), summary.Finished)
	if err := p.metrics.WriteTextfile(p.opts.MetricsTextfile); err != nil {
		logging.WarnWithContext(ctx, p.logger, "metrics export failed", "metrics_write_failed",
			logging.Error(err),
		)
	}
	p.logger.InfoContext(ctx, "run finished",
		logging.Int("subtopics", len(summary.Subtopics)),
		logging.Int("winners", len(summary.Winners)),
		logging.Int("skipped", len(summary.Skipped)),
		logging.Duration("elapsed", summary.Finished.Sub(summary.Started)),
	)
	return summary
}

// restoreTitles copies search titles onto candidates read back from the link file.
func restoreTitles(candidates, found []transcript.VideoRef) {
	titles := make(map[string]string, len(found))
	for _, ref := range found {
		titles[ref.ID] = ref.Title
	}
	for i := range candidates {
		if candidates[i].Title == "" {
			candidates[i].Title = titles[candidates[i].ID]
		}
	}
}

// IsLocked reports whether err came from lock contention.
func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}
