package curation

import (
	"context"
	"errors"
	"log/slog"

	"curator/internal/logging"
	"curator/internal/scoring"
	"curator/internal/services"
	"curator/internal/transcript"
)

// TranscriptResolver obtains a validated transcript for one video.
type TranscriptResolver interface {
	Resolve(ctx context.Context, ref transcript.VideoRef) (transcript.Record, error)
}

// RelevanceScorer judges a transcript against a topic. It always returns a record.
type RelevanceScorer interface {
	Score(ctx context.Context, text, topic string) scoring.Record
}

// Aggregator scores the candidates of one sub-topic and records the winner.
type Aggregator struct {
	resolver  TranscriptResolver
	scorer    RelevanceScorer
	validator transcript.Validator
	session   *Session
	best      *BestVideoList
	metrics   *Metrics
	logger    *slog.Logger
}

// NewAggregator builds an Aggregator. validator is the stricter check applied
// after acquisition (scoring.aggregator_min_length).
func NewAggregator(resolver TranscriptResolver, scorer RelevanceScorer, validator transcript.Validator, session *Session, best *BestVideoList, metrics *Metrics, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		resolver:  resolver,
		scorer:    scorer,
		validator: validator,
		session:   session,
		best:      best,
		metrics:   metrics,
		logger:    logging.NewComponentLogger(logger, "aggregator"),
	}
}

// ProcessSubtopic scores candidates in order and returns the highest scoring
// one; the earliest candidate wins ties. ok is false when no candidate yielded
// a transcript, in which case nothing is written.
func (a *Aggregator) ProcessSubtopic(ctx context.Context, subtopic string, candidates []transcript.VideoRef) (transcript.VideoRef, bool) {
	var (
		analyses []VideoAnalysis
		refs     []transcript.VideoRef
		best     = -1
	)
	for _, ref := range candidates {
		if ctx.Err() != nil {
			break
		}
		analysis, ok := a.evaluate(ctx, subtopic, ref)
		if !ok {
			continue
		}
		analyses = append(analyses, analysis)
		refs = append(refs, ref)
		if best < 0 || analysis.Score > analyses[best].Score {
			best = len(analyses) - 1
		}
	}

	if best < 0 {
		logging.WarnWithContext(ctx, a.logger, "no candidate yielded a transcript", "subtopic_empty",
			logging.Int("candidates", len(candidates)),
			logging.String(logging.FieldImpact, "sub-topic has no recommended video"),
			logging.String(logging.FieldErrorHint, "check yt-dlp access or enable whisperx"),
		)
		return transcript.VideoRef{}, false
	}

	winner := refs[best]
	if err := a.session.Append(SubtopicReport{Subtopic: subtopic, VideoAnalyses: analyses}); err != nil {
		logging.ErrorWithContext(ctx, a.logger, "session report checkpoint failed", "report_write_failed",
			logging.Error(err),
		)
	}
	if err := a.best.Append(winner.URL); err != nil {
		logging.ErrorWithContext(ctx, a.logger, "best video list append failed", "best_list_write_failed",
			logging.Error(err),
		)
	}
	attrs := logging.DecisionAttrs("winner_selection", "selected", "highest overall score")
	attrs = append(attrs,
		logging.String("url", winner.URL),
		logging.Int("score", analyses[best].Score),
		logging.Int("scored", len(analyses)),
	)
	a.logger.InfoContext(ctx, "sub-topic winner selected", logging.Args(attrs...)...)
	return winner, true
}

func (a *Aggregator) evaluate(ctx context.Context, subtopic string, ref transcript.VideoRef) (VideoAnalysis, bool) {
	ctx = services.WithVideoID(ctx, ref.ID)

	rec, err := a.resolver.Resolve(ctx, ref)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return VideoAnalysis{}, false
		}
		a.metrics.CandidateProcessed(CandidateAcquisitionFailed)
		logging.WarnWithContext(ctx, a.logger, "candidate skipped", "candidate_skipped",
			logging.Error(err),
			logging.String("reason", services.Classify(err)),
			logging.String(logging.FieldImpact, "candidate excluded from scoring"),
		)
		return VideoAnalysis{}, false
	}
	a.metrics.TranscriptAcquired(rec.Tier)

	if err := a.validator.Check(rec.Text); err != nil {
		a.metrics.CandidateProcessed(CandidateValidationRejected)
		logging.WarnWithContext(ctx, a.logger, "candidate transcript rejected", "candidate_rejected",
			logging.Error(err),
			logging.String(logging.FieldTier, string(rec.Tier)),
			logging.String(logging.FieldImpact, "candidate excluded from scoring"),
		)
		return VideoAnalysis{}, false
	}

	score := a.scorer.Score(ctx, rec.Text, subtopic)
	a.metrics.CandidateProcessed(CandidateScored)
	a.metrics.ScoreObserved(score.GenelPuan, score.Degraded)
	a.logger.InfoContext(ctx, "candidate scored",
		logging.Int("score", score.GenelPuan),
		logging.Bool("degraded", score.Degraded),
		logging.String(logging.FieldTier, string(rec.Tier)),
	)
	return VideoAnalysis{
		VideoID:  ref.ID,
		VideoURL: ref.URL,
		Score:    score.GenelPuan,
		Record:   score,
	}, true
}
