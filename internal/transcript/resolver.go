package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"curator/internal/logging"
	"curator/internal/services"
)

// Status is the tri-state result of one acquisition strategy.
type Status int

const (
	// StatusSuccess carries a record ready for validation.
	StatusSuccess Status = iota
	// StatusSkip means the strategy produced nothing; try the next one.
	StatusSkip
	// StatusAbortTier means the provider is blocking this client; remaining
	// attempts in the tier were abandoned.
	StatusAbortTier
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkip:
		return "skip"
	case StatusAbortTier:
		return "abort_tier"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is returned by Strategy.Acquire.
type Outcome struct {
	Status Status
	Record Record
	Err    error
}

// Success wraps a produced record.
func Success(rec Record) Outcome { return Outcome{Status: StatusSuccess, Record: rec} }

// Skip reports a strategy that produced nothing, with the reason.
func Skip(err error) Outcome { return Outcome{Status: StatusSkip, Err: err} }

// AbortTier reports a provider block that ended the strategy early.
func AbortTier(err error) Outcome { return Outcome{Status: StatusAbortTier, Err: err} }

// Strategy is one transcript acquisition tier.
type Strategy interface {
	Tier() Tier
	Acquire(ctx context.Context, ref VideoRef) Outcome
}

// Resolver tries strategies in order until one yields a validated transcript.
type Resolver struct {
	strategies []Strategy
	store      *Store
	validator  Validator
	reuse      bool
	logger     *slog.Logger
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithStoredReuse serves an existing valid stored transcript instead of
// acquiring it again.
func WithStoredReuse(enabled bool) ResolverOption {
	return func(r *Resolver) { r.reuse = enabled }
}

// NewResolver builds a Resolver. store may be nil, in which case records are
// not persisted.
func NewResolver(store *Store, validator Validator, logger *slog.Logger, strategies []Strategy, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		strategies: strategies,
		store:      store,
		validator:  validator,
		logger:     logging.NewComponentLogger(logger, "resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first validated transcript for ref. Strategy failures
// are logged and never stop resolution; only context cancellation does. When
// every strategy fails the error wraps ErrAcquisitionFailed.
func (r *Resolver) Resolve(ctx context.Context, ref VideoRef) (Record, error) {
	ctx = services.WithVideoID(ctx, ref.ID)

	if rec, ok := r.stored(ctx, ref); ok {
		return rec, nil
	}

	var lastErr error
	for _, strategy := range r.strategies {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}
		tier := strategy.Tier()
		started := time.Now()
		outcome := strategy.Acquire(ctx, ref)
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}

		switch outcome.Status {
		case StatusSuccess:
			if err := r.validator.Check(outcome.Record.Text); err != nil {
				lastErr = err
				r.logger.InfoContext(ctx, "transcript tier result rejected",
					logging.String(logging.FieldTier, string(tier)),
					logging.String(logging.FieldDecisionType, "transcript_validation"),
					logging.String(logging.FieldDecisionResult, "rejected"),
					logging.String(logging.FieldDecisionReason, err.Error()),
				)
				continue
			}
			rec := outcome.Record
			rec.VideoID = VideoKey(ref.URL)
			rec.SourceURL = ref.URL
			rec.Tier = tier
			r.persist(ctx, rec)
			r.logger.InfoContext(ctx, "transcript acquired",
				logging.String(logging.FieldTier, string(tier)),
				logging.String("language", rec.DetectedLanguage),
				logging.Int("characters", len([]rune(rec.Text))),
				logging.Duration("elapsed", time.Since(started)),
			)
			return rec, nil
		case StatusAbortTier:
			lastErr = outcome.Err
			logging.WarnWithContext(ctx, r.logger, "provider blocked transcript tier", "transcript_tier_blocked",
				logging.String(logging.FieldTier, string(tier)),
				logging.String(logging.FieldErrorHint, "increase pipeline.request_delay_seconds or configure captions.cookies_path"),
				logging.String(logging.FieldImpact, "falling through to the next acquisition tier"),
				logging.Error(outcome.Err),
			)
		default:
			lastErr = outcome.Err
			r.logger.InfoContext(ctx, "transcript tier produced nothing",
				logging.String(logging.FieldTier, string(tier)),
				logging.String("reason", services.Classify(outcome.Err)),
				logging.Error(outcome.Err),
			)
		}
	}

	if lastErr != nil {
		return Record{}, fmt.Errorf("%w: %s after %d tiers: %w", ErrAcquisitionFailed, ref.ID, len(r.strategies), lastErr)
	}
	return Record{}, fmt.Errorf("%w: %s after %d tiers", ErrAcquisitionFailed, ref.ID, len(r.strategies))
}

func (r *Resolver) stored(ctx context.Context, ref VideoRef) (Record, bool) {
	if !r.reuse || r.store == nil {
		return Record{}, false
	}
	rec, err := r.store.Load(VideoKey(ref.URL))
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			r.logger.DebugContext(ctx, "stored transcript unusable", logging.Error(err))
		}
		return Record{}, false
	}
	if !r.validator.IsValid(rec.Text) {
		return Record{}, false
	}
	r.logger.InfoContext(ctx, "stored transcript reused",
		logging.String(logging.FieldDecisionType, "transcript_cache"),
		logging.String(logging.FieldDecisionResult, "hit"),
	)
	return rec, true
}

func (r *Resolver) persist(ctx context.Context, rec Record) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(rec); err != nil {
		logging.WarnWithContext(ctx, r.logger, "transcript not persisted", "transcript_store_failed",
			logging.String(logging.FieldErrorHint, "check permissions on paths.transcript_dir"),
			logging.String(logging.FieldImpact, "transcript is used for this run but not saved"),
			logging.Error(err),
		)
	}
}
