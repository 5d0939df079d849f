package curation

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/logging"
	"curator/internal/scoring"
	"curator/internal/services"
	"curator/internal/transcript"
)

var sampleText = strings.Repeat("Python variables hold values for later use. ", 4)

type fakeResolver struct {
	texts map[string]string
	calls []string
}

func (f *fakeResolver) Resolve(_ context.Context, ref transcript.VideoRef) (transcript.Record, error) {
	f.calls = append(f.calls, ref.ID)
	text, ok := f.texts[ref.ID]
	if !ok {
		return transcript.Record{}, transcript.ErrAcquisitionFailed
	}
	return transcript.Record{VideoID: ref.ID, SourceURL: ref.URL, Text: text, Tier: transcript.TierDirectCaptions}, nil
}

type fakeScorer struct {
	byText map[string]int
	topics []string
}

func (f *fakeScorer) Score(_ context.Context, text, topic string) scoring.Record {
	f.topics = append(f.topics, topic)
	score, ok := f.byText[text]
	if !ok {
		return scoring.Neutral()
	}
	return scoring.Record{GenelPuan: score, KapsamUyumu: score, Yorum: "ok"}
}

type fakeDecomposer struct {
	subtopics []string
	err       error
}

func (f fakeDecomposer) Decompose(context.Context, string) ([]string, error) {
	return f.subtopics, f.err
}

type searchFunc func(ctx context.Context, query string, limit int) ([]transcript.VideoRef, error)

func (f searchFunc) Search(ctx context.Context, query string, limit int) ([]transcript.VideoRef, error) {
	return f(ctx, query, limit)
}

type tierFunc struct {
	tier transcript.Tier
	fn   func(ref transcript.VideoRef) transcript.Outcome
}

func (s tierFunc) Tier() transcript.Tier { return s.tier }

func (s tierFunc) Acquire(_ context.Context, ref transcript.VideoRef) transcript.Outcome {
	return s.fn(ref)
}

func failingTier(tier transcript.Tier) tierFunc {
	return tierFunc{tier: tier, fn: func(transcript.VideoRef) transcript.Outcome {
		return transcript.Skip(services.Wrap(services.ErrNotFound, "test", "acquire", "no transcript", nil))
	}}
}

func ref(id string) transcript.VideoRef {
	return transcript.NewVideoRef(id, "title "+id)
}

type artifacts struct {
	session *Session
	best    *BestVideoList
	links   *CandidateLinks
	dir     string
}

func newArtifacts(t *testing.T) artifacts {
	t.Helper()
	dir := t.TempDir()
	return artifacts{
		session: NewSession(filepath.Join(dir, "analiz_sonuclari.json")),
		best:    NewBestVideoList(filepath.Join(dir, "en_iyi_video.txt")),
		links:   NewCandidateLinks(filepath.Join(dir, "video_linkleri.txt")),
		dir:     dir,
	}
}

func newTestAggregator(t *testing.T, a artifacts, resolver TranscriptResolver, scorer RelevanceScorer) *Aggregator {
	t.Helper()
	if err := a.session.Reset("Python Basics", fixedNow()); err != nil {
		t.Fatalf("session reset: %v", err)
	}
	return NewAggregator(resolver, scorer, transcript.NewValidator(100), a.session, a.best, NewMetrics(), logging.NewNop())
}

func readBest(t *testing.T, list *BestVideoList) []string {
	t.Helper()
	urls, err := list.Read()
	if err != nil {
		t.Fatalf("read best list: %v", err)
	}
	return urls
}
