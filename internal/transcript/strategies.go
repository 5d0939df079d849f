package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"curator/internal/fileutil"
	"curator/internal/language"
	"curator/internal/services"
)

// CaptionFetcher returns the raw uploaded caption payload of ref in lang.
type CaptionFetcher interface {
	FetchCaptions(ctx context.Context, ref VideoRef, lang string) (string, error)
}

// CaptionTrack is one downloadable format of an automatic caption track.
type CaptionTrack struct {
	Ext  string
	URL  string
	Name string
}

// AutoCaptionSource lists the automatic caption tracks of ref keyed by language.
type AutoCaptionSource interface {
	AutoCaptions(ctx context.Context, ref VideoRef) (map[string][]CaptionTrack, error)
}

// PayloadFetcher downloads a caption payload by URL.
type PayloadFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// AudioDownloader saves the audio track of ref to dest and returns the written path.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, ref VideoRef, dest string) (string, error)
}

// Transcriber converts an audio file into text with language auto-detection.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (text string, detectedLanguage string, err error)
}

var blockPhrases = []string{"blocked", "too many requests", "sign in to confirm"}

// blockWords only count as whole words; video IDs can contain them.
var blockWords = map[string]bool{"ip": true, "429": true}

// IsBlockError reports whether err indicates the provider is refusing this
// client: an ErrBlocked marker, a known block phrase, or "ip"/"429" as whole words.
func IsBlockError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, services.ErrBlocked) {
		return true
	}
	lower := strings.ToLower(err.Error())
	for _, phrase := range blockPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, word := range words {
		if blockWords[word] {
			return true
		}
	}
	return false
}

// DirectCaptions requests uploaded captions for each language in priority
// order. A block error abandons the remaining languages.
type DirectCaptions struct {
	Fetcher   CaptionFetcher
	Languages []string
}

func (DirectCaptions) Tier() Tier { return TierDirectCaptions }

func (s DirectCaptions) Acquire(ctx context.Context, ref VideoRef) Outcome {
	if s.Fetcher == nil {
		return Skip(errors.New("direct captions not configured"))
	}
	var lastErr error
	for _, lang := range s.Languages {
		payload, err := s.Fetcher.FetchCaptions(ctx, ref, lang)
		if err != nil {
			if ctx.Err() != nil {
				return Skip(ctx.Err())
			}
			if IsBlockError(err) {
				return AbortTier(err)
			}
			lastErr = err
			continue
		}
		text := StripMarkup(payload)
		if strings.TrimSpace(text) == "" {
			lastErr = fmt.Errorf("%w: empty %s captions", ErrValidation, lang)
			continue
		}
		return Success(Record{DetectedLanguage: language.ToISO2(lang), Text: text})
	}
	if lastErr == nil {
		lastErr = services.Wrap(services.ErrNotFound, "direct_captions", "fetch", "no caption languages configured", nil)
	}
	return Skip(lastErr)
}

// AutoCaptions downloads the platform's automatic captions in the best
// matching language.
type AutoCaptions struct {
	Source    AutoCaptionSource
	Payloads  PayloadFetcher
	Languages []string
	Validator Validator
}

func (AutoCaptions) Tier() Tier { return TierAutoCaptions }

func (s AutoCaptions) Acquire(ctx context.Context, ref VideoRef) Outcome {
	if s.Source == nil || s.Payloads == nil {
		return Skip(errors.New("automatic captions not configured"))
	}
	tracks, err := s.Source.AutoCaptions(ctx, ref)
	if err != nil {
		if IsBlockError(err) {
			return AbortTier(err)
		}
		return Skip(err)
	}
	keys := make([]string, 0, len(tracks))
	for key, formats := range tracks {
		if len(formats) > 0 {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return Skip(services.Wrap(services.ErrNotFound, "auto_captions", "select", "video has no automatic captions", nil))
	}
	sort.Strings(keys)
	lang := language.SelectTrack(keys, s.Languages)
	trackURL := pickVTT(tracks[lang])
	if trackURL == "" {
		return Skip(services.Wrap(services.ErrNotFound, "auto_captions", "select", "no vtt format for "+lang, nil))
	}

	payload, err := s.Payloads.Fetch(ctx, trackURL)
	if err != nil {
		if IsBlockError(err) {
			return AbortTier(err)
		}
		return Skip(err)
	}
	if signature, ok := BlockSignature(payload); ok {
		return Skip(fmt.Errorf("%w: caption payload is a block page (%s)", ErrValidation, signature))
	}
	text := StripMarkup(payload)
	if err := s.Validator.Check(text); err != nil {
		return Skip(err)
	}
	return Success(Record{DetectedLanguage: language.ToISO2(lang), Text: text})
}

func pickVTT(formats []CaptionTrack) string {
	for _, format := range formats {
		if strings.EqualFold(format.Ext, "vtt") && format.URL != "" {
			return format.URL
		}
	}
	return ""
}

// SpeechToText downloads the audio track to a unique temp file and
// transcribes it. The temp file and its siblings are removed on every path.
type SpeechToText struct {
	Downloader  AudioDownloader
	Transcriber Transcriber
	TempDir     string
	Now         func() time.Time
}

func (SpeechToText) Tier() Tier { return TierSpeechToText }

func (s SpeechToText) Acquire(ctx context.Context, ref VideoRef) Outcome {
	if s.Downloader == nil || s.Transcriber == nil {
		return Skip(services.Wrap(services.ErrConfiguration, "speech_to_text", "acquire", "speech-to-text disabled", nil))
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	tempDir := s.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return Skip(fmt.Errorf("create temp dir: %w", err))
	}
	stem := filepath.Join(tempDir, fmt.Sprintf("temp_%s_%d", VideoKey(ref.URL), now().UnixNano()))
	defer func() {
		_, _ = fileutil.RemoveGlob(stem + ".*")
		_ = os.Remove(stem)
	}()

	audioPath, err := s.Downloader.DownloadAudio(ctx, ref, stem+".mp3")
	if err != nil {
		if IsBlockError(err) {
			return AbortTier(err)
		}
		return Skip(err)
	}
	text, lang, err := s.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return Skip(err)
	}
	return Success(Record{DetectedLanguage: lang, Text: strings.TrimSpace(text)})
}
