package transcript

import (
	"fmt"

	"curator/internal/services"
)

// Tier names the acquisition strategy that produced a transcript.
type Tier string

const (
	TierDirectCaptions Tier = "direct_captions"
	TierAutoCaptions   Tier = "auto_captions"
	TierSpeechToText   Tier = "speech_to_text"
	// TierStored marks a record served from the Store instead of a fresh acquisition.
	TierStored Tier = "stored"
)

// Record is a validated transcript. Records are never mutated after creation.
type Record struct {
	VideoID          string `json:"video_id"`
	SourceURL        string `json:"url"`
	DetectedLanguage string `json:"detected_language"`
	Text             string `json:"text"`
	Tier             Tier   `json:"-"`
}

var (
	// ErrAcquisitionFailed reports that every acquisition tier was exhausted.
	ErrAcquisitionFailed = fmt.Errorf("transcript acquisition failed: %w", services.ErrNotFound)
	// ErrValidation reports transcript text that is present but unusable.
	ErrValidation = fmt.Errorf("transcript rejected: %w", services.ErrValidation)
)
