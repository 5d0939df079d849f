// Package services defines shared utilities consumed by the pipeline and its
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, sub-topics and video IDs for logging.
//   - Structured error markers plus the Wrap helper, and the classification
//     that decides whether a failure skips one item or ends the run.
//
// Integrations with yt-dlp, WhisperX and language model endpoints live in
// subpackages and report failures through these markers.
package services
