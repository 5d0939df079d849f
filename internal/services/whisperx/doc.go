// Package whisperx runs WhisperX speech-to-text through uvx.
//
// It is the last transcript acquisition tier: the audio track downloaded by
// yt-dlp is transcribed with language auto-detection and the JSON output is
// read back into plain text plus the detected language code.
//
// Configuration options (model, CUDA, VAD method) are passed via Config.
package whisperx
