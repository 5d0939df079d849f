// Package language provides language code normalization and caption track
// selection.
//
// Codes arrive from configuration ("tr", "en"), from platform caption
// metadata ("tr-TR", "en-orig") and from speech-to-text detection; this
// package maps them onto ISO 639-1 so they can be compared and persisted
// consistently.
package language
