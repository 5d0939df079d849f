// Package textutil provides small text helpers shared across the pipeline:
// filesystem-safe tokens for transcript file names, language-aware title
// casing for sub-topic names and rune-safe truncation for prompts.
package textutil
