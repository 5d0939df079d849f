// Package scoring asks a judging model how well a transcript fits a topic and
// turns its free-form reply into a ScoreRecord.
//
// Scoring never fails: an unreachable judge, a reply without JSON, malformed
// JSON or a missing overall score all yield the neutral all-zero record marked
// Degraded, so one bad reply never stops sub-topic aggregation. Only the first
// max_transcript_chars characters of a transcript are sent.
package scoring
