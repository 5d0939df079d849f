package curation

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"curator/internal/fileutil"
	"curator/internal/scoring"
)

// TimestampLayout formats SessionReport.AnalysisTimestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// VideoAnalysis is one scored candidate of a sub-topic.
type VideoAnalysis struct {
	VideoID  string `json:"video_id"`
	VideoURL string `json:"video_url"`
	Score    int    `json:"score"`
	scoring.Record
}

// SubtopicReport lists the scored candidates of one winning sub-topic.
type SubtopicReport struct {
	Subtopic      string          `json:"alt_baslik"`
	VideoAnalyses []VideoAnalysis `json:"video_analizleri"`
}

// Best returns the analysis with the highest overall score; the earliest wins ties.
func (r SubtopicReport) Best() (VideoAnalysis, bool) {
	best := -1
	for i, analysis := range r.VideoAnalyses {
		if best < 0 || analysis.Score > r.VideoAnalyses[best].Score {
			best = i
		}
	}
	if best < 0 {
		return VideoAnalysis{}, false
	}
	return r.VideoAnalyses[best], true
}

// SessionReport is the cumulative result of one topic run.
type SessionReport struct {
	Topic             string           `json:"konu"`
	AnalysisTimestamp string           `json:"analiz_tarihi"`
	Subtopics         []SubtopicReport `json:"alt_basliklar"`
}

// Session holds the run's SessionReport in memory and writes it to disk on
// every change.
type Session struct {
	path   string
	report SessionReport
}

// NewSession returns a session that checkpoints to path.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Path returns the report file location.
func (s *Session) Path() string {
	return s.path
}

// Reset starts an empty report for topic and writes it immediately.
func (s *Session) Reset(topic string, now time.Time) error {
	s.report = SessionReport{
		Topic:             topic,
		AnalysisTimestamp: now.Format(TimestampLayout),
		Subtopics:         []SubtopicReport{},
	}
	return s.checkpoint()
}

// Append adds a sub-topic report and rewrites the file.
func (s *Session) Append(rep SubtopicReport) error {
	if rep.VideoAnalyses == nil {
		rep.VideoAnalyses = []VideoAnalysis{}
	}
	s.report.Subtopics = append(s.report.Subtopics, rep)
	return s.checkpoint()
}

// Report returns a copy of the in-memory report.
func (s *Session) Report() SessionReport {
	out := s.report
	out.Subtopics = append([]SubtopicReport(nil), s.report.Subtopics...)
	return out
}

func (s *Session) checkpoint() error {
	if err := fileutil.WriteJSONAtomic(s.path, s.report); err != nil {
		return fmt.Errorf("write session report: %w", err)
	}
	return nil
}

// LoadSessionReport reads a report written by Session.
func LoadSessionReport(path string) (SessionReport, error) {
	var report SessionReport
	data, err := os.ReadFile(path)
	if err != nil {
		return report, err
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("parse session report: %w", err)
	}
	return report, nil
}
