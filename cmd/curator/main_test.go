package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"curator/internal/config"
	"curator/internal/curation"
	"curator/internal/scoring"
	"curator/internal/services"
	"curator/internal/testsupport"
	"curator/internal/transcript"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"OPENAI_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY", "YOUTUBE_API_KEY", "CURATOR_CONFIG"} {
		t.Setenv(key, "")
	}
	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigValidateCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	for _, want := range []string{"Config path: " + env.configPath, "Search backend: ytdlp", "Configuration valid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected target path in output: %s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestReportCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	session := curation.NewSession(env.cfg.SessionReportPath())
	if err := session.Reset("Python Basics", time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	url := transcript.CanonicalURL("varB0000002")
	if err := session.Append(curation.SubtopicReport{
		Subtopic: "Variables",
		VideoAnalyses: []curation.VideoAnalysis{{
			VideoID:  "varB0000002",
			VideoURL: url,
			Score:    8,
			Record:   scoring.Record{GenelPuan: 8, Yorum: "net ve kapsamlı"},
		}},
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"Konu: Python Basics", "Variables", url, "net ve kapsamlı"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report output missing %q:\n%s", want, out)
		}
	}

	out, _, err = runCLI(t, []string{"report", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("report --json: %v", err)
	}
	var decoded curation.SessionReport
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode report json: %v\n%s", err, out)
	}
	if decoded.AnalysisTimestamp != "2026-03-14 09:30:00" || decoded.Subtopics[0].VideoAnalyses[0].GenelPuan != 8 {
		t.Fatalf("unexpected report: %+v", decoded)
	}
}

func TestReportCommandWithoutRun(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "curator run") {
		t.Fatalf("expected hint to run first, got %v", err)
	}
}

func TestBestCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	first := transcript.CanonicalURL("varB0000002")
	second := transcript.CanonicalURL("loopA000001")
	testsupport.WriteLines(t, env.cfg.BestVideosPath(), first, second)

	out, _, err := runCLI(t, []string{"best"}, env.configPath)
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if out != first+"\n"+second+"\n" {
		t.Fatalf("unexpected best output: %q", out)
	}
}

func TestTranscriptCommandReusesStoredTranscript(t *testing.T) {
	env := setupCLITestEnv(t)
	url := transcript.CanonicalURL("varB0000002")
	text := testsupport.TranscriptText(200)
	testsupport.WriteTranscript(t, env.cfg.Paths.TranscriptDir, transcript.VideoKey(url), url, text)

	out, _, err := runCLI(t, []string{"transcript", "https://youtu.be/varB0000002"}, env.configPath)
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}
	for _, want := range []string{"Tier:       stored", "Language:   tr", url} {
		if !strings.Contains(out, want) {
			t.Fatalf("transcript output missing %q:\n%s", want, out)
		}
	}
}

func TestTranscriptCommandRejectsBadURL(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"transcript", "https://example.com/watch"}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunRequiresJudgeKey(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithJudgeKey(""))
	_, _, err := runCLI(t, []string{"run", "Python", "Basics", "--skip-dependency-check"}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, statErr := os.Stat(env.cfg.SessionReportPath()); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("run must not touch artifacts before the judge is configured: %v", statErr)
	}
}

func TestScoreRequiresTopic(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"score", transcript.CanonicalURL("varB0000002")}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--topic") {
		t.Fatalf("expected --topic error, got %v", err)
	}
}

func TestDepsCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())
	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps: %v\n%s", err, out)
	}
	for _, name := range []string{"yt-dlp", "FFmpeg", "uvx"} {
		if !strings.Contains(out, name) {
			t.Fatalf("deps output missing %s:\n%s", name, out)
		}
	}
}
