package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"curator/internal/language"
	"curator/internal/services"
)

// CommandRunner executes an external command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Service transcribes audio files with WhisperX. One Service is built by the
// composition root and shared for the process lifetime; availability of the
// uvx launcher is checked lazily on first use.
type Service struct {
	cfg           Config
	commandRunner CommandRunner
	lookPath      func(string) (string, error)

	checkOnce sync.Once
	checkErr  error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, lookPath: exec.LookPath}
}

// WithCommandRunner sets a custom command runner (for testing). A custom runner
// also skips the uvx availability check.
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
	s.lookPath = func(name string) (string, error) { return name, nil }
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe runs WhisperX with language auto-detection on audioPath and returns
// the concatenated segment text plus the detected ISO 639-1 language. WhisperX
// writes {stem}.json next to the audio file; callers own its cleanup.
func (s *Service) Transcribe(ctx context.Context, audioPath string) (string, string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", "", services.Wrap(services.ErrValidation, "whisperx", "transcribe", "audio path required", nil)
	}
	if err := s.ensureAvailable(); err != nil {
		return "", "", err
	}

	outputDir := filepath.Dir(audioPath)
	args := s.buildArgs(audioPath, outputDir)
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
		return "", "", services.Wrap(services.ErrExternalTool, "whisperx", "transcribe", filepath.Base(audioPath), err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	result, err := LoadResult(filepath.Join(outputDir, stem+".json"))
	if err != nil {
		return "", "", services.Wrap(services.ErrExternalTool, "whisperx", "load output", "", err)
	}
	return result.Text(), language.ToISO2(result.Language), nil
}

func (s *Service) ensureAvailable() error {
	s.checkOnce.Do(func() {
		if _, err := s.lookPath(UVXCommand); err != nil {
			s.checkErr = services.Wrap(services.ErrConfiguration, "whisperx", "lookup", "uvx not found on PATH (install uv to enable speech-to-text)", err)
		}
	})
	return s.checkErr
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		_, err := s.commandRunner(ctx, name, args...)
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, lastLines(string(output), 5))
	}
	return nil
}

// buildArgs constructs the uvx command arguments. No --language flag is passed
// so WhisperX detects the spoken language itself.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 28)
	if s.cfg.CUDAEnabled {
		args = append(args, "--index-url", CUDAIndexURL, "--extra-index-url", PypiIndexURL)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--chunk_size", ChunkSize,
		"--beam_size", BeamSize,
		"--temperature", Temperature,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Result is the WhisperX JSON output.
type Result struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Text joins the non-empty segment texts with single spaces.
func (r Result) Text() string {
	parts := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// LoadResult loads a WhisperX JSON output file.
func LoadResult(jsonPath string) (Result, error) {
	var result Result
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("parse whisperx json: %w", err)
	}
	return result, nil
}

func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
