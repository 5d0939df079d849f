package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/services"
	"curator/internal/textutil"
)

const fileSuffix = "_transcript.json"

var storedIDPattern = regexp.MustCompile(`_v_([A-Za-z0-9_-]{11})`)

var keyReplacer = strings.NewReplacer("/", "_", "?", "_", "&", "_", "=", "_")

// VideoKey derives the filesystem-safe storage key for a source URL.
// "https://www.youtube.com/watch?v=ID" becomes "www.youtube.com_watch_v_ID".
func VideoKey(rawURL string) string {
	key := strings.TrimSpace(rawURL)
	key = strings.TrimPrefix(key, "https://")
	key = strings.TrimPrefix(key, "http://")
	return textutil.SanitizeToken(keyReplacer.Replace(key))
}

// Store persists transcript records as JSON files in a single directory.
// Store is the only writer of that directory.
type Store struct {
	dir       string
	validator Validator
	logger    *slog.Logger
}

// NewStore returns a Store rooted at dir. LoadAll excludes records that fail validator.
func NewStore(dir string, validator Validator, logger *slog.Logger) *Store {
	return &Store{
		dir:       dir,
		validator: validator,
		logger:    logging.NewComponentLogger(logger, "transcript_store"),
	}
}

// Dir returns the transcript directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file location for a storage key.
func (s *Store) Path(videoKey string) string {
	return filepath.Join(s.dir, videoKey+fileSuffix)
}

// Save writes rec under the key derived from its source URL.
func (s *Store) Save(rec Record) error {
	if strings.TrimSpace(rec.SourceURL) == "" {
		return services.Wrap(services.ErrValidation, "transcript_store", "save", "record has no source url", nil)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create transcript dir: %w", err)
	}
	path := s.Path(VideoKey(rec.SourceURL))
	if err := fileutil.WriteJSONAtomic(path, rec); err != nil {
		return fmt.Errorf("write transcript %s: %w", filepath.Base(path), err)
	}
	s.logger.Debug("transcript stored",
		logging.String("path", path),
		logging.String("language", rec.DetectedLanguage),
		logging.Int("characters", len([]rune(rec.Text))),
	)
	return nil
}

// Load reads the record stored under videoKey. A missing file returns an
// error wrapping services.ErrNotFound.
func (s *Store) Load(videoKey string) (Record, error) {
	path := s.Path(videoKey)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, services.Wrap(services.ErrNotFound, "transcript_store", "load", videoKey, nil)
		}
		return Record{}, fmt.Errorf("read transcript %s: %w", filepath.Base(path), err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, services.Wrap(services.ErrValidation, "transcript_store", "decode", filepath.Base(path), err)
	}
	rec.Tier = TierStored
	return rec, nil
}

// LoadAll reads every stored transcript in name order. The platform video ID
// comes from the file name, never the JSON body. Files with unexpected names,
// corrupt JSON or text failing validation are skipped; one bad file never
// aborts the scan.
func (s *Store) LoadAll() ([]Record, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	sort.Strings(matches)

	records := make([]Record, 0, len(matches))
	for _, path := range matches {
		name := filepath.Base(path)
		stem := strings.TrimSuffix(name, fileSuffix)
		match := storedIDPattern.FindStringSubmatch(stem)
		if match == nil {
			s.logger.Warn("transcript file name has no video id; skipping",
				logging.String(logging.FieldEventType, "transcript_name_unrecognized"),
				logging.String(logging.FieldErrorHint, "expected a name derived from a watch?v= URL"),
				logging.String("file", name),
			)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("transcript file unreadable; skipping",
				logging.String(logging.FieldEventType, "transcript_read_failed"),
				logging.String("file", name),
				logging.Error(err),
			)
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			s.logger.Warn("transcript file is not valid JSON; skipping",
				logging.String(logging.FieldEventType, "transcript_corrupt"),
				logging.String(logging.FieldErrorHint, "delete the file or re-run transcription"),
				logging.String("file", name),
				logging.Error(err),
			)
			continue
		}
		if !s.validator.IsValid(rec.Text) {
			s.logger.Debug("stored transcript failed validation; excluded", logging.String("file", name))
			continue
		}
		rec.VideoID = match[1]
		rec.Tier = TierStored
		records = append(records, rec)
	}
	return records, nil
}

// Reset removes every stored transcript and leaves an empty directory.
func (s *Store) Reset() (int, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create transcript dir: %w", err)
	}
	removed, err := fileutil.RemoveGlob(filepath.Join(s.dir, "*"+fileSuffix))
	if err != nil {
		return removed, fmt.Errorf("reset transcripts: %w", err)
	}
	s.logger.Info("transcript directory reset",
		logging.String("dir", s.dir),
		logging.Int("removed", removed),
	)
	return removed, nil
}
