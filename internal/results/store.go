// Package results persists benchmark results as one JSON file per day.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"qrcsbench/rcs"
)

// fileDateFormat names result files, e.g. 20260115.json.
const fileDateFormat = "20060102"

// Record is a stored benchmark result.
type Record struct {
	ID string `json:"id,omitempty"`
	rcs.Result
}

// NewRecord wraps res with a fresh ID.
func NewRecord(res rcs.Result) Record {
	return Record{ID: uuid.NewString(), Result: res}
}

// Store reads and writes records under a single directory.
type Store struct {
	dir string
	log zerolog.Logger
}

func NewStore(dir string, log zerolog.Logger) *Store {
	return &Store{
		dir: dir,
		log: log.With().Str("component", "results").Logger(),
	}
}

func (s *Store) Dir() string { return s.dir }

// Exists reports whether the results directory is present. Runs are only
// persisted when it is.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// Path returns the file a record dated date is written to.
func (s *Store) Path(date string) (string, error) {
	t, err := time.Parse(rcs.DateFormat, date)
	if err != nil {
		return "", fmt.Errorf("invalid result date %q: %w", date, err)
	}
	return filepath.Join(s.dir, t.Format(fileDateFormat)+".json"), nil
}

// Save writes rec as indented JSON, replacing any earlier result of the same day.
func (s *Store) Save(rec Record) (string, error) {
	path, err := s.Path(rec.Date)
	if err != nil {
		return "", err
	}
	data, err := Encode(rec)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.log.Info().Str("path", path).Str("id", rec.ID).Msg("Result saved")
	return path, nil
}

// Load returns every readable record sorted by date. Files that cannot be read
// or decoded are skipped with a warning.
func (s *Store) Load() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable result")
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("Skipping malformed result")
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records, nil
}

// Encode renders rec the way it is stored and printed.
func Encode(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return append(data, '\n'), nil
}
