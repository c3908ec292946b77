// Package store reads and writes the pipeline's persisted artifacts and
// source tables. Every artifact is plain JSON with no binary framing so
// downstream tooling can consume it directly.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isnadlab/silsila/internal/model"
)

// Artifact file names inside the data directory.
const (
	NarratorsFile  = "narrators.json"
	ChainsFile     = "chains.json"
	RecordsFile    = "records.json"
	MismatchesFile = "mismatches.json"
	UnfixableFile  = "unfixable.json"
	ReportFile     = "match_report.json"
	KinshipFile    = "kinship_resolutions.json"
)

// Store wraps a data directory holding the generated artifacts.
type Store struct {
	dir    string
	indent bool
}

// New creates a store over a data directory, creating it if needed.
func New(dir string, indent bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, indent: indent}, nil
}

// Path returns the absolute path of a named artifact.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) writeJSON(name string, v any) error {
	var (
		data []byte
		err  error
	)
	if s.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// SaveNarrators writes the canonical identity list.
func (s *Store) SaveNarrators(narrators []model.Narrator) error {
	return s.writeJSON(NarratorsFile, narrators)
}

// LoadNarrators reads the canonical identity list.
func (s *Store) LoadNarrators() ([]model.Narrator, error) {
	var narrators []model.Narrator
	if err := s.readJSON(NarratorsFile, &narrators); err != nil {
		return nil, err
	}
	return narrators, nil
}

// SaveChains writes the chain table (chain ID -> narrator IDs).
func (s *Store) SaveChains(chains map[string][]int) error {
	return s.writeJSON(ChainsFile, chains)
}

// LoadChains reads the chain table.
func (s *Store) LoadChains() (map[string][]int, error) {
	chains := make(map[string][]int)
	if err := s.readJSON(ChainsFile, &chains); err != nil {
		return nil, err
	}
	return chains, nil
}

// SaveRecords writes the record -> chain ID map.
func (s *Store) SaveRecords(records map[string]string) error {
	return s.writeJSON(RecordsFile, records)
}

// LoadRecords reads the record -> chain ID map.
func (s *Store) LoadRecords() (map[string]string, error) {
	records := make(map[string]string)
	if err := s.readJSON(RecordsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveMismatches writes the reconciliation queue.
func (s *Store) SaveMismatches(name string, mismatches []model.Mismatch) error {
	return s.writeJSON(name, mismatches)
}

// LoadMismatches reads a reconciliation queue.
func (s *Store) LoadMismatches(name string) ([]model.Mismatch, error) {
	var mismatches []model.Mismatch
	if err := s.readJSON(name, &mismatches); err != nil {
		return nil, err
	}
	return mismatches, nil
}

// SaveJSON writes an arbitrary artifact (reports, resolutions).
func (s *Store) SaveJSON(name string, v any) error {
	return s.writeJSON(name, v)
}

// LoadAliases reads the manually curated name -> narrator ID table.
// A missing file is an empty table, not an error: the alias table is
// edited out-of-band and may not exist yet.
func LoadAliases(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	aliases := make(map[string]int)
	if err := json.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("parse aliases: %w", err)
	}
	return aliases, nil
}
