// Package store persists per-file records and the cross-file report.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/models"
)

// Store receives each FileRecord exactly once. Append must be safe for
// concurrent use.
type Store interface {
	Append(rec *models.FileRecord) error
	Close() error
}

var ErrClosed = errors.New("store is closed")

// JSONLStore appends one JSON object per line to a file.
type JSONLStore struct {
	path  string
	file  *os.File
	mutex sync.Mutex
	count int
}

// OpenJSONL truncates path and opens it for appending.
func OpenJSONL(path string) (*JSONLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store %s: %w", path, err)
	}
	logger.Debug("Opened record store %s", path)
	return &JSONLStore{path: path, file: f}, nil
}

// Append writes rec as a single line with one Write call, so concurrent
// appends never interleave.
func (s *JSONLStore) Append(rec *models.FileRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record for %s: %w", rec.File, err)
	}
	line = append(line, '\n')

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.file == nil {
		return ErrClosed
	}
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("failed to append record for %s: %w", rec.File, err)
	}
	s.count++
	return nil
}

func (s *JSONLStore) Path() string {
	return s.path
}

func (s *JSONLStore) Count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.count
}

func (s *JSONLStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	logger.Debug("Closed record store %s after %d records", s.path, s.count)
	return err
}

// MemoryStore keeps records in memory.
type MemoryStore struct {
	mutex   sync.Mutex
	records []*models.FileRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(rec *models.FileRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Records returns the stored records sorted by file.
func (m *MemoryStore) Records() []*models.FileRecord {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]*models.FileRecord, len(m.records))
	copy(out, m.records)
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// multi fans each record out to several stores.
type multi []Store

// Tee appends to every store in order and stops at the first error.
func Tee(stores ...Store) Store {
	return multi(stores)
}

func (m multi) Append(rec *models.FileRecord) error {
	for _, s := range m {
		if err := s.Append(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReadRecords loads a JSONL record file. Blank lines are skipped; a line
// that does not decode fails with its line number.
func ReadRecords(path string) ([]*models.FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store %s: %w", path, err)
	}
	defer f.Close()

	var out []*models.FileRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		rec := &models.FileRecord{}
		if err := json.Unmarshal(b, rec); err != nil {
			return nil, fmt.Errorf("%s:%d: failed to decode record: %w", path, line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out, nil
}

// WriteReport writes report as indented JSON, replacing path atomically.
func WriteReport(path string, report *models.CrossFileReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	logger.Debug("Wrote report %s (%d bytes)", path, len(data))
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*models.CrossFileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	report := &models.CrossFileReport{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return report, nil
}
