// Package recordstore persists coverage records as append-only JSONL files
// partitioned by company and quarter: root/<company>/<quarter>.jsonl. Writers
// are serialized per destination path by a process-local lock table, and each
// record is appended with a single write so concurrent appends never
// interleave within a line.
package recordstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/coverage-cli/internal/model"
)

// Store is a JSONL record store rooted at one directory. Safe for concurrent
// use within a single process.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a Store rooted at dir. The directory is created lazily on the
// first append.
func New(dir string) *Store {
	return &Store{root: dir, locks: make(map[string]*sync.Mutex)}
}

// Path returns the partition file for a company and quarter.
func (s *Store) Path(company, quarter string) string {
	return filepath.Join(s.root, company, quarter+".jsonl")
}

// lockFor returns the mutex serializing writes to one path, creating it on
// first use.
func (s *Store) lockFor(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.Mutex{}
		s.locks[path] = l
	}
	return l
}

// Append writes one record to its partition and returns the partition path.
// Records are never deduplicated; the same URL may legitimately repeat.
func (s *Store) Append(rec model.Record) (string, error) {
	if rec.Company == "" || rec.Quarter == "" {
		return "", eris.New("recordstore: record missing company or quarter")
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return "", eris.Wrap(err, "recordstore: marshal record")
	}
	line = append(line, '\n')

	path := s.Path(rec.Company, rec.Quarter)
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", eris.Wrapf(err, "recordstore: create partition dir for %s", path)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", eris.Wrapf(err, "recordstore: open %s", path)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return "", eris.Wrapf(err, "recordstore: append to %s", path)
	}
	if err := f.Close(); err != nil {
		return "", eris.Wrapf(err, "recordstore: close %s", path)
	}
	return path, nil
}

// ReadAll loads every record in a company/quarter partition, preserving file
// order. A missing partition is an empty result, not an error. Lines that do
// not parse are skipped with a warning so one bad line cannot block a report.
func (s *Store) ReadAll(company, quarter string) ([]model.Record, error) {
	path := s.Path(company, quarter)
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "recordstore: open %s", path)
	}
	defer f.Close()

	var records []model.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec model.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			zap.L().Warn("skipping malformed record line",
				zap.String("path", path),
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "recordstore: read %s", path)
	}
	return records, nil
}

// Companies lists the company partitions present under the store root.
func (s *Store) Companies() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "recordstore: list %s", s.root)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// Quarters lists the quarter partitions stored for one company.
func (s *Store) Quarters(company string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, company))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "recordstore: list quarters for %s", company)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && filepath.Ext(name) == ".jsonl" {
			out = append(out, name[:len(name)-len(".jsonl")])
		}
	}
	return out, nil
}
