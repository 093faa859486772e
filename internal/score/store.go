// Package score persists the all-time high score as a single JSON integer
// in a file.
package score

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrMissing is returned by Open when the high score file does not exist.
	// It matches fs.ErrNotExist.
	ErrMissing = fmt.Errorf("high score file missing: %w", fs.ErrNotExist)
	// ErrCorrupt is returned by Open when the file is not a JSON number.
	ErrCorrupt = errors.New("high score file is not a non-negative JSON number")
)

// Store holds the high score and writes it back to its file.
// It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	value int
	dirty bool // Raised since the last successful save
}

// Open reads the high score from path. A missing file is an error: the
// file has to be created up front, e.g. with Init.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, ErrMissing)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	v, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Store{path: path, value: v}, nil
}

// Init creates path holding a high score of 0. An existing file is left
// untouched. Returns true if the file was created.
func Init(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("init %s: %w", path, err)
	}
	_, werr := f.Write(encode(0))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return false, fmt.Errorf("init %s: %w", path, werr)
	}
	return true, nil
}

func decode(data []byte) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if v, err := n.Int64(); err == nil && v >= 0 && v <= math.MaxInt32 {
		return int(v), nil
	}
	// Whole floats such as 1500.0 are accepted and truncated.
	f, err := n.Float64()
	if err != nil || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s", ErrCorrupt, n)
	}
	return int(f), nil
}

func encode(v int) []byte {
	data, _ := json.Marshal(v)
	return data
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Value returns the current high score.
func (s *Store) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Update raises the high score to score if it is higher. Returns true if
// the high score changed.
func (s *Store) Update(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score <= s.value {
		return false
	}
	s.value = score
	s.dirty = true
	return true
}

// Dirty reports whether the high score changed since the last save.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Save writes the high score to disk. The file is replaced atomically so a
// crash never leaves it truncated.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.path, encode(s.value)); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	s.dirty = false
	return nil
}

// Flush saves only if the high score changed since the last save.
func (s *Store) Flush() error {
	if !s.Dirty() {
		return nil
	}
	return s.Save()
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
