// Package capture manages captured data so it can be referenced across
// tool calls.
//
// Each capture gets a short human-readable ID (cap_001, cap_002, ...)
// pointing at an .sr artifact on disk, plus metadata and a decode-output
// cache. The metadata index is persisted as CBOR next to the artifacts
// so a store over a fixed directory can be reopened.
package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// ErrNotFound reports a capture ID that does not exist in the store.
var ErrNotFound = errors.New("capture not found")

const indexFile = "index.cbor"

// Info describes one capture.
type Info struct {
	ID          string    `cbor:"id"`
	FilePath    string    `cbor:"file_path"`
	CreatedAt   time.Time `cbor:"created_at"`
	Description string    `cbor:"description,omitempty"`
	SizeBytes   int64     `cbor:"-"`
}

type index struct {
	Counter  int    `cbor:"counter"`
	Captures []Info `cbor:"captures"`
}

// Store manages capture artifacts in a base directory.
// Safe for concurrent use.
type Store struct {
	baseDir string
	ownsDir bool

	mu       sync.Mutex
	captures map[string]Info
	order    []string
	counter  int
	decodes  map[string]string
}

// NewStore opens a store over baseDir, creating it if needed and
// reloading a persisted index when one exists. An empty baseDir uses an
// owned temp directory that Cleanup removes.
func NewStore(baseDir string) (*Store, error) {
	s := &Store{
		captures: map[string]Info{},
		decodes:  map[string]string{},
	}

	if baseDir == "" {
		dir, err := os.MkdirTemp("", "sigsum_")
		if err != nil {
			return nil, fmt.Errorf("capture store: %w", err)
		}
		s.baseDir = dir
		s.ownsDir = true
		return s, nil
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("capture store: %w", err)
	}
	s.baseDir = baseDir
	if err := s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

// BaseDir returns the directory holding the capture artifacts.
func (s *Store) BaseDir() string { return s.baseDir }

// NewCapture allocates a capture slot and returns its ID and the .sr
// file path the acquisition backend should write to.
func (s *Store) NewCapture(description string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	id := fmt.Sprintf("cap_%03d", s.counter)
	path := filepath.Join(s.baseDir, id+".sr")

	s.captures[id] = Info{
		ID:          id,
		FilePath:    path,
		CreatedAt:   time.Now(),
		Description: description,
	}
	s.order = append(s.order, id)

	if err := s.saveIndex(); err != nil {
		return "", "", err
	}
	return id, path, nil
}

// Get returns the capture info for id. The error names the available
// IDs so a caller that guessed wrong can recover.
func (s *Store) Get(id string) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.captures[id]
	if !ok {
		available := strings.Join(s.order, ", ")
		if available == "" {
			available = "(none)"
		}
		return Info{}, fmt.Errorf("%w: %q (available: %s)", ErrNotFound, id, available)
	}
	info.SizeBytes = fileSize(info.FilePath)
	return info, nil
}

// List returns all captures in creation order with current file sizes.
func (s *Store) List() []Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Info, 0, len(s.order))
	for _, id := range s.order {
		info := s.captures[id]
		info.SizeBytes = fileSize(info.FilePath)
		out = append(out, info)
	}
	return out
}

// CacheDecode stores raw decoder output for (capture, protocol) so
// repeat summarization never reruns the decoding backend.
func (s *Store) CacheDecode(id, protocol, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decodes[id+"/"+protocol] = raw
}

// CachedDecode returns the cached decoder output for (capture, protocol).
func (s *Store) CachedDecode(id, protocol string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.decodes[id+"/"+protocol]
	return raw, ok
}

// Cleanup removes the base directory when the store owns it and drops
// all state.
func (s *Store) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ownsDir {
		if err := os.RemoveAll(s.baseDir); err != nil {
			return fmt.Errorf("capture store cleanup: %w", err)
		}
	}
	s.captures = map[string]Info{}
	s.order = nil
	s.decodes = map[string]string{}
	return nil
}

// saveIndex persists the metadata index. Callers hold s.mu.
func (s *Store) saveIndex() error {
	idx := index{Counter: s.counter, Captures: make([]Info, 0, len(s.order))}
	for _, id := range s.order {
		idx.Captures = append(idx.Captures, s.captures[id])
	}
	data, err := cbor.Marshal(idx)
	if err != nil {
		return fmt.Errorf("capture store index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, indexFile), data, 0o644); err != nil {
		return fmt.Errorf("capture store index: %w", err)
	}
	return nil
}

func (s *Store) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("capture store index: %w", err)
	}

	var idx index
	if err := cbor.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("capture store index: %w", err)
	}
	s.counter = idx.Counter
	for _, info := range idx.Captures {
		s.captures[info.ID] = info
		s.order = append(s.order, info.ID)
	}
	return nil
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
