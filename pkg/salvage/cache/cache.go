// --- START OF FINAL REVISED FILE pkg/salvage/cache/cache.go ---
package cache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/stackvity/salvage/pkg/util"
)

// SchemaVersion is the current version of the snapshot cache file layout: an
// lz4 frame wrapping a gob FileHeader followed by the gob index. Files with a
// different version are ignored on Load.
const SchemaVersion = "1.0"

// --- Error Variables ---

// ErrCacheLoad indicates the cache file exists but could not be opened.
// Corrupt or mismatched files are not errors; they load as an empty cache.
var ErrCacheLoad = errors.New("failed to load snapshot cache")

// ErrCachePersist indicates the cache file could not be written.
var ErrCachePersist = errors.New("failed to persist snapshot cache")

// --- Data Structures ---

// Entry is one cached snapshot.
type Entry struct {
	Content       []byte
	FetchedAt     time.Time
	SchemaVersion string
	ToolVersion   string
}

// FileHeader is written ahead of the index.
type FileHeader struct {
	SchemaVersion string
	ToolVersion   string
}

// --- Interfaces ---

// Store keeps fetched file revisions between runs.
//
// Stability: Public API - Implementations can be provided externally.
// Get and Put MUST be safe for concurrent use.
type Store interface {
	// Load reads the index at path. A missing, empty, corrupt or
	// version-mismatched file yields an empty index and a nil error; only an
	// unreadable file returns an error wrapping ErrCacheLoad.
	Load(path string) error
	// Get returns the cached content for key.
	Get(key string) ([]byte, bool)
	// Put records content under key in memory.
	Put(key string, content []byte)
	// Persist atomically writes the in-memory index to path. It returns an
	// error wrapping ErrCachePersist on failure.
	Persist(path string) error
}

// Key builds the index key for one file at one revision of one repository.
func Key(repoPath, revision, filePath string) string {
	return repoPath + "@" + revision + ":" + filePath
}

// --- File Store ---

type fileStore struct {
	index       map[string]Entry
	mu          sync.RWMutex
	dirty       bool
	logger      *slog.Logger
	toolVersion string
	now         func() time.Time
}

// NewFileStore creates a gob-backed Store. toolVersion is recorded in the
// header; "dev" on either side matches any version.
func NewFileStore(loggerHandler slog.Handler, toolVersion string) Store {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	if toolVersion == "" {
		toolVersion = "dev"
	}
	logger := slog.New(loggerHandler).With(
		slog.String("component", "snapshotCache"),
		slog.String("impl", "file"),
	)
	return &fileStore{
		index:       make(map[string]Entry),
		logger:      logger,
		toolVersion: toolVersion,
		now:         time.Now,
	}
}

func (s *fileStore) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = make(map[string]Entry)
	s.dirty = false

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Cache file not found, starting empty.", "path", path)
			return nil
		}
		s.logger.Error("Critical cache load error", "path", path, "error", err.Error())
		return fmt.Errorf("%w: failed to open cache file '%s': %w", ErrCacheLoad, path, err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(lz4.NewReader(file))
	var header FileHeader
	if err := decoder.Decode(&header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			s.logger.Warn("Cache file is empty or truncated, treating as miss.", "path", path)
		} else {
			s.logger.Warn("Failed to decode cache header, treating as miss.", "path", path, "error", err.Error())
		}
		return nil
	}
	if header.SchemaVersion != SchemaVersion {
		s.logger.Warn("Cache schema version mismatch, ignoring cache.",
			"path", path, "file_schema", header.SchemaVersion, "expected_schema", SchemaVersion)
		return nil
	}
	if !versionsCompatible(header.ToolVersion, s.toolVersion) {
		s.logger.Warn("Cache tool version mismatch, ignoring cache.",
			"path", path, "file_version", header.ToolVersion, "expected_version", s.toolVersion)
		return nil
	}

	var loaded map[string]Entry
	if err := decoder.Decode(&loaded); err != nil {
		if !errors.Is(err, io.EOF) {
			s.logger.Warn("Failed to decode cache index, treating as miss.", "path", path, "error", err.Error())
		}
		return nil
	}
	if loaded != nil {
		s.index = loaded
	}
	s.logger.Debug("Cache loaded.", "path", path, "entries", len(s.index))
	return nil
}

func (s *fileStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.index[key]
	s.mu.RUnlock()

	if !ok {
		s.logger.Debug("Cache miss", "key", key)
		return nil, false
	}
	if entry.SchemaVersion != SchemaVersion || !versionsCompatible(entry.ToolVersion, s.toolVersion) {
		s.logger.Debug("Cache miss (stale entry)", "key", key)
		return nil, false
	}
	s.logger.Debug("Cache hit", "key", key, "fetched_at", entry.FetchedAt)
	return entry.Content, true
}

func (s *fileStore) Put(key string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index[key] = Entry{
		Content:       append([]byte(nil), content...),
		FetchedAt:     s.now().UTC(),
		SchemaVersion: SchemaVersion,
		ToolVersion:   s.toolVersion,
	}
	s.dirty = true
	s.logger.Debug("Cache entry stored", "key", key, "bytes", len(content))
}

func (s *fileStore) Persist(path string) error {
	s.mu.RLock()
	if !s.dirty {
		s.mu.RUnlock()
		s.logger.Debug("Skipping cache persist, nothing changed.", "path", path)
		return nil
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	encoder := gob.NewEncoder(zw)
	err := encoder.Encode(FileHeader{SchemaVersion: SchemaVersion, ToolVersion: s.toolVersion})
	if err == nil {
		err = encoder.Encode(s.index)
	}
	if closeErr := zw.Close(); err == nil {
		err = closeErr
	}
	entries := len(s.index)
	s.mu.RUnlock()

	if err != nil {
		s.logger.Error("Cache persist encoding error", "path", path, "error", err.Error())
		return fmt.Errorf("%w: failed to encode cache: %w", ErrCachePersist, err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("Cache persist error", "path", path, "error", err.Error())
		return fmt.Errorf("%w: %w", ErrCachePersist, err)
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	s.logger.Debug("Cache persisted.", "path", path, "entries", entries)
	return nil
}

func versionsCompatible(stored, current string) bool {
	return stored == current || stored == "dev" || current == "dev"
}

// --- No-op Store ---

// NoOpStore is used when caching is disabled. It never hits.
type NoOpStore struct{}

func (NoOpStore) Load(string) error { return nil }
func (NoOpStore) Get(string) ([]byte, bool) { return nil, false }
func (NoOpStore) Put(string, []byte) {}
func (NoOpStore) Persist(string) error { return nil }

var (
	_ Store = (*fileStore)(nil)
	_ Store = NoOpStore{}
)

// --- END OF FINAL REVISED FILE pkg/salvage/cache/cache.go ---
