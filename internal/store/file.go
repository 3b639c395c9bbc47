package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fundbrief/internal/model"
)

const briefsFile = "briefs.json"

// FileStore is the single-node backend: the whole brief collection lives in
// one JSON file. Writes go through a temp file and rename so readers never
// observe a torn document.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &FileStore{path: filepath.Join(dir, briefsFile), now: time.Now}, nil
}

func (s *FileStore) Get() ([]model.DailyBrief, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

func (s *FileStore) read() []model.DailyBrief {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.DailyBrief{}
	}
	if err != nil {
		slog.Error("error reading brief store", "path", s.path, "error", err)
		return []model.DailyBrief{}
	}

	var briefs []model.DailyBrief
	if err := json.Unmarshal(raw, &briefs); err != nil {
		slog.Error("error decoding brief store", "path", s.path, "error", err)
		return []model.DailyBrief{}
	}

	return briefs
}

func (s *FileStore) write(briefs []model.DailyBrief) error {
	raw, err := json.Marshal(briefs)
	if err != nil {
		return fmt.Errorf("encode briefs: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write briefs: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace briefs: %w", err)
	}

	return nil
}

func (s *FileStore) Append(newBriefs []model.DailyBrief) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(append(s.read(), newBriefs...))
}

func (s *FileStore) Prune(maxAgeDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(pruneExpired(s.read(), maxAgeDays, s.now()))
}
