// Package progress persists which courses the local user has completed.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Tracker is a grow-only set of completed course ids backed by a JSON array
// file. Every successful mark is written through immediately.
type Tracker struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	order []string
	set   map[string]struct{}
}

// Open reads the persisted set once. A missing, unreadable or corrupt file
// yields an empty set; only the last two are logged.
func Open(path string, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{path: path, logger: logger, set: map[string]struct{}{}}

	ids, err := load(path)
	if err != nil {
		logger.Warn("ignoring unreadable completion state", zap.String("path", path), zap.Error(err))
		return t
	}
	for _, id := range ids {
		t.add(id)
	}
	return t
}

func load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open completion state: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read completion state: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode completion state: %w", err)
	}
	return ids, nil
}

func (t *Tracker) add(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := t.set[id]; ok {
		return false
	}
	t.set[id] = struct{}{}
	t.order = append(t.order, id)
	return true
}

func (t *Tracker) IsCompleted(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.set[id]
	return ok
}

// MarkCompleted adds id and persists the set. added is false when id was
// already completed, in which case nothing is written. On a write error the
// id is not kept.
func (t *Tracker) MarkCompleted(id string) (added bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.add(id) {
		return false, nil
	}
	if err := save(t.path, t.order); err != nil {
		// not persisted, so a retry has to write again
		delete(t.set, id)
		t.order = t.order[:len(t.order)-1]
		return false, err
	}
	return true, nil
}

// PercentComplete is the rounded share of catalogSize that is completed, 0..100.
func (t *Tracker) PercentComplete(catalogSize int) int {
	if catalogSize <= 0 {
		return 0
	}
	t.mu.Lock()
	done := len(t.order)
	t.mu.Unlock()

	p := int(math.Round(float64(done) / float64(catalogSize) * 100))
	if p > 100 {
		return 100
	}
	return p
}

// IDs returns the completed ids in the order they were marked.
func (t *Tracker) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// save writes the set atomically via a temp file and rename.
func save(path string, ids []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode completion state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
