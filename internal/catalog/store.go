package catalog

import (
	"sort"
	"strings"
	"sync"

	"course-catalog/internal/domain"
)

// Filter narrows a listing. Empty fields match everything; set fields are ANDed.
type Filter struct {
	Search   string // case-insensitive substring over title, short, category and full description
	Category string // exact match
	Level    string // exact match
}

// State is the outcome of the last catalog load.
type State string

const (
	StateEmpty    State = "empty"
	StateLive     State = "live"
	StateFallback State = "fallback"
	StateFailed   State = "failed"
)

// LoadStatus describes the last load for presentation layers.
type LoadStatus struct {
	State   State  `json:"state"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
}

type snapshot struct {
	courses    []domain.Course
	byID       map[string]int
	categories []string
	levels     []string
	status     LoadStatus
}

// Store is the in-memory read model of the catalog. A load replaces the whole
// snapshot; readers never see a partially replaced catalog.
type Store struct {
	mu   sync.RWMutex
	snap snapshot
}

func NewStore() *Store {
	s := &Store{}
	s.snap = build(nil, LoadStatus{State: StateEmpty})
	return s
}

// Replace swaps in a new catalog.
func (s *Store) Replace(courses []domain.Course, status LoadStatus) {
	snap := build(courses, status)
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func build(courses []domain.Course, status LoadStatus) snapshot {
	cs := make([]domain.Course, len(courses))
	copy(cs, courses)

	byID := make(map[string]int, len(cs))
	cats := map[string]struct{}{}
	levels := map[string]struct{}{}
	for i, c := range cs {
		// duplicate source ids resolve to the first occurrence
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = i
		}
		cats[c.Category] = struct{}{}
		levels[c.Level] = struct{}{}
	}

	status.Count = len(cs)
	return snapshot{
		courses:    cs,
		byID:       byID,
		categories: sortedKeys(cats),
		levels:     sortedKeys(levels),
		status:     status,
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Store) current() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// All returns every course in source order.
func (s *Store) All() []domain.Course {
	return clone(s.current().courses)
}

func (s *Store) Len() int {
	return len(s.current().courses)
}

// Categories are deduplicated and sorted ascending.
func (s *Store) Categories() []string {
	return append([]string(nil), s.current().categories...)
}

// Levels are deduplicated and sorted ascending.
func (s *Store) Levels() []string {
	return append([]string(nil), s.current().levels...)
}

func (s *Store) Status() LoadStatus {
	return s.current().status
}

// ByID looks up a course for the detail view.
func (s *Store) ByID(id string) (domain.Course, bool) {
	snap := s.current()
	i, ok := snap.byID[id]
	if !ok {
		return domain.Course{}, false
	}
	return snap.courses[i], true
}

// Filter returns the matching courses in source order.
func (s *Store) Filter(f Filter) []domain.Course {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := []domain.Course{}
	for _, c := range s.current().courses {
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.Level != "" && c.Level != f.Level {
			continue
		}
		if q != "" && !strings.Contains(haystack(c), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func haystack(c domain.Course) string {
	return strings.ToLower(strings.Join([]string{c.Title, c.ShortDescription, c.Category, c.FullDescription}, " "))
}

func clone(in []domain.Course) []domain.Course {
	out := make([]domain.Course, len(in))
	copy(out, in)
	return out
}
