package catalog

import (
	"strings"

	"course-catalog/internal/domain"
	"course-catalog/internal/normalize"
)

// Change summarizes how a reload moved the catalog.
type Change struct {
	Created []domain.Course
	Updated []domain.Course
	Removed []string // ids
}

func (c Change) Empty() bool {
	return len(c.Created) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// Diff compares the published catalog with a freshly loaded one by id.
// Results follow catalog order; for duplicate ids only the first is compared.
func Diff(prev, next []domain.Course) Change {
	prevByID := firstByID(prev)

	var ch Change
	seen := map[string]bool{}
	for _, nc := range next {
		if seen[nc.ID] {
			continue
		}
		seen[nc.ID] = true

		pc, ok := prevByID[nc.ID]
		if !ok {
			ch.Created = append(ch.Created, nc)
			continue
		}
		if needsUpdate(pc, nc) {
			ch.Updated = append(ch.Updated, nc)
		}
	}

	for _, pc := range prev {
		if seen[pc.ID] {
			continue
		}
		seen[pc.ID] = true
		ch.Removed = append(ch.Removed, pc.ID)
	}
	return ch
}

func firstByID(cs []domain.Course) map[string]domain.Course {
	out := make(map[string]domain.Course, len(cs))
	for _, c := range cs {
		if _, ok := out[c.ID]; !ok {
			out[c.ID] = c
		}
	}
	return out
}

func needsUpdate(p, n domain.Course) bool {
	// ids are random per load unless the sheet carries them, so only content counts
	pairs := [][2]string{
		{p.Title, n.Title},
		{p.ShortDescription, n.ShortDescription},
		{p.FullDescription, n.FullDescription},
		{p.Category, n.Category},
		{p.Level, n.Level},
		{p.Duration, n.Duration},
		{p.Price, n.Price},
		{p.VideoURL, n.VideoURL},
		{normalize.FormatResources(p.Resources), normalize.FormatResources(n.Resources)},
	}
	for _, pr := range pairs {
		if norm(pr[0]) != norm(pr[1]) {
			return true
		}
	}
	return false
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
