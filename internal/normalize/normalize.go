package normalize

import (
	"fmt"
	"strings"

	"course-catalog/internal/domain"
	"course-catalog/internal/embed"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// IDPolicy decides the id of a record that has none.
type IDPolicy int

const (
	// RandomIDs gives every id-less record a fresh uuid.
	RandomIDs IDPolicy = iota
	// DeterministicIDs derives the id from title and category so reloads and
	// tests see the same value.
	DeterministicIDs
)

// Normalizer maps canonical raw records onto Course values.
type Normalizer struct {
	Embed embed.Strategy
	IDs   IDPolicy
}

// New returns a Normalizer with the given embed strategy and id policy.
func New(strategy embed.Strategy, ids IDPolicy) *Normalizer {
	return &Normalizer{Embed: strategy, IDs: ids}
}

// Normalize never fails: every field has a default.
func (n *Normalizer) Normalize(raw domain.RawRecord) domain.Course {
	short := raw.Get(domain.KeyShort, "summary")
	title := firstNonEmpty(raw.Get(domain.KeyTitle), "Untitled")
	category := firstNonEmpty(raw.Get(domain.KeyCategory), "General")

	id := raw.Get(domain.KeyID)
	if id == "" {
		id = n.newID(title, category)
	}

	videoURL := raw.Get(domain.KeyVideoURL)

	return domain.Course{
		ID:               id,
		Title:            title,
		ShortDescription: short,
		FullDescription:  firstNonEmpty(raw.Get(domain.KeyFullDesc, "full_desc", "description"), short),
		Category:         category,
		Level:            firstNonEmpty(raw.Get(domain.KeyLevel), "Beginner"),
		Duration:         raw.Get(domain.KeyDuration),
		Price:            firstNonEmpty(raw.Get(domain.KeyPrice), "Free"),
		VideoURL:         videoURL,
		EmbedURL:         n.Embed.AtNormalize(videoURL),
		Resources:        ParseResources(raw[domain.KeyResources]),
	}
}

// NormalizeAll keeps input order.
func (n *Normalizer) NormalizeAll(raws []domain.RawRecord) []domain.Course {
	out := make([]domain.Course, 0, len(raws))
	for _, r := range raws {
		out = append(out, n.Normalize(r))
	}
	return out
}

func (n *Normalizer) newID(title, category string) string {
	if n.IDs == DeterministicIDs {
		return DeterministicID(title, category)
	}
	return uuid.NewString()
}

// DeterministicID hashes title and category into a stable course id.
func DeterministicID(title, category string) string {
	h := xxh3.HashString(strings.TrimSpace(title) + "\x00" + strings.TrimSpace(category))
	return fmt.Sprintf("SHT+%016x", h)
}

// ParseResources reads the "label|url;label|url" mini-format.
// Entries without a url are dropped; an empty label falls back to the url.
func ParseResources(s string) []domain.Resource {
	out := []domain.Resource{}
	for _, entry := range strings.Split(s, ";") {
		label, href, _ := strings.Cut(entry, "|")
		label = strings.TrimSpace(label)
		href = strings.TrimSpace(href)
		if href == "" {
			continue
		}
		if label == "" {
			label = href
		}
		out = append(out, domain.Resource{Name: label, Href: href})
	}
	return out
}

// FormatResources is the inverse of ParseResources.
func FormatResources(rs []domain.Resource) string {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, r.Name+"|"+r.Href)
	}
	return strings.Join(parts, ";")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
