package domain

import "strings"

// RawRecord is one parsed sheet row: column key -> cell text.
// Keys follow the casing convention of the ingestion mode that produced it
// until the sheet schema adapter maps them onto the canonical keys below.
type RawRecord map[string]string

// Canonical raw keys consumed by the normalizer.
const (
	KeyID        = "id"
	KeyTitle     = "title"
	KeyShort     = "short"
	KeyFullDesc  = "fulldesc"
	KeyCategory  = "category"
	KeyLevel     = "level"
	KeyDuration  = "duration"
	KeyPrice     = "price"
	KeyVideoURL  = "video_url"
	KeyResources = "resources"
)

// Get returns the trimmed value for the first key that has a non-empty value.
func (r RawRecord) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// Course is the canonical representation of a catalog entry.
// Values are built once by the normalizer and never mutated afterwards.
type Course struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short"`
	FullDescription  string     `json:"fulldesc"`
	Category         string     `json:"category"`
	Level            string     `json:"level"`
	Duration         string     `json:"duration"`
	Price            string     `json:"price"`
	VideoURL         string     `json:"video_url"`
	EmbedURL         string     `json:"embed_url"`
	Resources        []Resource `json:"resources"`
}

// Resource is a downloadable link attached to a course.
type Resource struct {
	Name string `json:"name"`
	Href string `json:"href"`
}
