// Package embed turns raw course video links into iframe-playable URLs.
//
// Two hosts are supported and they are deliberately kept apart: Google Drive
// links are rewritten once while a course is normalized, YouTube watch links
// are rewritten when a course is rendered. Exactly one strategy is active per
// catalog.
package embed

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"course-catalog/internal/domain"
)

// Kind selects the video host handling.
type Kind int

const (
	DriveEmbedStrategy Kind = iota
	YouTubeSubstituteStrategy
)

func (k Kind) String() string {
	switch k {
	case DriveEmbedStrategy:
		return "drive"
	case YouTubeSubstituteStrategy:
		return "youtube"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a config value to a Kind. Empty means drive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drive", "gdrive":
		return DriveEmbedStrategy, nil
	case "youtube", "yt":
		return YouTubeSubstituteStrategy, nil
	default:
		return DriveEmbedStrategy, fmt.Errorf("embed: unknown strategy %q", s)
	}
}

// Strategy is the configured embed behavior.
type Strategy struct {
	Kind Kind
}

// AtNormalize returns the embed URL stored on the Course.
func (s Strategy) AtNormalize(videoURL string) string {
	if s.Kind == DriveEmbedStrategy {
		return DriveToPreview(videoURL)
	}
	return ""
}

// RenderURL returns the URL a presentation layer should put in the iframe.
// Empty means "no video".
func (s Strategy) RenderURL(c domain.Course) string {
	if s.Kind == YouTubeSubstituteStrategy {
		return YouTubeEmbed(c.VideoURL)
	}
	return c.EmbedURL
}

var driveFileID = regexp.MustCompile(`/d/([a-zA-Z0-9_-]{10,})`)

const drivePreviewFmt = "https://drive.google.com/file/d/%s/preview"

// DriveToPreview rewrites a Google Drive share link to its /preview form.
// Anything it cannot recognize is returned unchanged.
func DriveToPreview(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "/preview") {
		return raw
	}
	if m := driveFileID.FindStringSubmatch(raw); m != nil {
		return fmt.Sprintf(drivePreviewFmt, m[1])
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	if id := u.Query().Get("id"); id != "" {
		return fmt.Sprintf(drivePreviewFmt, id)
	}
	return raw
}

// YouTubeEmbed turns a watch?v= link into an embed/ link.
func YouTubeEmbed(raw string) string {
	return strings.Replace(raw, "watch?v=", "embed/", 1)
}
