package catalog

import (
	"context"
	"errors"
	"testing"

	"course-catalog/internal/domain"
	"course-catalog/internal/embed"
	"course-catalog/internal/httpx"
	"course-catalog/internal/normalize"
	"course-catalog/internal/providers/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubSource struct {
	recs []domain.RawRecord
	err  error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) ListRecords(ctx context.Context) ([]domain.RawRecord, error) {
	return s.recs, s.err
}

func newLoader(src *stubSource) *Loader {
	l := &Loader{
		Normalizer: normalize.New(embed.Strategy{Kind: embed.DriveEmbedStrategy}, normalize.DeterministicIDs),
		Store:      NewStore(),
		Logger:     zap.NewNop(),
	}
	if src != nil {
		l.Source = *src
	}
	return l
}

func TestLoadLive(t *testing.T) {
	l := newLoader(&stubSource{recs: []domain.RawRecord{
		{"id": "x1", "title": "Live One", "category": "Math"},
		{"title": "No ID"},
	}})

	status := l.Load(context.Background())
	assert.Equal(t, StateLive, status.State)
	assert.Equal(t, "stub", status.Source)
	assert.Equal(t, 2, status.Count)

	c, ok := l.Store.ByID("x1")
	require.True(t, ok)
	assert.Equal(t, "Live One", c.Title)
	assert.Equal(t, []string{"General", "Math"}, l.Store.Categories())

	_, ok = l.Store.ByID(normalize.DeterministicID("No ID", "General"))
	assert.True(t, ok)
}

func TestLoadFallbackOnFetchError(t *testing.T) {
	l := newLoader(&stubSource{err: &httpx.FetchError{Method: "GET", URL: "https://sheet.test", StatusCode: 503}})

	status := l.Load(context.Background())
	assert.Equal(t, StateFallback, status.State)
	assert.Equal(t, 2, status.Count)

	c, ok := l.Store.ByID("c01")
	require.True(t, ok)
	assert.Equal(t, "Foundations of Biology", c.Title)
	assert.Equal(t, []domain.Resource{{Name: "Syllabus (PDF)", Href: "#"}, {Name: "Images (ZIP)", Href: "#"}}, c.Resources)
	assert.Equal(t, []string{"Biology", "Computer Science"}, l.Store.Categories())
}

func TestLoadFallbackOnAnyNonParseError(t *testing.T) {
	l := newLoader(&stubSource{err: errors.New("dns failure")})
	assert.Equal(t, StateFallback, l.Load(context.Background()).State)
}

func TestLoadFallbackWithoutSource(t *testing.T) {
	l := newLoader(nil)

	status := l.Load(context.Background())
	assert.Equal(t, StateFallback, status.State)
	assert.Equal(t, "", status.Source)
	assert.Equal(t, 2, l.Store.Len())
}

func TestLoadFailedOnParseError(t *testing.T) {
	l := newLoader(&stubSource{err: &sheet.ParseError{Reason: "invalid json"}})

	status := l.Load(context.Background())
	assert.Equal(t, StateFailed, status.State)
	assert.Equal(t, FailedMessage, status.Message)
	assert.Equal(t, 0, status.Count)
	assert.Equal(t, 0, l.Store.Len())
}

func TestLoadReplacesPreviousCatalog(t *testing.T) {
	src := &stubSource{recs: []domain.RawRecord{{"id": "a"}, {"id": "b"}}}
	l := newLoader(src)
	l.Load(context.Background())
	require.Equal(t, 2, l.Store.Len())

	l.Source = stubSource{recs: []domain.RawRecord{{"id": "z"}}}
	l.Load(context.Background())

	_, ok := l.Store.ByID("a")
	assert.False(t, ok)
	_, ok = l.Store.ByID("z")
	assert.True(t, ok)
}

func TestReloadLogsChanges(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	src := &stubSource{recs: []domain.RawRecord{{"id": "a", "title": "Alpha"}, {"id": "b", "title": "Beta"}}}
	l := newLoader(src)
	l.Logger = zap.New(core)

	l.Load(context.Background())
	assert.Equal(t, 0, logs.FilterMessage("catalog changed").Len())

	l.Source = stubSource{recs: []domain.RawRecord{{"id": "a", "title": "Alpha 2"}, {"id": "c", "title": "Gamma"}}}
	l.Load(context.Background())

	entries := logs.FilterMessage("catalog changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["created"])
	assert.Equal(t, int64(1), fields["updated"])
	assert.Equal(t, int64(1), fields["removed"])

	l.Load(context.Background())
	assert.Equal(t, 1, logs.FilterMessage("catalog changed").Len())
}

func TestFailedReloadKeepsLiveCatalog(t *testing.T) {
	l := newLoader(&stubSource{recs: []domain.RawRecord{{"id": "x1", "title": "Live One"}}})
	require.Equal(t, StateLive, l.Load(context.Background()).State)

	l.Source = stubSource{err: errors.New("dns failure")}
	status := l.Load(context.Background())
	assert.Equal(t, StateLive, status.State)
	_, ok := l.Store.ByID("x1")
	assert.True(t, ok)

	l.Source = stubSource{err: &sheet.ParseError{Reason: "missing prefix"}}
	assert.Equal(t, StateLive, l.Load(context.Background()).State)
	assert.Equal(t, 1, l.Store.Len())
}
