package sheet

import (
	"context"
	"fmt"
	"strings"

	"course-catalog/internal/concurrency"
	"course-catalog/internal/domain"
)

// Mode is the configured payload flavor of the endpoint. It is never sniffed
// from the response body.
type Mode string

const (
	ModeCSV  Mode = "csv"
	ModeGViz Mode = "gviz"
)

// ParseMode maps a config value to a Mode. Empty means csv.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCSV:
		return ModeCSV, nil
	case ModeGViz, "json", "tq":
		return ModeGViz, nil
	default:
		return "", fmt.Errorf("sheet: unknown mode %q", s)
	}
}

// Parse turns a payload into records using the mode's parser and schema adapter.
func (m Mode) Parse(text string) ([]domain.RawRecord, error) {
	switch m {
	case ModeGViz:
		recs, err := ParseGViz(text)
		if err != nil {
			return nil, err
		}
		for i, r := range recs {
			recs[i] = AdaptGViz(r)
		}
		return recs, nil
	default:
		recs := ParseCSV(text)
		for i, r := range recs {
			recs[i] = AdaptCSV(r)
		}
		return recs, nil
	}
}

// Provider reads course records from one or more sheet endpoints (tabs).
type Provider struct {
	C    *Client
	URLs []string
	Mode Mode
}

func (p Provider) Name() string { return "sheet-" + string(p.Mode) }

// ListRecords fetches every URL concurrently and concatenates the records in
// URL order. Any fetch or parse failure fails the whole listing; the earliest
// URL's error is returned.
func (p Provider) ListRecords(ctx context.Context) ([]domain.RawRecord, error) {
	if len(p.URLs) == 0 {
		return nil, fmt.Errorf("sheet: no endpoint configured")
	}

	pages, errs := concurrency.ProcessParallel(ctx, p.URLs, concurrency.DefaultOptions(),
		func(ctx context.Context, _ int, url string) ([]domain.RawRecord, error) {
			text, err := p.C.Fetch(ctx, url)
			if err != nil {
				return nil, err
			}
			return p.Mode.Parse(text)
		})
	if len(errs) > 0 {
		return nil, fmt.Errorf("sheet: list records: %w", errs[0])
	}

	var all []domain.RawRecord
	for _, page := range pages {
		all = append(all, page...)
	}
	if all == nil {
		all = []domain.RawRecord{}
	}
	return all, nil
}
