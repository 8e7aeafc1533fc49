package catalog

import (
	"context"
	"errors"

	"course-catalog/internal/normalize"
	"course-catalog/internal/providers"
	"course-catalog/internal/providers/sheet"

	"go.uber.org/zap"
)

// FailedMessage is shown in place of the listing when the table-query payload is unusable.
const FailedMessage = "Failed to load courses."

// Loader runs fetch -> parse -> normalize and publishes the result to a Store.
type Loader struct {
	Source     providers.RecordSource // nil means no endpoint is configured
	Normalizer *normalize.Normalizer
	Store      *Store
	Logger     *zap.Logger
}

// Load always leaves the store with something renderable:
//   - no endpoint or a fetch failure: the built-in fallback catalog
//   - an undecodable table-query envelope: an empty catalog in the failed state
//   - any failure once a live catalog is published: the live catalog is kept
func (l *Loader) Load(ctx context.Context) LoadStatus {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if l.Source == nil {
		log.Info("no catalog endpoint configured, using fallback courses")
		return l.publishFallback("")
	}

	recs, err := l.Source.ListRecords(ctx)
	if err != nil && l.Store.Status().State == StateLive {
		log.Warn("catalog reload failed, keeping current courses",
			zap.String("source", l.Source.Name()),
			zap.Error(err),
		)
		return l.Store.Status()
	}
	if err != nil {
		var perr *sheet.ParseError
		if errors.As(err, &perr) {
			log.Error("catalog payload could not be decoded",
				zap.String("source", l.Source.Name()),
				zap.Error(err),
			)
			status := LoadStatus{State: StateFailed, Source: l.Source.Name(), Message: FailedMessage}
			l.Store.Replace(nil, status)
			return l.Store.Status()
		}

		log.Warn("failed to fetch courses, using fallback data",
			zap.String("source", l.Source.Name()),
			zap.Error(err),
		)
		return l.publishFallback(l.Source.Name())
	}

	courses := l.Normalizer.NormalizeAll(recs)
	if l.Store.Status().State == StateLive {
		if ch := Diff(l.Store.All(), courses); !ch.Empty() {
			log.Info("catalog changed",
				zap.Int("created", len(ch.Created)),
				zap.Int("updated", len(ch.Updated)),
				zap.Int("removed", len(ch.Removed)),
			)
		}
	}
	l.Store.Replace(courses, LoadStatus{State: StateLive, Source: l.Source.Name()})
	log.Info("loaded courses", zap.String("source", l.Source.Name()), zap.Int("count", len(courses)))
	return l.Store.Status()
}

func (l *Loader) publishFallback(source string) LoadStatus {
	courses := l.Normalizer.NormalizeAll(FallbackRecords())
	l.Store.Replace(courses, LoadStatus{State: StateFallback, Source: source})
	return l.Store.Status()
}
