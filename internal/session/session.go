// Package session orchestrates the load → aggregate → report flow for one
// analysis session. Each user action runs to completion against the
// session's own dataset; the only blocking operation is the outbound chat
// completion, which is guarded so at most one request is in flight.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/ingest"
	"github.com/polarsight/sea-ice-analyst/internal/observability"
	"github.com/polarsight/sea-ice-analyst/internal/report"
	"github.com/polarsight/sea-ice-analyst/internal/stats"
)

var (
	// ErrNoDataset is returned by every operation that needs data before a
	// CSV has been uploaded.
	ErrNoDataset = errors.New("no dataset loaded")

	// ErrReportInFlight is returned when a report is requested while a
	// previous request is still outstanding.
	ErrReportInFlight = errors.New("a report request is already in flight")
)

// SeriesPoint is one measurement shaped for the time-series chart.
type SeriesPoint struct {
	Date       time.Time         `json:"date"`
	Extent     float64           `json:"extent"`
	Hemisphere domain.Hemisphere `json:"hemisphere"`
}

// Session owns a dataset and serves analysis operations over it. Methods are
// safe for concurrent use; the dataset itself is immutable once loaded, so
// the mutex only guards the pointer swap.
type Session struct {
	loader    ingest.Loader
	completer domain.ChatCompleter
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu      sync.RWMutex
	dataset *domain.Dataset

	reportInFlight atomic.Bool
}

// New creates a Session around the given loader and chat completer.
func New(loader ingest.Loader, completer domain.ChatCompleter, logger *slog.Logger, metrics *observability.Metrics) *Session {
	return &Session{
		loader:    loader,
		completer: completer,
		logger:    logger,
		metrics:   metrics,
	}
}

// LoadDataset parses uploaded CSV bytes and makes the result the session's
// current dataset. A failed parse leaves the previous dataset in place.
func (s *Session) LoadDataset(data []byte) (*domain.Dataset, error) {
	ds, err := s.loader.Load(data)
	if err != nil {
		s.metrics.LoadErrors.Inc()
		return nil, err
	}

	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()

	s.metrics.DatasetsLoaded.Inc()
	s.metrics.DatasetRows.Observe(float64(ds.Len()))
	s.logger.Info("dataset loaded", "rows", ds.Len(), "source_hash", ds.SourceHash)
	return ds, nil
}

// Dataset returns the current dataset, or ErrNoDataset.
func (s *Session) Dataset() (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, ErrNoDataset
	}
	return s.dataset, nil
}

// Preview returns the first limit rows of the current dataset.
func (s *Session) Preview(limit int) ([]domain.Measurement, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	if limit > ds.Len() {
		limit = ds.Len()
	}
	return ds.Measurements[:limit], nil
}

// Series returns every measurement shaped as a dated chart point, in input
// order.
func (s *Session) Series() ([]SeriesPoint, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	points := make([]SeriesPoint, len(ds.Measurements))
	for i, m := range ds.Measurements {
		points[i] = SeriesPoint{Date: m.Date(), Extent: m.Extent, Hemisphere: m.Hemisphere}
	}
	return points, nil
}

// Stats computes both hemisphere summaries and the era comparison.
func (s *Session) Stats() (stats.HemisphereStats, error) {
	ds, err := s.Dataset()
	if err != nil {
		return stats.HemisphereStats{}, err
	}
	return stats.Analyze(ds)
}

// Trend returns per-year hemisphere averages and the fitted trend lines.
func (s *Session) Trend() ([]stats.YearlyPoint, []stats.TrendLine, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, nil, err
	}
	points := stats.YearlyAverages(ds)
	return points, stats.TrendLines(points), nil
}

// GenerateReport aggregates the current dataset, assembles the report
// prompt, and issues a single chat-completion request. Statistics failures
// stop the request before any network call; a failed call leaves the
// dataset and its derivable statistics untouched. At most one report is in
// flight at a time.
func (s *Session) GenerateReport(ctx context.Context, apiKey string) (string, error) {
	if !s.reportInFlight.CompareAndSwap(false, true) {
		return "", ErrReportInFlight
	}
	defer s.reportInFlight.Store(false)

	s.metrics.ReportInFlight.Set(1)
	defer s.metrics.ReportInFlight.Set(0)

	hemiStats, err := s.Stats()
	if err != nil {
		return "", err
	}
	params, err := report.NewPromptParams(hemiStats)
	if err != nil {
		return "", err
	}

	text, err := s.completer.Complete(ctx, apiKey, report.BuildMessages(params))
	if err != nil {
		s.logger.Warn("report generation failed", "error", err)
		return "", err
	}
	return text, nil
}
