package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/ingest"
	"github.com/polarsight/sea-ice-analyst/internal/observability"
)

const fixtureCSV = "Year, Month, Day, Extent, hemisphere\n" +
	"1979,1,1,12.5,north\n" +
	"1979,1,1,11.0,south\n" +
	"2019,12,31,10.0,north\n" +
	"2019,12,31,9.5,south\n"

// fakeCompleter records the messages it was asked to complete.
type fakeCompleter struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
	apiKey   string
	text     string
	err      error
	release  chan struct{} // when non-nil, Complete blocks until closed
}

func (f *fakeCompleter) Complete(ctx context.Context, apiKey string, messages []domain.ChatMessage) (string, error) {
	f.mu.Lock()
	f.apiKey = apiKey
	f.messages = messages
	release := f.release
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func testSession(completer domain.ChatCompleter) *Session {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(ingest.CSVLoader{}, completer, logger, observability.NewMetricsForTesting())
}

func TestSession_OperationsRequireDataset(t *testing.T) {
	s := testSession(&fakeCompleter{})

	_, err := s.Preview(5)
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = s.Series()
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = s.Stats()
	assert.ErrorIs(t, err, ErrNoDataset)
	_, _, err = s.Trend()
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = s.GenerateReport(context.Background(), "sk-key")
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestSession_LoadDataset(t *testing.T) {
	s := testSession(&fakeCompleter{})

	ds, err := s.LoadDataset([]byte(fixtureCSV))
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())

	rows, err := s.Preview(2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 12.5, rows[0].Extent)

	// Preview larger than the table is clamped.
	rows, err = s.Preview(100)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestSession_FailedLoadKeepsPreviousDataset(t *testing.T) {
	s := testSession(&fakeCompleter{})

	_, err := s.LoadDataset([]byte(fixtureCSV))
	require.NoError(t, err)

	_, err = s.LoadDataset([]byte("Year,Month,Day,Extent,hemisphere\n1990,2,30,1.0,north\n"))
	require.ErrorIs(t, err, domain.ErrInput)

	ds, err := s.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len(), "failed load must leave the previous dataset usable")
}

func TestSession_Series(t *testing.T) {
	s := testSession(&fakeCompleter{})
	_, err := s.LoadDataset([]byte(fixtureCSV))
	require.NoError(t, err)

	points, err := s.Series()
	require.NoError(t, err)
	require.Len(t, points, 4)
	assert.Equal(t, time.Date(1979, time.January, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, domain.North, points[0].Hemisphere)
	assert.Equal(t, domain.South, points[3].Hemisphere)
}

func TestSession_Trend(t *testing.T) {
	s := testSession(&fakeCompleter{})
	_, err := s.LoadDataset([]byte(fixtureCSV))
	require.NoError(t, err)

	points, lines, err := s.Trend()
	require.NoError(t, err)
	// 2 years × 2 hemispheres; both hemispheres have two yearly points.
	assert.Len(t, points, 4)
	require.Len(t, lines, 2)
}

func TestSession_GenerateReport(t *testing.T) {
	completer := &fakeCompleter{text: "## Analysis\n\nThe north is shrinking."}
	s := testSession(completer)
	_, err := s.LoadDataset([]byte(fixtureCSV))
	require.NoError(t, err)

	text, err := s.GenerateReport(context.Background(), "sk-key")
	require.NoError(t, err)
	assert.Equal(t, "## Analysis\n\nThe north is shrinking.", text)
	assert.Equal(t, "sk-key", completer.apiKey)

	require.Len(t, completer.messages, 2)
	user := completer.messages[1].Content
	assert.Contains(t, user, "12.50", "past era mean embedded at two decimals")
	assert.Contains(t, user, "10.00", "recent era mean embedded at two decimals")
	assert.Contains(t, user, "count            2")
}

func TestSession_GenerateReport_FailureLeavesStatsUsable(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("connection reset")}
	s := testSession(completer)
	_, err := s.LoadDataset([]byte(fixtureCSV))
	require.NoError(t, err)

	before, err := s.Stats()
	require.NoError(t, err)

	_, err = s.GenerateReport(context.Background(), "sk-key")
	require.ErrorContains(t, err, "connection reset")

	after, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed call leaves computed statistics unchanged")

	// The action is retryable.
	completer.err = nil
	completer.text = "report"
	text, err := s.GenerateReport(context.Background(), "sk-key")
	require.NoError(t, err)
	assert.Equal(t, "report", text)
}

func TestSession_GenerateReport_MissingHemisphereStopsRequest(t *testing.T) {
	completer := &fakeCompleter{text: "should never be produced"}
	s := testSession(completer)
	_, err := s.LoadDataset([]byte("Year,Month,Day,Extent,hemisphere\n1990,1,1,12.0,north\n"))
	require.NoError(t, err)

	_, err = s.GenerateReport(context.Background(), "sk-key")
	assert.ErrorIs(t, err, domain.ErrComputation)
	assert.Nil(t, completer.messages, "no network call may happen with incomplete statistics")
}

func TestSession_GenerateReport_SingleFlight(t *testing.T) {
	completer := &fakeCompleter{text: "slow report", release: make(chan struct{})}
	s := testSession(completer)
	_, err := s.LoadDataset([]byte(fixtureCSV))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.GenerateReport(context.Background(), "sk-key")
		done <- err
	}()

	// Wait until the first request is inside the completer.
	require.Eventually(t, func() bool {
		completer.mu.Lock()
		defer completer.mu.Unlock()
		return completer.messages != nil
	}, time.Second, 5*time.Millisecond)

	_, err = s.GenerateReport(context.Background(), "sk-key")
	assert.ErrorIs(t, err, ErrReportInFlight)

	close(completer.release)
	require.NoError(t, <-done)

	// Guard is released after completion.
	_, err = s.GenerateReport(context.Background(), "sk-key")
	assert.NoError(t, err)
}
