package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEstimateUsage(t *testing.T) {
	report := &RunReport{Duration: 2500 * time.Millisecond}

	usage := EstimateUsage(report, 512)

	assert.Equal(t, "2.5", usage.Seconds.String())
	assert.Equal(t, "0.500", usage.MemoryGB.StringFixed(3))
	assert.Equal(t, "1.250", usage.GBSeconds.StringFixed(3))
	assert.Equal(t, "28.750", usage.MonthlyGBSeconds.StringFixed(3))
}

func TestRenderSuccess(t *testing.T) {
	today := domain.NewDate(2024, time.January, 5)
	report := &RunReport{
		Date:              today,
		Duration:          time.Second,
		DailyRows:         40,
		HaltRows:          2,
		HaltedTickers:     []string{"ABC", "XYZ"},
		ClosedIssuerCodes: []string{"XYZ"},
		RegistrySize:      1,
		PDFsStored:        3,
		Transitions: []domain.Transition{
			{Ticker: "ABC", Kind: domain.TransitionAdded, AddedDate: today},
			{Ticker: "XYZ", Kind: domain.TransitionClosed, AddedDate: today.AddDays(-4), AgeDays: 4},
			{Ticker: "ZZZ", Kind: domain.TransitionPurged, AddedDate: today.AddDays(-1), AgeDays: 1},
		},
	}

	body := RenderSuccess(report, 128)

	assert.Contains(t, body, "42 total rows of CSV files successfully uploaded to storage & 3 PDFs were uploaded to storage.")
	assert.Contains(t, body, "Run date 2024-01-05: 2 tickers in trading halt, 1 with a proposed issue of securities, 1 tickers under monitoring.")
	assert.Contains(t, body, "allocated memory of 128 MB, which is 0.125 GB")
	assert.Contains(t, body, "400,000 GB-seconds.")
	assert.Contains(t, body, "Monitoring changes:")
	assert.Contains(t, body, "2024-01-01")
	assert.Contains(t, body, "Purged")
	assert.NotContains(t, body, "Expired")
	assert.NotContains(t, body, "could not be stored")
}

func TestRenderSuccessReportsFailedDocuments(t *testing.T) {
	body := RenderSuccess(&RunReport{PDFsStored: 1, PDFsFailed: 2}, 128)

	assert.Contains(t, body, "2 PDFs could not be stored.")
	assert.NotContains(t, body, "Monitoring changes:")
}

func TestRenderFailure(t *testing.T) {
	stageErr := &StageError{Stage: StageAnnouncements, Err: domain.ErrNoTable}

	assert.Equal(t, "Error retrieving announcements: no tables found on the webpage", RenderFailure(stageErr))
	assert.Equal(t, "Error retrieving announcements: no tables found on the webpage", RenderFailure(fmt.Errorf("run: %w", stageErr)))
	assert.Equal(t, "Error running daily feed: boom", RenderFailure(errors.New("boom")))
}

type recordingNotifier struct {
	err      error
	subjects []string
}

func (r *recordingNotifier) Notify(_ context.Context, subject, _ string) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}

func TestFanoutNotifier(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("smtp down")}
	ok := &recordingNotifier{}
	fanout := NewFanoutNotifier(zap.NewNop(), failing, ok)

	err := fanout.Notify(context.Background(), SuccessSubject, "body")

	assert.NoError(t, err)
	assert.Equal(t, []string{SuccessSubject}, failing.subjects)
	assert.Equal(t, []string{SuccessSubject}, ok.subjects)
}
