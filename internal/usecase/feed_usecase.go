package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"go.uber.org/zap"
)

const (
	StageAnnouncements = "retrieving announcements"
	StageHaltData      = "retrieving trading halt data"
	StageUpload        = "uploading announcement files"
	StageMonitoring    = "updating ticker monitoring"
	StageDocuments     = "storing proposed issue documents"
)

const (
	dailyFolder    = "daily_announcements"
	haltFolder     = "tradingHalt_tickers"
	proposedFolder = "xProposed_issues_securities"
	pdfFolder      = "PDFS"
	csvContentType = "text/csv"
	pdfContentType = "application/pdf"
)

// StageError names the feed stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("error %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Message is the operator-facing failure text.
func (e *StageError) Message() string {
	return fmt.Sprintf("Error %s: %v", e.Stage, e.Err)
}

type RunReport struct {
	Date              domain.Date
	StartedAt         time.Time
	Duration          time.Duration
	DailyRows         int
	HaltRows          int
	HaltedTickers     []string
	ClosedIssuerCodes []string
	Transitions       []domain.Transition
	RegistrySize      int
	PDFsStored        int
	PDFsFailed        int
}

func (r *RunReport) CSVRows() int {
	return r.DailyRows + r.HaltRows
}

type FeedUsecase struct {
	source     domain.AnnouncementSource
	documents  domain.DocumentFetcher
	store      domain.BlobStore
	monitoring *MonitoringUsecase
	logger     *zap.Logger
	now        func() time.Time
}

func NewFeedUsecase(source domain.AnnouncementSource, documents domain.DocumentFetcher, store domain.BlobStore, monitoring *MonitoringUsecase, logger *zap.Logger) *FeedUsecase {
	return &FeedUsecase{
		source:     source,
		documents:  documents,
		store:      store,
		monitoring: monitoring,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one daily ingestion. The first failing stage stops the run
// and is returned as a *StageError. The registry is saved only after every
// fatal write has succeeded; document downloads run after it and never fail
// the run.
func (u *FeedUsecase) Run(ctx context.Context, today domain.Date) (*RunReport, error) {
	report := &RunReport{Date: today, StartedAt: u.now()}
	defer func() { report.Duration = u.now().Sub(report.StartedAt) }()

	daily, err := u.source.DailyAnnouncements(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageAnnouncements, Err: err}
	}
	halts := make([]domain.Announcement, 0)
	for _, ann := range daily {
		if ann.IsTradingHalt() {
			halts = append(halts, ann)
		}
	}
	report.DailyRows = len(daily)
	report.HaltRows = len(halts)
	report.HaltedTickers = domain.HaltedTickers(halts)
	u.logger.Info(
		"announcements retrieved",
		zap.Int("rows", len(daily)),
		zap.Int("trading_halts", len(halts)),
		zap.Strings("halted", report.HaltedTickers),
	)

	companyAnns, err := u.companyAnnouncements(ctx, report.HaltedTickers)
	if err != nil {
		return nil, &StageError{Stage: StageHaltData, Err: err}
	}

	if err := u.uploadAnnouncements(ctx, today, daily, halts); err != nil {
		return nil, &StageError{Stage: StageUpload, Err: err}
	}

	report.ClosedIssuerCodes = domain.ProposedIssueCodes(companyAnns)
	plan, err := u.monitoring.Plan(ctx, today, report.HaltedTickers, report.ClosedIssuerCodes)
	if err != nil {
		return nil, &StageError{Stage: StageMonitoring, Err: err}
	}

	proposed := proposedIssues(companyAnns, plan.ClosedTickers())
	if len(proposed) > 0 {
		key := fmt.Sprintf("%s/proposed_security_data_%s.csv", proposedFolder, today)
		if err := uploadCSV(ctx, u, key, mapCompanyAnnouncementsToRows(proposed)); err != nil {
			return nil, &StageError{Stage: StageDocuments, Err: err}
		}
	}

	result, err := u.monitoring.Commit(ctx, plan)
	if err != nil {
		return nil, &StageError{Stage: StageMonitoring, Err: err}
	}
	report.Transitions = result.Transitions
	report.RegistrySize = result.RegistrySize

	if len(proposed) > 0 {
		report.PDFsStored, report.PDFsFailed = u.storeDocuments(ctx, proposed)
	}

	u.logger.Info(
		"daily feed complete",
		zap.Stringer("date", today),
		zap.Int("csv_rows", report.CSVRows()),
		zap.Int("pdfs_stored", report.PDFsStored),
		zap.Int("pdfs_failed", report.PDFsFailed),
		zap.Int("registry_size", report.RegistrySize),
	)
	return report, nil
}

func (u *FeedUsecase) companyAnnouncements(ctx context.Context, tickers []string) ([]domain.CompanyAnnouncement, error) {
	var all []domain.CompanyAnnouncement
	for _, ticker := range tickers {
		anns, err := u.source.CompanyAnnouncements(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ticker, err)
		}
		u.logger.Debug("company announcements retrieved", zap.String("ticker", ticker), zap.Int("count", len(anns)))
		all = append(all, anns...)
	}
	return all, nil
}

func (u *FeedUsecase) uploadAnnouncements(ctx context.Context, today domain.Date, daily, halts []domain.Announcement) error {
	dailyKey := fmt.Sprintf("%s/daily_data_%s.csv", dailyFolder, today)
	if err := uploadCSV(ctx, u, dailyKey, mapAnnouncementsToRows(daily)); err != nil {
		return err
	}
	haltKey := fmt.Sprintf("%s/trading_halt_data_%s.csv", haltFolder, today)
	return uploadCSV(ctx, u, haltKey, mapAnnouncementsToRows(halts))
}

func uploadCSV[T any](ctx context.Context, u *FeedUsecase, key string, rows []T) error {
	body, err := marshalCSV(rows)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := u.store.Put(ctx, key, body, csvContentType); err != nil {
		return err
	}
	u.logger.Info("csv uploaded", zap.String("key", key), zap.Int("rows", len(rows)))
	return nil
}

// storeDocuments downloads and stores each PDF. Individual failures are
// logged and counted.
func (u *FeedUsecase) storeDocuments(ctx context.Context, anns []domain.CompanyAnnouncement) (stored, failed int) {
	for _, ann := range anns {
		key, err := documentKey(ann)
		if err != nil {
			u.logger.Warn("skipping document", zap.String("id", ann.ID), zap.Error(err))
			failed++
			continue
		}
		body, err := u.documents.FetchDocument(ctx, ann.URL)
		if err != nil {
			u.logger.Warn("failed to download document", zap.String("url", ann.URL), zap.Error(err))
			failed++
			continue
		}
		if err := u.store.Put(ctx, key, body, pdfContentType); err != nil {
			u.logger.Warn("failed to upload document", zap.String("key", key), zap.Error(err))
			failed++
			continue
		}
		u.logger.Info("document stored", zap.String("key", key), zap.Int("bytes", len(body)))
		stored++
	}
	return stored, failed
}

func documentKey(ann domain.CompanyAnnouncement) (string, error) {
	if ann.URL == "" {
		return "", errors.New("document has no url")
	}
	if ann.DocumentReleaseDate.IsZero() {
		return "", errors.New("document has no release date")
	}
	return fmt.Sprintf(
		"%s/%s_%s_id_%s.pdf",
		pdfFolder,
		ann.IssuerCode,
		ann.DocumentReleaseDate.Format("2006_01_02"),
		ann.ID,
	), nil
}

func proposedIssues(anns []domain.CompanyAnnouncement, closed map[string]struct{}) []domain.CompanyAnnouncement {
	out := make([]domain.CompanyAnnouncement, 0)
	for _, ann := range anns {
		if !ann.IsProposedIssue() {
			continue
		}
		if _, ok := closed[domain.NormalizeTicker(ann.IssuerCode)]; ok {
			out = append(out, ann)
		}
	}
	return out
}
