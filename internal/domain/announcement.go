package domain

import (
	"context"
	"strings"
	"time"
)

const (
	TradingHaltPattern   = "trading halt"
	ProposedIssuePattern = "proposed issue of securities"
)

// Announcement is one row of the daily announcements table.
type Announcement struct {
	Code           string
	Date           string
	PriceSensitive string
	URL            string
	Title          string
}

func (a Announcement) IsTradingHalt() bool {
	return containsFold(a.Title, TradingHaltPattern)
}

// CompanyAnnouncement is one entry of a company's recent announcements feed.
type CompanyAnnouncement struct {
	ID                  string
	DocumentReleaseDate time.Time
	DocumentDate        time.Time
	URL                 string
	RelativeURL         string
	Header              string
	MarketSensitive     bool
	NumberOfPages       int
	Size                string
	LegacyAnnouncement  bool
	IssuerCode          string
	IssuerShortName     string
	IssuerFullName      string
}

func (a CompanyAnnouncement) IsProposedIssue() bool {
	return containsFold(a.Header, ProposedIssuePattern)
}

// HaltedTickers returns the distinct codes of trading-halt announcements.
func HaltedTickers(anns []Announcement) []string {
	set := make(map[string]struct{})
	for _, ann := range anns {
		if !ann.IsTradingHalt() {
			continue
		}
		if code := NormalizeTicker(ann.Code); code != "" {
			set[code] = struct{}{}
		}
	}
	return SortedTickers(set)
}

// ProposedIssueCodes returns the distinct issuer codes of proposed-issue announcements.
func ProposedIssueCodes(anns []CompanyAnnouncement) []string {
	set := make(map[string]struct{})
	for _, ann := range anns {
		if !ann.IsProposedIssue() {
			continue
		}
		if code := NormalizeTicker(ann.IssuerCode); code != "" {
			set[code] = struct{}{}
		}
	}
	return SortedTickers(set)
}

type AnnouncementSource interface {
	DailyAnnouncements(ctx context.Context) ([]Announcement, error)
	CompanyAnnouncements(ctx context.Context, ticker string) ([]CompanyAnnouncement, error)
}

type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
