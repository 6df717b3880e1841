package usecase

import (
	"time"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/gocarina/gocsv"
)

type announcementRow struct {
	Code           string `csv:"ASX Code"`
	Date           string `csv:"Date"`
	PriceSensitive string `csv:"Price sens."`
	URL            string `csv:"Headline"`
	Title          string `csv:"Announcement"`
}

type companyAnnouncementRow struct {
	ID                  string `csv:"id"`
	DocumentReleaseDate string `csv:"document_release_date"`
	DocumentDate        string `csv:"document_date"`
	URL                 string `csv:"url"`
	RelativeURL         string `csv:"relative_url"`
	Header              string `csv:"header"`
	MarketSensitive     bool   `csv:"market_sensitive"`
	NumberOfPages       int    `csv:"number_of_pages"`
	Size                string `csv:"size"`
	LegacyAnnouncement  bool   `csv:"legacy_announcement"`
	IssuerCode          string `csv:"issuer_code"`
	IssuerShortName     string `csv:"issuer_short_name"`
	IssuerFullName      string `csv:"issuer_full_name"`
}

func mapAnnouncementsToRows(anns []domain.Announcement) []announcementRow {
	rows := make([]announcementRow, 0, len(anns))
	for _, ann := range anns {
		rows = append(rows, announcementRow{
			Code:           ann.Code,
			Date:           ann.Date,
			PriceSensitive: ann.PriceSensitive,
			URL:            ann.URL,
			Title:          ann.Title,
		})
	}
	return rows
}

func mapCompanyAnnouncementsToRows(anns []domain.CompanyAnnouncement) []companyAnnouncementRow {
	rows := make([]companyAnnouncementRow, 0, len(anns))
	for _, ann := range anns {
		rows = append(rows, companyAnnouncementRow{
			ID:                  ann.ID,
			DocumentReleaseDate: formatTime(ann.DocumentReleaseDate),
			DocumentDate:        formatTime(ann.DocumentDate),
			URL:                 ann.URL,
			RelativeURL:         ann.RelativeURL,
			Header:              ann.Header,
			MarketSensitive:     ann.MarketSensitive,
			NumberOfPages:       ann.NumberOfPages,
			Size:                ann.Size,
			LegacyAnnouncement:  ann.LegacyAnnouncement,
			IssuerCode:          ann.IssuerCode,
			IssuerShortName:     ann.IssuerShortName,
			IssuerFullName:      ann.IssuerFullName,
		})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func marshalCSV[T any](rows []T) ([]byte, error) {
	return gocsv.MarshalBytes(&rows)
}
