package asx

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/PuerkitoBio/goquery"
)

const (
	ColumnCode           = "ASX Code"
	ColumnDate           = "Date"
	ColumnPriceSensitive = "Price sens."
	ColumnHeadline       = "Headline"
	ColumnAnnouncement   = "Announcement"
)

var cellReplacer = strings.NewReplacer("\r", "", "\n", "", "\t", "")

// Table is the first HTML table of a page. A cell holding a link yields two
// values, the href and the link text, so Headers carries a trailing
// Announcement column for the text.
type Table struct {
	Headers []string
	Rows    [][]string
}

func ParseTable(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, domain.ErrNoTable
	}
	table := tables.First()

	headers := make([]string, 0)
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	headers = append(headers, ColumnAnnouncement)

	rows := make([][]string, 0)
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make([]string, 0, cells.Length()+1)
		cells.Each(func(_ int, td *goquery.Selection) {
			link := td.Find("a").First()
			if link.Length() > 0 {
				href, _ := link.Attr("href")
				row = append(row, strings.TrimSpace(href), cleanCell(link.Text()))
				return
			}
			row = append(row, cleanCell(td.Text()))
		})
		rows = append(rows, row)
	})

	return &Table{Headers: headers, Rows: rows}, nil
}

func cleanCell(text string) string {
	return strings.TrimSpace(cellReplacer.Replace(text))
}

func (t *Table) columnIndex(name string) int {
	for i, header := range t.Headers {
		if strings.EqualFold(header, name) {
			return i
		}
	}
	return -1
}

// Announcements maps the table rows by column name. Relative links are
// resolved against base.
func (t *Table) Announcements(base *url.URL) ([]domain.Announcement, error) {
	for _, required := range []string{ColumnCode, ColumnAnnouncement} {
		if t.columnIndex(required) < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, required)
		}
	}

	code := t.columnIndex(ColumnCode)
	date := t.columnIndex(ColumnDate)
	sensitive := t.columnIndex(ColumnPriceSensitive)
	headline := t.columnIndex(ColumnHeadline)
	title := t.columnIndex(ColumnAnnouncement)

	anns := make([]domain.Announcement, 0, len(t.Rows))
	for _, row := range t.Rows {
		anns = append(anns, domain.Announcement{
			Code:           cell(row, code),
			Date:           cell(row, date),
			PriceSensitive: cell(row, sensitive),
			URL:            resolve(base, cell(row, headline)),
			Title:          cell(row, title),
		})
	}
	return anns, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

func resolve(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
