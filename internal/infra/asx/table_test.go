package asx

import (
	"net/url"
	"strings"
	"testing"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const announcementsPage = `<html><body>
<table>
  <tr><th>ASX Code</th><th>Date</th><th>Price sens.</th><th>Headline</th></tr>
  <tr>
    <td>ABC</td>
    <td>04/01/2024
      9:31 am</td>
    <td><img src="icon.png" alt="price sensitive"></td>
    <td><a href="/asxpdf/20240104/pdf/abc.pdf">
      Trading Halt
    </a></td>
  </tr>
  <tr>
    <td>QQQ</td>
    <td>04/01/2024</td>
    <td></td>
    <td><a href="https://cdn.example.test/qqq.pdf">Quarterly Activities Report</a></td>
  </tr>
</table>
<table><tr><th>Other</th></tr></table>
</body></html>`

func TestParseTable(t *testing.T) {
	table, err := ParseTable(strings.NewReader(announcementsPage))
	require.NoError(t, err)

	assert.Equal(t, []string{"ASX Code", "Date", "Price sens.", "Headline", "Announcement"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"ABC", "04/01/2024      9:31 am", "", "/asxpdf/20240104/pdf/abc.pdf", "Trading Halt"}, table.Rows[0])
}

func TestParseTableWithoutTable(t *testing.T) {
	_, err := ParseTable(strings.NewReader("<html><body><p>maintenance</p></body></html>"))
	assert.ErrorIs(t, err, domain.ErrNoTable)
}

func TestTableAnnouncements(t *testing.T) {
	table, err := ParseTable(strings.NewReader(announcementsPage))
	require.NoError(t, err)
	base, err := url.Parse("https://www.asx.com.au/asx/v2/statistics/todayAnns.do")
	require.NoError(t, err)

	anns, err := table.Announcements(base)
	require.NoError(t, err)

	require.Len(t, anns, 2)
	assert.Equal(t, "ABC", anns[0].Code)
	assert.Equal(t, "https://www.asx.com.au/asxpdf/20240104/pdf/abc.pdf", anns[0].URL)
	assert.Equal(t, "Trading Halt", anns[0].Title)
	assert.True(t, anns[0].IsTradingHalt())
	assert.Equal(t, "https://cdn.example.test/qqq.pdf", anns[1].URL)
	assert.False(t, anns[1].IsTradingHalt())
}

func TestTableAnnouncementsMissingColumn(t *testing.T) {
	table := &Table{Headers: []string{"Code", "Announcement"}, Rows: [][]string{{"ABC", "Trading Halt"}}}

	_, err := table.Announcements(nil)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestTableAnnouncementsShortRow(t *testing.T) {
	table := &Table{
		Headers: []string{"ASX Code", "Date", "Price sens.", "Headline", "Announcement"},
		Rows:    [][]string{{"ABC", "04/01/2024"}},
	}

	anns, err := table.Announcements(nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.Announcement{{Code: "ABC", Date: "04/01/2024"}}, anns)
}
