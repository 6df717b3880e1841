package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaltedTickers(t *testing.T) {
	anns := []Announcement{
		{Code: "xyz", Title: "Trading Halt"},
		{Code: "ABC", Title: "TRADING HALT pending capital raising"},
		{Code: "XYZ", Title: "Request for trading halt"},
		{Code: "QQQ", Title: "Suspension from quotation"},
		{Code: " ", Title: "Trading Halt"},
	}

	assert.Equal(t, []string{"ABC", "XYZ"}, HaltedTickers(anns))
}

func TestHaltedTickersEmpty(t *testing.T) {
	assert.Equal(t, []string{}, HaltedTickers(nil))
}

func TestProposedIssueCodes(t *testing.T) {
	anns := []CompanyAnnouncement{
		{IssuerCode: "XYZ", Header: "Proposed issue of securities - XYZ"},
		{IssuerCode: "xyz", Header: "PROPOSED ISSUE OF SECURITIES"},
		{IssuerCode: "ABC", Header: "Trading Halt"},
		{IssuerCode: "DEF", Header: "Application for quotation of securities"},
	}

	assert.Equal(t, []string{"XYZ"}, ProposedIssueCodes(anns))
}

func TestTickerSet(t *testing.T) {
	set := TickerSet([]string{" abc", "ABC", "", "xyz "})
	assert.Equal(t, []string{"ABC", "XYZ"}, SortedTickers(set))
}
