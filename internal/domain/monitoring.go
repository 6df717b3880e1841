package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strings"
)

// ExpiryDays is the age after which an unresolved monitored ticker is dropped.
const ExpiryDays = 10

type Status string

const (
	StatusActive   Status = "Active"
	StatusClosed   Status = "Closed"
	StatusInactive Status = "Inactive"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusActive, StatusClosed, StatusInactive:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unknown status %q", value)
	}
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MonitoringRecord is keyed by ticker inside a Registry.
type MonitoringRecord struct {
	AddedDate Date   `json:"added_date"`
	Status    Status `json:"status"`
}

// Registry maps a ticker to its monitoring record.
type Registry map[string]MonitoringRecord

func (r Registry) Clone() Registry {
	if r == nil {
		return Registry{}
	}
	return maps.Clone(r)
}

func (r Registry) Tickers() []string {
	tickers := make([]string, 0, len(r))
	for ticker := range r {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

type TransitionKind string

const (
	TransitionAdded   TransitionKind = "Added"
	TransitionClosed  TransitionKind = "Closed"
	TransitionExpired TransitionKind = "Expired"
	// TransitionPurged drops a record that was already stored as Inactive.
	TransitionPurged TransitionKind = "Purged"
)

// Transition describes one lifecycle change made while advancing a registry.
type Transition struct {
	Ticker    string
	Kind      TransitionKind
	AddedDate Date
	AgeDays   int
}

// NormalizeTicker upper-cases and trims an identifier; empty means invalid.
func NormalizeTicker(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// TickerSet builds a set of normalized, non-empty tickers.
func TickerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		ticker := NormalizeTicker(value)
		if ticker == "" {
			continue
		}
		set[ticker] = struct{}{}
	}
	return set
}

func SortedTickers(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for ticker := range set {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}
