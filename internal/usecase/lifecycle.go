package usecase

import (
	"sort"

	"github.com/NasaVasa/haltwatch/internal/domain"
)

// Advance computes the next registry for today's observations. The input
// registry is never modified. Closing is applied before expiry so a ticker
// that closes on the day it would expire is reported as closed.
func Advance(registry domain.Registry, today domain.Date, halted, closedIssuerCodes []string) (domain.Registry, []domain.Transition) {
	next := registry.Clone()
	haltedSet := domain.TickerSet(halted)
	closedSet := domain.TickerSet(closedIssuerCodes)
	tickers := domain.SortedTickers(haltedSet)

	for _, ticker := range tickers {
		if _, ok := closedSet[ticker]; !ok {
			continue
		}
		added := today
		if existing, ok := next[ticker]; ok && !existing.AddedDate.IsZero() {
			added = existing.AddedDate
		}
		next[ticker] = domain.MonitoringRecord{AddedDate: added, Status: domain.StatusClosed}
	}

	var transitions []domain.Transition
	for _, ticker := range tickers {
		if _, ok := next[ticker]; ok {
			continue
		}
		next[ticker] = domain.MonitoringRecord{AddedDate: today, Status: domain.StatusActive}
		transitions = append(transitions, domain.Transition{Ticker: ticker, Kind: domain.TransitionAdded, AddedDate: today})
	}

	for _, ticker := range next.Tickers() {
		record := next[ticker]
		if record.Status != domain.StatusClosed {
			continue
		}
		delete(next, ticker)
		transitions = append(transitions, domain.Transition{
			Ticker:    ticker,
			Kind:      domain.TransitionClosed,
			AddedDate: record.AddedDate,
			AgeDays:   today.DaysSince(record.AddedDate),
		})
	}

	for _, ticker := range next.Tickers() {
		record := next[ticker]
		age := today.DaysSince(record.AddedDate)
		kind := domain.TransitionExpired
		switch {
		case record.Status == domain.StatusInactive:
			kind = domain.TransitionPurged
		case age > domain.ExpiryDays:
		default:
			continue
		}
		delete(next, ticker)
		transitions = append(transitions, domain.Transition{
			Ticker:    ticker,
			Kind:      kind,
			AddedDate: record.AddedDate,
			AgeDays:   age,
		})
	}

	sort.SliceStable(transitions, func(i, j int) bool {
		return transitions[i].Ticker < transitions[j].Ticker
	})
	return next, transitions
}
