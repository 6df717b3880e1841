package usecase

import (
	"testing"
	"time"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func active(added domain.Date) domain.MonitoringRecord {
	return domain.MonitoringRecord{AddedDate: added, Status: domain.StatusActive}
}

func TestAdvance(t *testing.T) {
	today := domain.NewDate(2024, time.March, 20)

	t.Run("first seen ticker becomes active", func(t *testing.T) {
		next, transitions := Advance(domain.Registry{}, today, []string{"ABC"}, nil)

		assert.Equal(t, domain.Registry{"ABC": active(today)}, next)
		require.Len(t, transitions, 1)
		assert.Equal(t, domain.TransitionAdded, transitions[0].Kind)
	})

	t.Run("re-observation on the same day is idempotent", func(t *testing.T) {
		once, _ := Advance(domain.Registry{}, today, []string{"ABC", "XYZ"}, nil)
		twice, transitions := Advance(once, today, []string{"ABC", "XYZ"}, nil)

		assert.Equal(t, once, twice)
		assert.Empty(t, transitions)
	})

	t.Run("repeated halts keep the original added date", func(t *testing.T) {
		added := today.AddDays(-4)
		next, _ := Advance(domain.Registry{"ABC": active(added)}, today, []string{"ABC"}, nil)

		assert.Equal(t, added, next["ABC"].AddedDate)
	})

	t.Run("closing wins over expiry", func(t *testing.T) {
		added := today.AddDays(-11)
		next, transitions := Advance(domain.Registry{"ABC": active(added)}, today, []string{"ABC"}, []string{"ABC"})

		assert.Empty(t, next)
		require.Len(t, transitions, 1)
		assert.Equal(t, domain.TransitionClosed, transitions[0].Kind)
		assert.Equal(t, added, transitions[0].AddedDate)
		assert.Equal(t, 11, transitions[0].AgeDays)
	})

	t.Run("untracked ticker can close on first sight", func(t *testing.T) {
		next, transitions := Advance(domain.Registry{}, today, []string{"NEW"}, []string{"NEW"})

		assert.Empty(t, next)
		require.Len(t, transitions, 1)
		assert.Equal(t, domain.TransitionClosed, transitions[0].Kind)
		assert.Equal(t, today, transitions[0].AddedDate)
	})

	t.Run("closed code without a halt is ignored", func(t *testing.T) {
		registry := domain.Registry{"ABC": active(today.AddDays(-2))}
		next, transitions := Advance(registry, today, nil, []string{"ABC"})

		assert.Equal(t, registry, next)
		assert.Empty(t, transitions)
	})

	t.Run("expired ticker is removed", func(t *testing.T) {
		added := today.AddDays(-11)
		next, transitions := Advance(domain.Registry{"OLD": active(added)}, today, nil, nil)

		assert.Empty(t, next)
		require.Len(t, transitions, 1)
		assert.Equal(t, domain.TransitionExpired, transitions[0].Kind)
		assert.Equal(t, 11, transitions[0].AgeDays)
	})

	t.Run("ten days old is still active", func(t *testing.T) {
		registry := domain.Registry{"EDGE": active(today.AddDays(-10))}
		next, transitions := Advance(registry, today, nil, nil)

		assert.Equal(t, registry, next)
		assert.Empty(t, transitions)
	})

	t.Run("untouched ticker persists", func(t *testing.T) {
		registry := domain.Registry{"MID": active(today.AddDays(-3))}
		next, _ := Advance(registry, today, []string{"ABC"}, nil)

		assert.Equal(t, active(today.AddDays(-3)), next["MID"])
		assert.Len(t, next, 2)
	})

	t.Run("stale inactive record is purged", func(t *testing.T) {
		registry := domain.Registry{"OFF": {AddedDate: today.AddDays(-1), Status: domain.StatusInactive}}
		next, transitions := Advance(registry, today, nil, nil)

		assert.Empty(t, next)
		require.Len(t, transitions, 1)
		assert.Equal(t, domain.TransitionPurged, transitions[0].Kind)
		assert.Equal(t, 1, transitions[0].AgeDays)
	})

	t.Run("old inactive record is purged not expired", func(t *testing.T) {
		registry := domain.Registry{"OFF": {AddedDate: today.AddDays(-20), Status: domain.StatusInactive}}
		_, transitions := Advance(registry, today, nil, nil)

		require.Len(t, transitions, 1)
		assert.Equal(t, domain.TransitionPurged, transitions[0].Kind)
	})

	t.Run("input registry is not modified", func(t *testing.T) {
		registry := domain.Registry{"ABC": active(today.AddDays(-11)), "XYZ": active(today.AddDays(-1))}
		snapshot := registry.Clone()

		Advance(registry, today, []string{"XYZ", "NEW"}, []string{"XYZ"})

		assert.Equal(t, snapshot, registry)
	})

	t.Run("tickers are normalized", func(t *testing.T) {
		next, _ := Advance(nil, today, []string{" abc ", "", "ABC"}, nil)

		assert.Equal(t, domain.Registry{"ABC": active(today)}, next)
	})
}

func TestAdvanceScenarios(t *testing.T) {
	tests := []struct {
		name     string
		registry domain.Registry
		today    string
		halted   []string
		closed   []string
		want     domain.Registry
	}{
		{
			name:     "new halt on an empty registry",
			registry: domain.Registry{},
			today:    "2024-01-01",
			halted:   []string{"XYZ"},
			want:     domain.Registry{"XYZ": active(date(t, "2024-01-01"))},
		},
		{
			name:     "expired after twelve days",
			registry: domain.Registry{"XYZ": active(date(t, "2024-01-01"))},
			today:    "2024-01-13",
			want:     domain.Registry{},
		},
		{
			name:     "closed takes precedence over continued active",
			registry: domain.Registry{"XYZ": active(date(t, "2024-01-01"))},
			today:    "2024-01-05",
			halted:   []string{"XYZ"},
			closed:   []string{"XYZ"},
			want:     domain.Registry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Advance(tt.registry, date(t, tt.today), tt.halted, tt.closed)
			assert.Equal(t, tt.want, got)
		})
	}
}
