package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/table-reservation/internal/model"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestOverlaps(t *testing.T) {
	base := ts(t, "2024-01-01T18:00:00Z")

	cases := []struct {
		name          string
		existingStart time.Time
		existingDur   uint32
		wantStart     time.Time
		wantDur       uint32
		conflict      bool
	}{
		{
			name:          "identical windows conflict",
			existingStart: base, existingDur: 60,
			wantStart: base, wantDur: 60,
			conflict: true,
		},
		{
			name:          "half overlap conflicts",
			existingStart: base, existingDur: 60,
			wantStart: base.Add(30 * time.Minute), wantDur: 60,
			conflict: true,
		},
		{
			name:          "touching at existing end does not conflict",
			existingStart: base, existingDur: 60,
			wantStart: base.Add(60 * time.Minute), wantDur: 60,
			conflict: false,
		},
		{
			name:          "touching at existing start does not conflict",
			existingStart: base, existingDur: 60,
			wantStart: base.Add(-60 * time.Minute), wantDur: 60,
			conflict: false,
		},
		{
			name:          "requested window inside existing conflicts",
			existingStart: base, existingDur: 120,
			wantStart: base.Add(30 * time.Minute), wantDur: 30,
			conflict: true,
		},
		{
			name:          "existing window inside requested conflicts",
			existingStart: base.Add(30 * time.Minute), existingDur: 30,
			wantStart: base, wantDur: 120,
			conflict: true,
		},
		{
			name:          "disjoint windows do not conflict",
			existingStart: base, existingDur: 60,
			wantStart: base.Add(3 * time.Hour), wantDur: 60,
			conflict: false,
		},
		{
			name:          "missing stored duration counts as sixty minutes",
			existingStart: base, existingDur: 0,
			wantStart: base.Add(59 * time.Minute), wantDur: 60,
			conflict: true,
		},
		{
			name:          "missing stored duration frees the slot after an hour",
			existingStart: base, existingDur: 0,
			wantStart: base.Add(60 * time.Minute), wantDur: 60,
			conflict: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			existing := &model.Reservation{StartTime: tc.existingStart, DurationMinutes: tc.existingDur}
			got := overlaps(existing, tc.wantStart, effectiveDuration(tc.wantDur))
			assert.Equal(t, tc.conflict, got)
		})
	}
}

func TestFilterAvailableTablesCapacity(t *testing.T) {
	start := ts(t, "2024-01-01T18:00:00Z")
	tables := []model.Table{
		{ID: 1, Name: "Window 1", Capacity: 2},
		{ID: 2, Name: "Center 4", Capacity: 4},
		{ID: 3, Name: "Banquet", Capacity: 8},
	}

	got := FilterAvailableTables(tables, nil, start, 60, 4)

	require.Len(t, got, 2)
	for _, tbl := range got {
		assert.GreaterOrEqual(t, tbl.Capacity, uint32(4))
	}
}

func TestFilterAvailableTablesExcludesConflicting(t *testing.T) {
	start := ts(t, "2024-01-01T18:00:00Z")
	tables := []model.Table{
		{ID: 1, Name: "Window 1", Capacity: 2},
		{ID: 2, Name: "Window 2", Capacity: 2},
	}
	byTable := map[uint64][]model.Reservation{
		1: {{ID: 10, TableID: 1, StartTime: start.Add(30 * time.Minute), DurationMinutes: 60}},
	}

	got := FilterAvailableTables(tables, byTable, start, 60, 2)

	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].ID)
}

// Mirrors the booking sequence of an evening: an 18:00 dinner blocks the
// 18:30 request but not the one starting exactly at 19:00.
func TestFilterAvailableTablesEveningScenario(t *testing.T) {
	tables := []model.Table{{ID: 1, Name: "Window 1", Capacity: 2}}
	byTable := map[uint64][]model.Reservation{
		1: {{ID: 10, TableID: 1, StartTime: ts(t, "2024-01-01T18:00:00Z"), DurationMinutes: 60, PartySize: 2}},
	}

	overlapping := FilterAvailableTables(tables, byTable, ts(t, "2024-01-01T18:30:00Z"), 60, 2)
	assert.Empty(t, overlapping)

	touching := FilterAvailableTables(tables, byTable, ts(t, "2024-01-01T19:00:00Z"), 60, 2)
	require.Len(t, touching, 1)
	assert.Equal(t, uint64(1), touching[0].ID)
}

func TestFilterAvailableTablesDefaultsRequestedDuration(t *testing.T) {
	start := ts(t, "2024-01-01T18:00:00Z")
	tables := []model.Table{{ID: 1, Name: "Window 1", Capacity: 2}}
	byTable := map[uint64][]model.Reservation{
		1: {{ID: 10, TableID: 1, StartTime: start.Add(45 * time.Minute), DurationMinutes: 60}},
	}

	// Zero requested duration falls back to DefaultDurationMinutes, so the
	// window reaches 19:00 and overlaps the 18:45 booking.
	got := FilterAvailableTables(tables, byTable, start, 0, 2)
	assert.Empty(t, got)
}

func TestFilterAvailableTablesEmptyRegistry(t *testing.T) {
	start := ts(t, "2024-01-01T18:00:00Z")
	got := FilterAvailableTables(nil, nil, start, 60, 2)
	assert.Empty(t, got)
}
