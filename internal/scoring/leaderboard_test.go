package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeaderboard_Scenario(t *testing.T) {
	records := []ActivityRecord{
		record("P1", day(2025, 3, 11), 1, [5]float64{10, 0, 0, 0, 0}),
		record("P1", day(2025, 3, 19), 2, [5]float64{0, 5, 0, 0, 0}),
		record("P2", day(2025, 3, 12), 1, [5]float64{0, 0, 4, 0, 0}),
	}
	assert.Equal(t, 10.0, records[0].Points)
	assert.Equal(t, 10.0, records[1].Points)
	assert.Equal(t, 12.0, records[2].Points)

	lb := BuildLeaderboard(records, 8)
	require.Len(t, lb.Rows, 2)

	assert.Equal(t, LeaderboardRow{
		Rank:         1,
		Participant:  "P1",
		Points:       20,
		PointsBehind: 0,
		WeekPoints:   []float64{10, 10, 0, 0, 0, 0, 0, 0},
	}, lb.Rows[0])
	assert.Equal(t, LeaderboardRow{
		Rank:         2,
		Participant:  "P2",
		Points:       12,
		PointsBehind: 8,
		WeekPoints:   []float64{12, 0, 0, 0, 0, 0, 0, 0},
	}, lb.Rows[1])
}

func TestBuildLeaderboard_Laws(t *testing.T) {
	var records []ActivityRecord
	names := []string{"Ann", "Ben", "Cat", "Dan", "Eve"}
	for i := 0; i < 60; i++ {
		zones := [5]float64{float64(i % 7), float64(i % 3), float64(i % 5), 0, float64(i % 2)}
		records = append(records, record(names[(i*7)%len(names)], day(2025, 3, 10).AddDate(0, 0, i), 1+i%8, zones))
	}

	lb := BuildLeaderboard(records, 8)
	require.NotEmpty(t, lb.Rows)

	leader := lb.Rows[0].Points
	for i, row := range lb.Rows {
		assert.Equal(t, i+1, row.Rank)
		if i > 0 {
			assert.LessOrEqual(t, row.Points, lb.Rows[i-1].Points)
		}
		assert.GreaterOrEqual(t, row.PointsBehind, 0.0)
		assert.Equal(t, row.PointsBehind == 0, row.Points == leader)

		var sum float64
		for _, wp := range row.WeekPoints {
			sum += wp
		}
		assert.InDelta(t, row.Points, sum, 1e-9, row.Participant)
	}
}

func TestBuildLeaderboard_TiesKeepFirstAppearance(t *testing.T) {
	records := []ActivityRecord{
		record("Zed", day(2025, 3, 20), 2, [5]float64{10}),
		record("Amy", day(2025, 3, 19), 2, [5]float64{10}),
		record("Max", day(2025, 3, 18), 2, [5]float64{20}),
	}

	lb := BuildLeaderboard(records, 8)
	require.Len(t, lb.Rows, 3)
	assert.Equal(t, "Max", lb.Rows[0].Participant)
	assert.Equal(t, "Zed", lb.Rows[1].Participant)
	assert.Equal(t, "Amy", lb.Rows[2].Participant)
	assert.Equal(t, 2, lb.Rows[1].Rank)
	assert.Equal(t, 3, lb.Rows[2].Rank)
	assert.Equal(t, 10.0, lb.Rows[2].PointsBehind)
}

func TestBuildLeaderboard_TiedLeaders(t *testing.T) {
	records := []ActivityRecord{
		record("A", day(2025, 3, 20), 2, [5]float64{10}),
		record("B", day(2025, 3, 19), 2, [5]float64{10}),
	}

	lb := BuildLeaderboard(records, 8)
	require.Len(t, lb.Rows, 2)
	assert.Zero(t, lb.Rows[0].PointsBehind)
	assert.Zero(t, lb.Rows[1].PointsBehind)
	assert.Equal(t, 2, lb.Rows[1].Rank)
}

func TestBuildLeaderboard_SkipsUnnamed(t *testing.T) {
	records := []ActivityRecord{
		record("", day(2025, 3, 20), 2, [5]float64{100}),
		record("A", day(2025, 3, 19), 2, [5]float64{1}),
	}

	lb := BuildLeaderboard(records, 8)
	require.Len(t, lb.Rows, 1)
	assert.Equal(t, "A", lb.Rows[0].Participant)
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	lb := BuildLeaderboard(nil, 8)
	assert.Equal(t, 8, lb.TotalWeeks)
	assert.NotNil(t, lb.Rows)
	assert.Empty(t, lb.Rows)

	_, ok := lb.BiggestMover(1)
	assert.False(t, ok)
}

func TestLeaderboard_BiggestMover(t *testing.T) {
	records := []ActivityRecord{
		record("A", day(2025, 3, 11), 1, [5]float64{50}),
		record("B", day(2025, 3, 19), 2, [5]float64{0, 10}),
		record("C", day(2025, 3, 20), 2, [5]float64{0, 0, 10}),
		record("A", day(2025, 3, 21), 2, [5]float64{5}),
	}
	lb := BuildLeaderboard(records, 8)

	mover, ok := lb.BiggestMover(2)
	require.True(t, ok)
	assert.Equal(t, Mover{Participant: "C", Points: 30, Week: 2}, mover)

	mover, ok = lb.BiggestMover(1)
	require.True(t, ok)
	assert.Equal(t, "A", mover.Participant)

	_, ok = lb.BiggestMover(3)
	assert.False(t, ok, "nobody scored in week 3")

	_, ok = lb.BiggestMover(0)
	assert.False(t, ok)
	_, ok = lb.BiggestMover(9)
	assert.False(t, ok)
}

func TestLeaderboard_BiggestMoverTie(t *testing.T) {
	records := []ActivityRecord{
		record("A", day(2025, 3, 19), 2, [5]float64{10}),
		record("B", day(2025, 3, 20), 2, [5]float64{10}),
		record("B", day(2025, 3, 11), 1, [5]float64{10}),
	}
	lb := BuildLeaderboard(records, 8)

	mover, ok := lb.BiggestMover(2)
	require.True(t, ok)
	assert.Equal(t, "B", mover.Participant, "first in leaderboard order wins a tie")
}

func TestLeaderboard_Row(t *testing.T) {
	lb := BuildLeaderboard([]ActivityRecord{record("A", day(2025, 3, 19), 2, [5]float64{10})}, 8)

	row, ok := lb.Row("A")
	require.True(t, ok)
	assert.Equal(t, 10.0, row.Week(2))
	assert.Zero(t, row.Week(0))
	assert.Zero(t, row.Week(42))

	_, ok = lb.Row("missing")
	assert.False(t, ok)
}
