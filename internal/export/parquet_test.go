package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"scoreboard/internal/scoring"
)

func sampleRecords() []scoring.ActivityRecord {
	dist := 5.5
	mk := func(p string, d int, week int, zones [5]float64) scoring.ActivityRecord {
		return scoring.ActivityRecord{
			Date:        time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC),
			Participant: p,
			WorkoutType: "Run",
			Zones:       zones,
			Points:      scoring.Points(zones),
			Week:        week,
		}
	}
	records := []scoring.ActivityRecord{
		mk("Ann", 25, 3, [5]float64{10, 10}),
		mk("Ben", 19, 2, [5]float64{0, 0, 5}),
		mk("Ann", 11, 1, [5]float64{1}),
	}
	records[0].TotalDistance = &dist
	return records
}

func readRows[T any](t *testing.T, data []byte) []T {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.parquet")
	require.NoError(t, os.WriteFile(path, data, 0644))

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(T), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	rows := make([]T, pr.GetNumRows())
	if len(rows) == 0 {
		return rows
	}
	require.NoError(t, pr.Read(&rows))
	return rows
}

func TestMarshalRecords(t *testing.T) {
	data, err := MarshalRecords(sampleRecords())
	require.NoError(t, err)

	rows := readRows[recordRow](t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-03-25", rows[0].Date)
	assert.Equal(t, "Ann", rows[0].Participant)
	assert.Equal(t, 30.0, rows[0].Points)
	assert.Equal(t, int32(3), rows[0].Week)
	require.NotNil(t, rows[0].TotalDistance)
	assert.Equal(t, 5.5, *rows[0].TotalDistance)
	assert.Nil(t, rows[1].TotalDistance)
	assert.Equal(t, 5.0, rows[1].Zone3)
}

func TestMarshalLeaderboard(t *testing.T) {
	lb := scoring.BuildLeaderboard(sampleRecords(), 4)
	data, err := MarshalLeaderboard(lb)
	require.NoError(t, err)

	rows := readRows[leaderboardRow](t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, "Ann", rows[0].Participant)
	assert.Equal(t, 31.0, rows[0].Points)
	assert.Equal(t, []float64{1, 0, 30, 0}, rows[0].WeekPoints)
	assert.Equal(t, 16.0, rows[1].PointsBehind)
}

func TestMarshalRecords_Empty(t *testing.T) {
	data, err := MarshalRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, readRows[recordRow](t, data))
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	records := sampleRecords()

	require.NoError(t, WriteDir(dir, records, scoring.BuildLeaderboard(records, 4)))

	for _, name := range []string{RecordsFile, LeaderboardFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, "PAR1", string(data[:4]), name)
	}
}
