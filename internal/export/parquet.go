package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"scoreboard/internal/scoring"
)

// File names written by WriteDir
const (
	RecordsFile     = "records.parquet"
	LeaderboardFile = "leaderboard.parquet"
)

const writerParallelism = 4

type recordRow struct {
	Date          string   `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Participant   string   `parquet:"name=participant, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	WorkoutType   string   `parquet:"name=workout_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TotalDuration *float64 `parquet:"name=total_duration, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalDistance *float64 `parquet:"name=total_distance, type=DOUBLE, repetitiontype=OPTIONAL"`
	Zone1         float64  `parquet:"name=zone_1, type=DOUBLE"`
	Zone2         float64  `parquet:"name=zone_2, type=DOUBLE"`
	Zone3         float64  `parquet:"name=zone_3, type=DOUBLE"`
	Zone4         float64  `parquet:"name=zone_4, type=DOUBLE"`
	Zone5         float64  `parquet:"name=zone_5, type=DOUBLE"`
	Points        float64  `parquet:"name=points, type=DOUBLE"`
	Week          int32    `parquet:"name=week, type=INT32"`
}

type leaderboardRow struct {
	Rank         int32     `parquet:"name=rank, type=INT32"`
	Participant  string    `parquet:"name=participant, type=BYTE_ARRAY, convertedtype=UTF8"`
	Points       float64   `parquet:"name=points, type=DOUBLE"`
	PointsBehind float64   `parquet:"name=points_behind, type=DOUBLE"`
	WeekPoints   []float64 `parquet:"name=week_points, type=DOUBLE, repetitiontype=REPEATED"`
}

// MarshalRecords encodes normalized records as a snappy-compressed Parquet file
func MarshalRecords(records []scoring.ActivityRecord) ([]byte, error) {
	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = recordRow{
			Date:          r.Date.Format(time.DateOnly),
			Participant:   r.Participant,
			WorkoutType:   r.WorkoutType,
			TotalDuration: r.TotalDuration,
			TotalDistance: r.TotalDistance,
			Zone1:         r.Zones[0],
			Zone2:         r.Zones[1],
			Zone3:         r.Zones[2],
			Zone4:         r.Zones[3],
			Zone5:         r.Zones[4],
			Points:        r.Points,
			Week:          int32(r.Week),
		}
	}
	return marshal(new(recordRow), rows)
}

// MarshalLeaderboard encodes the standings, week 1 first in week_points
func MarshalLeaderboard(lb scoring.Leaderboard) ([]byte, error) {
	rows := make([]any, len(lb.Rows))
	for i, r := range lb.Rows {
		rows[i] = leaderboardRow{
			Rank:         int32(r.Rank),
			Participant:  r.Participant,
			Points:       r.Points,
			PointsBehind: r.PointsBehind,
			WeekPoints:   append([]float64(nil), r.WeekPoints...),
		}
	}
	return marshal(new(leaderboardRow), rows)
}

// WriteDir writes records.parquet and leaderboard.parquet into dir, creating it if needed
func WriteDir(dir string, records []scoring.ActivityRecord, lb scoring.Leaderboard) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	data, err := MarshalRecords(records)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, RecordsFile), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", RecordsFile, err)
	}

	data, err = MarshalLeaderboard(lb)
	if err != nil {
		return fmt.Errorf("encoding leaderboard: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, LeaderboardFile), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", LeaderboardFile, err)
	}

	return nil
}

func marshal(schema any, rows []any) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, schema, writerParallelism)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
