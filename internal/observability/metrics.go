package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	rowsIngestedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scoreboard",
		Subsystem: "ingest",
		Name:      "rows_total",
		Help:      "Number of raw activity rows read from the source.",
	}, []string{"source"})

	rowsDroppedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scoreboard",
		Subsystem: "ingest",
		Name:      "rows_dropped_total",
		Help:      "Number of rows dropped because their date could not be parsed.",
	})

	invalidNumericCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scoreboard",
		Subsystem: "ingest",
		Name:      "invalid_numeric_cells_total",
		Help:      "Number of non-empty numeric cells that failed coercion and were treated as missing.",
	})

	fetchErrorsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scoreboard",
		Subsystem: "ingest",
		Name:      "fetch_errors_total",
		Help:      "Number of failed source fetches.",
	}, []string{"source"})

	reportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scoreboard",
		Subsystem: "report",
		Name:      "build_duration_seconds",
		Help:      "Time spent fetching and aggregating a scoreboard report.",
		Buckets:   prometheus.DefBuckets,
	})

	lastReportGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "scoreboard",
		Subsystem: "report",
		Name:      "last_report_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successfully built report.",
	})
)

func init() {
	prometheus.MustRegister(
		rowsIngestedCounter,
		rowsDroppedCounter,
		invalidNumericCounter,
		fetchErrorsCounter,
		reportDuration,
		lastReportGauge,
	)
}

// RecordIngest updates the ingest counters for one normalized batch.
func RecordIngest(source string, inputRows, droppedRows, invalidNumeric int) {
	rowsIngestedCounter.WithLabelValues(source).Add(float64(inputRows))
	rowsDroppedCounter.Add(float64(droppedRows))
	invalidNumericCounter.Add(float64(invalidNumeric))
}

// RecordFetchError counts a failed source fetch.
func RecordFetchError(source string) {
	fetchErrorsCounter.WithLabelValues(source).Inc()
}

// RecordReport observes the build duration and moves the last-report watermark.
func RecordReport(took time.Duration, at time.Time) {
	reportDuration.Observe(took.Seconds())
	if at.IsZero() {
		return
	}
	lastReportGauge.Set(float64(at.Unix()))
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("metrics server shutdown: %s", err)
		}
	}()

	logrus.Infof("serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
