package game24

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// OTel instruments, initialized once via InitMetrics().
var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	valueGauge   metric.Float64Gauge
)

// Prometheus collectors for puzzle dealing, served on /metrics.
var (
	puzzlesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "game24",
		Name:      "puzzles_generated_total",
		Help:      "Puzzles dealt, by source (random or fallback).",
	}, []string{"source"})

	puzzleAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "game24",
		Name:      "puzzle_attempts",
		Help:      "Random draws needed to deal a solvable puzzle.",
		Buckets:   []float64{1, 2, 3, 5, 10, 25, 50, 100},
	})
)

// InitMetrics registers the OTel instruments for the game24 domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("game24")

	var err error

	opsCounter, err = meter.Int64Counter("game24.operations.total",
		metric.WithDescription("Total number of game24 operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("game24.operation.duration",
		metric.WithDescription("Duration of game24 operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("game24.errors.total",
		metric.WithDescription("Total number of game24 request errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	valueGauge, err = meter.Float64Gauge("game24.verify.last_value",
		metric.WithDescription("Value of the last verified player expression"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating value gauge: %w", err)
	}

	return nil
}
