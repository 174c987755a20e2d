package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"pickmycollege/internal/db"
	"pickmycollege/internal/models"
)

var counterDesc = prometheus.NewDesc(
	"pickmycollege_counter_total",
	"Analytics counter values by name",
	[]string{"name"},
	nil,
)

// CounterCollector is a custom Prometheus collector that reads the
// analytics counters from the database on each scrape.
type CounterCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *CounterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- counterDesc
}

// Collect queries the database for all counters and emits them.
func (c *CounterCollector) Collect(ch chan<- prometheus.Metric) {
	counters, err := c.db.GetAllCounters(context.Background())
	if err != nil {
		slog.Error("failed to collect counter metrics", "error", err)
		return
	}
	for _, cnt := range counters {
		ch <- prometheus.MustNewConstMetric(
			counterDesc,
			prometheus.CounterValue,
			float64(cnt.Count),
			cnt.Name,
		)
	}
}

// Recorder provides async counter recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&CounterCollector{db: database})
	})
}

// RecordRecommendation asynchronously bumps the submission counter and the
// colleges-recommended counter. Fire-and-forget: failures are logged and
// never affect the response that triggered them.
func RecordRecommendation(collegesRecommended int) {
	if recorder == nil {
		return
	}
	go func() {
		ctx := context.Background()
		if err := recorder.db.IncrementCounter(ctx, models.CounterSubmissions, 1); err != nil {
			slog.Error("failed to record submission", "error", err)
		}
		if collegesRecommended > 0 {
			if err := recorder.db.IncrementCounter(ctx, models.CounterCollegesRecommended, int64(collegesRecommended)); err != nil {
				slog.Error("failed to record recommended colleges", "error", err)
			}
		}
	}()
}
