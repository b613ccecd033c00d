// The `metric` package records what a render run produced, in the Prometheus
// text format. The file is meant for a node_exporter textfile collector, so a
// cron job regenerating a feed can be monitored like a long-running service.
package metric

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Render struct {
	registry *prometheus.Registry

	events      *prometheus.GaugeVec
	bytes       *prometheus.GaugeVec
	duration    *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
	failures    *prometheus.CounterVec
}

// Every metric carries an `input` label, the document the run rendered
func NewRender() *Render {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Render{
		registry: registry,
		events: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "icsgen_render_events",
			Help: "The number of events in the rendered calendar",
		}, []string{"input"}),
		bytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "icsgen_render_bytes",
			Help: "The size of the rendered calendar in bytes",
		}, []string{"input"}),
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "icsgen_render_duration_microsec",
			Help: "The time spent loading and rendering the calendar in microseconds",
		}, []string{"input"}),
		lastSuccess: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "icsgen_render_last_success_timestamp_seconds",
			Help: "The unix time of the last successful render",
		}, []string{"input"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "icsgen_render_failures_total",
			Help: "The number of failed renders",
		}, []string{"input"}),
	}
}

func (r *Render) Success(input string, events int, size int, took time.Duration, at time.Time) {
	r.events.WithLabelValues(input).Set(float64(events))
	r.bytes.WithLabelValues(input).Set(float64(size))
	r.duration.WithLabelValues(input).Set(float64(took.Microseconds()))
	r.lastSuccess.WithLabelValues(input).Set(float64(at.Unix()))
}

func (r *Render) Failure(input string) {
	r.failures.WithLabelValues(input).Inc()
}

// Write every metric to path. The file is replaced atomically.
func (r *Render) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("WriteToTextfile: %w", err)
	}
	slog.Debug("render metrics written", "path", path)
	return nil
}
