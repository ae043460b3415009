package services

import (
	"github.com/NomadCrew/pett-server/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HealthMetrics groups the collectors updated by the health subsystem.
type HealthMetrics struct {
	checkCount  *prometheus.CounterVec
	readErrors  prometheus.Counter
	readLatency prometheus.Histogram
	statusGauge *prometheus.GaugeVec
	fileEvents  *prometheus.CounterVec
}

// Registered once per process; promauto panics on duplicate registration.
var healthMetrics = initHealthMetrics()

func initHealthMetrics() *HealthMetrics {
	return &HealthMetrics{
		checkCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pett_health_checks_total",
			Help: "Total number of health checks by resolved status",
		}, []string{"status"}),
		readErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pett_health_file_read_errors_total",
			Help: "Total number of failed health file reads, missing file excluded",
		}),
		readLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pett_health_check_duration_seconds",
			Help:    "Time taken to read and parse the health file",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		statusGauge: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pett_health_status",
			Help: "Last status observed by the health file watcher (1 = current)",
		}, []string{"status"}),
		fileEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pett_health_file_events_total",
			Help: "Filesystem events observed on the health file",
		}, []string{"op"}),
	}
}

// setCurrent marks status as the one currently reported by the health file.
func (m *HealthMetrics) setCurrent(status types.HealthStatus) {
	for _, s := range types.AllHealthStatuses {
		value := 0.0
		if s == status {
			value = 1
		}
		m.statusGauge.WithLabelValues(s.String()).Set(value)
	}
}
