package kinetic

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsInternal holds the engine's own metrics
// on a private registry, served at /metrics
type StatsInternal struct {
	Registry    *prometheus.Registry
	Lookups     *prometheus.CounterVec // next-option lookups by surface
	Options     prometheus.Histogram   // options returned per lookup
	ReloadTimer prometheus.Histogram   // dataset rebuild seconds
	Reloads     *prometheus.CounterVec // dataset rebuilds by result
	WWW         *prometheus.CounterVec // API responses by code and method
	DatasetSize prometheus.Gauge
	DiagCount   prometheus.Gauge
}

func NewStatsInternal() *StatsInternal {
	reg := prometheus.NewRegistry()

	s := &StatsInternal{
		Registry: reg,
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinetic",
			Name:      "lookups_total",
			Help:      "Next option lookups by surface",
		}, []string{"surface"}),
		Options: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kinetic",
			Name:      "options_returned",
			Help:      "Number of next options returned per lookup",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		ReloadTimer: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kinetic",
			Name:      "dataset_reload_seconds",
			Help:      "Time taken to rebuild the motion dataset",
			Buckets:   prometheus.DefBuckets,
		}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinetic",
			Name:      "dataset_reloads_total",
			Help:      "Dataset rebuilds by result",
		}, []string{"result"}),
		WWW: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinetic",
			Name:      "http_responses_total",
			Help:      "API responses by status code and method",
		}, []string{"code", "method"}),
		DatasetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kinetic",
			Name:      "dataset_records",
			Help:      "Records in the active dataset",
		}),
		DiagCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kinetic",
			Name:      "dataset_diagnostics",
			Help:      "Parse diagnostics in the active dataset",
		}),
	}

	reg.MustRegister(
		s.Lookups, s.Options, s.ReloadTimer, s.Reloads, s.WWW,
		s.DatasetSize, s.DiagCount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return s
}

// RecLookup counts one lookup and how many options it found
func (s *StatsInternal) RecLookup(surface string, options int) {
	s.Lookups.WithLabelValues(surface).Inc()
	s.Options.Observe(float64(options))
}

func (s *StatsInternal) RecReloadTimer(seconds float64) {
	s.ReloadTimer.Observe(seconds)
}

// RecReload counts a rebuild, ok or error
func (s *StatsInternal) RecReload(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	s.Reloads.WithLabelValues(result).Inc()
}

func (s *StatsInternal) RecWWW(code, method string) {
	s.WWW.WithLabelValues(code, method).Inc()
}

// SetDataset records the size of the dataset now serving
func (s *StatsInternal) SetDataset(records, diagnostics int) {
	s.DatasetSize.Set(float64(records))
	s.DiagCount.Set(float64(diagnostics))
}

func (s *StatsInternal) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{Registry: s.Registry})
}
