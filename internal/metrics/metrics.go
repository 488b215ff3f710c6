// Package metrics holds the Prometheus collectors of the runtime.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of one simulator. Each instance has its own
// registry so several simulators can coexist in a process.
type Metrics struct {
	Registry *prometheus.Registry

	FactoriesRegistered  prometheus.Gauge
	LibrariesLoaded      *prometheus.CounterVec
	LibraryLoadErrors    prometheus.Counter
	InstancesCreated     *prometheus.CounterVec
	CheckpointBytes      *prometheus.CounterVec
	CheckpointDuration   *prometheus.HistogramVec
	ResolveMisses        prometheus.Counter
	UnresolvedReferences prometheus.Counter
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		FactoriesRegistered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "simcore_factories_registered",
				Help: "Number of component factories in the registry.",
			},
		),
		LibrariesLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simcore_libraries_loaded_total",
				Help: "Number of libraries loaded and initialised, by kind.",
			},
			[]string{"kind"},
		),
		LibraryLoadErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "simcore_library_load_errors_total",
				Help: "Number of libraries that failed to load or initialise.",
			},
		),
		InstancesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simcore_instances_created_total",
				Help: "Number of components created, by factory.",
			},
			[]string{"factory"},
		),
		CheckpointBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simcore_checkpoint_bytes_total",
				Help: "Bytes of checkpoint state moved, by direction.",
			},
			[]string{"direction"},
		),
		CheckpointDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simcore_checkpoint_duration_seconds",
				Help:    "Time taken to store or restore a checkpoint.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"direction"},
		),
		ResolveMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "simcore_resolve_misses_total",
				Help: "Number of paths that did not resolve.",
			},
		),
		UnresolvedReferences: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "simcore_unresolved_references_total",
				Help: "Number of stored references that did not resolve on restore.",
			},
		),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FactoriesRegistered,
		m.LibrariesLoaded,
		m.LibraryLoadErrors,
		m.InstancesCreated,
		m.CheckpointBytes,
		m.CheckpointDuration,
		m.ResolveMisses,
		m.UnresolvedReferences,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
