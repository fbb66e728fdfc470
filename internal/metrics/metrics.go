package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ReaderTransitions считает переходы состояния читалки комиксов
	ReaderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_reader_transitions_total",
			Help: "Comic reader state transitions",
		},
		[]string{"action"},
	)

	ViewerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_viewer_transitions_total",
			Help: "Image viewer state transitions",
		},
		[]string{"action"},
	)

	ThemeToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_theme_changes_total",
			Help: "Theme changes by resulting theme",
		},
		[]string{"theme"},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_catalog_reloads_total",
			Help: "Catalog file reloads by result",
		},
		[]string{"result"},
	)

	CompanionWidgets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showcase_companion_widgets",
			Help: "Companion widgets currently held in memory",
		},
	)
)
