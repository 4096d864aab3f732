package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "securecheck_store_query_duration_seconds",
			Help:    "Store round-trip duration in seconds, connection included",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"driver"},
	)

	StoreQueryTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_store_query_total",
			Help: "Store statements executed, by result status",
		},
		[]string{"status"},
	)

	CatalogRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_catalog_runs_total",
			Help: "Catalog queries triggered, by query and source",
		},
		[]string{"query", "source"},
	)

	LookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_lookup_total",
			Help: "Vehicle lookups, by outcome",
		},
		[]string{"outcome"},
	)

	ExtractLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_extract_loads_total",
			Help: "Spreadsheet extract reads, by result",
		},
		[]string{"result"},
	)

	ExtractCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "securecheck_extract_cache_hits_total",
			Help: "Extract loads served from the process cache",
		},
	)

	ExtractCoercionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_extract_coercion_failures_total",
			Help: "Extract values that could not be coerced and were recorded as absent",
		},
		[]string{"field"},
	)
)

func Init() {
	prometheus.MustRegister(StoreQueryDuration)
	prometheus.MustRegister(StoreQueryTotal)
	prometheus.MustRegister(CatalogRunsTotal)
	prometheus.MustRegister(LookupTotal)
	prometheus.MustRegister(ExtractLoads)
	prometheus.MustRegister(ExtractCacheHits)
	prometheus.MustRegister(ExtractCoercionFailures)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
