package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RouterMetrics holds all Prometheus metrics for the router module
type RouterMetrics struct {
	RoutesTotal  *prometheus.CounterVec
	RouteLatency prometheus.Histogram
	RouteHops    prometheus.Histogram
	HopsTotal    *prometheus.CounterVec
}

var (
	routerMetricsOnce sync.Once
	routerMetrics     *RouterMetrics
)

// NewRouterMetrics creates and registers router metrics (singleton pattern)
func NewRouterMetrics() *RouterMetrics {
	routerMetricsOnce.Do(func() {
		routerMetrics = &RouterMetrics{
			RoutesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "basil",
					Subsystem: "router",
					Name:      "routes_total",
					Help:      "Total number of routes executed",
				},
				[]string{"asset_in", "asset_out", "status"},
			),
			RouteLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "basil",
					Subsystem: "router",
					Name:      "route_latency_seconds",
					Help:      "Route execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			RouteHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "basil",
					Subsystem: "router",
					Name:      "route_hops",
					Help:      "Number of hops per executed route",
					Buckets:   []float64{1, 2, 3, 4, 5},
				},
			),
			HopsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "basil",
					Subsystem: "router",
					Name:      "hops_total",
					Help:      "Total number of hops executed, by pool kind",
				},
				[]string{"kind", "status"},
			),
		}
	})
	return routerMetrics
}
