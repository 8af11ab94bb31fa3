package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crane_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crane_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crane_orders_created_total",
			Help: "Orders created by order type",
		},
		[]string{"order_type"},
	)

	ImportedRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crane_imported_rows_total",
			Help: "Legacy import rows by outcome",
		},
		[]string{"outcome"},
	)

	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crane_ws_clients",
			Help: "Connected order-event websocket clients",
		},
	)
)
