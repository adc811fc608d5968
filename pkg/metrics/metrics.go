// Package metrics registra los colectores Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MovementsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_movements_recorded_total",
		Help: "Movimientos registrados por tipo",
	}, []string{"kind"})

	MovementsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_movements_rejected_total",
		Help: "Movimientos rechazados por motivo",
	}, []string{"reason"})

	MovementLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "almacen_movement_latency_seconds",
		Help:    "Latencia de la transacción de registro de movimientos",
		Buckets: prometheus.DefBuckets,
	})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_exports_total",
		Help: "Exportaciones generadas por conjunto de datos y formato",
	}, []string{"dataset", "format"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total de peticiones HTTP",
	}, []string{"method", "path", "status"})
)
