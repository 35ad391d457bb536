// Package metrics регистрирует prometheus-счётчики HTTP-слоя.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal считает HTTP-запросы по методу, шаблону пути и статусу.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of processed HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration — гистограмма длительности обработки запросов.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Time taken to process HTTP requests",
		},
		[]string{"method", "path"},
	)
)

// Register регистрирует коллекторы в глобальном реестре prometheus.
func Register() {
	prometheus.MustRegister(RequestsTotal, RequestDuration)
}
