package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProcessorMetrics collects order processing outcomes
type ProcessorMetrics struct {
	registry *prometheus.Registry

	ordersTotal  *prometheus.CounterVec
	passTotal    *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
}

func NewProcessorMetrics() *ProcessorMetrics {
	registry := prometheus.NewRegistry()

	ordersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orderprocessor",
			Name:      "orders_processed_total",
			Help:      "Total processed orders by handler and final status.",
		},
		[]string{"handler", "status"},
	)
	passTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orderprocessor",
			Name:      "passes_total",
			Help:      "Total processing passes by outcome.",
		},
		[]string{"outcome"},
	)
	passDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orderprocessor",
			Name:      "pass_duration_seconds",
			Help:      "Processing pass duration in seconds by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	registry.MustRegister(
		ordersTotal,
		passTotal,
		passDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &ProcessorMetrics{
		registry:     registry,
		ordersTotal:  ordersTotal,
		passTotal:    passTotal,
		passDuration: passDuration,
	}
}

func (m *ProcessorMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ProcessorMetrics) ObserveOrder(handler string, status string) {
	m.ordersTotal.WithLabelValues(handler, status).Inc()
}

func (m *ProcessorMetrics) ObservePass(duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	m.passTotal.WithLabelValues(outcome).Inc()
	m.passDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
