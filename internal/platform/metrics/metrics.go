// Package metrics exposes Prometheus collectors for the converter.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
)

// Metrics bundles the collectors recorded by the service layer.
type Metrics struct {
	registry      *prometheus.Registry
	Conversions   *prometheus.CounterVec
	RateUpdates   *prometheus.CounterVec
	HistoryClears *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fxconv",
			Name:      "conversions_total",
			Help:      "Currency conversions by result.",
		}, []string{"result"}),
		RateUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fxconv",
			Name:      "rate_updates_total",
			Help:      "Exchange rate updates by result.",
		}, []string{"result"}),
		HistoryClears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fxconv",
			Name:      "history_clears_total",
			Help:      "User history clear requests by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.Conversions, m.RateUpdates, m.HistoryClears)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
