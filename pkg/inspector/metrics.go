package inspector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/weaveworks/common/instrument"
)

var (
	connectionsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "corgi",
		Name:      "connections_accepted_total",
		Help:      "Connections accepted by the listener.",
	})
	acceptErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "corgi",
		Name:      "accept_errors_total",
		Help:      "Failed accept calls. The listener keeps running after each one.",
	})
	connectionsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "corgi",
		Name:      "connections_in_flight",
		Help:      "Connections currently being handled.",
	})
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corgi",
		Name:      "requests_total",
		Help:      "Connections handled, by outcome.",
	}, []string{"outcome"})
	bodiesRendered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corgi",
		Name:      "bodies_rendered_total",
		Help:      "Rendered request bodies, by content classification.",
	}, []string{"classification"})
	connectionDuration = instrument.NewHistogramCollector(prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "corgi",
		Name:      "connection_duration_seconds",
		Help:      "Time spent handling one connection.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status_code"}))
)

func init() {
	connectionDuration.Register()
	prometheus.MustRegister(
		connectionsAccepted,
		acceptErrors,
		connectionsInFlight,
		requestsTotal,
		bodiesRendered,
	)
}
