package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics instruments the inbound pipeline. Kind labels use the
// snake_case form of the message kind.
type metrics struct {
	registry *prometheus.Registry

	received        *prometheus.CounterVec
	rejected        *prometheus.CounterVec
	processed       *prometheus.CounterVec
	handlerFailures *prometheus.CounterVec
	transportErrors *prometheus.CounterVec
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		registry: registry,
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shapeshifter",
			Name:      "messages_received_total",
			Help:      "Inbound payload messages that passed the transport checks.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shapeshifter",
			Name:      "messages_rejected_total",
			Help:      "Inbound messages answered with a functional rejection.",
		}, []string{"reason"}),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shapeshifter",
			Name:      "messages_processed_total",
			Help:      "Messages handled to completion by the inbound workers.",
		}, []string{"kind"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shapeshifter",
			Name:      "handler_failures_total",
			Help:      "Handler errors and panics during message processing.",
		}, []string{"kind"}),
		transportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shapeshifter",
			Name:      "transport_errors_total",
			Help:      "Requests refused at the HTTP layer, by status code.",
		}, []string{"status"}),
	}
	registry.MustRegister(m.received, m.rejected, m.processed, m.handlerFailures, m.transportErrors)
	return m
}
