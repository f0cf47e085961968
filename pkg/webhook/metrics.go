package webhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveriesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drydock",
		Subsystem: "webhook",
		Name:      "deliveries_total",
		Help:      "The total number of webhook deliveries by outcome",
	}, []string{"status"})

	deliveryErrorsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drydock",
		Subsystem: "webhook",
		Name:      "delivery_errors_total",
		Help:      "The total number of webhook delivery errors by reason",
	}, []string{"reason"})

	dispatchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drydock",
		Subsystem: "webhook",
		Name:      "dispatches_total",
		Help:      "The total number of dispatched events by type",
	}, []string{"event"})
)
