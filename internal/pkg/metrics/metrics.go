// Package metrics holds the Prometheus collectors of the service. They are
// registered with the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "servicedesk"

var (
	// ProposalsTotal counts proposal attempts by outcome: proposed,
	// no_candidates, not_searching or error.
	ProposalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "proposals_total",
		Help:      "The total number of proposal attempts",
	}, []string{"outcome"})

	// ProposalResponsesTotal counts accept and reject calls by result.
	ProposalResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "proposal_responses_total",
		Help:      "The total number of proposal responses",
	}, []string{"response", "result"})

	// TransitionsTotal counts committed order mutations by event kind.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "transitions_total",
		Help:      "The total number of committed order transitions",
	}, []string{"kind"})

	// ProposalQueueDropped counts scheduled proposals dropped on a full queue.
	ProposalQueueDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "jobs",
		Name:      "proposal_queue_dropped_total",
		Help:      "The total number of proposals dropped because the queue was full",
	})

	// NotificationsTotal counts notification deliveries by result:
	// delivered, stored_only or failed.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "deliveries_total",
		Help:      "The total number of notification deliveries",
	}, []string{"kind", "result"})

	// SubscriberDropped counts real-time events dropped on slow subscribers.
	SubscriberDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "subscriber_dropped_total",
		Help:      "The total number of events dropped because a subscriber buffer was full",
	})

	// ActiveSubscribers is the number of open event streams.
	ActiveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "active_subscribers",
		Help:      "The number of open real-time event streams",
	})

	// HTTPErrorsTotal counts error responses by kind.
	HTTPErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "The total number of error responses",
	}, []string{"kind", "code"})
)
