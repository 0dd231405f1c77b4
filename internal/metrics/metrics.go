package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ActionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsApplied,
			Help: HelpTextActionsApplied,
		},
		[]string{LabelGame, LabelAction},
	)

	ActionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsRejected,
			Help: HelpTextActionsRejected,
		},
		[]string{LabelGame, LabelAction, LabelReason},
	)

	YieldFolded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameYieldFolded,
			Help: HelpTextYieldFolded,
		},
		[]string{LabelGame, LabelResource},
	)

	VehiclesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVehiclesDispatched,
			Help: HelpTextVehiclesDispatched,
		},
		[]string{LabelGame},
	)

	CodesRedeemed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCodesRedeemed,
			Help: HelpTextCodesRedeemed,
		},
		[]string{LabelGame},
	)

	CatchupSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameCatchupSeconds,
			Help:    HelpTextCatchupSeconds,
			Buckets: CatchupBuckets,
		},
		[]string{LabelGame},
	)
)
