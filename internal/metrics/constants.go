package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameActionsApplied     = "actions_applied_total"
	MetricNameActionsRejected    = "actions_rejected_total"
	MetricNameYieldFolded        = "yield_folded_total"
	MetricNameVehiclesDispatched = "vehicles_dispatched_total"
	MetricNameCodesRedeemed      = "codes_redeemed_total"
	MetricNameCatchupSeconds     = "catchup_elapsed_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextActionsApplied     = "Total number of game actions applied"
	HelpTextActionsRejected    = "Total number of game actions rejected"
	HelpTextYieldFolded        = "Total yield units folded during offline catch-up"
	HelpTextVehiclesDispatched = "Total number of vehicle departures"
	HelpTextCodesRedeemed      = "Total number of promo codes redeemed"
	HelpTextCatchupSeconds     = "Offline intervals folded per catch-up pass, in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelGame     = "game"
	LabelAction   = "action"
	LabelReason   = "reason"
	LabelResource = "resource"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// CatchupBuckets covers the range from an online poll (seconds) up to the
// accrual cap (hours)
var CatchupBuckets = []float64{1, 10, 60, 600, 3600, 7200, 21600, 86400}
