package ports

import "time"

// MetricsSink receives fire-and-forget observations. Implementations must be
// safe for concurrent use.
type MetricsSink interface {
	RecordUpstreamCall(service string, success bool, duration time.Duration)
	RecordRecommendation(alertLevel string)
	RecordRecommendationLatency(duration time.Duration)
	RecordCacheLookup(service string, hit bool)
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
}
