package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchesCreated      prometheus.Counter
	MatchesResolved     prometheus.Counter
	DraftActions        prometheus.Counter
	EvidenceRecorded    prometheus.Counter
	DisputesOpened      prometheus.Counter
	MatchmakingSearches prometheus.Counter
	OperationDuration   prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
