package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesCreated()
	IncMatchesResolved()
	IncDraftActions()
	IncEvidenceRecorded()
	IncDisputesOpened()
	IncMatchmakingSearches()
	ObserveOperationDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
