package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesCreated      int
	matchesResolved     int
	draftActions        int
	evidenceRecorded    int
	disputesOpened      int
	matchmakingSearches int
	operationDurations  []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		operationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCreated++
}

func (m *Mock) IncMatchesResolved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesResolved++
}

func (m *Mock) IncDraftActions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draftActions++
}

func (m *Mock) IncEvidenceRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evidenceRecorded++
}

func (m *Mock) IncDisputesOpened() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disputesOpened++
}

func (m *Mock) IncMatchmakingSearches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchmakingSearches++
}

func (m *Mock) ObserveOperationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationDurations = append(m.operationDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesCreated returns the number of times IncMatchesCreated was called.
func (m *Mock) MatchesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCreated
}

// MatchesResolved returns the number of times IncMatchesResolved was called.
func (m *Mock) MatchesResolved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesResolved
}

// DraftActions returns the number of times IncDraftActions was called.
func (m *Mock) DraftActions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draftActions
}

// EvidenceRecorded returns the number of times IncEvidenceRecorded was called.
func (m *Mock) EvidenceRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evidenceRecorded
}

// DisputesOpened returns the number of times IncDisputesOpened was called.
func (m *Mock) DisputesOpened() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disputesOpened
}

// MatchmakingSearches returns the number of times IncMatchmakingSearches was called.
func (m *Mock) MatchmakingSearches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchmakingSearches
}

// OperationDurations returns the durations passed to ObserveOperationDuration.
func (m *Mock) OperationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.operationDurations...)
}
