package notifier

import (
	"sync"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchFoundNotificationCalls    []struct{ Match *match.Match }
	SendMatchResolvedNotificationCalls []struct{ Match *match.Match }
	SendDisputeOpenedNotificationCalls []struct{ Dispute *dispute.Dispute }
	SendStandingsCalls                 [][]league.PlayerRating
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchFoundNotificationCalls = nil
	m.SendMatchResolvedNotificationCalls = nil
	m.SendDisputeOpenedNotificationCalls = nil
	m.SendStandingsCalls = nil
}

func (m *Mock) SendMatchFoundNotification(mm *match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchFoundNotificationCalls = append(m.SendMatchFoundNotificationCalls, struct{ Match *match.Match }{mm})
	return nil
}

func (m *Mock) SendMatchResolvedNotification(mm *match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResolvedNotificationCalls = append(m.SendMatchResolvedNotificationCalls, struct{ Match *match.Match }{mm})
	return nil
}

func (m *Mock) SendDisputeOpenedNotification(d *dispute.Dispute, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDisputeOpenedNotificationCalls = append(m.SendDisputeOpenedNotificationCalls, struct{ Dispute *dispute.Dispute }{d})
	return nil
}

func (m *Mock) SendStandings(standings []league.PlayerRating, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, standings)
	return nil
}
