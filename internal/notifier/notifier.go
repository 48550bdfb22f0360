package notifier

import (
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For freshly paired matches
	SendMatchFoundNotification(m *match.Match, dryRun bool) error
	// For matches that reached RESOLVED
	SendMatchResolvedNotification(m *match.Match, dryRun bool) error
	// For contested matches
	SendDisputeOpenedNotification(d *dispute.Dispute, dryRun bool) error
	// For league standings requests
	SendStandings(standings []league.PlayerRating, dryRun bool) error
}
