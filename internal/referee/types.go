package referee

import (
	"errors"
	"sync"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/metrics"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/notifier"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/pubsub"
)

var (
	// ErrPlayerNotInMatch is returned when the acting user holds no seat
	// in the match.
	ErrPlayerNotInMatch = errors.New("player is not part of this match")
)

// PrecheckQuorum is how many PASS precheck verdicts a match needs before it
// is cleared to start.
const PrecheckQuorum = 2

// Referee drives matches through their lifecycle. Every mutation loads the
// match, applies one rule, and saves it back under a single mutex, so
// concurrent submissions against the same match serialize instead of
// clobbering each other.
type Referee struct {
	matches  match.Store
	disputes dispute.Store
	leagues  league.Store
	notifier notifier.Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	mu       sync.Mutex
}

// New creates a new Referee.
func New(matches match.Store, disputes dispute.Store, leagues league.Store, notifier notifier.Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Referee {
	return &Referee{
		matches:  matches,
		disputes: disputes,
		leagues:  leagues,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
	}
}
