package league

import (
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
)

// League is a competitive circuit players hold ratings in.
type League struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Season is a scoring window within a league. At most one season per league
// is active at a time.
type Season struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	StartsAt int64  `json:"starts_at"`
	EndsAt   int64  `json:"ends_at"`
	Active   bool   `json:"active"`
}

// Ruleset fixes the draft template and the agent policy for a queue.
type Ruleset struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	TemplateID string            `json:"template_id"`
	Policy     draft.AgentPolicy `json:"policy"`
}

// Queue is a matchmaking lane: searchers on the same queue get paired under
// the same league, ruleset and challenge.
type Queue struct {
	ID          string `json:"id"`
	LeagueID    string `json:"league_id"`
	RulesetID   string `json:"ruleset_id"`
	ChallengeID string `json:"challenge_id"`
	Name        string `json:"name"`
}

// Agent is one draftable catalog entry.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// PlayerRating is a user's standing in one league. It is only ever mutated
// by the caller applying the rating engine's output.
type PlayerRating struct {
	UserID             string `json:"user_id"`
	LeagueID           string `json:"league_id"`
	Elo                int    `json:"elo"`
	ProvisionalMatches int    `json:"provisional_matches"`
	UpdatedAt          int64  `json:"updated_at"`
}

// DefaultElo is the rating a player enters a league with.
const DefaultElo = 1200
