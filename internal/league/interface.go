package league

import "errors"

// ErrNotFound is returned when a catalog entity id does not exist.
var ErrNotFound = errors.New("league entity not found")

// Store defines the catalog and standings contract: leagues, seasons,
// rulesets, queues, agents and per-league ratings.
type Store interface {
	UpsertLeague(l League) error
	GetLeague(id string) (*League, error)

	UpsertSeason(s Season) error
	GetActiveSeason(leagueID string) (*Season, error)

	UpsertRuleset(r Ruleset) error
	GetRuleset(id string) (*Ruleset, error)

	UpsertQueue(q Queue) error
	GetQueue(id string) (*Queue, error)

	UpsertAgents(agents []Agent) error
	GetAllAgents() ([]Agent, error)

	GetRating(userID, leagueID string) (*PlayerRating, error)
	UpsertRating(r PlayerRating) error
	GetStandings(leagueID string) ([]PlayerRating, error)
}
