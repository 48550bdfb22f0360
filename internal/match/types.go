package match

import (
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
)

// State is the lifecycle state of a match.
type State string

const (
	StateCreated              State = "CREATED"
	StateCheckin              State = "CHECKIN"
	StateDrafting             State = "DRAFTING"
	StateAwaitingPrecheck     State = "AWAITING_PRECHECK"
	StateReadyToStart         State = "READY_TO_START"
	StateInProgress           State = "IN_PROGRESS"
	StateAwaitingResultUpload State = "AWAITING_RESULT_UPLOAD"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateDisputed             State = "DISPUTED"
	StateResolved             State = "RESOLVED"
	StateCanceled             State = "CANCELED"
	StateExpired              State = "EXPIRED"
)

// Player is one of the two seats in a match. Only CheckedIn is mutated after
// creation.
type Player struct {
	UserID    string     `json:"user_id"`
	Side      draft.Side `json:"side"`
	CheckedIn bool       `json:"checked_in"`
}

// EvidenceType distinguishes the anti-cheat channels.
type EvidenceType string

const (
	EvidencePrecheck EvidenceType = "PRECHECK"
	EvidenceInrun    EvidenceType = "INRUN"
	EvidenceResult   EvidenceType = "RESULT"
)

// EvidenceVerdict is the recorded outcome of one anti-cheat check. The core
// never analyses frames itself, it only stores verdicts handed to it.
type EvidenceVerdict string

const (
	VerdictPass      EvidenceVerdict = "PASS"
	VerdictViolation EvidenceVerdict = "VIOLATION"
	VerdictLowConf   EvidenceVerdict = "LOW_CONF"
)

// EvidenceRecord is immutable once created; records are only ever appended
// to a match's evidence logs.
type EvidenceRecord struct {
	ID             string             `json:"id"`
	Type           EvidenceType       `json:"type"`
	Timestamp      int64              `json:"timestamp"`
	UserID         string             `json:"user_id,omitempty"`
	DetectedAgents []string           `json:"detected_agents,omitempty"`
	Confidence     map[string]float64 `json:"confidence,omitempty"`
	Result         EvidenceVerdict    `json:"result"`
	FrameHash      string             `json:"frame_hash,omitempty"`
	CropURL        string             `json:"crop_url,omitempty"`
}

// ResultProof is the submitted outcome of a match. At most one lives on a
// match at a time; resubmission before confirmation overwrites it.
type ResultProof struct {
	MetricType  string  `json:"metric_type"`
	Value       float64 `json:"value"`
	ProofURL    string  `json:"proof_url"`
	SubmittedAt int64   `json:"submitted_at"`
}

// Evidence bundles the two append-only anti-cheat logs and the result proof.
type Evidence struct {
	Precheck []EvidenceRecord `json:"precheck"`
	Inrun    []EvidenceRecord `json:"inrun"`
	Result   *ResultProof     `json:"result,omitempty"`
}

// Match is one competitive session. It exclusively owns its draft log and
// evidence bundle; disputes and tickets reference it by id only.
type Match struct {
	ID          string      `json:"id"`
	State       State       `json:"state"`
	LeagueID    string      `json:"league_id"`
	RulesetID   string      `json:"ruleset_id"`
	ChallengeID string      `json:"challenge_id"`
	SeasonID    string      `json:"season_id"`
	Players     []Player    `json:"players"`
	Draft       draft.State `json:"draft"`
	Evidence    Evidence    `json:"evidence"`
	ConfirmedBy []string    `json:"confirmed_by"`
	CreatedAt   int64       `json:"created_at"`
	UpdatedAt   int64       `json:"updated_at"`
}

// PlayerByUser returns the seat held by the given user, if any.
func (m *Match) PlayerByUser(userID string) (*Player, bool) {
	for i := range m.Players {
		if m.Players[i].UserID == userID {
			return &m.Players[i], true
		}
	}
	return nil, false
}

// AllCheckedIn reports whether every seat has checked in.
func (m *Match) AllCheckedIn() bool {
	for _, p := range m.Players {
		if !p.CheckedIn {
			return false
		}
	}
	return len(m.Players) > 0
}

// HasConfirmed reports whether the user already confirmed the result.
func (m *Match) HasConfirmed(userID string) bool {
	for _, id := range m.ConfirmedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// PrecheckPasses counts PASS verdicts in the precheck log.
func (m *Match) PrecheckPasses() int {
	n := 0
	for _, rec := range m.Evidence.Precheck {
		if rec.Result == VerdictPass {
			n++
		}
	}
	return n
}
