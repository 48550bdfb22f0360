package draft

// Side identifies which seat of a match an action belongs to.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Kind distinguishes bans from picks.
type Kind string

const (
	KindBan  Kind = "BAN"
	KindPick Kind = "PICK"
)

// ActionType is one slot in a draft sequence, e.g. a ban by side A.
type ActionType string

const (
	ActionBanA  ActionType = "BAN_A"
	ActionBanB  ActionType = "BAN_B"
	ActionPickA ActionType = "PICK_A"
	ActionPickB ActionType = "PICK_B"
)

// actionTraits maps every action type to its kind and side. Resolving these
// through a table keeps the engine from sniffing string suffixes.
var actionTraits = map[ActionType]struct {
	Kind Kind
	Side Side
}{
	ActionBanA:  {KindBan, SideA},
	ActionBanB:  {KindBan, SideB},
	ActionPickA: {KindPick, SideA},
	ActionPickB: {KindPick, SideB},
}

// Kind returns the kind (ban or pick) of the action type.
func (t ActionType) Kind() Kind {
	return actionTraits[t].Kind
}

// Side returns the side the action type belongs to.
func (t ActionType) Side() Side {
	return actionTraits[t].Side
}

// Known reports whether the action type exists in the trait table.
func (t ActionType) Known() bool {
	_, ok := actionTraits[t]
	return ok
}

// UniqueMode controls how pick uniqueness is scoped within a draft.
type UniqueMode string

const (
	// UniqueGlobal means an agent picked by either side is gone for both.
	UniqueGlobal UniqueMode = "GLOBAL"
	// UniqueOpponent means each side keeps its own pick pool.
	UniqueOpponent UniqueMode = "OPPONENT"
)

// PolicyMode controls how a ruleset's agent list is interpreted.
type PolicyMode string

const (
	PolicyWhitelist PolicyMode = "WHITELIST"
	PolicyBlacklist PolicyMode = "BLACKLIST"
)

// AgentPolicy is a ruleset's allowed-agents rule.
type AgentPolicy struct {
	Mode     PolicyMode `json:"mode"`
	AgentIDs []string   `json:"agent_ids"`
}

// Allows reports whether the policy permits the given agent.
func (p AgentPolicy) Allows(agentID string) bool {
	listed := false
	for _, id := range p.AgentIDs {
		if id == agentID {
			listed = true
			break
		}
	}
	switch p.Mode {
	case PolicyWhitelist:
		return listed
	case PolicyBlacklist:
		return !listed
	}
	return true
}

// Action is one submitted ban or pick.
type Action struct {
	Type      ActionType `json:"type"`
	AgentID   string     `json:"agent_id"`
	UserID    string     `json:"user_id"`
	Timestamp int64      `json:"timestamp"`
}

// Template is a fixed ordered sequence of turns a draft must follow.
type Template struct {
	ID         string       `json:"id"`
	Sequence   []ActionType `json:"sequence"`
	UniqueMode UniqueMode   `json:"unique_mode"`
}

// State is the draft log embedded in a match. Actions is a strict
// prefix-growing log; its length never exceeds the sequence length.
type State struct {
	TemplateID string       `json:"template_id"`
	Sequence   []ActionType `json:"sequence"`
	Actions    []Action     `json:"actions"`
	UniqueMode UniqueMode   `json:"unique_mode"`
}

// NewState initialises an empty draft log from a template.
func NewState(tpl Template) State {
	seq := make([]ActionType, len(tpl.Sequence))
	copy(seq, tpl.Sequence)
	return State{
		TemplateID: tpl.ID,
		Sequence:   seq,
		UniqueMode: tpl.UniqueMode,
	}
}

// Complete reports whether every turn in the sequence has been taken.
func (s *State) Complete() bool {
	return len(s.Actions) >= len(s.Sequence)
}

// templates holds the built-in draft templates, keyed by id. Catalog data is
// seeded externally; the turn sequences themselves are part of the rules.
var templates = map[string]Template{
	"standard-2ban-2pick": {
		ID: "standard-2ban-2pick",
		Sequence: []ActionType{
			ActionBanA, ActionBanB,
			ActionPickA, ActionPickB,
			ActionPickB, ActionPickA,
		},
		UniqueMode: UniqueGlobal,
	},
	"open-mirror": {
		ID: "open-mirror",
		Sequence: []ActionType{
			ActionPickA, ActionPickB,
			ActionPickA, ActionPickB,
			ActionPickA, ActionPickB,
		},
		UniqueMode: UniqueOpponent,
	},
}

// TemplateByID looks up a built-in draft template.
func TemplateByID(id string) (Template, bool) {
	tpl, ok := templates[id]
	return tpl, ok
}
