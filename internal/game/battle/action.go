package battle

// ActionCode identifies the action recorded in a log entry. The numeric values
// are stable and shared with every log renderer.
type ActionCode int

const (
	ActionSpecialAttack     ActionCode = 0
	ActionSpecialRecovery   ActionCode = 1
	ActionLightAttack       ActionCode = 2
	ActionHeavyAttack       ActionCode = 3
	ActionDefense           ActionCode = 4
	ActionDesperateAttack   ActionCode = 5
	ActionDesperateRecovery ActionCode = 6
)

var actionNames = map[ActionCode]string{
	ActionSpecialAttack:     "special attack",
	ActionSpecialRecovery:   "special recovery",
	ActionLightAttack:       "light attack",
	ActionHeavyAttack:       "heavy attack",
	ActionDefense:           "defense",
	ActionDesperateAttack:   "desperate attack",
	ActionDesperateRecovery: "desperate recovery",
}

// String returns the human-readable action name.
func (a ActionCode) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether a is one of the defined codes.
func (a ActionCode) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// IsAttack reports whether the action damages the opponent.
func (a ActionCode) IsAttack() bool {
	switch a {
	case ActionSpecialAttack, ActionLightAttack, ActionHeavyAttack, ActionDesperateAttack:
		return true
	}
	return false
}

// LogEntry records one resolved action.
type LogEntry struct {
	// Round is the zero-based round in which the action was taken.
	Round     int        `json:"round"`
	ActorID   string     `json:"actor_id"`
	ActorName string     `json:"actor_name"`
	Action    ActionCode `json:"action"`
	// Magnitude is the energy removed from the target for attacks, or the
	// energy restored to the actor for recoveries.
	Magnitude int `json:"magnitude"`
	// Critical is true when the actor was in critical state.
	Critical     bool `json:"critical"`
	ActorEnergy  int  `json:"actor_energy"`
	TargetEnergy int  `json:"target_energy"`
}
