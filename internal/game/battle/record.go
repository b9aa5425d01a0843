package battle

import (
	"time"

	"github.com/google/uuid"
)

// Record is a completed battle together with everything needed to replay it.
type Record struct {
	ID       uuid.UUID      `json:"id"`
	Seed     Seed           `json:"seed"`
	Attacker CombatantStats `json:"attacker"`
	Defender CombatantStats `json:"defender"`
	Result   Result         `json:"result"`
	// MaxRounds is the round cap the battle ran under.
	MaxRounds int       `json:"max_rounds"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord assigns a fresh ID to a completed battle.
func NewRecord(seed Seed, attacker, defender CombatantStats, res Result, maxRounds int) *Record {
	return &Record{
		ID:        uuid.New(),
		Seed:      seed,
		Attacker:  attacker,
		Defender:  defender,
		Result:    res,
		MaxRounds: maxRounds,
		CreatedAt: time.Now().UTC(),
	}
}

// Replay re-runs the battle from its stored inputs.
//
// Postcondition: The returned result equals r.Result.
func (r *Record) Replay() (Result, error) {
	return Simulate(r.Attacker, r.Defender, r.Seed, WithMaxRounds(r.MaxRounds))
}
