package battle

import "fmt"

// DefaultMaxRounds bounds a battle when no other cap is configured.
const DefaultMaxRounds = 1000

// Result is the outcome of a completed battle.
type Result struct {
	Winner         Side   `json:"winner"`
	WinnerID       string `json:"winner_id"`
	WinnerName     string `json:"winner_name"`
	LoserID        string `json:"loser_id"`
	AttackerEnergy int    `json:"attacker_energy"`
	DefenderEnergy int    `json:"defender_energy"`
	// Rounds is the number of resolved rounds.
	Rounds int `json:"rounds"`
	// Capped is true when the round cap ended the battle before either side
	// was depleted.
	Capped bool       `json:"capped"`
	Log    []LogEntry `json:"log"`
}

type options struct {
	maxRounds int
}

// Option configures Simulate.
type Option func(*options)

// WithMaxRounds caps the number of rounds. Values <= 0 select DefaultMaxRounds.
func WithMaxRounds(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRounds = n
		}
	}
}

// fighter is a combatant's mutable state during a battle.
type fighter struct {
	stats CombatantStats
	side  Side
}

// Simulate runs a battle between attacker and defender driven by seed.
//
// Precondition: attacker and defender pass Validate.
// Postcondition: The result is a pure function of the inputs. No energy in the
// log is below ZeroPoint, and no recovery raises energy above EnergyCeiling.
// Equal final energies resolve in favour of the defender.
func Simulate(attacker, defender CombatantStats, seed Seed, opts ...Option) (Result, error) {
	if err := attacker.Validate(); err != nil {
		return Result{}, fmt.Errorf("attacker: %w", err)
	}
	if err := defender.Validate(); err != nil {
		return Result{}, fmt.Errorf("defender: %w", err)
	}

	o := options{maxRounds: DefaultMaxRounds}
	for _, opt := range opts {
		opt(&o)
	}

	moves := DeriveMoves(seed)
	a := &fighter{stats: attacker, side: SideAttacker}
	d := &fighter{stats: defender, side: SideDefender}

	var log []LogEntry
	round := 0
	capped := false
	for !a.stats.Depleted() && !d.stats.Depleted() {
		if round >= o.maxRounds {
			capped = true
			break
		}
		aMove, dMove := moves.At(round)

		first, firstMove, second, secondMove := a, aMove, d, dMove
		if Initiative(d.stats.Speed, dMove) > Initiative(a.stats.Speed, aMove) {
			first, firstMove, second, secondMove = d, dMove, a, aMove
		}

		log = append(log, resolveAction(round, first, second, firstMove))
		if !second.stats.Depleted() {
			log = append(log, resolveAction(round, second, first, secondMove))
		}
		round++
	}

	return finish(a, d, round, capped, log), nil
}

// SimulateBattle runs Simulate with seed, or with a seed drawn from src for
// the attacker's name when seed is nil.
//
// Precondition: src must be non-nil when seed is nil.
func SimulateBattle(attacker, defender CombatantStats, seed *Seed, src SeedSource, opts ...Option) (Result, Seed, error) {
	var s Seed
	if seed != nil {
		s = *seed
	} else {
		if src == nil {
			return Result{}, Seed{}, fmt.Errorf("%w: no seed and no seed source", ErrInvalidSeed)
		}
		generated, err := src.Seed(attacker.Name)
		if err != nil {
			return Result{}, Seed{}, fmt.Errorf("generating seed: %w", err)
		}
		s = generated
	}
	res, err := Simulate(attacker, defender, s, opts...)
	if err != nil {
		return Result{}, Seed{}, err
	}
	return res, s, nil
}

// resolveAction applies one action by actor and returns its log entry.
// The target's energy is floored at ZeroPoint.
func resolveAction(round int, actor, target *fighter, move int) LogEntry {
	entry := LogEntry{
		Round:     round,
		ActorID:   actor.stats.ID,
		ActorName: actor.stats.Name,
		Critical:  actor.stats.Critical(),
	}

	switch {
	case entry.Critical, move == moveSpecial:
		if !entry.Critical {
			actor.stats.Energy -= ActionCost
		}
		if actor.stats.Personality >= DesperationPersonality {
			entry.Action = ActionSpecialAttack
			entry.Magnitude = attack(actor, target, multSpecialAttack)
		} else {
			entry.Action = ActionSpecialRecovery
			entry.Magnitude = heal(actor, multSpecialRecovery)
		}
	default:
		actor.stats.Energy -= ActionCost
		switch {
		case move <= moveLightMax:
			entry.Action = ActionLightAttack
			entry.Magnitude = attack(actor, target, multLight)
		case move <= moveHeavyMax:
			entry.Action = ActionHeavyAttack
			entry.Magnitude = attack(actor, target, multHeavy)
		default:
			entry.Action = ActionDefense
			entry.Magnitude = heal(actor, multDefense)
		}
	}

	entry.ActorEnergy = actor.stats.Energy
	entry.TargetEnergy = target.stats.Energy
	return entry
}

func attack(actor, target *fighter, multiplier int) int {
	dmg := CalculateDamage(actor.stats.Attack, multiplier, actor.stats.Personality, true) - ZeroPoint
	target.stats.Energy = max(ZeroPoint, target.stats.Energy-dmg)
	return dmg
}

func heal(actor *fighter, multiplier int) int {
	amount := CalculateDamage(actor.stats.Defense, multiplier, actor.stats.Personality, false)
	actor.stats.Energy = min(EnergyCeiling, actor.stats.Energy+amount)
	return amount
}

func finish(a, d *fighter, rounds int, capped bool, log []LogEntry) Result {
	// A side that started below the floor is reported at the floor.
	a.stats.Energy = max(ZeroPoint, a.stats.Energy)
	d.stats.Energy = max(ZeroPoint, d.stats.Energy)

	res := Result{
		AttackerEnergy: a.stats.Energy,
		DefenderEnergy: d.stats.Energy,
		Rounds:         rounds,
		Capped:         capped,
		Log:            log,
	}
	winner, loser := d, a
	if a.stats.Energy > d.stats.Energy {
		winner, loser = a, d
	}
	res.Winner = winner.side
	res.WinnerID = winner.stats.ID
	res.WinnerName = winner.stats.Name
	res.LoserID = loser.stats.ID
	return res
}
