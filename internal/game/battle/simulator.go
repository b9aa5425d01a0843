package battle

import (
	"go.uber.org/zap"
)

// Simulator wraps Simulate with a seed source, a round cap, and logging.
// Every battle is logged at debug level with its seed and outcome.
//
// Simulator holds no per-battle state and is safe for concurrent use if src is.
type Simulator struct {
	src       SeedSource
	maxRounds int
	logger    *zap.Logger
}

// NewSimulator creates a Simulator.
//
// Precondition: src and logger must be non-nil.
// Postcondition: maxRounds <= 0 selects DefaultMaxRounds.
func NewSimulator(src SeedSource, maxRounds int, logger *zap.Logger) *Simulator {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Simulator{src: src, maxRounds: maxRounds, logger: logger}
}

// MaxRounds returns the configured round cap.
func (s *Simulator) MaxRounds() int { return s.maxRounds }

// Run simulates a battle. When seed is nil a seed is drawn from the source.
//
// Postcondition: Returns the result and the seed actually used, or an error
// wrapping ErrInvalidStats or ErrInvalidSeed.
func (s *Simulator) Run(attacker, defender CombatantStats, seed *Seed) (Result, Seed, error) {
	res, used, err := SimulateBattle(attacker, defender, seed, s.src, WithMaxRounds(s.maxRounds))
	if err != nil {
		s.logger.Warn("battle rejected",
			zap.String("attacker", attacker.ID),
			zap.String("defender", defender.ID),
			zap.Error(err),
		)
		return Result{}, Seed{}, err
	}

	s.logger.Debug("battle simulated",
		zap.String("attacker", attacker.ID),
		zap.String("defender", defender.ID),
		zap.String("seed", used.String()),
		zap.Bool("explicit_seed", seed != nil),
		zap.Int("rounds", res.Rounds),
		zap.Int("actions", len(res.Log)),
		zap.String("winner", res.WinnerID),
		zap.Int("attacker_energy", res.AttackerEnergy),
		zap.Int("defender_energy", res.DefenderEnergy),
	)
	if res.Capped {
		s.logger.Info("battle reached round cap",
			zap.String("seed", used.String()),
			zap.Int("max_rounds", s.maxRounds),
		)
	}
	return res, used, nil
}
