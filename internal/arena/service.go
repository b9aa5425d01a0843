// Package arena coordinates battles between roster agents: it resolves
// combatants, runs the simulator, and records the outcome.
package arena

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/roster"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

// ErrUnknownCombatant is returned when a fight names an agent not in the roster.
var ErrUnknownCombatant = errors.New("unknown combatant")

// ErrBattleNotFound is returned when a battle is not known to the store.
var ErrBattleNotFound = errors.New("battle not found")

// ErrNoStore is returned by Battle when the service has no store.
var ErrNoStore = errors.New("battle history is not persisted")

// Roster resolves combatants by ID. *roster.Registry satisfies it.
type Roster interface {
	Get(id string) (battle.CombatantStats, error)
}

// Store persists battle records. *postgres.BattleRepository satisfies it.
type Store interface {
	Save(ctx context.Context, rec *battle.Record) error
	Get(ctx context.Context, id uuid.UUID) (*battle.Record, error)
	ListByCombatant(ctx context.Context, combatantID string, limit int) ([]*battle.Record, error)
}

// FightRequest names the two combatants and optionally fixes the seed.
type FightRequest struct {
	AttackerID string
	DefenderID string
	// Seed overrides the configured seed source when non-nil.
	Seed *battle.Seed
}

// Service runs arena battles.
type Service struct {
	roster Roster
	sim    *battle.Simulator
	store  Store
	logger *zap.Logger
}

// NewService creates a Service.
//
// Precondition: r, sim, and logger must be non-nil. store may be nil, in which
// case battles are not persisted.
func NewService(r Roster, sim *battle.Simulator, store Store, logger *zap.Logger) *Service {
	return &Service{roster: r, sim: sim, store: store, logger: logger}
}

// Fight runs a battle between the requested combatants.
//
// Postcondition: Returns a record whose Result is reproducible from its Seed,
// Attacker, and Defender; the record is stored when the service has a store.
func (s *Service) Fight(ctx context.Context, req FightRequest) (*battle.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	attacker, err := s.combatant(req.AttackerID)
	if err != nil {
		return nil, err
	}
	defender, err := s.combatant(req.DefenderID)
	if err != nil {
		return nil, err
	}

	res, seed, err := s.sim.Run(attacker, defender, req.Seed)
	if err != nil {
		return nil, err
	}
	rec := battle.NewRecord(seed, attacker, defender, res, s.sim.MaxRounds())

	if s.store != nil {
		if err := s.store.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("saving battle: %w", err)
		}
	}
	s.logger.Info("battle fought",
		zap.String("battle_id", rec.ID.String()),
		zap.String("attacker", attacker.ID),
		zap.String("defender", defender.ID),
		zap.String("winner", res.WinnerID),
		zap.Int("rounds", res.Rounds),
		zap.Bool("persisted", s.store != nil),
	)
	return rec, nil
}

// Battle returns a stored battle.
func (s *Service) Battle(ctx context.Context, id uuid.UUID) (*battle.Record, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrBattleNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBattleNotFound, id)
		}
		return nil, fmt.Errorf("loading battle: %w", err)
	}
	return rec, nil
}

// History returns the most recent stored battles involving combatantID.
func (s *Service) History(ctx context.Context, combatantID string, limit int) ([]*battle.Record, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	if _, err := s.combatant(combatantID); err != nil {
		return nil, err
	}
	return s.store.ListByCombatant(ctx, combatantID, limit)
}

func (s *Service) combatant(id string) (battle.CombatantStats, error) {
	c, err := s.roster.Get(id)
	if err != nil {
		if errors.Is(err, roster.ErrUnknownAgent) {
			return battle.CombatantStats{}, fmt.Errorf("%w: %q", ErrUnknownCombatant, id)
		}
		return battle.CombatantStats{}, err
	}
	return c, nil
}
