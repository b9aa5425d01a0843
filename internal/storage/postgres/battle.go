package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

// ErrBattleNotFound is returned when a battle lookup yields no results.
var ErrBattleNotFound = errors.New("battle not found")

// ErrBattleExists is returned when saving a battle whose ID is already stored.
var ErrBattleExists = errors.New("battle already exists")

// DefaultListLimit bounds ListByCombatant when the caller passes limit <= 0.
const DefaultListLimit = 50

const battleColumns = `id, seed, attacker_id, defender_id, attacker, defender,
	winner, winner_id, loser_id, attacker_energy, defender_energy,
	rounds, capped, max_rounds, log, created_at`

// BattleRepository persists completed battles.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Save inserts rec. A nil ID is replaced with a fresh one before insert.
//
// Precondition: rec must be non-nil and hold a completed battle.
// Postcondition: rec.ID and rec.CreatedAt reflect the stored row, or
// ErrBattleExists is returned on a duplicate ID.
func (r *BattleRepository) Save(ctx context.Context, rec *battle.Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	res := rec.Result
	log := res.Log
	if log == nil {
		log = []battle.LogEntry{}
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO battles
			(id, seed, attacker_id, defender_id, attacker, defender,
			 winner, winner_id, loser_id, attacker_energy, defender_energy,
			 rounds, capped, max_rounds, log)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at`,
		rec.ID, rec.Seed.Bytes(), rec.Attacker.ID, rec.Defender.ID, rec.Attacker, rec.Defender,
		int(res.Winner), res.WinnerID, res.LoserID, res.AttackerEnergy, res.DefenderEnergy,
		res.Rounds, res.Capped, rec.MaxRounds, log,
	).Scan(&rec.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrBattleExists
		}
		return fmt.Errorf("inserting battle: %w", err)
	}
	return nil
}

// Get returns the battle with the given ID.
//
// Postcondition: Returns ErrBattleNotFound if no such battle exists.
func (r *BattleRepository) Get(ctx context.Context, id uuid.UUID) (*battle.Record, error) {
	row := r.db.QueryRow(ctx, `SELECT `+battleColumns+` FROM battles WHERE id = $1`, id)
	rec, err := scanBattle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("querying battle: %w", err)
	}
	return rec, nil
}

// ListByCombatant returns the most recent battles in which combatantID fought
// on either side, newest first.
//
// Postcondition: Returns at most limit records (DefaultListLimit when limit <= 0).
func (r *BattleRepository) ListByCombatant(ctx context.Context, combatantID string, limit int) ([]*battle.Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+battleColumns+`
		FROM battles
		WHERE attacker_id = $1 OR defender_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`,
		combatantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing battles: %w", err)
	}
	defer rows.Close()

	var out []*battle.Record
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battle: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battles: %w", err)
	}
	return out, nil
}

func scanBattle(row pgx.Row) (*battle.Record, error) {
	var (
		rec        battle.Record
		seed       []byte
		winner     int
		attackerID string
		defenderID string
	)
	err := row.Scan(
		&rec.ID, &seed, &attackerID, &defenderID, &rec.Attacker, &rec.Defender,
		&winner, &rec.Result.WinnerID, &rec.Result.LoserID,
		&rec.Result.AttackerEnergy, &rec.Result.DefenderEnergy,
		&rec.Result.Rounds, &rec.Result.Capped, &rec.MaxRounds, &rec.Result.Log, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Seed, err = battle.NewSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("stored seed: %w", err)
	}
	rec.Result.Winner = battle.Side(winner)
	rec.Result.WinnerName = rec.Defender.Name
	if rec.Result.Winner == battle.SideAttacker {
		rec.Result.WinnerName = rec.Attacker.Name
	}
	if len(rec.Result.Log) == 0 {
		rec.Result.Log = nil
	}
	return &rec, nil
}
