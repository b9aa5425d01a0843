package arenaserver

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

// battleMessage is the wire shape of a battle record.
type battleMessage struct {
	ID        string                `json:"id"`
	Seed      string                `json:"seed"`
	Attacker  battle.CombatantStats `json:"attacker"`
	Defender  battle.CombatantStats `json:"defender"`
	Result    battle.Result         `json:"result"`
	MaxRounds int                   `json:"max_rounds"`
	CreatedAt time.Time             `json:"created_at"`
}

// fightMessage is the wire shape of a fight request.
type fightMessage struct {
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`
	// Seed is an optional 64-character hex seed.
	Seed string `json:"seed,omitempty"`
}

type battleIDMessage struct {
	ID string `json:"id"`
}

type historyMessage struct {
	CombatantID string `json:"combatant_id"`
	Limit       int    `json:"limit,omitempty"`
}

type historyReply struct {
	Battles []battleMessage `json:"battles"`
}

func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}
	return out, nil
}

func fromStruct(s *structpb.Struct, v any) error {
	b, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}
	return nil
}

func encodeRecord(rec *battle.Record) battleMessage {
	return battleMessage{
		ID:        rec.ID.String(),
		Seed:      rec.Seed.String(),
		Attacker:  rec.Attacker,
		Defender:  rec.Defender,
		Result:    rec.Result,
		MaxRounds: rec.MaxRounds,
		CreatedAt: rec.CreatedAt,
	}
}

func decodeRecord(m battleMessage) (*battle.Record, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("battle id: %w", err)
	}
	seed, err := battle.ParseSeed(m.Seed)
	if err != nil {
		return nil, err
	}
	return &battle.Record{
		ID:        id,
		Seed:      seed,
		Attacker:  m.Attacker,
		Defender:  m.Defender,
		Result:    m.Result,
		MaxRounds: m.MaxRounds,
		CreatedAt: m.CreatedAt,
	}, nil
}
