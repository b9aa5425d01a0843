package arenaserver

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

// Client is a typed client for the arena gRPC service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a client connection.
//
// Precondition: cc must be non-nil.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Fight asks the server to run a battle. A nil seed lets the server pick one.
func (c *Client) Fight(ctx context.Context, attackerID, defenderID string, seed *battle.Seed, opts ...grpc.CallOption) (*battle.Record, error) {
	req := fightMessage{AttackerID: attackerID, DefenderID: defenderID}
	if seed != nil {
		req.Seed = seed.String()
	}
	var out battleMessage
	if err := c.invoke(ctx, "Fight", req, &out, opts...); err != nil {
		return nil, err
	}
	return decodeRecord(out)
}

// GetBattle fetches a stored battle by ID.
func (c *Client) GetBattle(ctx context.Context, id uuid.UUID, opts ...grpc.CallOption) (*battle.Record, error) {
	var out battleMessage
	if err := c.invoke(ctx, "GetBattle", battleIDMessage{ID: id.String()}, &out, opts...); err != nil {
		return nil, err
	}
	return decodeRecord(out)
}

// History lists stored battles the combatant took part in, newest first.
func (c *Client) History(ctx context.Context, combatantID string, limit int, opts ...grpc.CallOption) ([]*battle.Record, error) {
	var out historyReply
	if err := c.invoke(ctx, "History", historyMessage{CombatantID: combatantID, Limit: limit}, &out, opts...); err != nil {
		return nil, err
	}
	recs := make([]*battle.Record, 0, len(out.Battles))
	for _, m := range out.Battles {
		rec, err := decodeRecord(m)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, reply any, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return err
	}
	return fromStruct(out, reply)
}
