// Package arenaserver exposes the arena service over gRPC.
//
// Messages are google.protobuf.Struct values so the service needs no
// generated stubs; field names match the JSON tags of the battle types.
package arenaserver

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/arena/internal/arena"
	"github.com/cory-johannsen/arena/internal/game/battle"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "arena.v1.ArenaService"

// ArenaServer is the server API for the arena service.
type ArenaServer interface {
	Fight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the arena service for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ArenaServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Fight", Handler: unaryHandler("Fight", ArenaServer.Fight)},
		{MethodName: "GetBattle", Handler: unaryHandler("GetBattle", ArenaServer.GetBattle)},
		{MethodName: "History", Handler: unaryHandler("History", ArenaServer.History)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "arena/v1/arena.proto",
}

func unaryHandler(method string, call func(ArenaServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ArenaServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ArenaServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RegisterArenaServer registers srv on s.
func RegisterArenaServer(s grpc.ServiceRegistrar, srv ArenaServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// GRPCService implements ArenaServer on top of an arena.Service.
type GRPCService struct {
	svc    *arena.Service
	logger *zap.Logger
}

// NewGRPCService creates a GRPCService.
//
// Precondition: svc and logger must be non-nil.
func NewGRPCService(svc *arena.Service, logger *zap.Logger) *GRPCService {
	return &GRPCService{svc: svc, logger: logger}
}

// Fight runs a battle. Request fields: attacker_id, defender_id, optional seed.
func (g *GRPCService) Fight(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req fightMessage
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.AttackerID == "" || req.DefenderID == "" {
		return nil, status.Error(codes.InvalidArgument, "attacker_id and defender_id are required")
	}
	fr := arena.FightRequest{AttackerID: req.AttackerID, DefenderID: req.DefenderID}
	if req.Seed != "" {
		seed, err := battle.ParseSeed(req.Seed)
		if err != nil {
			return nil, g.toStatus("Fight", err)
		}
		fr.Seed = &seed
	}

	rec, err := g.svc.Fight(ctx, fr)
	if err != nil {
		return nil, g.toStatus("Fight", err)
	}
	return g.reply("Fight", encodeRecord(rec))
}

// GetBattle returns a stored battle. Request fields: id.
func (g *GRPCService) GetBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req battleIDMessage
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid battle id %q", req.ID)
	}
	rec, err := g.svc.Battle(ctx, id)
	if err != nil {
		return nil, g.toStatus("GetBattle", err)
	}
	return g.reply("GetBattle", encodeRecord(rec))
}

// History lists stored battles for a combatant. Request fields: combatant_id, optional limit.
func (g *GRPCService) History(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req historyMessage
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	recs, err := g.svc.History(ctx, req.CombatantID, req.Limit)
	if err != nil {
		return nil, g.toStatus("History", err)
	}
	out := historyReply{Battles: make([]battleMessage, 0, len(recs))}
	for _, r := range recs {
		out.Battles = append(out.Battles, encodeRecord(r))
	}
	return g.reply("History", out)
}

func (g *GRPCService) reply(method string, v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		g.logger.Error("encoding reply", zap.String("method", method), zap.Error(err))
		return nil, status.Error(codes.Internal, "encoding reply")
	}
	return out, nil
}

// toStatus maps service errors to gRPC status codes.
func (g *GRPCService) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, battle.ErrInvalidSeed), errors.Is(err, battle.ErrInvalidStats):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, arena.ErrUnknownCombatant), errors.Is(err, arena.ErrBattleNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, arena.ErrNoStore):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	g.logger.Error("arena request failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
