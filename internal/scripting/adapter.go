package scripting

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

// DeriveHook is the global Lua function an adapter script must define. It
// receives the agent's traits table and returns a table of stats.
const DeriveHook = "derive_stats"

// StatFields are the keys derive_stats must return.
var StatFields = []string{"attack", "defense", "speed", "energy", "personality"}

// ErrNoDeriveHook is returned when an adapter script does not define DeriveHook.
var ErrNoDeriveHook = errors.New("scripting: adapter script does not define " + DeriveHook)

// StatAdapter derives numeric combat stats from free-form agent traits by
// calling a sandboxed Lua script.
//
// StatAdapter is safe for concurrent use; calls are serialized on one VM.
type StatAdapter struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	logger    *zap.Logger
}

// LoadStatAdapter executes the script at path in a fresh sandbox.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns an adapter whose script defines DeriveHook, or an error.
func LoadStatAdapter(path string, instLimit int, logger *zap.Logger) (*StatAdapter, error) {
	L := NewSandboxedState(instLimit)
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
	}
	return newStatAdapter(L, instLimit, logger)
}

// NewStatAdapterFromString is LoadStatAdapter for inline source.
func NewStatAdapterFromString(src string, instLimit int, logger *zap.Logger) (*StatAdapter, error) {
	L := NewSandboxedState(instLimit)
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading adapter source: %w", err)
	}
	return newStatAdapter(L, instLimit, logger)
}

func newStatAdapter(L *lua.LState, instLimit int, logger *zap.Logger) (*StatAdapter, error) {
	if L.GetGlobal(DeriveHook).Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoDeriveHook
	}
	return &StatAdapter{L: L, instLimit: instLimit, logger: logger}, nil
}

// Derive calls derive_stats with traits and returns the resulting stats keyed
// by StatFields. Values are truncated toward zero and saturate at the int32
// range; NaN and infinities fail with battle.ErrInvalidStats.
//
// Precondition: agentID identifies the agent for error messages.
// Postcondition: On success every StatFields key is present.
func (a *StatAdapter) Derive(agentID string, traits map[string]float64) (map[string]int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cancel := ResetLimit(a.L, a.instLimit)
	defer cancel()

	tbl := a.L.NewTable()
	keys := make([]string, 0, len(traits))
	for k := range traits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tbl.RawSetString(k, lua.LNumber(traits[k]))
	}

	if err := a.L.CallByParam(lua.P{
		Fn:      a.L.GetGlobal(DeriveHook),
		NRet:    1,
		Protect: true,
	}, tbl); err != nil {
		a.logger.Warn("scripting: adapter runtime error",
			zap.String("agent", agentID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("scripting: %s for %q: %w", DeriveHook, agentID, err)
	}
	ret := a.L.Get(-1)
	a.L.Pop(1)

	out, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("scripting: %s for %q returned %s, want table", DeriveHook, agentID, ret.Type())
	}
	stats := make(map[string]int, len(StatFields))
	for _, field := range StatFields {
		n, ok := out.RawGetString(field).(lua.LNumber)
		if !ok {
			return nil, fmt.Errorf("scripting: %s for %q: field %q missing or not a number", DeriveHook, agentID, field)
		}
		v := float64(n)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("scripting: %s for %q: field %q is %v: %w", DeriveHook, agentID, field, v, battle.ErrInvalidStats)
		}
		stats[field] = int(max(math.MinInt32, min(math.MaxInt32, v)))
	}
	a.logger.Debug("scripting: derived stats",
		zap.String("agent", agentID),
		zap.Any("stats", stats),
	)
	return stats, nil
}

// Close releases the Lua VM.
func (a *StatAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.L.Close()
}
