package scripting_test

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/scripting"
)

const linearAdapter = `
function derive_stats(t)
	return {
		attack = 128 + (t.strength or 0),
		defense = 128 + (t.toughness or 0),
		speed = 128 + math.floor((t.agility or 0) / 2),
		energy = 150,
		personality = 128 + (t.boldness or 0),
	}
end
`

func newAdapter(t *testing.T, src string) (*scripting.StatAdapter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	a, err := scripting.NewStatAdapterFromString(src, 0, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, logs
}

func TestStatAdapter_Derive(t *testing.T) {
	a, logs := newAdapter(t, linearAdapter)
	stats, err := a.Derive("a1", map[string]float64{"strength": 20, "agility": 9, "boldness": 72})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"attack": 148, "defense": 128, "speed": 132, "energy": 150, "personality": 200,
	}, stats)
	assert.Equal(t, 1, logs.FilterMessage("scripting: derived stats").Len())
}

func TestStatAdapter_MissingField(t *testing.T) {
	a, _ := newAdapter(t, `function derive_stats(t) return { attack = 130 } end`)
	_, err := a.Derive("a1", nil)
	assert.ErrorContains(t, err, "defense")
}

func TestStatAdapter_NonFiniteRejected(t *testing.T) {
	cases := map[string]string{
		"nan":          "0/0",
		"inf":          "1/0",
		"negative inf": "-1/0",
	}
	for name, expr := range cases {
		t.Run(name, func(t *testing.T) {
			a, _ := newAdapter(t, `function derive_stats(t)
	return { attack = 140, defense = `+expr+`, speed = 130, energy = 150, personality = 150 }
end`)
			_, err := a.Derive("a1", nil)
			assert.ErrorIs(t, err, battle.ErrInvalidStats)
			assert.ErrorContains(t, err, "defense")
		})
	}
}

func TestStatAdapter_HugeValuesSaturate(t *testing.T) {
	a, _ := newAdapter(t, `function derive_stats(t)
	return { attack = 1e300, defense = -1e300, speed = 130.9, energy = 150, personality = 150 }
end`)
	stats, err := a.Derive("a1", nil)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, stats["attack"])
	assert.Equal(t, math.MinInt32, stats["defense"])
	assert.Equal(t, 130, stats["speed"])
}

func TestStatAdapter_NonTableReturn(t *testing.T) {
	a, _ := newAdapter(t, `function derive_stats(t) return 5 end`)
	_, err := a.Derive("a1", nil)
	assert.ErrorContains(t, err, "want table")
}

func TestStatAdapter_RuntimeErrorLogged(t *testing.T) {
	a, logs := newAdapter(t, `function derive_stats(t) error("boom") end`)
	_, err := a.Derive("a1", nil)
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("scripting: adapter runtime error").Len())
}

func TestStatAdapter_RunawayScriptStopped(t *testing.T) {
	a, _ := newAdapter(t, `function derive_stats(t) while true do end end`)
	_, err := a.Derive("a1", nil)
	assert.Error(t, err)

	// The budget is per call; a fresh call still fails the same way rather than hanging.
	_, err = a.Derive("a2", nil)
	assert.Error(t, err)
}

func TestStatAdapter_NoHook(t *testing.T) {
	_, err := scripting.NewStatAdapterFromString(`local x = 1`, 0, zap.NewNop())
	assert.ErrorIs(t, err, scripting.ErrNoDeriveHook)
}

func TestLoadStatAdapter_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adapter.lua")
	require.NoError(t, os.WriteFile(path, []byte(linearAdapter), 0644))

	a, err := scripting.LoadStatAdapter(path, 0, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	stats, err := a.Derive("a1", map[string]float64{"toughness": 5})
	require.NoError(t, err)
	assert.Equal(t, 133, stats["defense"])
}

func TestLoadStatAdapter_MissingFile(t *testing.T) {
	_, err := scripting.LoadStatAdapter("/nonexistent/adapter.lua", 0, zap.NewNop())
	assert.Error(t, err)
}

func TestStatAdapter_ConcurrentDerive(t *testing.T) {
	a, _ := newAdapter(t, linearAdapter)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			stats, err := a.Derive("a", map[string]float64{"strength": float64(n)})
			assert.NoError(t, err)
			assert.Equal(t, 128+n, stats["attack"])
		}(i)
	}
	wg.Wait()
}
