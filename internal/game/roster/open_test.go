package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/roster"
	"github.com/cory-johannsen/arena/internal/scripting"
)

const (
	contentRoster  = "../../../content/roster.yaml"
	contentAdapter = "../../../content/scripts/adapter.lua"
)

func TestOpen_ShippedRosterWithAdapter(t *testing.T) {
	reg, err := roster.Open(config.BattleConfig{
		Roster:        contentRoster,
		AdapterScript: contentAdapter,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	oracle, err := reg.Get("oracle")
	require.NoError(t, err)
	assert.Equal(t, battle.CombatantStats{
		ID: "oracle", Name: "Oracle",
		Attack: 136, Defense: 146, Speed: 135, Energy: 173, Personality: 188,
	}, oracle)
}

func TestOpen_TraitAgentWithoutAdapterFails(t *testing.T) {
	_, err := roster.Open(config.BattleConfig{Roster: contentRoster}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "oracle")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := roster.Open(config.BattleConfig{Roster: "does-not-exist.yaml"}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "does-not-exist.yaml")
}

func TestNewRegistry_ScriptedStatsAreBoundedOrRejected(t *testing.T) {
	logger := zaptest.NewLogger(t)
	agents := []*roster.Agent{{ID: "oracle", Name: "Oracle", Traits: map[string]float64{"wisdom": 40}}}

	huge, err := scripting.NewStatAdapterFromString(`function derive_stats(t)
	return { attack = 1e300, defense = 140, speed = 130, energy = 150, personality = 150 }
end`, 0, logger)
	require.NoError(t, err)
	defer huge.Close()
	reg, err := roster.NewRegistry(agents, huge)
	require.NoError(t, err)
	oracle, err := reg.Get("oracle")
	require.NoError(t, err)
	assert.Equal(t, 153, oracle.Attack)

	nan, err := scripting.NewStatAdapterFromString(`function derive_stats(t)
	return { attack = 140, defense = 140, speed = 130, energy = 0/0, personality = 150 }
end`, 0, logger)
	require.NoError(t, err)
	defer nan.Close()
	_, err = roster.NewRegistry(agents, nan)
	assert.ErrorIs(t, err, battle.ErrInvalidStats)
	assert.ErrorContains(t, err, "oracle")
}
