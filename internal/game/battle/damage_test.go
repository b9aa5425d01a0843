package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

func TestCalculateDamage_LightAttackBounds(t *testing.T) {
	got := battle.CalculateDamage(140, 10, 150, true)
	assert.GreaterOrEqual(t, got, battle.ZeroPoint+3)
	assert.LessOrEqual(t, got, battle.ZeroPoint+12)
	assert.Equal(t, 131, got)
}

func TestCalculateDamage_RecoveryBounds(t *testing.T) {
	got := battle.CalculateDamage(140, 15, 150, false)
	assert.GreaterOrEqual(t, got, 3)
	assert.LessOrEqual(t, got, 6)
	assert.Equal(t, 3, got)
}

func TestCalculateDamage_Table(t *testing.T) {
	cases := []struct {
		name        string
		base, mult  int
		personality int
		isAttack    bool
		want        int
	}{
		{"max attack doubled by personality", 153, 25, 228, true, 140},
		{"heavy at neutral personality", 153, 20, 128, true, 133},
		{"stat above cap is clamped", 200, 50, 128, true, 134},
		{"stat below zero point floors to minimum", 100, 10, 128, true, 131},
		{"personality below zero point", 153, 25, 100, true, 131},
		{"recovery doubled at neutral personality", 153, 25, 128, false, 6},
		{"recovery halved at high personality", 153, 20, 228, false, 5},
		{"recovery at minimum", 128, 15, 200, false, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, battle.CalculateDamage(tc.base, tc.mult, tc.personality, tc.isAttack))
		})
	}
}

func TestCalculateDamage_Bounds_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(0, 255).Draw(rt, "base")
		mult := rapid.IntRange(0, 50).Draw(rt, "mult")
		personality := rapid.IntRange(0, 255).Draw(rt, "personality")

		atk := battle.CalculateDamage(base, mult, personality, true)
		assert.GreaterOrEqual(rt, atk, battle.ZeroPoint+3)
		assert.LessOrEqual(rt, atk, battle.ZeroPoint+12)

		rec := battle.CalculateDamage(base, mult, personality, false)
		assert.GreaterOrEqual(rt, rec, 3)
		assert.LessOrEqual(rt, rec, 6)
	})
}

func TestCalculateDamage_MonotonicInStat_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(battle.ZeroPoint, 200).Draw(rt, "lo")
		hi := rapid.IntRange(lo, 255).Draw(rt, "hi")
		mult := rapid.IntRange(1, 25).Draw(rt, "mult")
		personality := rapid.IntRange(battle.ZeroPoint, battle.PersonalityCeiling).Draw(rt, "personality")

		assert.LessOrEqual(rt,
			battle.CalculateDamage(lo, mult, personality, true),
			battle.CalculateDamage(hi, mult, personality, true))
	})
}
