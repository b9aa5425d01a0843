// Package battle implements the deterministic arena battle simulator.
//
// Every numeric stat is centered on ZeroPoint: a stat of 128 carries no
// effective bonus, and a combatant whose energy reaches 128 is depleted.
package battle

import (
	"errors"
	"fmt"
)

// Stat constants. All values are absolute, offset by ZeroPoint.
const (
	// ZeroPoint is the neutral stat value and the energy floor.
	ZeroPoint = 128
	// CriticalEnergy is the highest energy at which a combatant is in critical state.
	CriticalEnergy = ZeroPoint + 1
	// EnergyCeiling is the maximum energy reachable through recovery.
	EnergyCeiling = 188
	// StatCap is the largest base stat considered by CalculateDamage.
	StatCap = 153
	// MultiplierCap is the largest multiplier considered by CalculateDamage.
	MultiplierCap = 25
	// DesperationPersonality is the personality at or above which special
	// actions are attacks rather than recoveries.
	DesperationPersonality = 178
	// PersonalityCeiling anchors the recovery personality modifier.
	PersonalityCeiling = 228
	// ActionCost is the energy spent by a normal-state action.
	ActionCost = 1
)

// ErrInvalidStats is returned when a combatant stat block is malformed.
var ErrInvalidStats = errors.New("invalid combatant stats")

// ErrInvalidSeed is returned when an entropy seed is malformed.
var ErrInvalidSeed = errors.New("invalid seed")

// Side identifies one of the two combatants in a battle.
type Side int

const (
	SideAttacker Side = iota
	SideDefender
)

// String returns "attacker" or "defender".
func (s Side) String() string {
	if s == SideAttacker {
		return "attacker"
	}
	return "defender"
}

// CombatantStats is one side of a battle.
type CombatantStats struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Attack      int    `json:"attack" yaml:"attack"`
	Defense     int    `json:"defense" yaml:"defense"`
	Speed       int    `json:"speed" yaml:"speed"`
	Energy      int    `json:"energy" yaml:"energy"`
	Personality int    `json:"personality" yaml:"personality"`
}

// Validate checks that the stat block can be simulated.
//
// Postcondition: Returns nil iff ID and Name are non-empty and every numeric
// stat is in [0, 255]; otherwise returns an error wrapping ErrInvalidStats.
func (c CombatantStats) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidStats)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: combatant %q: name must not be empty", ErrInvalidStats, c.ID)
	}
	fields := []struct {
		name  string
		value int
	}{
		{"attack", c.Attack},
		{"defense", c.Defense},
		{"speed", c.Speed},
		{"energy", c.Energy},
		{"personality", c.Personality},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 255 {
			return fmt.Errorf("%w: combatant %q: %s must be in [0, 255], got %d", ErrInvalidStats, c.ID, f.name, f.value)
		}
	}
	return nil
}

// Depleted reports whether the combatant's energy is at or below the floor.
func (c CombatantStats) Depleted() bool {
	return c.Energy <= ZeroPoint
}

// Critical reports whether the combatant is in critical state.
func (c CombatantStats) Critical() bool {
	return c.Energy <= CriticalEnergy
}
