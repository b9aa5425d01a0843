// Package roster loads arena agents from YAML and adapts them into battle
// stat blocks.
package roster

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

// Stat ranges applied by Normalize.
const (
	attackMax      = 153
	speedMax       = 138
	personalityMax = battle.PersonalityCeiling
)

// ErrUnknownAgent is returned when a lookup names an agent not in the roster.
var ErrUnknownAgent = errors.New("unknown agent")

// Stats is the raw stat block of an agent as written in YAML.
type Stats struct {
	Attack      int `yaml:"attack"`
	Defense     int `yaml:"defense"`
	Speed       int `yaml:"speed"`
	Energy      int `yaml:"energy"`
	Personality int `yaml:"personality"`
}

// UnmarshalYAML requires every stat key to be present. A missing or null stat
// fails with battle.ErrInvalidStats instead of decoding to zero.
func (s *Stats) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Attack      *int `yaml:"attack"`
		Defense     *int `yaml:"defense"`
		Speed       *int `yaml:"speed"`
		Energy      *int `yaml:"energy"`
		Personality *int `yaml:"personality"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	fields := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"attack", raw.Attack, &s.Attack},
		{"defense", raw.Defense, &s.Defense},
		{"speed", raw.Speed, &s.Speed},
		{"energy", raw.Energy, &s.Energy},
		{"personality", raw.Personality, &s.Personality},
	}
	for _, f := range fields {
		if f.src == nil {
			return fmt.Errorf("%w: line %d: stats.%s is required", battle.ErrInvalidStats, node.Line, f.name)
		}
		*f.dst = *f.src
	}
	return nil
}

// Agent is one roster entry. Either Stats or Traits must be set; Traits are
// converted to stats by a StatDeriver.
type Agent struct {
	ID     string             `yaml:"id"`
	Name   string             `yaml:"name"`
	Stats  *Stats             `yaml:"stats"`
	Traits map[string]float64 `yaml:"traits"`
}

// Validate checks the agent's identity fields and that it carries stats or traits.
func (a *Agent) Validate() error {
	if a.ID == "" {
		return errors.New("roster agent: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("roster agent %q: name must not be empty", a.ID)
	}
	if a.Stats == nil && len(a.Traits) == 0 {
		return fmt.Errorf("roster agent %q: one of stats or traits is required", a.ID)
	}
	for k, v := range a.Traits {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("roster agent %q: trait %q is not finite", a.ID, k)
		}
	}
	return nil
}

// StatDeriver converts agent traits to raw stats keyed by stat name.
// scripting.StatAdapter satisfies this interface.
type StatDeriver interface {
	Derive(agentID string, traits map[string]float64) (map[string]int, error)
}

// Normalize clamps raw stats into the ranges the simulator expects:
// attack and defense [128, 153], speed [128, 138], energy [128, 188],
// personality [128, 228].
func Normalize(id, name string, s Stats) battle.CombatantStats {
	return battle.CombatantStats{
		ID:          id,
		Name:        name,
		Attack:      clamp(s.Attack, battle.ZeroPoint, attackMax),
		Defense:     clamp(s.Defense, battle.ZeroPoint, attackMax),
		Speed:       clamp(s.Speed, battle.ZeroPoint, speedMax),
		Energy:      clamp(s.Energy, battle.ZeroPoint, battle.EnergyCeiling),
		Personality: clamp(s.Personality, battle.ZeroPoint, personalityMax),
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Registry holds the adapted combatants of a roster, keyed by agent ID.
type Registry struct {
	byID map[string]battle.CombatantStats
}

// NewRegistry adapts agents into combatants.
//
// Precondition: deriver may be nil only if no agent relies on traits alone.
// Postcondition: Returns an error on duplicate IDs, invalid agents, or
// derivation failures.
func NewRegistry(agents []*Agent, deriver StatDeriver) (*Registry, error) {
	r := &Registry{byID: make(map[string]battle.CombatantStats, len(agents))}
	for _, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[a.ID]; dup {
			return nil, fmt.Errorf("roster: duplicate agent id %q", a.ID)
		}
		stats, err := adapt(a, deriver)
		if err != nil {
			return nil, err
		}
		r.byID[a.ID] = stats
	}
	return r, nil
}

func adapt(a *Agent, deriver StatDeriver) (battle.CombatantStats, error) {
	if a.Stats != nil {
		return Normalize(a.ID, a.Name, *a.Stats), nil
	}
	if deriver == nil {
		return battle.CombatantStats{}, fmt.Errorf("roster agent %q: traits given but no adapter script configured", a.ID)
	}
	raw, err := deriver.Derive(a.ID, a.Traits)
	if err != nil {
		return battle.CombatantStats{}, fmt.Errorf("roster agent %q: %w", a.ID, err)
	}
	var derived Stats
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"attack", &derived.Attack},
		{"defense", &derived.Defense},
		{"speed", &derived.Speed},
		{"energy", &derived.Energy},
		{"personality", &derived.Personality},
	} {
		v, ok := raw[f.name]
		if !ok {
			return battle.CombatantStats{}, fmt.Errorf("roster agent %q: %w: derived stats missing %s", a.ID, battle.ErrInvalidStats, f.name)
		}
		*f.dst = v
	}
	return Normalize(a.ID, a.Name, derived), nil
}

// Get returns the combatant for id.
func (r *Registry) Get(id string) (battle.CombatantStats, error) {
	c, ok := r.byID[id]
	if !ok {
		return battle.CombatantStats{}, fmt.Errorf("%w: %q", ErrUnknownAgent, id)
	}
	return c, nil
}

// All returns every combatant sorted by ID.
func (r *Registry) All() []battle.CombatantStats {
	out := make([]battle.CombatantStats, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of combatants.
func (r *Registry) Len() int { return len(r.byID) }

type rosterFile struct {
	Agents []*Agent `yaml:"agents"`
}

// LoadFromBytes parses roster YAML.
func LoadFromBytes(data []byte) ([]*Agent, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing roster yaml: %w", err)
	}
	for _, a := range f.Agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Agents, nil
}

// LoadFile reads and parses the roster at path.
func LoadFile(path string) ([]*Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", path, err)
	}
	agents, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("roster %q: %w", path, err)
	}
	return agents, nil
}
