package battle_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

func TestParseSeed_RoundTrip(t *testing.T) {
	var s battle.Seed
	for i := range s {
		s[i] = byte(255 - i)
	}
	parsed, err := battle.ParseSeed(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
	assert.Len(t, s.String(), 64)
}

func TestParseSeed_Invalid(t *testing.T) {
	for name, in := range map[string]string{
		"too short": strings.Repeat("ab", 31),
		"too long":  strings.Repeat("ab", 33),
		"not hex":   strings.Repeat("zz", 32),
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := battle.ParseSeed(in)
			assert.ErrorIs(t, err, battle.ErrInvalidSeed)
		})
	}
}

func TestNewSeed_RejectsWrongLength(t *testing.T) {
	_, err := battle.NewSeed(make([]byte, 16))
	assert.ErrorIs(t, err, battle.ErrInvalidSeed)
	_, err = battle.NewSeed(make([]byte, 33))
	assert.ErrorIs(t, err, battle.ErrInvalidSeed)
}

func TestSeedFromInts(t *testing.T) {
	v := make([]int, battle.SeedSize)
	for i := range v {
		v[i] = i * 8
	}
	s, err := battle.SeedFromInts(v)
	require.NoError(t, err)
	assert.Equal(t, byte(248), s[31])

	v[3] = 256
	_, err = battle.SeedFromInts(v)
	assert.ErrorIs(t, err, battle.ErrInvalidSeed)

	v[3] = -1
	_, err = battle.SeedFromInts(v)
	assert.ErrorIs(t, err, battle.ErrInvalidSeed)

	_, err = battle.SeedFromInts(v[:31])
	assert.ErrorIs(t, err, battle.ErrInvalidSeed)
}

func TestSeed_BytesIsCopy(t *testing.T) {
	var s battle.Seed
	b := s.Bytes()
	b[0] = 1
	assert.Equal(t, byte(0), s[0])
}

func TestSeed_JSONIsHex(t *testing.T) {
	var s battle.Seed
	s[0], s[31] = 0xab, 0x01
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"ab000000000000000000000000000000000000000000000000000000000000`+`01"`, string(b))

	var back battle.Seed
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)

	assert.ErrorIs(t, json.Unmarshal([]byte(`"abcd"`), &back), battle.ErrInvalidSeed)
}
