package battle

import (
	"encoding/hex"
	"fmt"
)

// SeedSize is the number of bytes in an entropy seed.
const SeedSize = 32

// Seed is the 32-byte entropy that drives both combatants' move sequences.
type Seed [SeedSize]byte

// SeedSource produces seeds for battles that were not given one explicitly.
// entropy.Source satisfies this interface.
type SeedSource interface {
	Seed(domain string) (Seed, error)
}

// NewSeed copies b into a Seed.
//
// Postcondition: Returns an error wrapping ErrInvalidSeed unless len(b) == 32.
func NewSeed(b []byte) (Seed, error) {
	var s Seed
	if len(b) != SeedSize {
		return s, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSeed, SeedSize, len(b))
	}
	copy(s[:], b)
	return s, nil
}

// SeedFromInts builds a Seed from integer byte values.
//
// Postcondition: Returns an error wrapping ErrInvalidSeed unless len(v) == 32
// and every value is in [0, 255]. Input is never truncated or padded.
func SeedFromInts(v []int) (Seed, error) {
	var s Seed
	if len(v) != SeedSize {
		return s, fmt.Errorf("%w: want %d values, got %d", ErrInvalidSeed, SeedSize, len(v))
	}
	for i, b := range v {
		if b < 0 || b > 255 {
			return Seed{}, fmt.Errorf("%w: value %d at index %d is outside [0, 255]", ErrInvalidSeed, b, i)
		}
		s[i] = byte(b)
	}
	return s, nil
}

// ParseSeed decodes a 64-character hex string.
func ParseSeed(s string) (Seed, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return NewSeed(b)
}

// String returns the lowercase hex encoding of the seed.
func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// MarshalText encodes the seed as lowercase hex.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a hex seed.
func (s *Seed) UnmarshalText(text []byte) error {
	parsed, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Bytes returns a copy of the seed bytes.
func (s Seed) Bytes() []byte {
	b := make([]byte, SeedSize)
	copy(b, s[:])
	return b
}
