// Package entropy provides the seed sources that drive arena battles.
package entropy

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"

	"github.com/cory-johannsen/arena/internal/game/battle"
)

// Source produces a 32-byte battle seed for a domain string.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Seed returns the seed for domain. Deterministic sources return the same
	// seed for the same domain; random sources ignore domain.
	Seed(domain string) (battle.Seed, error)
}

// Source kinds accepted by NewSource.
const (
	KindName   = "name"
	KindRandom = "random"
)

// Hash algorithms accepted by NewHashSource.
const (
	HashSHA256    = "sha256"
	HashKeccak256 = "keccak256"
)

// NewSource builds a Source from configuration values.
//
// Precondition: kind is KindName or KindRandom; hashName is only consulted for KindName.
// Postcondition: Returns a non-nil Source or an error naming the bad value.
func NewSource(kind, hashName string) (Source, error) {
	switch kind {
	case KindName:
		return NewHashSource(hashName)
	case KindRandom:
		return NewCryptoSource(), nil
	default:
		return nil, fmt.Errorf("entropy: unknown source kind %q", kind)
	}
}

// hashSource derives seeds by hashing the domain string.
type hashSource struct {
	newHash func() hash.Hash
}

// NewHashSource returns a Source that hashes the domain with the named algorithm.
func NewHashSource(name string) (Source, error) {
	switch name {
	case HashSHA256:
		return &hashSource{newHash: sha256.New}, nil
	case HashKeccak256:
		return &hashSource{newHash: sha3.NewLegacyKeccak256}, nil
	default:
		return nil, fmt.Errorf("entropy: unknown hash %q", name)
	}
}

// Seed returns the digest of domain.
//
// Postcondition: Equal domains yield equal seeds.
func (h *hashSource) Seed(domain string) (battle.Seed, error) {
	d := h.newHash()
	d.Write([]byte(domain))
	return battle.NewSeed(d.Sum(nil))
}

// cryptoSource draws uniformly random seeds from crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Seed returns 32 random bytes; domain is ignored.
func (cryptoSource) Seed(string) (battle.Seed, error) {
	var s battle.Seed
	if _, err := rand.Read(s[:]); err != nil {
		return battle.Seed{}, fmt.Errorf("entropy: crypto/rand failure: %w", err)
	}
	return s, nil
}

// fixedSource always returns the same seed.
type fixedSource struct {
	seed battle.Seed
}

// NewFixedSource returns a Source that yields seed for every domain.
// Useful for replays and tests.
func NewFixedSource(seed battle.Seed) Source {
	return fixedSource{seed: seed}
}

func (f fixedSource) Seed(string) (battle.Seed, error) {
	return f.seed, nil
}
