package entropy_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/entropy"
)

func TestHashSource_SHA256MatchesDigest(t *testing.T) {
	src, err := entropy.NewHashSource(entropy.HashSHA256)
	require.NoError(t, err)

	seed, err := src.Seed("Brawler")
	require.NoError(t, err)
	want := sha256.Sum256([]byte("Brawler"))
	assert.Equal(t, battle.Seed(want), seed)
}

func TestHashSource_Keccak256KnownVector(t *testing.T) {
	src, err := entropy.NewHashSource(entropy.HashKeccak256)
	require.NoError(t, err)

	seed, err := src.Seed("")
	require.NoError(t, err)
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(seed[:]))
}

func TestHashSource_Deterministic_Property(t *testing.T) {
	for _, name := range []string{entropy.HashSHA256, entropy.HashKeccak256} {
		src, err := entropy.NewHashSource(name)
		require.NoError(t, err)
		rapid.Check(t, func(rt *rapid.T) {
			domain := rapid.String().Draw(rt, "domain")
			a, err := src.Seed(domain)
			require.NoError(rt, err)
			b, err := src.Seed(domain)
			require.NoError(rt, err)
			assert.Equal(rt, a, b)
		})
	}
}

func TestHashSource_DistinctAlgorithms(t *testing.T) {
	sha, err := entropy.NewHashSource(entropy.HashSHA256)
	require.NoError(t, err)
	kec, err := entropy.NewHashSource(entropy.HashKeccak256)
	require.NoError(t, err)
	a, _ := sha.Seed("arena")
	b, _ := kec.Seed("arena")
	assert.NotEqual(t, a, b)
}

func TestCryptoSource_ProducesDistinctSeeds(t *testing.T) {
	src := entropy.NewCryptoSource()
	a, err := src.Seed("x")
	require.NoError(t, err)
	b, err := src.Seed("x")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFixedSource(t *testing.T) {
	var seed battle.Seed
	seed[0] = 7
	src := entropy.NewFixedSource(seed)
	got, err := src.Seed("anything")
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestNewSource(t *testing.T) {
	_, err := entropy.NewSource(entropy.KindName, entropy.HashKeccak256)
	assert.NoError(t, err)
	_, err = entropy.NewSource(entropy.KindRandom, "")
	assert.NoError(t, err)
	_, err = entropy.NewSource("dice", "")
	assert.Error(t, err)
	_, err = entropy.NewSource(entropy.KindName, "md5")
	assert.Error(t, err)
}

func TestSourcesSatisfyBattleSeedSource(t *testing.T) {
	var _ battle.SeedSource = entropy.NewCryptoSource()
}
