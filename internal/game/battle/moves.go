package battle

// SequenceLength is the number of move slots per combatant. Rounds beyond
// this index wrap around.
const SequenceLength = SeedSize / 2

// maxDefensiveMoves is how many raw defensive moves a side keeps before the
// rest are folded into light attacks.
const maxDefensiveMoves = 3

// Move values are grouped into bands.
const (
	moveLightMax   = 3
	moveHeavyMax   = 6
	moveDefenseMax = 8
	moveSpecial    = 9
)

// Moves holds both combatants' move sequences. Every value is in [0, 9].
type Moves struct {
	Attacker [SequenceLength]int
	Defender [SequenceLength]int
}

// At returns both sides' moves for the given round, wrapping modulo 16.
//
// Precondition: round >= 0.
func (m Moves) At(round int) (attacker, defender int) {
	i := round % SequenceLength
	return m.Attacker[i], m.Defender[i]
}

// DeriveMoves splits seed into two halves, bytes 0-15 for the attacker and
// 16-31 for the defender, and reduces each byte modulo 10.
//
// Once a side has drawn more than three defensive moves (7 or 8), each further
// defensive move is remapped modulo 4 into the light-attack band.
//
// Postcondition: At most three moves per side are in the defensive band.
func DeriveMoves(seed Seed) Moves {
	var m Moves
	m.Attacker = deriveHalf(seed[:SequenceLength])
	m.Defender = deriveHalf(seed[SequenceLength:])
	return m
}

func deriveHalf(half []byte) [SequenceLength]int {
	var out [SequenceLength]int
	defensive := 0
	for i, b := range half {
		move := int(b) % 10
		if isDefensive(move) {
			defensive++
			if defensive > maxDefensiveMoves {
				move %= 4
			}
		}
		out[i] = move
	}
	return out
}

func isDefensive(move int) bool {
	return move > moveHeavyMax && move <= moveDefenseMax
}

// Initiative returns a combatant's initiative for a round.
func Initiative(speed, move int) int {
	return speed + move*10
}
