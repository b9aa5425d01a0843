package battle

// Damage and recovery bounds, as effective magnitudes.
const (
	minDamage   = 3
	maxDamage   = 12
	minRecovery = 3
	maxRecovery = 6
)

// Action multipliers.
const (
	multLight           = 10
	multHeavy           = 20
	multDefense         = 15
	multSpecialAttack   = 25
	multSpecialRecovery = 20
)

// CalculateDamage computes an attack or recovery magnitude.
//
// For attacks the returned value carries the zero-point offset: callers
// subtract ZeroPoint to get the energy removed from the target, which is in
// [3, 12]. For recoveries the returned value is the energy restored directly,
// in [3, 6].
//
// Postcondition: isAttack implies result in [131, 140]; otherwise result in [3, 6].
func CalculateDamage(baseStat, multiplier, personality int, isAttack bool) int {
	var modifier int
	if isAttack {
		modifier = floorDiv(personality-ZeroPoint, 100) + 1
	} else {
		modifier = floorDiv(PersonalityCeiling-personality, 100) + 1
	}

	stat := min(StatCap, baseStat)
	mult := min(MultiplierCap, multiplier)
	raw := floorDiv((stat-ZeroPoint)*mult*modifier, 100)

	if isAttack {
		return ZeroPoint + clamp(raw, minDamage, maxDamage)
	}
	return clamp(raw, minRecovery, maxRecovery)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
