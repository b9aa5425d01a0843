package battle

import "fmt"

// Render formats the result as human-readable lines, one per log entry plus a
// closing summary line.
func Render(res Result) []string {
	lines := make([]string, 0, len(res.Log)+1)
	for _, e := range res.Log {
		lines = append(lines, RenderEntry(e))
	}
	summary := fmt.Sprintf("%s wins (%d vs %d) after %d rounds.",
		res.WinnerName, res.AttackerEnergy, res.DefenderEnergy, res.Rounds)
	if res.Capped {
		summary = fmt.Sprintf("Round cap reached; %s wins on energy (%d vs %d) after %d rounds.",
			res.WinnerName, res.AttackerEnergy, res.DefenderEnergy, res.Rounds)
	}
	return append(lines, summary)
}

// RenderEntry formats a single log entry. Energies are shown relative to
// ZeroPoint.
func RenderEntry(e LogEntry) string {
	verb := "deals"
	if !e.Action.IsAttack() {
		verb = "recovers"
	}
	return fmt.Sprintf("[round %d] %s uses %s and %s %d (energy %d, opponent %d)",
		e.Round+1, e.ActorName, e.Action, verb, e.Magnitude,
		e.ActorEnergy-ZeroPoint, e.TargetEnergy-ZeroPoint)
}
