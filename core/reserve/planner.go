package reserve

import "time"

// Plan returns the subsequence of candidate dates not yet reserved for the
// vehicle, preserving input order. A date already occupied by the same
// plate is silently excluded rather than double-booked. Pure and
// idempotent: planning the plan returns the plan.
func Plan(candidates []time.Time, plate string, ix Index) []time.Time {
	var out []time.Time
	for _, d := range candidates {
		if ix.Reserved(plate, d) {
			continue
		}
		out = append(out, d)
	}
	return out
}
