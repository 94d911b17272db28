package score

import "github.com/unbound-force/tangle/internal/taxonomy"

// homogeneousMin is the winner count at which the summary letter
// becomes homogeneous.
const homogeneousMin = 2

// Summarize maps the total number of pair winners to the summary
// letter: T for two or more, nothing for exactly one, U for none.
func Summarize(winners int) string {
	switch {
	case winners >= homogeneousMin:
		return taxonomy.SummaryHomogeneous
	case winners == 1:
		return ""
	default:
		return taxonomy.SummaryHeterogeneous
	}
}
