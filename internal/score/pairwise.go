package score

import "github.com/unbound-force/tangle/internal/taxonomy"

// PairOutcome records the comparison of one pair.
type PairOutcome struct {
	Pair        string `json:"pair"`
	FirstCount  int    `json:"first_count"`
	SecondCount int    `json:"second_count"`
	Difference  int    `json:"difference"`

	// Winner is empty when the difference is below the threshold.
	Winner string `json:"winner,omitempty"`
}

// TableResult is the outcome of one pair-definition table.
type TableResult struct {
	Tier      taxonomy.Tier `json:"tier"`
	Threshold int           `json:"threshold"`
	Pairs     []PairOutcome `json:"pairs"`

	// Winners holds one letter per qualifying pair, in pair order.
	Winners []string `json:"winners"`
}

// EvaluatePairs compares each pair of table against counts. A pair
// whose absolute difference meets the threshold contributes the
// letter with the higher count; equal counts go to the first letter.
func EvaluatePairs(counts Counts, table taxonomy.PairTable) TableResult {
	res := TableResult{
		Tier:      table.Tier,
		Threshold: table.Threshold,
		Pairs:     make([]PairOutcome, 0, len(table.Pairs)),
		Winners:   []string{},
	}

	for _, p := range table.Pairs {
		first := counts.Get(p.First)
		second := counts.Get(p.Second)
		out := PairOutcome{
			Pair:        p.String(),
			FirstCount:  first,
			SecondCount: second,
			Difference:  abs(first - second),
		}
		if out.Difference >= table.Threshold {
			out.Winner = p.First
			if second > first {
				out.Winner = p.Second
			}
			res.Winners = append(res.Winners, out.Winner)
		}
		res.Pairs = append(res.Pairs, out)
	}

	return res
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
