package score

import "github.com/unbound-force/tangle/internal/taxonomy"

// BinaryThreshold is the absolute count at which a binary letter is
// selected on its own merit.
const BinaryThreshold = 11

// BinaryResult is the outcome of the binary trait check.
type BinaryResult struct {
	FirstCount  int    `json:"v_count"`
	SecondCount int    `json:"w_count"`
	Selection   string `json:"selection"`
}

// SelectBinary scans the raw code strings for the two binary letters.
// Both at or above BinaryThreshold yields the joint marker; otherwise
// a letter at or above the threshold wins, first letter checked first.
// Below the threshold the higher count wins and a tie goes to the
// first letter.
func SelectBinary(codes []string) BinaryResult {
	var res BinaryResult
	for _, code := range codes {
		for _, r := range code {
			switch string(r) {
			case taxonomy.BinaryFirst:
				res.FirstCount++
			case taxonomy.BinarySecond:
				res.SecondCount++
			}
		}
	}

	first := res.FirstCount >= BinaryThreshold
	second := res.SecondCount >= BinaryThreshold
	switch {
	case first && second:
		res.Selection = taxonomy.Joint
	case first:
		res.Selection = taxonomy.BinaryFirst
	case second:
		res.Selection = taxonomy.BinarySecond
	case res.SecondCount > res.FirstCount:
		res.Selection = taxonomy.BinarySecond
	default:
		res.Selection = taxonomy.BinaryFirst
	}
	return res
}
