package score

import "github.com/unbound-force/tangle/internal/taxonomy"

// Result is the complete output of one evaluation.
type Result struct {
	// Counts is the letter frequency map over all selections.
	Counts Counts `json:"counts"`

	// Tables holds one entry per pair-definition table, in order.
	Tables []TableResult `json:"tables"`

	// Winners is every table's winners concatenated.
	Winners string `json:"winners"`

	// Summary is T, U or empty.
	Summary string `json:"summary"`

	// Binary is the V/W check.
	Binary BinaryResult `json:"binary"`

	// Consensus holds the letters common to all three favorites.
	Consensus string `json:"consensus"`

	// Aggregate is Winners + Summary + Binary.Selection.
	Aggregate string `json:"aggregate"`

	// Code is the final result code: Aggregate + Consensus.
	Code string `json:"code"`

	// Traits resolves each unique token of Code that has a descriptor.
	Traits []taxonomy.Trait `json:"traits"`
}

// Evaluate runs the full pipeline over the selected option codes
// (one per question, empty for unanswered) and the section favorites.
// It never fails: incomplete input yields emptier stages.
func Evaluate(selections, favorites []string) Result {
	counts := CountLetters(selections)

	pairTables := taxonomy.PairTables()
	tables := make([]TableResult, 0, len(pairTables))
	for _, t := range pairTables {
		tables = append(tables, EvaluatePairs(counts, t))
	}

	winners, n := joinWinners(tables)
	summary := Summarize(n)
	binary := SelectBinary(selections)
	consensus := FindConsensus(favorites)
	aggregate, code := Compose(winners, summary, binary.Selection, consensus)

	return Result{
		Counts:    counts,
		Tables:    tables,
		Winners:   winners,
		Summary:   summary,
		Binary:    binary,
		Consensus: consensus,
		Aggregate: aggregate,
		Code:      code,
		Traits:    taxonomy.Describe(code),
	}
}

// TableWinners returns the winners of the table with the given tier,
// or nil when no such table exists.
func (r Result) TableWinners(tier taxonomy.Tier) []string {
	for _, t := range r.Tables {
		if t.Tier == tier {
			return t.Winners
		}
	}
	return nil
}
