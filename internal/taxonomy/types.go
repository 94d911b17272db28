// Package taxonomy defines the letter alphabet, the pair-definition
// tables and the static trait descriptors used to score questionnaire
// responses.
package taxonomy

import "fmt"

// Reserved is the one symbol of the alphabet that no option carries.
// It is never counted or scored.
const Reserved = 'J'

// Letters inspected directly by the binary trait selector.
const (
	BinaryFirst  = "V"
	BinarySecond = "W"

	// Joint is the marker emitted when both binary letters clear the
	// threshold independently.
	Joint = BinaryFirst + BinarySecond
)

// Summary letters produced from the total number of pair winners.
const (
	SummaryHomogeneous   = "T"
	SummaryHeterogeneous = "U"
)

// IsScored reports whether r belongs to the counted letter space:
// an uppercase ASCII letter other than Reserved.
func IsScored(r rune) bool {
	return r >= 'A' && r <= 'Z' && r != Reserved
}

// Tier names a pair-definition table by the strength of the
// difference it requires.
type Tier string

// Tier constants, strongest first.
const (
	TierStrong   Tier = "strong"
	TierModerate Tier = "moderate"
	TierMild     Tier = "mild"
)

// Pair is two opposing letters compared by count.
type Pair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// String returns the two letters concatenated, e.g. "AB".
func (p Pair) String() string {
	return p.First + p.Second
}

// PairTable is a set of mutually exclusive pairs sharing one
// magnitude threshold.
type PairTable struct {
	// Tier identifies the table.
	Tier Tier `json:"tier"`

	// Threshold is the minimum absolute count difference for a pair
	// to produce a winner.
	Threshold int `json:"threshold"`

	// Pairs are evaluated in order.
	Pairs []Pair `json:"pairs"`
}

// Trait is the human-readable descriptor for a result token.
type Trait struct {
	// Code is the letter (or the joint marker) this trait describes.
	Code string `json:"code"`

	// Name is the short trait name.
	Name string `json:"name"`

	// Description is the prose narrative shown to the respondent.
	Description string `json:"description"`
}

// String returns "Code: Name".
func (t Trait) String() string {
	return fmt.Sprintf("%s: %s", t.Code, t.Name)
}
