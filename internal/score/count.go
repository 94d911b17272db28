// Package score implements the response scoring pipeline: letter
// counting, pairwise difference evaluation, summary classification,
// the binary trait check, cross-section consensus and result
// composition. Every function is pure and safe for concurrent use.
package score

import (
	"sort"

	"github.com/unbound-force/tangle/internal/taxonomy"
)

// Counts maps a single uppercase letter to its number of occurrences.
type Counts map[string]int

// Get returns the count for letter, zero when absent.
func (c Counts) Get(letter string) int {
	return c[letter]
}

// Letters returns the counted letters in alphabetical order.
func (c Counts) Letters() []string {
	letters := make([]string, 0, len(c))
	for l := range c {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters
}

// Ranked returns the counted letters ordered by count, highest
// first. Equal counts fall back to alphabetical order.
func (c Counts) Ranked() []string {
	letters := c.Letters()
	sort.SliceStable(letters, func(i, j int) bool {
		return c[letters[i]] > c[letters[j]]
	})
	return letters
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// CountLetters counts every scored letter in every code string,
// including repeats within one string. Empty strings (unanswered
// questions) contribute nothing.
func CountLetters(codes []string) Counts {
	counts := make(Counts)
	for _, code := range codes {
		for _, r := range code {
			if !taxonomy.IsScored(r) {
				continue
			}
			counts[string(r)]++
		}
	}
	return counts
}
