package score

import "strings"

// SectionCount is the number of section favorites that take part in
// the consensus.
const SectionCount = 3

// FindConsensus returns the letters present in all three favorites,
// ordered by first appearance in the first favorite, without repeats.
// Fewer than three favorites yields the empty string.
func FindConsensus(favorites []string) string {
	if len(favorites) < SectionCount {
		return ""
	}

	first, rest := favorites[0], favorites[1:SectionCount]
	var sb strings.Builder
	seen := make(map[rune]bool)
	for _, r := range first {
		if seen[r] {
			continue
		}
		seen[r] = true
		if inAll(r, rest) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func inAll(r rune, codes []string) bool {
	for _, c := range codes {
		if !strings.ContainsRune(c, r) {
			return false
		}
	}
	return true
}
