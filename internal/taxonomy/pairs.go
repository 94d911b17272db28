package taxonomy

// pairTables lists the three tables in evaluation order. The pairs
// span A-S without the reserved letter; no letter appears twice.
var pairTables = [...]PairTable{
	{
		Tier:      TierStrong,
		Threshold: 5,
		Pairs:     []Pair{{"A", "B"}, {"C", "D"}, {"G", "H"}},
	},
	{
		Tier:      TierModerate,
		Threshold: 4,
		Pairs:     []Pair{{"E", "F"}, {"I", "K"}, {"L", "M"}},
	},
	{
		Tier:      TierMild,
		Threshold: 3,
		Pairs:     []Pair{{"N", "O"}, {"P", "Q"}, {"R", "S"}},
	},
}

// PairTables returns a copy of the pair-definition tables in
// evaluation order.
func PairTables() []PairTable {
	out := make([]PairTable, len(pairTables))
	for i, t := range pairTables {
		t.Pairs = append([]Pair(nil), t.Pairs...)
		out[i] = t
	}
	return out
}

// tierMap resolves each paired letter to its table.
var tierMap = func() map[string]Tier {
	m := make(map[string]Tier)
	for _, t := range pairTables {
		for _, p := range t.Pairs {
			m[p.First] = t.Tier
			m[p.Second] = t.Tier
		}
	}
	return m
}()

// TierOf returns the tier of the table that pairs letter, and false
// when the letter is not paired (V, W, T, U, the reserved letter and
// anything past S).
func TierOf(letter string) (Tier, bool) {
	tier, ok := tierMap[letter]
	return tier, ok
}
