package score

import "strings"

// Compose joins the stage outputs in fixed order. The aggregate
// segment is winners, summary letter and binary selection; the code
// is the aggregate followed by the consensus letters. Empty stages
// contribute nothing.
func Compose(winners, summary, binary, consensus string) (aggregate, code string) {
	aggregate = winners + summary + binary
	return aggregate, aggregate + consensus
}

// joinWinners concatenates the winners of every table in table order.
func joinWinners(tables []TableResult) (string, int) {
	var sb strings.Builder
	n := 0
	for _, t := range tables {
		for _, w := range t.Winners {
			sb.WriteString(w)
			n++
		}
	}
	return sb.String(), n
}
