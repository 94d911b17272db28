package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/tangle/internal/history"
	"github.com/unbound-force/tangle/internal/score"
	"github.com/unbound-force/tangle/internal/taxonomy"
)

// WriteText writes an evaluation as human-readable styled text to
// the writer. Output uses lipgloss for color and formatting when the
// output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, ev Evaluation) error {
	s := DefaultStyles()
	r := ev.Result

	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== Result: %s ===", orDash(r.Code))))
	sub := fmt.Sprintf("    %d question(s) answered", ev.Answered)
	if ev.SessionID != "" {
		sub += ", session " + ev.SessionID
	}
	fmt.Fprintln(w, s.SubHeader.Render(sub))
	fmt.Fprintln(w)

	fmt.Fprintln(w, pairTable(r.Tables, s))

	writeSummary(w, s, "Winners", winnersText(r, s))
	writeSummary(w, s, "Summary", r.Summary)
	writeSummary(w, s, "Binary", fmt.Sprintf("%s  (V %d, W %d)",
		orDash(r.Binary.Selection), r.Binary.FirstCount, r.Binary.SecondCount))
	writeSummary(w, s, "Consensus", r.Consensus)
	writeSummary(w, s, "Aggregate", r.Aggregate)
	writeSummary(w, s, "Code", s.Code.Render(orDash(r.Code)))

	fmt.Fprintf(w, "\n%s\n", s.Header.Render("Letter counts"))
	if len(r.Counts) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No letters counted."))
	} else {
		fmt.Fprintln(w, s.Body.Render(formatCounts(r.Counts)))
	}

	fmt.Fprintf(w, "\n%s\n", s.Header.Render("Traits"))
	if len(r.Traits) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No traits resolved."))
	}
	desc := s.Body.PaddingLeft(6)
	for _, t := range r.Traits {
		fmt.Fprintf(w, "    %s  %s\n", s.Code.Render(t.Code), t.Name)
		fmt.Fprintln(w, desc.Render(t.Description))
	}

	writeAnalysis(w, s, ev.Analysis)
	if ev.Comparison != nil {
		writeComparison(w, s, *ev.Comparison)
	}
	return nil
}

func pairTable(tables []score.TableResult, s Styles) *table.Table {
	rows := make([][]string, 0, 9)
	for _, tr := range tables {
		for _, p := range tr.Pairs {
			rows = append(rows, []string{
				string(tr.Tier),
				p.Pair,
				fmt.Sprintf("%d / %d", p.FirstCount, p.SecondCount),
				strconv.Itoa(p.Difference),
				strconv.Itoa(tr.Threshold),
				orDash(p.Winner),
			})
		}
	}

	return table.New().
		Width(Width-4).
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 0 && row >= 0 && row < len(rows) {
				return s.TierStyle(taxonomy.Tier(rows[row][0]))
			}
			return s.TableCell
		}).
		Headers("TABLE", "PAIR", "COUNTS", "DIFF", "MIN", "WINNER").
		Rows(rows...)
}

// winnersText colors each winner by its table and appends the
// per-table breakdown, e.g. "ADL  (strong AD, moderate L)".
func winnersText(r score.Result, s Styles) string {
	if r.Winners == "" {
		return ""
	}
	var b strings.Builder
	for _, l := range r.Winners {
		b.WriteString(winnerStyle(s, string(l)).Render(string(l)))
	}

	var parts []string
	for _, t := range taxonomy.PairTables() {
		if w := r.TableWinners(t.Tier); len(w) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", t.Tier, strings.Join(w, "")))
		}
	}
	fmt.Fprintf(&b, "  (%s)", strings.Join(parts, ", "))
	return b.String()
}

// winnerStyle returns the tier style of the table that pairs letter.
func winnerStyle(s Styles, letter string) lipgloss.Style {
	tier, ok := taxonomy.TierOf(letter)
	if !ok {
		return s.Muted
	}
	return s.TierStyle(tier)
}

func writeAnalysis(w io.Writer, s Styles, a history.Analysis) {
	fmt.Fprintf(w, "\n%s\n", s.Header.Render("Analysis"))
	if len(a.Profile) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    Nothing to analyze."))
		return
	}
	writeSummary(w, s, "Dominant", fmt.Sprintf("%s (%d%%)", a.Dominant.Letter, a.Dominant.Percentage))
	writeSummary(w, s, "Secondary", fmt.Sprintf("%s (%d%%)", a.Secondary.Letter, a.Secondary.Percentage))

	fmt.Fprintln(w, "    Strengths:")
	writeBullets(w, s, a.Strengths)
	fmt.Fprintln(w, "    Recommendations:")
	writeBullets(w, s, a.Recommendations)
}

func writeComparison(w io.Writer, s Styles, c history.Comparison) {
	fmt.Fprintf(w, "\n%s\n", s.Header.Render("Compared with history"))
	writeSummary(w, s, "Consistency", fmt.Sprintf("%.1f%%", c.Consistency))
	fmt.Fprintln(w, "    Average profile:")
	fmt.Fprintln(w, s.Body.Render(formatCounts(c.AverageProfile)))
	writeBullets(w, s, c.Growth)
}

func writeSummary(w io.Writer, s Styles, label, value string) {
	if value == "" {
		value = s.Muted.Render("-")
	}
	fmt.Fprintf(w, "    %s%s\n", s.SummaryLabel.Render(label), s.SummaryValue.Render(value))
}

func writeBullets(w io.Writer, s Styles, items []string) {
	for _, item := range items {
		fmt.Fprintln(w, s.Body.Render("- "+item))
	}
}

func formatCounts(c score.Counts) string {
	parts := make([]string, 0, len(c))
	for _, l := range c.Letters() {
		parts = append(parts, fmt.Sprintf("%s:%d", l, c[l]))
	}
	return strings.Join(parts, "  ")
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// truncate shortens v to at most n runes, marking the cut with "...".
func truncate(v string, n int) string {
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n-3]) + "..."
}
