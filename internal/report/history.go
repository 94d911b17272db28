package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/tangle/internal/history"
	"github.com/unbound-force/tangle/internal/session"
)

const idWidth = 8

// WriteHistoryText writes the stored sessions, oldest first, followed
// by their statistics.
func WriteHistoryText(w io.Writer, sessions []session.Session, stats history.Stats) error {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render("=== Session history ==="))
	if len(sessions) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No sessions recorded."))
		return nil
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		minutes := "-"
		if sess.CompletionMinutes > 0 {
			minutes = fmt.Sprintf("%.0f", sess.CompletionMinutes)
		}
		rows = append(rows, []string{
			shortID(sess.ID),
			sess.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(orDash(sess.Result), 16),
			orDash(strings.Join(sess.DominantTraits, "")),
			minutes,
		})
	}

	t := table.New().
		Width(Width-4).
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 2 {
				return s.Code
			}
			return s.TableCell
		}).
		Headers("ID", "DATE", "RESULT", "TOP", "MIN").
		Rows(rows...)
	fmt.Fprintln(w, t)

	writeStats(w, s, stats)
	return nil
}

func writeStats(w io.Writer, s Styles, st history.Stats) {
	fmt.Fprintf(w, "\n%s\n", s.Header.Render("Statistics"))
	writeSummary(w, s, "Tests", fmt.Sprintf("%d", st.TotalTests))
	avg := ""
	if st.AverageCompletionMinutes > 0 {
		avg = fmt.Sprintf("%d min", st.AverageCompletionMinutes)
	}
	writeSummary(w, s, "Average time", avg)
	writeSummary(w, s, "Most common", st.MostCommonDominant)
	writeSummary(w, s, "Per month", fmt.Sprintf("%.1f", st.TestsPerMonth))
}

func shortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}
