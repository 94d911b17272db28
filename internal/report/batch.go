package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// BatchLine is the outcome of evaluating one response file.
type BatchLine struct {
	File string `json:"file"`
	Code string `json:"code,omitempty"`
	Err  error  `json:"-"`
}

// batchJSONLine is the JSON form of a BatchLine.
type batchJSONLine struct {
	File  string `json:"file"`
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// WriteBatchText writes one table row per file, in the given order,
// followed by a summary line.
func WriteBatchText(w io.Writer, lines []BatchLine) error {
	s := DefaultStyles()

	rows := make([][]string, 0, len(lines))
	failed := 0
	for _, l := range lines {
		status := "OK"
		if l.Err != nil {
			status = "FAIL"
			failed++
		}
		rows = append(rows, []string{
			truncate(l.File, 36),
			truncate(orDash(l.Code), 16),
			status,
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
			if col == 2 && row >= 0 && row < len(rows) {
				if rows[row][2] == "FAIL" {
					return s.Fail
				}
				return s.Pass
			}
			return s.TableCell
		}).
		Headers("FILE", "RESULT", "STATUS").
		Rows(rows...)
	fmt.Fprintln(w, t)

	for _, l := range lines {
		if l.Err != nil {
			fmt.Fprintln(w, s.Body.Render(fmt.Sprintf("%s: %v", l.File, l.Err)))
		}
	}

	fmt.Fprintf(w, "\n%s\n", s.Header.Render(fmt.Sprintf(
		"%d file(s) evaluated, %d failed", len(lines), failed)))
	return nil
}

// WriteBatchJSON writes the batch outcome as a JSON array.
func WriteBatchJSON(w io.Writer, lines []BatchLine) error {
	out := make([]batchJSONLine, 0, len(lines))
	for _, l := range lines {
		j := batchJSONLine{File: l.File, Code: l.Code}
		if l.Err != nil {
			j.Error = l.Err.Error()
		}
		out = append(out, j)
	}
	return encode(w, out)
}
