package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/tangle/internal/instrument"
)

// WriteQuestionsText writes the question bank: one row per option,
// then the favorite sections.
func WriteQuestionsText(w io.Writer, in *instrument.Instrument) error {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %d questions ===", in.Len())))
	if first, ok := in.Question(1); ok && first.Prompt != "" {
		fmt.Fprintln(w, s.SubHeader.Render("    "+first.Prompt))
	}
	fmt.Fprintln(w)

	var rows [][]string
	for id := 1; id <= in.Len(); id++ {
		q, _ := in.Question(id)
		for i, o := range q.Options {
			num := ""
			if i == 0 {
				num = fmt.Sprintf("%d", q.ID)
			}
			rows = append(rows, []string{num, o.ID, o.Code, truncate(o.Image, 34)})
		}
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
		Headers("Q", "OPTION", "CODE", "IMAGE").
		Rows(rows...)
	fmt.Fprintln(w, t)

	fmt.Fprintf(w, "\n%s\n", s.Header.Render("Favorite sections"))
	for _, sec := range in.Sections() {
		fmt.Fprintf(w, "    %s\n", sec)
	}
	return nil
}

// questionsJSON is the JSON form of the question bank.
type questionsJSON struct {
	Version   string                `json:"version"`
	Questions []instrument.Question `json:"questions"`
	Sections  []instrument.Section  `json:"sections"`
}

// WriteQuestionsJSON writes the question bank as formatted JSON.
func WriteQuestionsJSON(w io.Writer, in *instrument.Instrument) error {
	return encode(w, questionsJSON{
		Version:   Version,
		Questions: in.Questions(),
		Sections:  in.Sections(),
	})
}
