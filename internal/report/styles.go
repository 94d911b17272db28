package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/tangle/internal/taxonomy"
)

// Width is the column budget for all text output.
const Width = 80

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers (e.g. "=== Result ===").
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// TierStrong through TierMild color-code the pair tables.
	TierStrong   lipgloss.Style
	TierModerate lipgloss.Style
	TierMild     lipgloss.Style

	// Code highlights result codes and winning letters.
	Code lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// SummaryLabel styles summary line labels.
	SummaryLabel lipgloss.Style

	// SummaryValue styles summary line values.
	SummaryValue lipgloss.Style

	// Body wraps paragraphs to the column budget with an indent.
	Body lipgloss.Style

	// Pass styles OK indicators.
	Pass lipgloss.Style

	// Fail styles FAIL indicators.
	Fail lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TierStrong:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		TierModerate: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		TierMild:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),

		Code: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		SummaryLabel: lipgloss.NewStyle().Bold(true).Width(14),
		SummaryValue: lipgloss.NewStyle(),

		Body: lipgloss.NewStyle().Width(Width-4).PaddingLeft(4),

		Pass: lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// TierStyle returns the appropriate style for a pair table tier.
func (s Styles) TierStyle(tier taxonomy.Tier) lipgloss.Style {
	switch tier {
	case taxonomy.TierStrong:
		return s.TierStrong
	case taxonomy.TierModerate:
		return s.TierModerate
	case taxonomy.TierMild:
		return s.TierMild
	default:
		return s.Muted
	}
}
