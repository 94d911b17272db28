package main

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unbound-force/tangle/internal/history"
	"github.com/unbound-force/tangle/internal/report"
	"github.com/unbound-force/tangle/internal/score"
)

func goldenEvaluation(t *testing.T) report.Evaluation {
	t.Helper()
	ev, err := evaluateFile(filepath.Join(testdataDir, "golden.json"))
	if err != nil {
		t.Fatalf("evaluateFile: %v", err)
	}
	return report.Evaluation{
		Answered: ev.resolved.Answered,
		Result:   ev.result,
		Analysis: history.Analyze(ev.result.Counts),
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// TestRenderResultContent_Golden verifies the title and the embedded
// text report for the reference response.
func TestRenderResultContent_Golden(t *testing.T) {
	output := stripANSI(renderResultContent(goldenEvaluation(t)))

	if !strings.Contains(output, "Tangle: ADLTVADHK, 7 trait(s)") {
		t.Errorf("expected title with code and trait count, got:\n%s", output)
	}
	if !strings.Contains(output, "Ambitious") {
		t.Errorf("expected trait names in content, got:\n%s", output)
	}
}

// TestRenderResultContent_Empty verifies an unanswered response still
// renders with its fallback code.
func TestRenderResultContent_Empty(t *testing.T) {
	result := score.Evaluate(nil, nil)
	output := stripANSI(renderResultContent(report.Evaluation{
		Result:   result,
		Analysis: history.Analyze(result.Counts),
	}))
	if !strings.Contains(output, "Tangle: UV, 2 trait(s)") {
		t.Errorf("unexpected title, got:\n%s", output)
	}
}

func TestResultModel_InitializesOnWindowSize(t *testing.T) {
	m := newResultModel(goldenEvaluation(t))
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before sizing = %q", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	rm := updated.(resultModel)
	if !rm.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}
	if rm.viewport.Height != 22 {
		t.Errorf("viewport height = %d, want 22", rm.viewport.Height)
	}
	if !strings.Contains(stripANSI(rm.View()), "Tangle: ADLTVADHK") {
		t.Error("view should show the top of the report")
	}

	resized, _ := rm.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if h := resized.(resultModel).viewport.Height; h != 38 {
		t.Errorf("viewport height after resize = %d, want 38", h)
	}
}

func TestResultModel_QuitKey(t *testing.T) {
	m := newResultModel(goldenEvaluation(t))
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected a command from quit key")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key should produce tea.QuitMsg")
	}
}

func TestResultModel_HelpToggle(t *testing.T) {
	m := newResultModel(goldenEvaluation(t))
	updated, _ := m.Update(runeKey('?'))
	if !updated.(resultModel).help.ShowAll {
		t.Error("? should expand help")
	}
	updated, _ = updated.Update(runeKey('?'))
	if updated.(resultModel).help.ShowAll {
		t.Error("second ? should collapse help")
	}
}

func TestResultModel_BottomAndTop(t *testing.T) {
	m := newResultModel(goldenEvaluation(t))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	updated, _ = updated.Update(runeKey('G'))
	if !updated.(resultModel).viewport.AtBottom() {
		t.Error("G should scroll to the bottom")
	}
	updated, _ = updated.Update(runeKey('g'))
	if !updated.(resultModel).viewport.AtTop() {
		t.Error("g should scroll to the top")
	}
}
