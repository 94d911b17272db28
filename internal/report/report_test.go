package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/unbound-force/tangle/internal/history"
	"github.com/unbound-force/tangle/internal/instrument"
	"github.com/unbound-force/tangle/internal/intake"
	"github.com/unbound-force/tangle/internal/score"
	"github.com/unbound-force/tangle/internal/session"
	"github.com/unbound-force/tangle/internal/taxonomy"
)

func sampleEvaluation(t *testing.T) Evaluation {
	t.Helper()
	resp, err := intake.ReadFile(filepath.Join("..", "intake", "testdata", "golden.json"))
	if err != nil {
		t.Fatalf("reading golden response: %v", err)
	}
	res, err := intake.Resolve(instrument.Default(), resp)
	if err != nil {
		t.Fatalf("resolving golden response: %v", err)
	}
	result := score.Evaluate(res.Selections, res.Favorites)
	return Evaluation{
		SessionID: "6f1c2f3e-0000-4000-8000-000000000001",
		Answered:  res.Answered,
		Result:    result,
		Analysis:  history.Analyze(result.Counts),
	}
}

func sampleSessions() []session.Session {
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return []session.Session{
		{
			ID:             "0b7d8a9c-1111-4000-8000-000000000000",
			Timestamp:      base,
			Counts:         score.Counts{"A": 13, "V": 11},
			Result:         "ADLTVADHK",
			DominantTraits: []string{"A", "V", "D"},
			TotalQuestions: 29,
		},
		{
			ID:                "c0ffee00-2222-4000-8000-000000000000",
			Timestamp:         base.Add(48 * time.Hour),
			Counts:            score.Counts{"W": 12},
			Result:            "UW",
			DominantTraits:    []string{"W"},
			TotalQuestions:    14,
			CompletionMinutes: 9,
		},
	}
}

func compileSchema(t *testing.T, schema string) *jsonschema.Schema {
	t.Helper()
	sch, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		t.Fatalf("failed to parse schema JSON: %v", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", sch); err != nil {
		t.Fatalf("failed to add schema resource: %v", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		t.Fatalf("failed to compile schema: %v", err)
	}
	return compiled
}

func validateAgainstSchema(t *testing.T, out []byte) {
	t.Helper()
	compiled := compileSchema(t, Schema)
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if err := compiled.Validate(inst); err != nil {
		t.Errorf("JSON output does not conform to schema:\n%v", err)
	}
}

func TestWriteJSON_ValidJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEvaluation(t)); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["version"] != Version {
		t.Errorf("expected version %q, got %v", Version, parsed["version"])
	}
}

func TestWriteJSON_HasResultCode(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEvaluation(t)); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var parsed JSONReport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if parsed.Result.Code != "ADLTVADHK" {
		t.Errorf("expected code ADLTVADHK, got %q", parsed.Result.Code)
	}
	if parsed.Answered != 29 {
		t.Errorf("expected 29 answered, got %d", parsed.Answered)
	}
	if parsed.Comparison != nil {
		t.Error("comparison should be omitted when not set")
	}
}

func TestWriteJSON_ValidAgainstSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEvaluation(t)); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	validateAgainstSchema(t, buf.Bytes())
}

func TestWriteJSON_WithComparison_ValidAgainstSchema(t *testing.T) {
	ev := sampleEvaluation(t)
	cmp := history.Compare(ev.Result.Counts, sampleSessions())
	ev.Comparison = &cmp

	var buf bytes.Buffer
	if err := WriteJSON(&buf, ev); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	validateAgainstSchema(t, buf.Bytes())
	if !strings.Contains(buf.String(), `"consistency"`) {
		t.Error("expected comparison in output")
	}
}

func TestWriteJSON_EmptyResponse_ValidAgainstSchema(t *testing.T) {
	result := score.Evaluate(nil, nil)
	var buf bytes.Buffer
	err := WriteJSON(&buf, Evaluation{Result: result, Analysis: history.Analyze(result.Counts)})
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	validateAgainstSchema(t, buf.Bytes())
}

func TestSchema_RejectsLowercaseCode(t *testing.T) {
	compiled := compileSchema(t, Schema)
	doc := `{"version":"0.1.0","answered":0,"analysis":{"dominant":{"letter":"","count":0,"percentage":0},
"secondary":{"letter":"","count":0,"percentage":0},"profile":[],"strengths":[],"recommendations":[]},
"result":{"counts":{},"tables":[],"winners":"","summary":"","binary":{"v_count":0,"w_count":0,"selection":"V"},
"consensus":"","aggregate":"uv","code":"uv","traits":[]}}`
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if err := compiled.Validate(inst); err == nil {
		t.Error("expected schema to reject a lowercase code")
	}
}

func TestWriteText_HasResultAndStages(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleEvaluation(t)); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{
		"=== Result: ADLTVADHK ===",
		"29 question(s) answered",
		"session 6f1c2f3e",
		"Winners", "ADL",
		"Consensus", "ADHK",
		"(V 11, W 3)",
		"A:13",
		"Ambitious",
		"Dominant", "A (15%)",
		"Recommendations:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestWriteText_HasPairTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleEvaluation(t)); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{"TABLE", "PAIR", "WINNER", "strong", "moderate", "mild", "13 / 0", "CD"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected pair table to contain %q", want)
		}
	}
}

func TestWriteText_EmptyResponse(t *testing.T) {
	result := score.Evaluate(nil, nil)
	var buf bytes.Buffer
	if err := WriteText(&buf, Evaluation{Result: result, Analysis: history.Analyze(result.Counts)}); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := stripANSI(buf.String())
	if !strings.Contains(out, "No letters counted.") {
		t.Error("expected empty-counts message")
	}
	if !strings.Contains(out, "Nothing to analyze.") {
		t.Error("expected empty-analysis message")
	}
}

func TestWriteText_Comparison(t *testing.T) {
	ev := sampleEvaluation(t)
	cmp := history.Compare(ev.Result.Counts, nil)
	ev.Comparison = &cmp

	var buf bytes.Buffer
	if err := WriteText(&buf, ev); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := stripANSI(buf.String())
	if !strings.Contains(out, "Compared with history") || !strings.Contains(out, "100.0%") {
		t.Errorf("expected comparison section, got:\n%s", out)
	}
}

// stripANSI removes ANSI escape sequences from text for width measurement.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func assertFits80(t *testing.T, out string) {
	t.Helper()
	for i, line := range strings.Split(stripANSI(out), "\n") {
		if w := utf8.RuneCountInString(line); w > Width {
			t.Errorf("line %d exceeds %d columns (%d): %q", i+1, Width, w, line)
		}
	}
}

func TestWriteText_FitsIn80Columns(t *testing.T) {
	ev := sampleEvaluation(t)
	cmp := history.Compare(ev.Result.Counts, sampleSessions())
	ev.Comparison = &cmp

	var buf bytes.Buffer
	if err := WriteText(&buf, ev); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	assertFits80(t, buf.String())
}

func TestWriteHistoryText(t *testing.T) {
	sessions := sampleSessions()
	stats := history.Statistics(sessions, sessions[1].Timestamp)

	var buf bytes.Buffer
	if err := WriteHistoryText(&buf, sessions, stats); err != nil {
		t.Fatalf("WriteHistoryText failed: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{"0b7d8a9c", "c0ffee00", "ADLTVADHK", "AVD", "Statistics", "9 min"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected history output to contain %q", want)
		}
	}
	if strings.Contains(out, "0b7d8a9c-1111") {
		t.Error("session ids should be shortened")
	}
	assertFits80(t, buf.String())
}

func TestWriteHistoryText_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistoryText(&buf, nil, history.Stats{}); err != nil {
		t.Fatalf("WriteHistoryText failed: %v", err)
	}
	if !strings.Contains(stripANSI(buf.String()), "No sessions recorded.") {
		t.Error("expected empty history message")
	}
}

func TestWriteHistoryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistoryJSON(&buf, nil, history.Stats{}); err != nil {
		t.Fatalf("WriteHistoryJSON failed: %v", err)
	}
	var parsed HistoryJSONReport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Sessions == nil {
		t.Error("sessions should encode as an empty array, not null")
	}
	if !strings.Contains(buf.String(), `"sessions": []`) {
		t.Errorf("expected empty sessions array, got:\n%s", buf.String())
	}
}

func TestWriteBatchText(t *testing.T) {
	lines := []BatchLine{
		{File: "responses/alice.json", Code: "ADLTVADHK"},
		{File: "responses/" + strings.Repeat("x", 40) + ".yaml", Err: errors.New("answer 2: unknown option")},
		{File: "responses/carol.yaml", Code: "UW"},
	}
	var buf bytes.Buffer
	if err := WriteBatchText(&buf, lines); err != nil {
		t.Fatalf("WriteBatchText failed: %v", err)
	}
	out := stripANSI(buf.String())
	if !strings.Contains(out, "3 file(s) evaluated, 1 failed") {
		t.Errorf("missing summary line:\n%s", out)
	}
	if strings.Index(out, "alice") > strings.Index(out, "carol") {
		t.Error("rows should keep input order")
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "unknown option") {
		t.Error("expected failure status and message")
	}
	assertFits80(t, buf.String())
}

func TestWriteBatchJSON(t *testing.T) {
	lines := []BatchLine{
		{File: "a.json", Code: "AW"},
		{File: "b.json", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	if err := WriteBatchJSON(&buf, lines); err != nil {
		t.Fatalf("WriteBatchJSON failed: %v", err)
	}
	var parsed []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed) != 2 || parsed[0]["code"] != "AW" || parsed[1]["error"] != "boom" {
		t.Errorf("unexpected batch JSON: %v", parsed)
	}
}

func TestWriteQuestionsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQuestionsText(&buf, instrument.Default()); err != nil {
		t.Fatalf("WriteQuestionsText failed: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{"=== 29 questions ===", "Which image do you like?", "q6-c", "ADFHKLQ", "Section C (questions 11-15)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected questions output to contain %q", want)
		}
	}
	assertFits80(t, buf.String())
}

func TestWriteQuestionsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQuestionsJSON(&buf, instrument.Default()); err != nil {
		t.Fatalf("WriteQuestionsJSON failed: %v", err)
	}
	var parsed questionsJSON
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed.Questions) != 29 || len(parsed.Sections) != 3 {
		t.Errorf("got %d questions, %d sections", len(parsed.Questions), len(parsed.Sections))
	}
}

func TestTierStyle(t *testing.T) {
	s := DefaultStyles()
	tests := []struct {
		tier taxonomy.Tier
		want lipgloss.Style
	}{
		{taxonomy.TierStrong, s.TierStrong},
		{taxonomy.TierModerate, s.TierModerate},
		{taxonomy.TierMild, s.TierMild},
		{"unknown", s.Muted},
	}
	for _, tt := range tests {
		if got := s.TierStyle(tt.tier).GetForeground(); got != tt.want.GetForeground() {
			t.Errorf("TierStyle(%q) foreground = %v, want %v", tt.tier, got, tt.want.GetForeground())
		}
	}
}

func TestWinnerStyle(t *testing.T) {
	s := DefaultStyles()
	tests := []struct {
		letter string
		want   lipgloss.Style
	}{
		{"A", s.TierStrong},
		{"L", s.TierModerate},
		{"R", s.TierMild},
		{"V", s.Muted},
	}
	for _, tt := range tests {
		if got := winnerStyle(s, tt.letter).GetForeground(); got != tt.want.GetForeground() {
			t.Errorf("winnerStyle(%s) foreground = %v, want %v", tt.letter, got, tt.want.GetForeground())
		}
	}
}

func TestWinnersText(t *testing.T) {
	ev := sampleEvaluation(t)
	got := stripANSI(winnersText(ev.Result, DefaultStyles()))
	if want := "ADL  (strong AD, moderate L)"; got != want {
		t.Errorf("winnersText = %q, want %q", got, want)
	}
	if got := winnersText(score.Result{}, DefaultStyles()); got != "" {
		t.Errorf("winnersText(empty) = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 5); got != "ab..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
