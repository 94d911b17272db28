// Package report provides output formatters for tangle evaluations,
// session history and the question bank, in JSON and human-readable
// text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/tangle/internal/history"
	"github.com/unbound-force/tangle/internal/score"
	"github.com/unbound-force/tangle/internal/session"
)

// Version is the JSON output schema version.
const Version = "0.1.0"

// Evaluation bundles everything reported for one response.
type Evaluation struct {
	// SessionID is set when the evaluation was stored.
	SessionID string

	// Answered is the number of answered questions.
	Answered int

	Result   score.Result
	Analysis history.Analysis

	// Comparison is nil when no history was consulted.
	Comparison *history.Comparison
}

// JSONReport is the top-level JSON output of an evaluation.
type JSONReport struct {
	Version    string              `json:"version"`
	SessionID  string              `json:"session_id,omitempty"`
	Answered   int                 `json:"answered"`
	Result     score.Result        `json:"result"`
	Analysis   history.Analysis    `json:"analysis"`
	Comparison *history.Comparison `json:"comparison,omitempty"`
}

// HistoryJSONReport is the JSON output of the history command.
type HistoryJSONReport struct {
	Version    string            `json:"version"`
	Sessions   []session.Session `json:"sessions"`
	Statistics history.Stats     `json:"statistics"`
}

// WriteJSON writes an evaluation as formatted JSON to the writer.
func WriteJSON(w io.Writer, ev Evaluation) error {
	return encode(w, JSONReport{
		Version:    Version,
		SessionID:  ev.SessionID,
		Answered:   ev.Answered,
		Result:     ev.Result,
		Analysis:   ev.Analysis,
		Comparison: ev.Comparison,
	})
}

// WriteHistoryJSON writes stored sessions and their statistics as
// formatted JSON.
func WriteHistoryJSON(w io.Writer, sessions []session.Session, stats history.Stats) error {
	if sessions == nil {
		sessions = []session.Session{}
	}
	return encode(w, HistoryJSONReport{
		Version:    Version,
		Sessions:   sessions,
		Statistics: stats,
	})
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
