// Package session records completed evaluations and keeps the most
// recent ones in a pluggable store.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unbound-force/tangle/internal/intake"
	"github.com/unbound-force/tangle/internal/score"
)

// DefaultRetain is the number of sessions kept when a store is
// opened without an explicit limit.
const DefaultRetain = 10

// dominantCount is the number of letters recorded as dominant traits.
const dominantCount = 3

var (
	// ErrNotFound is returned by Get for an unknown session id.
	ErrNotFound = errors.New("session not found")

	// ErrExists is returned by Put when the id is already stored.
	ErrExists = errors.New("session already exists")
)

// Session is one completed, evaluated response.
type Session struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Answers and Favorites are the option ids as submitted.
	Answers   []string `json:"answers"`
	Favorites []string `json:"favorites,omitempty"`

	// Codes is the code string per question; empty when unanswered.
	Codes []string `json:"codes"`

	Counts         score.Counts `json:"counts"`
	Result         string       `json:"result"`
	DominantTraits []string     `json:"dominant_traits"`

	// TotalQuestions is the number of answered questions.
	TotalQuestions    int     `json:"total_questions"`
	CompletionMinutes float64 `json:"completion_minutes,omitempty"`
}

// New builds a session for an evaluated response with a fresh id.
func New(resp *intake.Response, res *intake.Resolved, result score.Result, now time.Time) Session {
	return Session{
		ID:                uuid.NewString(),
		Timestamp:         now.UTC(),
		Answers:           append([]string(nil), resp.Answers...),
		Favorites:         append([]string(nil), resp.Favorites...),
		Codes:             append([]string(nil), res.Selections...),
		Counts:            result.Counts,
		Result:            result.Code,
		DominantTraits:    DominantTraits(result.Counts),
		TotalQuestions:    res.Answered,
		CompletionMinutes: resp.CompletionMinutes,
	}
}

// DominantTraits returns up to three letters with the highest counts.
func DominantTraits(c score.Counts) []string {
	ranked := c.Ranked()
	if len(ranked) > dominantCount {
		ranked = ranked[:dominantCount]
	}
	return ranked
}

// Store persists sessions in insertion order, keeping only the most
// recent ones. Implementations are safe for concurrent use.
type Store interface {
	// Put appends a session, evicting the oldest beyond the limit.
	Put(ctx context.Context, s Session) error

	// Get returns the session with id, or ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)

	// List returns all retained sessions, oldest first.
	List(ctx context.Context) ([]Session, error)

	Close() error
}

// Open returns the store for backend ("memory", "file" or "sqlite").
// path is ignored by the memory backend.
func Open(backend, path string, retain int) (Store, error) {
	switch backend {
	case "memory":
		return NewMemoryStore(retain), nil
	case "file":
		return NewFileStore(path, retain)
	case "sqlite":
		return NewSQLiteStore(path, retain)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func validate(s Session) error {
	if s.ID == "" {
		return errors.New("session has no id")
	}
	return nil
}

func normalizeRetain(n int) int {
	if n < 1 {
		return DefaultRetain
	}
	return n
}

// trim drops the oldest entries so that at most n remain.
func trim(sessions []Session, n int) []Session {
	if len(sessions) <= n {
		return sessions
	}
	return append([]Session(nil), sessions[len(sessions)-n:]...)
}
