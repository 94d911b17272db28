// Package intake reads respondent response files and resolves their
// option ids into the code strings scored by package score.
package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/unbound-force/tangle/internal/instrument"
)

// Boundary errors. Resolve wraps them with the offending id.
var (
	ErrInvalid        = errors.New("invalid response")
	ErrUnknownOption  = errors.New("unknown option")
	ErrWrongQuestion  = errors.New("option belongs to another question")
	ErrTooManyAnswers = errors.New("more answers than questions")
	ErrWrongSection   = errors.New("favorite outside its section")
	ErrNotAnswered    = errors.New("favorite was not among the answers")
)

// Response is a parsed response file.
type Response struct {
	Answers           []string `json:"answers" yaml:"answers"`
	Favorites         []string `json:"favorites,omitempty" yaml:"favorites,omitempty"`
	CompletionMinutes float64  `json:"completion_minutes,omitempty" yaml:"completion_minutes,omitempty"`
}

// Resolved is a response mapped onto the instrument.
type Resolved struct {
	// Selections holds one code string per question; unanswered
	// questions are empty.
	Selections []string

	// Favorites holds the code strings of the favorite options in
	// section order.
	Favorites []string

	// Answered is the number of non-blank answers.
	Answered int
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func responseSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema))
		if err != nil {
			compileErr = fmt.Errorf("parsing response schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("response.json", doc); err != nil {
			compileErr = fmt.Errorf("adding response schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile("response.json")
	})
	return compiled, compileErr
}

// ReadFile parses the response file at path.
func ReadFile(path string) (*Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading response file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a JSON or YAML response and validates its shape
// against Schema.
func Parse(data []byte) (*Response, error) {
	// YAML is a superset of JSON, so one decoder serves both.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrInvalid, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}
	canonical, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	sch, err := responseSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(canonical))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var r Response
	if err := json.Unmarshal(canonical, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &r, nil
}

// Resolve maps answer and favorite ids to code strings. Answer i must
// be an option of question i+1 or empty. Favorite i must be an
// answered option from section i.
func Resolve(in *instrument.Instrument, r *Response) (*Resolved, error) {
	if len(r.Answers) > in.Len() {
		return nil, fmt.Errorf("%w: got %d, instrument has %d",
			ErrTooManyAnswers, len(r.Answers), in.Len())
	}

	res := &Resolved{Selections: make([]string, in.Len())}
	answered := make(map[string]bool, len(r.Answers))
	for i, id := range r.Answers {
		if id == "" {
			continue
		}
		opt, qid, ok := in.Option(id)
		if !ok {
			return nil, fmt.Errorf("answer %d: %w %q", i+1, ErrUnknownOption, id)
		}
		if qid != i+1 {
			return nil, fmt.Errorf("answer %d: %w: %q is on question %d",
				i+1, ErrWrongQuestion, id, qid)
		}
		res.Selections[i] = opt.Code
		answered[id] = true
		res.Answered++
	}

	sections := in.Sections()
	if len(r.Favorites) > len(sections) {
		return nil, fmt.Errorf("%w: %d favorites for %d sections",
			ErrInvalid, len(r.Favorites), len(sections))
	}
	for i, id := range r.Favorites {
		opt, qid, ok := in.Option(id)
		if !ok {
			return nil, fmt.Errorf("favorite %d: %w %q", i+1, ErrUnknownOption, id)
		}
		if !sections[i].Contains(qid) {
			return nil, fmt.Errorf("favorite %d: %w: %q is not in %s",
				i+1, ErrWrongSection, id, sections[i])
		}
		if !answered[id] {
			return nil, fmt.Errorf("favorite %d: %w: %q", i+1, ErrNotAnswered, id)
		}
		res.Favorites = append(res.Favorites, opt.Code)
	}

	return res, nil
}
