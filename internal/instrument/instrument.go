// Package instrument provides the fixed question bank: questions,
// their options and the code strings attached to each option, plus
// the section partition used for favorites.
package instrument

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed assets/questions.yaml
var questionsYAML []byte

// Option is one selectable answer.
type Option struct {
	// ID is the stable option identifier, e.g. "q3-b".
	ID string `yaml:"id" json:"id"`

	// Code is the letter string scored when the option is chosen.
	Code string `yaml:"code" json:"code"`

	// Image is the display image reference. Not used for scoring.
	Image string `yaml:"image" json:"image"`
}

// Question is one position in the questionnaire.
type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Prompt  string   `yaml:"-" json:"prompt"`
	Options []Option `yaml:"options" json:"options"`
}

// Section is a contiguous range of questions from which the
// respondent picks one favorite.
type Section struct {
	Name  string `json:"name"`
	First int    `json:"first"`
	Last  int    `json:"last"`
}

// Contains reports whether question id falls inside the section.
func (s Section) Contains(id int) bool {
	return id >= s.First && id <= s.Last
}

// String returns e.g. "Section A (questions 1-5)".
func (s Section) String() string {
	return fmt.Sprintf("%s (questions %d-%d)", s.Name, s.First, s.Last)
}

// Instrument is an immutable question bank.
type Instrument struct {
	questions []Question
	options   map[string]optionRef
	sections  []Section
}

type optionRef struct {
	question int
	option   Option
}

type bankFile struct {
	Prompt    string     `yaml:"prompt"`
	Questions []Question `yaml:"questions"`
}

// sectionSize is the number of part-one questions per section.
const sectionSize = 5

var (
	defaultOnce sync.Once
	defaultInst *Instrument
	defaultErr  error
)

// Default returns the embedded question bank. It panics if the
// embedded asset is malformed, which is a build defect.
func Default() *Instrument {
	defaultOnce.Do(func() {
		defaultInst, defaultErr = Parse(questionsYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("instrument: embedded question bank: %v", defaultErr))
	}
	return defaultInst
}

// Parse builds an Instrument from YAML. Question ids must run 1..n
// in order and option ids must be unique.
func Parse(data []byte) (*Instrument, error) {
	var bank bankFile
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsing question bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank has no questions")
	}

	inst := &Instrument{
		questions: make([]Question, 0, len(bank.Questions)),
		options:   make(map[string]optionRef),
	}
	for i, q := range bank.Questions {
		if q.ID != i+1 {
			return nil, fmt.Errorf("question %d has id %d, want %d", i+1, q.ID, i+1)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d has no options", q.ID)
		}
		q.Prompt = bank.Prompt
		for _, o := range q.Options {
			if o.ID == "" {
				return nil, fmt.Errorf("question %d has an option without id", q.ID)
			}
			if _, dup := inst.options[o.ID]; dup {
				return nil, fmt.Errorf("duplicate option id %q", o.ID)
			}
			inst.options[o.ID] = optionRef{question: q.ID, option: o}
		}
		inst.questions = append(inst.questions, q)
	}

	// Three sections of five over the four-option questions.
	for i, name := range []string{"Section A", "Section B", "Section C"} {
		first := i*sectionSize + 1
		last := first + sectionSize - 1
		if last > len(inst.questions) {
			break
		}
		inst.sections = append(inst.sections, Section{Name: name, First: first, Last: last})
	}

	return inst, nil
}

// Len returns the number of questions.
func (in *Instrument) Len() int {
	return len(in.questions)
}

// Questions returns a copy of all questions in order.
func (in *Instrument) Questions() []Question {
	out := make([]Question, len(in.questions))
	for i, q := range in.questions {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Question returns the question with the given 1-based id.
func (in *Instrument) Question(id int) (Question, bool) {
	if id < 1 || id > len(in.questions) {
		return Question{}, false
	}
	q := in.questions[id-1]
	q.Options = append([]Option(nil), q.Options...)
	return q, true
}

// Option resolves an option id to the option and the id of the
// question it belongs to.
func (in *Instrument) Option(id string) (Option, int, bool) {
	ref, ok := in.options[id]
	if !ok {
		return Option{}, 0, false
	}
	return ref.option, ref.question, true
}

// Sections returns the favorite sections in order.
func (in *Instrument) Sections() []Section {
	return append([]Section(nil), in.sections...)
}
