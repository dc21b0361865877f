package wizard

import "fmt"

// Step is one page of a wizard. Validate gates commits of the step's data;
// Commit, when set, turns the step's local editing state into draft keys.
type Step struct {
	Index       int
	Label       string
	Description string
	Validate    func(partial Draft) Result
	Commit      func(partial Draft) Draft
}

// IsValid reports whether d satisfies the step.
func (s Step) IsValid(d Draft) bool {
	return s.check(d).OK
}

func (s Step) check(d Draft) Result {
	if s.Validate == nil {
		return Pass()
	}
	return s.Validate(d)
}

func (s Step) commit(partial Draft) Draft {
	if s.Commit == nil {
		return partial.Clone()
	}
	return s.Commit(partial)
}

// Model is the immutable, ordered step list of a wizard.
type Model struct {
	name      string
	steps     []Step
	earlySave bool
}

type ModelOption func(*Model)

// WithEarlySave allows submitting the whole draft from any step.
func WithEarlySave() ModelOption {
	return func(m *Model) { m.earlySave = true }
}

// NewModel numbers steps from 1. A step with a non-zero Index must already
// sit at that position.
func NewModel(name string, steps []Step, opts ...ModelOption) (*Model, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("wizard %q has no steps", name)
	}
	m := &Model{name: name, steps: make([]Step, len(steps))}
	for i, s := range steps {
		if s.Index != 0 && s.Index != i+1 {
			return nil, fmt.Errorf("wizard %q: step %q has index %d at position %d", name, s.Label, s.Index, i+1)
		}
		s.Index = i + 1
		m.steps[i] = s
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// MustModel is NewModel for statically defined wizards.
func MustModel(name string, steps []Step, opts ...ModelOption) *Model {
	m, err := NewModel(name, steps, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) Name() string { return m.name }

func (m *Model) Len() int { return len(m.steps) }

func (m *Model) Step(index int) (Step, bool) {
	if index < 1 || index > len(m.steps) {
		return Step{}, false
	}
	return m.steps[index-1], true
}
