package wizard

import (
	"context"
	"errors"
	"sync"
)

// Phase is the controller's position in the submission lifecycle. A failed
// submission returns to PhaseEditing on the last step with Error set.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
)

// Completion describes what a successful submission created.
type Completion struct {
	ResourceID string `json:"resourceId"`
	Redirect   string `json:"redirect,omitempty"`
}

// Submitter receives the final draft. It is called at most once per
// completion attempt.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) (Completion, error)
}

type SubmitterFunc func(ctx context.Context, draft Draft) (Completion, error)

func (f SubmitterFunc) Submit(ctx context.Context, draft Draft) (Completion, error) {
	return f(ctx, draft)
}

// Controller owns step progression and the draft of one wizard instance.
type Controller struct {
	mu         sync.Mutex
	model      *Model
	submitter  Submitter
	current    int
	visited    map[int]bool
	draft      Draft
	phase      Phase
	lastError  string
	completion *Completion
}

type Option func(*Controller)

// WithDraft pre-populates the draft, e.g. from an entity being edited.
func WithDraft(d Draft) Option {
	return func(c *Controller) { c.draft = d.Clone() }
}

// WithAllVisited makes every step navigable from the start.
func WithAllVisited() Option {
	return func(c *Controller) {
		for i := 1; i <= c.model.Len(); i++ {
			c.visited[i] = true
		}
	}
}

func NewController(model *Model, submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		model:     model,
		submitter: submitter,
		current:   1,
		visited:   map[int]bool{1: true},
		draft:     Draft{},
		phase:     PhaseEditing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitStep validates partial against the current step, merges it into the
// draft and advances. On the last step it hands the draft to the submitter.
// Rejected calls leave the draft and the current step untouched.
func (c *Controller) SubmitStep(ctx context.Context, stepIndex int, partial Draft) (State, error) {
	c.mu.Lock()
	if err := c.ready(); err != nil {
		defer c.mu.Unlock()
		return c.stateLocked(), err
	}
	if stepIndex != c.current {
		defer c.mu.Unlock()
		return c.stateLocked(), &StaleStepError{Current: c.current, Got: stepIndex}
	}

	next, err := c.stage(stepIndex, partial)
	if err != nil {
		defer c.mu.Unlock()
		return c.stateLocked(), err
	}

	if c.current < c.model.Len() {
		c.draft = next
		c.lastError = ""
		c.current++
		c.visited[c.current] = true
		defer c.mu.Unlock()
		return c.stateLocked(), nil
	}

	if err := c.checkComplete(next); err != nil {
		defer c.mu.Unlock()
		return c.stateLocked(), err
	}
	c.draft = next
	return c.submitLocked(ctx)
}

// Save commits partial on the current step and submits the whole draft
// without walking the remaining steps. Only models built WithEarlySave allow it.
func (c *Controller) Save(ctx context.Context, stepIndex int, partial Draft) (State, error) {
	c.mu.Lock()
	if !c.model.earlySave {
		defer c.mu.Unlock()
		return c.stateLocked(), ErrEarlySaveDisabled
	}
	if err := c.ready(); err != nil {
		defer c.mu.Unlock()
		return c.stateLocked(), err
	}
	if stepIndex != c.current {
		defer c.mu.Unlock()
		return c.stateLocked(), &StaleStepError{Current: c.current, Got: stepIndex}
	}
	next, err := c.stage(stepIndex, partial)
	if err == nil {
		err = c.checkComplete(next)
	}
	if err != nil {
		defer c.mu.Unlock()
		return c.stateLocked(), err
	}
	c.draft = next
	return c.submitLocked(ctx)
}

// GoTo moves to a visited step or the step right after the current one.
// Anything else is ignored and reported as false.
func (c *Controller) GoTo(stepIndex int) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	moved := c.goToLocked(stepIndex)
	return c.stateLocked(), moved
}

// Back is GoTo(current-1); it does nothing on the first step.
func (c *Controller) Back() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	moved := c.goToLocked(c.current - 1)
	return c.stateLocked(), moved
}

func (c *Controller) goToLocked(stepIndex int) bool {
	if !c.navigable(stepIndex) {
		return false
	}
	c.current = stepIndex
	c.visited[stepIndex] = true
	return true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) ready() error {
	switch c.phase {
	case PhaseSubmitting:
		return ErrSubmissionInFlight
	case PhaseSucceeded:
		return ErrCompleted
	}
	return nil
}

func (c *Controller) navigable(stepIndex int) bool {
	if c.phase != PhaseEditing {
		return false
	}
	if stepIndex < 1 || stepIndex > c.model.Len() {
		return false
	}
	return c.visited[stepIndex] || stepIndex == c.current+1
}

// stage returns the draft that committing partial on stepIndex would produce.
func (c *Controller) stage(stepIndex int, partial Draft) (Draft, error) {
	step, _ := c.model.Step(stepIndex)
	committed := step.commit(partial)
	if res := step.check(committed); !res.OK {
		return nil, &ValidationError{Step: stepIndex, Result: res}
	}
	next := c.draft.Clone()
	next.Merge(committed)
	return next, nil
}

// checkComplete runs every step against the full draft so that steps skipped
// through GoTo cannot reach the submitter unvalidated.
func (c *Controller) checkComplete(d Draft) error {
	for i := 1; i <= c.model.Len(); i++ {
		step, _ := c.model.Step(i)
		if res := step.check(d); !res.OK {
			return &ValidationError{Step: i, Result: res}
		}
	}
	return nil
}

// submitLocked is entered with c.mu held and returns with it released.
// The submitter runs without the lock; the submitting phase turns away
// concurrent attempts.
func (c *Controller) submitLocked(ctx context.Context) (State, error) {
	c.phase = PhaseSubmitting
	c.lastError = ""
	snapshot := c.draft.Clone()
	c.mu.Unlock()

	completion, err := c.submitter.Submit(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.phase = PhaseEditing
		var se *SubmissionError
		if !errors.As(err, &se) {
			se = &SubmissionError{Message: err.Error(), Err: err}
		}
		c.lastError = se.Message
		return c.stateLocked(), se
	}
	c.phase = PhaseSucceeded
	c.completion = &completion
	return c.stateLocked(), nil
}

// StepInfo describes a step for rendering its indicator.
type StepInfo struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Visited     bool   `json:"visited"`
	Navigable   bool   `json:"navigable"`
}

// State is a point-in-time copy of a controller.
type State struct {
	Wizard       string      `json:"wizard"`
	CurrentStep  int         `json:"currentStep"`
	StepCount    int         `json:"stepCount"`
	Steps        []StepInfo  `json:"steps"`
	VisitedSteps []int       `json:"visitedSteps"`
	Phase        Phase       `json:"phase"`
	Error        string      `json:"error,omitempty"`
	Draft        Draft       `json:"draft"`
	Completion   *Completion `json:"completion,omitempty"`
}

func (c *Controller) stateLocked() State {
	st := State{
		Wizard:      c.model.name,
		CurrentStep: c.current,
		StepCount:   c.model.Len(),
		Phase:       c.phase,
		Error:       c.lastError,
		Draft:       c.draft.Clone(),
	}
	for i := 1; i <= c.model.Len(); i++ {
		step, _ := c.model.Step(i)
		st.Steps = append(st.Steps, StepInfo{
			Index:       i,
			Label:       step.Label,
			Description: step.Description,
			Visited:     c.visited[i],
			Navigable:   c.navigable(i),
		})
		if c.visited[i] {
			st.VisitedSteps = append(st.VisitedSteps, i)
		}
	}
	if c.completion != nil {
		done := *c.completion
		st.Completion = &done
	}
	return st
}
