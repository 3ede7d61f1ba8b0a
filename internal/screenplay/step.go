package screenplay

import (
	"context"
	"fmt"
)

// Step is one entry of a task list: either an Action or a verification
// built with See.
type Step interface {
	Description() string
	RequiredAbilities() []AbilityKind
}

// Action is a step with side effects on the driven system. PerformAs must
// not mutate the action itself, so the same value can be replayed.
type Action interface {
	Step
	PerformAs(ctx context.Context, actor Abilities) error
}

// check is implemented by verification steps
type check interface {
	Step
	verify(ctx context.Context, actor Abilities) error
}

// requireAbilities fails with the first required kind the actor lacks
func requireAbilities(actor Abilities, step Step) error {
	for _, kind := range step.RequiredAbilities() {
		if !actor.HasAbilityTo(kind) {
			return &MissingAbilityError{Actor: actor.Name(), Kind: kind}
		}
	}
	return nil
}

// runStep checks abilities, then performs or verifies the step
func runStep(ctx context.Context, actor Abilities, step Step) error {
	if err := requireAbilities(actor, step); err != nil {
		return err
	}
	switch s := step.(type) {
	case check:
		return s.verify(ctx, actor)
	case Action:
		return s.PerformAs(ctx, actor)
	default:
		return fmt.Errorf("%T is neither an action nor a verification", step)
	}
}

type task struct {
	description string
	steps       []Step
}

// Task groups steps into one reusable action, e.g. "log in as pol".
// Sub-step failures are reported with their position inside the task.
func Task(description string, steps ...Step) Action {
	return task{description: description, steps: steps}
}

func (t task) Description() string { return t.description }

func (t task) RequiredAbilities() []AbilityKind {
	return unionKinds(t.steps...)
}

func (t task) PerformAs(ctx context.Context, actor Abilities) error {
	for i, step := range t.steps {
		if err := runStep(ctx, actor, step); err != nil {
			return &ActionFailedError{Actor: actor.Name(), Index: i, Step: step.Description(), Err: err}
		}
	}
	return nil
}

func unionKinds(steps ...Step) []AbilityKind {
	var kinds []AbilityKind
	seen := make(map[AbilityKind]bool)
	for _, s := range steps {
		for _, k := range s.RequiredAbilities() {
			if !seen[k] {
				seen[k] = true
				kinds = append(kinds, k)
			}
		}
	}
	return kinds
}

type gated struct {
	Step
	extra []AbilityKind
}

// Requiring returns step with additional ability kinds the actor must
// hold, independent of what the step itself needs. Page objects use it to
// gate marker-protected tasks such as playlist management.
func Requiring(step Step, kinds ...AbilityKind) Action {
	return gated{Step: step, extra: kinds}
}

func (g gated) RequiredAbilities() []AbilityKind {
	kinds := append([]AbilityKind(nil), g.extra...)
	for _, k := range g.Step.RequiredAbilities() {
		dup := false
		for _, e := range kinds {
			if e == k {
				dup = true
				break
			}
		}
		if !dup {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (g gated) PerformAs(ctx context.Context, actor Abilities) error {
	return runStep(ctx, actor, g.Step)
}
