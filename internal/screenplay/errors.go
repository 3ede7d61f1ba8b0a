package screenplay

import (
	"fmt"
	"time"
)

// MissingAbilityError means a step needed an ability the actor does not hold
type MissingAbilityError struct {
	Actor string
	Kind  AbilityKind
}

func (e *MissingAbilityError) Error() string {
	return fmt.Sprintf("%s does not have the ability to %s", e.Actor, e.Kind)
}

// ElementNotFoundError means a target resolved to fewer elements than
// expected, or to more than one for a Single target.
type ElementNotFoundError struct {
	Target string
	Found  int
}

func (e *ElementNotFoundError) Error() string {
	if e.Found > 1 {
		return fmt.Sprintf("expected exactly one %s, found %d", e.Target, e.Found)
	}
	return fmt.Sprintf("could not find %s", e.Target)
}

// ElementNotInteractableError means the element was found but the driver
// refused the interaction.
type ElementNotInteractableError struct {
	Target string
	Op     string
	Err    error
}

func (e *ElementNotInteractableError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *ElementNotInteractableError) Unwrap() error { return e.Err }

// TimeoutError means a polled condition did not hold before its deadline
type TimeoutError struct {
	Condition string
	Elapsed   time.Duration
	Timeout   time.Duration
	Err       error // last error seen while polling, if any
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s", e.Elapsed.Round(time.Millisecond), e.Condition)
	if e.Err != nil {
		msg += fmt.Sprintf(" (last error: %v)", e.Err)
	}
	return msg
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// AssertionFailedError means a resolution rejected a question's answer
type AssertionFailedError struct {
	Question   string
	Resolution string // e.g. `to contain the text "invalid"`
	Expected   any
	Actual     any
}

func (e *AssertionFailedError) Error() string {
	return fmt.Sprintf("expected %s %s, but was %#v", e.Question, e.Resolution, e.Actual)
}

// ActionFailedError annotates the failure of one step in a task list
type ActionFailedError struct {
	Actor string
	Index int // zero-based position in the task list
	Step  string
	Err   error
}

func (e *ActionFailedError) Error() string {
	return fmt.Sprintf("%s failed at step %d (%s): %v", e.Actor, e.Index+1, e.Step, e.Err)
}

func (e *ActionFailedError) Unwrap() error { return e.Err }
