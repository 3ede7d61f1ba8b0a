package screenplay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultWaitTimeout bounds waits that don't set their own deadline
	DefaultWaitTimeout = 20 * time.Second
	// PollInterval is how often a wait re-checks its condition
	PollInterval = 250 * time.Millisecond
)

type waitTimeoutKey struct{}

func withWaitTimeout(ctx context.Context, d time.Duration) context.Context {
	if d <= 0 {
		return ctx
	}
	return context.WithValue(ctx, waitTimeoutKey{}, d)
}

func waitTimeoutFrom(ctx context.Context) time.Duration {
	if d, ok := ctx.Value(waitTimeoutKey{}).(time.Duration); ok {
		return d
	}
	return DefaultWaitTimeout
}

// Poll evaluates cond every interval until it holds, it fails, ctx ends or
// timeout elapses. On timeout the error is a *TimeoutError whose Elapsed is
// at least timeout.
func Poll(ctx context.Context, timeout, interval time.Duration, condition string, cond func(context.Context) (bool, error)) error {
	start := time.Now()
	deadline := start.Add(timeout)

	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return &TimeoutError{Condition: condition, Elapsed: time.Since(start), Timeout: timeout}
		}

		timer := time.NewTimer(min(interval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

type waitCondition int

const (
	toAppear waitCondition = iota
	toDisappear
	toContainText
)

// WaitAction polls a target until a condition holds
type WaitAction struct {
	target  Target
	cond    waitCondition
	text    string
	timeout time.Duration
}

// WaitFor waits for target to appear unless another condition is chosen
func WaitFor(target Target) WaitAction {
	return WaitAction{target: target.All(), cond: toAppear}
}

// ToAppear waits until at least one match is visible
func (w WaitAction) ToAppear() WaitAction {
	w.cond = toAppear
	return w
}

// ToDisappear waits until no match is visible
func (w WaitAction) ToDisappear() WaitAction {
	w.cond = toDisappear
	return w
}

// ToContainText waits until a visible match's text contains text
func (w WaitAction) ToContainText(text string) WaitAction {
	w.cond = toContainText
	w.text = text
	return w
}

// Within overrides the actor's default wait timeout
func (w WaitAction) Within(timeout time.Duration) WaitAction {
	w.timeout = timeout
	return w
}

func (w WaitAction) condition() string {
	switch w.cond {
	case toDisappear:
		return fmt.Sprintf("%s to disappear", w.target)
	case toContainText:
		return fmt.Sprintf("%s to contain the text %q", w.target, w.text)
	default:
		return fmt.Sprintf("%s to appear", w.target)
	}
}

func (w WaitAction) Description() string {
	if w.timeout > 0 {
		return fmt.Sprintf("Wait up to %s for %s", w.timeout, w.condition())
	}
	return "Wait for " + w.condition()
}

func (w WaitAction) RequiredAbilities() []AbilityKind {
	return browsing
}

func (w WaitAction) PerformAs(ctx context.Context, actor Abilities) error {
	driver, err := DriverOf(actor)
	if err != nil {
		return err
	}

	timeout := w.timeout
	if timeout <= 0 {
		timeout = waitTimeoutFrom(ctx)
	}

	return Poll(ctx, timeout, PollInterval, w.condition(), func(ctx context.Context) (bool, error) {
		found, err := w.target.Resolve(ctx, driver)
		if err != nil {
			return false, err
		}
		visible := 0
		for _, el := range found {
			ok, err := el.Visible(ctx)
			if err != nil || !ok {
				// Detached between Find and Visible, or hidden
				continue
			}
			if w.cond == toContainText {
				text, err := el.Text(ctx)
				if err != nil || !strings.Contains(text, w.text) {
					continue
				}
			}
			visible++
		}
		if w.cond == toDisappear {
			return visible == 0, nil
		}
		return visible > 0, nil
	})
}

type eventually[T any] struct {
	question   Question[T]
	resolution Resolution[T]
	timeout    time.Duration
}

// Eventually waits until the answer to q satisfies r, e.g. until the
// browser URL contains "home" after a redirect.
func Eventually[T any](q Question[T], r Resolution[T]) Action {
	return eventually[T]{question: q, resolution: r}
}

// EventuallyWithin is Eventually with its own timeout
func EventuallyWithin[T any](timeout time.Duration, q Question[T], r Resolution[T]) Action {
	return eventually[T]{question: q, resolution: r, timeout: timeout}
}

func (e eventually[T]) condition() string {
	return fmt.Sprintf("%s %s", e.question.Description(), e.resolution.Description())
}

func (e eventually[T]) Description() string {
	return "Wait for " + e.condition()
}

func (e eventually[T]) RequiredAbilities() []AbilityKind {
	return e.question.RequiredAbilities()
}

func (e eventually[T]) PerformAs(ctx context.Context, actor Abilities) error {
	timeout := e.timeout
	if timeout <= 0 {
		timeout = waitTimeoutFrom(ctx)
	}
	var last T
	err := Poll(ctx, timeout, PollInterval, e.condition(), func(ctx context.Context) (bool, error) {
		answer, err := e.question.AnsweredBy(ctx, actor)
		if err != nil {
			if isNotFound(err) {
				return false, nil
			}
			return false, err
		}
		last = answer
		return e.resolution.Resolve(answer), nil
	})
	var te *TimeoutError
	if errors.As(err, &te) {
		te.Condition = fmt.Sprintf("%s (last answer %#v)", te.Condition, last)
	}
	return err
}

// Pause sleeps for d. Prefer WaitFor; Pause exists for animations with no
// observable end state.
func Pause(d time.Duration) Action {
	return pause{d: d}
}

type pause struct {
	d time.Duration
}

func (p pause) Description() string              { return fmt.Sprintf("Pause for %s", p.d) }
func (p pause) RequiredAbilities() []AbilityKind { return nil }

func (p pause) PerformAs(ctx context.Context, _ Abilities) error {
	timer := time.NewTimer(p.d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
