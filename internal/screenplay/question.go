package screenplay

import (
	"context"
	"fmt"
)

// Question probes the state of the system without changing it
type Question[T any] interface {
	Step
	AnsweredBy(ctx context.Context, actor Abilities) (T, error)
}

// Resolution decides whether an answer is acceptable
type Resolution[T any] interface {
	// Description completes "expected <question> ...", e.g. `to equal "Saved"`
	Description() string
	Expected() any
	Resolve(answer T) bool
}

type see[T any] struct {
	question   Question[T]
	resolution Resolution[T]
}

// See couples one question with one resolution as a verification step.
// Several checks are several See steps, so each failure names its question.
func See[T any](q Question[T], r Resolution[T]) Step {
	return see[T]{question: q, resolution: r}
}

func (s see[T]) Description() string {
	return fmt.Sprintf("See if %s %s", s.question.Description(), s.resolution.Description())
}

func (s see[T]) RequiredAbilities() []AbilityKind {
	return s.question.RequiredAbilities()
}

func (s see[T]) verify(ctx context.Context, actor Abilities) error {
	answer, err := s.question.AnsweredBy(ctx, actor)
	if err != nil {
		return err
	}
	if !s.resolution.Resolve(answer) {
		return &AssertionFailedError{
			Question:   s.question.Description(),
			Resolution: s.resolution.Description(),
			Expected:   s.resolution.Expected(),
			Actual:     answer,
		}
	}
	return nil
}

// QuestionFunc adapts a function into a Question
type QuestionFunc[T any] struct {
	Desc     string
	Requires []AbilityKind
	Answer   func(ctx context.Context, actor Abilities) (T, error)
}

func (q QuestionFunc[T]) Description() string              { return q.Desc }
func (q QuestionFunc[T]) RequiredAbilities() []AbilityKind { return q.Requires }

func (q QuestionFunc[T]) AnsweredBy(ctx context.Context, actor Abilities) (T, error) {
	return q.Answer(ctx, actor)
}
