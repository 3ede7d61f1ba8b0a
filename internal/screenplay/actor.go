package screenplay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// StepEvent is reported to observers after each top-level step
type StepEvent struct {
	Actor       string
	Index       int
	Description string
	Duration    time.Duration
	Err         error
}

// Option configures an Actor
type Option func(*Actor)

// WithLogger sets the logger the actor reports steps and cleanup failures to
func WithLogger(logger *slog.Logger) Option {
	return func(a *Actor) {
		a.logger = logger
	}
}

// WithObserver registers a callback run after every top-level step.
// Observers cannot change the outcome of the step.
func WithObserver(observe func(StepEvent)) Option {
	return func(a *Actor) {
		a.observers = append(a.observers, observe)
	}
}

// WithWaitTimeout sets the default deadline of wait actions that don't
// specify their own
func WithWaitTimeout(d time.Duration) Option {
	return func(a *Actor) {
		a.waitTimeout = d
	}
}

// Actor performs task lists using the abilities it has been granted. An
// actor is driven by one goroutine at a time; separate actors are independent.
type Actor struct {
	name        string
	logger      *slog.Logger
	observers   []func(StepEvent)
	waitTimeout time.Duration

	mu        sync.Mutex
	abilities map[AbilityKind]Ability
	current   string
}

// Named creates an actor with no abilities
func Named(name string, opts ...Option) *Actor {
	a := &Actor{
		name:        name,
		logger:      slog.Default(),
		waitTimeout: DefaultWaitTimeout,
		abilities:   make(map[AbilityKind]Ability),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(slog.String("actor", name))
	return a
}

func (a *Actor) Name() string { return a.name }

func (a *Actor) String() string { return a.name }

// WhoCan grants abilities. An ability of a kind already held replaces the
// old instance after the old one is forgotten; granting the held instance
// again changes nothing. Unknown kinds are rejected and nothing after them
// is granted.
func (a *Actor) WhoCan(abilities ...Ability) error {
	for _, ab := range abilities {
		if ab == nil {
			return fmt.Errorf("%s cannot be granted a nil ability", a.name)
		}
		kind := ab.Kind()
		if !kind.Known() {
			return fmt.Errorf("%s cannot be granted unknown ability %q", a.name, kind)
		}

		a.mu.Lock()
		prior, held := a.abilities[kind]
		a.mu.Unlock()

		if held && sameAbility(prior, ab) {
			continue
		}
		if held {
			if err := prior.Forget(); err != nil {
				a.logger.Warn("failed to forget replaced ability",
					slog.String("ability", string(kind)),
					slog.Any("error", err))
			}
		}

		a.mu.Lock()
		a.abilities[kind] = ab
		a.mu.Unlock()
		a.logger.Debug("granted ability", slog.String("ability", string(kind)))
	}
	return nil
}

// sameAbility reports whether a and b are the same instance. Abilities of
// non-comparable types are never the same.
func sameAbility(a, b Ability) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.TypeOf(a).Comparable() {
		return false
	}
	return a == b
}

// HasAbilityTo reports whether the actor currently holds an ability of kind
func (a *Actor) HasAbilityTo(kind AbilityKind) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.abilities[kind]
	return ok
}

// AbilityTo returns the held ability of kind
func (a *Actor) AbilityTo(kind AbilityKind) (Ability, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ab, ok := a.abilities[kind]
	if !ok {
		return nil, &MissingAbilityError{Actor: a.name, Kind: kind}
	}
	return ab, nil
}

// Forget removes and cleans up the ability of kind. Forgetting a kind the
// actor does not hold does nothing.
func (a *Actor) Forget(kind AbilityKind) error {
	a.mu.Lock()
	ab, ok := a.abilities[kind]
	delete(a.abilities, kind)
	a.mu.Unlock()

	if !ok {
		return nil
	}
	if err := ab.Forget(); err != nil {
		return fmt.Errorf("forget %s: %w", kind, err)
	}
	return nil
}

// Exit forgets every ability. Each cleanup runs even when an earlier one
// fails; failures are logged and returned joined. Calling Exit twice is safe.
func (a *Actor) Exit() error {
	var errs []error
	for _, kind := range Kinds() {
		if err := a.Forget(kind); err != nil {
			a.logger.Warn("ability cleanup failed",
				slog.String("ability", string(kind)),
				slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CurrentStep describes the step being attempted, or "" between task lists
func (a *Actor) CurrentStep() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *Actor) setCurrent(desc string) {
	a.mu.Lock()
	a.current = desc
	a.mu.Unlock()
}

// AttemptsTo runs steps in order and stops at the first failure. The
// returned error is an *ActionFailedError wrapping the cause; effects of
// steps that already ran are not undone.
func (a *Actor) AttemptsTo(ctx context.Context, steps ...Step) error {
	defer a.setCurrent("")

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return &ActionFailedError{Actor: a.name, Index: i, Step: step.Description(), Err: err}
		}

		desc := step.Description()
		a.setCurrent(desc)
		a.logger.Debug("attempting step", slog.Int("step", i+1), slog.String("description", desc))

		start := time.Now()
		err := runStep(withWaitTimeout(ctx, a.waitTimeout), a, step)
		a.notify(StepEvent{Actor: a.name, Index: i, Description: desc, Duration: time.Since(start), Err: err})

		if err != nil {
			a.logger.Info("step failed",
				slog.Int("step", i+1),
				slog.String("description", desc),
				slog.Any("error", err))
			return &ActionFailedError{Actor: a.name, Index: i, Step: desc, Err: err}
		}
	}
	return nil
}

// Should is AttemptsTo for task lists made of verifications only
func (a *Actor) Should(ctx context.Context, checks ...Step) error {
	return a.AttemptsTo(ctx, checks...)
}

func (a *Actor) notify(ev StepEvent) {
	for _, observe := range a.observers {
		observe(ev)
	}
}

// AsksFor answers q as actor, outside of a verification
func AsksFor[T any](ctx context.Context, actor *Actor, q Question[T]) (T, error) {
	if err := requireAbilities(actor, q); err != nil {
		var zero T
		return zero, err
	}
	return q.AnsweredBy(withWaitTimeout(ctx, actor.waitTimeout), actor)
}
