package screenplay

import (
	"context"
	"fmt"

	"github.com/stickify/stickify-e2e/internal/browser"
)

// Match says how many elements a target expects to resolve to
type Match int

const (
	// First takes the first of one or more matches
	First Match = iota
	// Single requires exactly one match
	Single
	// All takes every match, including none
	All
)

func (m Match) String() string {
	switch m {
	case Single:
		return "single"
	case All:
		return "all"
	default:
		return "first"
	}
}

// Target is a named CSS locator. It never holds a live element: every
// Resolve queries the current page.
type Target struct {
	name     string
	selector string
	match    Match
}

// NewTarget describes the element called name located by a CSS selector
func NewTarget(name, selector string) Target {
	return Target{name: name, selector: selector, match: First}
}

// Single returns a copy of t that must match exactly one element
func (t Target) Single() Target {
	t.match = Single
	return t
}

// All returns a copy of t that resolves to every match
func (t Target) All() Target {
	t.match = All
	return t
}

func (t Target) Name() string     { return t.name }
func (t Target) Selector() string { return t.selector }
func (t Target) Match() Match     { return t.match }
func (t Target) String() string   { return "the " + t.name }

// Resolve locates the target on the driver's current page
func (t Target) Resolve(ctx context.Context, driver browser.Driver) ([]browser.Element, error) {
	found, err := driver.Find(ctx, t.selector)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", t, err)
	}
	switch t.match {
	case All:
		return found, nil
	case Single:
		if len(found) != 1 {
			return nil, &ElementNotFoundError{Target: t.String(), Found: len(found)}
		}
		return found, nil
	default:
		if len(found) == 0 {
			return nil, &ElementNotFoundError{Target: t.String()}
		}
		return found[:1], nil
	}
}

// ResolveOne locates the element an interaction acts on. All targets act on
// their first match.
func (t Target) ResolveOne(ctx context.Context, driver browser.Driver) (browser.Element, error) {
	found, err := t.Resolve(ctx, driver)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, &ElementNotFoundError{Target: t.String()}
	}
	return found[0], nil
}
