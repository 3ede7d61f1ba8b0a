package screenplay

import (
	"context"
	"errors"
	"fmt"

	"github.com/stickify/stickify-e2e/internal/browser"
)

var browsing = []AbilityKind{BrowseTheWeb}

// interact resolves target and applies op to its first match, classifying
// driver failures on a found element as not interactable. The driver gets
// the wait timeout to finish; an element that stays covered or disabled
// past it is not interactable.
func interact(ctx context.Context, actor Abilities, target Target, op string, do func(context.Context, browser.Element) error) error {
	driver, err := DriverOf(actor)
	if err != nil {
		return err
	}
	el, err := target.ResolveOne(ctx, driver)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, waitTimeoutFrom(ctx))
	defer cancel()
	if err := do(opCtx, el); err != nil {
		if ctx.Err() != nil {
			return err
		}
		if opCtx.Err() != nil {
			err = opCtx.Err()
		}
		return &ElementNotInteractableError{Target: target.String(), Op: op, Err: err}
	}
	return nil
}

func isNotFound(err error) bool {
	var nf *ElementNotFoundError
	return errors.As(err, &nf)
}

// isMissing reports a target that matched nothing, as opposed to one that
// matched more elements than it allows
func isMissing(err error) bool {
	var nf *ElementNotFoundError
	return errors.As(err, &nf) && nf.Found == 0
}

type open struct {
	url string
}

// Open navigates the browser to url
func Open(url string) Action {
	return open{url: url}
}

func (o open) Description() string              { return "Open the browser on " + o.url }
func (o open) RequiredAbilities() []AbilityKind { return browsing }

func (o open) PerformAs(ctx context.Context, actor Abilities) error {
	driver, err := DriverOf(actor)
	if err != nil {
		return err
	}
	return driver.Navigate(ctx, o.url)
}

type click struct {
	target Target
}

// Click clicks the first match of target
func Click(target Target) Action {
	return click{target: target}
}

func (c click) Description() string              { return fmt.Sprintf("Click on %s", c.target) }
func (c click) RequiredAbilities() []AbilityKind { return browsing }

func (c click) PerformAs(ctx context.Context, actor Abilities) error {
	return interact(ctx, actor, c.target, "click", func(ctx context.Context, el browser.Element) error {
		return el.Click(ctx)
	})
}

// EnterAction types text into a target
type EnterAction struct {
	text   string
	target Target
	clear  bool
	secret bool
}

// Enter starts an action typing text; finish it with Into
func Enter(text string) EnterAction {
	return EnterAction{text: text}
}

// EnterSecret is Enter that keeps text out of descriptions and logs
func EnterSecret(text string) EnterAction {
	return EnterAction{text: text, secret: true}
}

// Into sets the field to type into
func (e EnterAction) Into(target Target) EnterAction {
	e.target = target
	return e
}

// ReplacingValue clears the field before typing
func (e EnterAction) ReplacingValue() EnterAction {
	e.clear = true
	return e
}

func (e EnterAction) Description() string {
	text := fmt.Sprintf("%q", e.text)
	if e.secret {
		text = "[CENSORED]"
	}
	return fmt.Sprintf("Enter %s into %s", text, e.target)
}

func (e EnterAction) RequiredAbilities() []AbilityKind { return browsing }

func (e EnterAction) PerformAs(ctx context.Context, actor Abilities) error {
	if e.target.selector == "" {
		return fmt.Errorf("%s: no target field given", e.Description())
	}
	return interact(ctx, actor, e.target, "type into", func(ctx context.Context, el browser.Element) error {
		if e.clear {
			if err := el.Clear(ctx); err != nil {
				return err
			}
		}
		return el.Type(ctx, e.text)
	})
}

type clearField struct {
	target Target
}

// Clear empties an input field
func Clear(target Target) Action {
	return clearField{target: target}
}

func (c clearField) Description() string              { return fmt.Sprintf("Clear %s", c.target) }
func (c clearField) RequiredAbilities() []AbilityKind { return browsing }

func (c clearField) PerformAs(ctx context.Context, actor Abilities) error {
	return interact(ctx, actor, c.target, "clear", func(ctx context.Context, el browser.Element) error {
		return el.Clear(ctx)
	})
}

type hover struct {
	target Target
}

// HoverOver moves the mouse over target
func HoverOver(target Target) Action {
	return hover{target: target}
}

func (h hover) Description() string              { return fmt.Sprintf("Hover over %s", h.target) }
func (h hover) RequiredAbilities() []AbilityKind { return browsing }

func (h hover) PerformAs(ctx context.Context, actor Abilities) error {
	return interact(ctx, actor, h.target, "hover over", func(ctx context.Context, el browser.Element) error {
		return el.Hover(ctx)
	})
}

type scroll struct {
	target Target
}

// ScrollTo scrolls the page until target is in view
func ScrollTo(target Target) Action {
	return scroll{target: target}
}

func (s scroll) Description() string              { return fmt.Sprintf("Scroll to %s", s.target) }
func (s scroll) RequiredAbilities() []AbilityKind { return browsing }

func (s scroll) PerformAs(ctx context.Context, actor Abilities) error {
	return interact(ctx, actor, s.target, "scroll to", func(ctx context.Context, el browser.Element) error {
		return el.ScrollIntoView(ctx)
	})
}

// UploadAction selects files on a file input
type UploadAction struct {
	paths  []string
	target Target
}

// Upload starts an action selecting files; finish it with Into
func Upload(paths ...string) UploadAction {
	return UploadAction{paths: paths}
}

func (u UploadAction) Into(target Target) UploadAction {
	u.target = target
	return u
}

func (u UploadAction) Description() string {
	return fmt.Sprintf("Upload %v into %s", u.paths, u.target)
}

func (u UploadAction) RequiredAbilities() []AbilityKind { return browsing }

func (u UploadAction) PerformAs(ctx context.Context, actor Abilities) error {
	return interact(ctx, actor, u.target, "upload into", func(ctx context.Context, el browser.Element) error {
		return el.SetFiles(ctx, u.paths...)
	})
}

type script struct {
	js   string
	args []any
}

// RunScript evaluates a JS function expression on the page
func RunScript(js string, args ...any) Action {
	return script{js: js, args: args}
}

func (s script) Description() string              { return "Run a script on the page" }
func (s script) RequiredAbilities() []AbilityKind { return browsing }

func (s script) PerformAs(ctx context.Context, actor Abilities) error {
	driver, err := DriverOf(actor)
	if err != nil {
		return err
	}
	_, err = driver.RunScript(ctx, s.js, s.args...)
	return err
}
