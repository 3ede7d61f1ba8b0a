package scenario

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stickify/stickify-e2e/internal/pages"
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Env is what scenarios may leave implicit
type Env struct {
	BaseURL string // front end, e.g. http://localhost:4200
}

// Compile turns the scenario into a task list
func Compile(sc *Scenario, env Env) ([]sp.Step, error) {
	steps := make([]sp.Step, 0, len(sc.Steps))
	for i, s := range sc.Steps {
		step, err := compileStep(s, env)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Kinds returns the marker abilities the scenario grants its actor
func (s *Scenario) Kinds() ([]sp.AbilityKind, error) {
	kinds := make([]sp.AbilityKind, 0, len(s.Abilities))
	for _, name := range s.Abilities {
		kind, err := parseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// Run grants the scenario's marker abilities to actor and attempts its
// steps. The actor must already be able to browse the web.
func Run(ctx context.Context, actor *sp.Actor, sc *Scenario, env Env) error {
	steps, err := Compile(sc, env)
	if err != nil {
		return err
	}
	kinds, err := sc.Kinds()
	if err != nil {
		return err
	}
	for _, kind := range kinds {
		if err := actor.WhoCan(sp.Marker(kind)); err != nil {
			return err
		}
	}
	return actor.AttemptsTo(ctx, steps...)
}

func parseKind(name string) (sp.AbilityKind, error) {
	kind, err := sp.ParseAbilityKind(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return "", err
	}
	switch kind {
	case sp.BrowseTheWeb, sp.InteractWithAPI:
		return "", fmt.Errorf("ability %q holds a resource and cannot be granted by a scenario", name)
	}
	return kind, nil
}

func compileStep(s Step, env Env) (sp.Step, error) {
	var (
		out sp.Step
		n   int
		err error
	)
	set := func(step sp.Step, e error) {
		n++
		out, err = step, e
	}

	if s.Open != "" {
		set(sp.Open(resolveURL(env.BaseURL, s.Open)), nil)
	}
	if s.Click != "" {
		set(withTarget(s.Click, sp.Click))
	}
	if s.Clear != "" {
		set(withTarget(s.Clear, sp.Clear))
	}
	if s.Hover != "" {
		set(withTarget(s.Hover, sp.HoverOver))
	}
	if s.ScrollTo != "" {
		set(withTarget(s.ScrollTo, sp.ScrollTo))
	}
	if s.Enter != nil {
		set(compileEnter(s.Enter))
	}
	if s.Upload != nil {
		set(compileUpload(s.Upload))
	}
	if s.Wait != nil {
		set(compileWait(s.Wait))
	}
	if s.See != nil {
		set(compileCheck(s.See))
	}
	if s.Pause > 0 {
		set(sp.Pause(s.Pause), nil)
	}
	if s.Login != nil {
		set(pages.LogIn(env.BaseURL, s.Login.Email, s.Login.Password), nil)
	}
	if s.UploadSong != nil {
		set(pages.UploadSong(env.BaseURL, *s.UploadSong), nil)
	}
	if s.CreatePlaylist != "" {
		set(pages.CreatePlaylist(s.CreatePlaylist), nil)
	}
	if s.DismissAlert {
		set(pages.DismissAlert(), nil)
	}

	switch n {
	case 0:
		return nil, errors.New("empty step")
	case 1:
		return out, err
	default:
		return nil, fmt.Errorf("step has %d instructions, want exactly one", n)
	}
}

// resolveURL treats anything without a scheme as a route of the front end
func resolveURL(base, ref string) string {
	if strings.Contains(ref, "://") || base == "" {
		return ref
	}
	return pages.URL(base, ref)
}

func withTarget(name string, build func(sp.Target) sp.Action) (sp.Step, error) {
	target, err := pages.Lookup(name)
	if err != nil {
		return nil, err
	}
	return build(target), nil
}

func compileEnter(e *Enter) (sp.Step, error) {
	target, err := pages.Lookup(e.Into)
	if err != nil {
		return nil, err
	}
	action := sp.Enter(e.Text)
	if e.Secret {
		action = sp.EnterSecret(e.Text)
	}
	action = action.Into(target)
	if e.Replace {
		action = action.ReplacingValue()
	}
	return action, nil
}

func compileUpload(u *Upload) (sp.Step, error) {
	if len(u.Files) == 0 {
		return nil, errors.New("upload has no files")
	}
	target, err := pages.Lookup(u.Into)
	if err != nil {
		return nil, err
	}
	return sp.Upload(u.Files...).Into(target), nil
}

func compileWait(w *Wait) (sp.Step, error) {
	target, err := pages.Lookup(w.For)
	if err != nil {
		return nil, err
	}
	wait := sp.WaitFor(target)
	switch {
	case w.Text != "":
		wait = wait.ToContainText(w.Text)
	case w.To == "" || w.To == "appear":
		wait = wait.ToAppear()
	case w.To == "disappear":
		wait = wait.ToDisappear()
	default:
		return nil, fmt.Errorf("wait to %q: want appear or disappear", w.To)
	}
	if w.Within > 0 {
		wait = wait.Within(w.Within)
	}
	return wait, nil
}

func compileCheck(c *Check) (sp.Step, error) {
	questions := 0
	for _, set := range []bool{c.Text != "", c.Visible != "", c.Count != "", c.URL, c.Title, c.Role} {
		if set {
			questions++
		}
	}
	if questions != 1 {
		return nil, fmt.Errorf("see asks %d questions, want exactly one", questions)
	}

	switch {
	case c.Visible != "":
		target, err := pages.Lookup(c.Visible)
		if err != nil {
			return nil, err
		}
		if c.Is == nil {
			return nil, errors.New("visible needs is: true or is: false")
		}
		return check(c, sp.IsVisible(target), boolResolution(*c.Is))

	case c.Count != "":
		target, err := pages.Lookup(c.Count)
		if err != nil {
			return nil, err
		}
		r, err := countResolution(c)
		if err != nil {
			return nil, err
		}
		return check(c, sp.NumberOf(target), r)
	}

	var q sp.Question[string]
	switch {
	case c.Text != "":
		target, err := pages.Lookup(c.Text)
		if err != nil {
			return nil, err
		}
		q = sp.TextOf(target)
	case c.URL:
		q = sp.BrowserURL()
	case c.Title:
		q = sp.PageTitle()
	default:
		q = sp.UserRole()
	}
	r, err := textResolution(c)
	if err != nil {
		return nil, err
	}
	return check(c, q, r)
}

func check[T any](c *Check, q sp.Question[T], r sp.Resolution[T]) (sp.Step, error) {
	if c.Eventually {
		return sp.Eventually(q, r), nil
	}
	return sp.See(q, r), nil
}

func boolResolution(want bool) sp.Resolution[bool] {
	if want {
		return sp.IsTrue()
	}
	return sp.IsFalse()
}

func textResolution(c *Check) (sp.Resolution[string], error) {
	var (
		r sp.Resolution[string]
		n int
	)
	if c.Contains != nil {
		r, n = sp.ContainsTheText(strings.TrimSpace(*c.Contains)), n+1
	}
	if c.ContainsExact != nil {
		r, n = sp.ContainsTheExactText(strings.TrimSpace(*c.ContainsExact)), n+1
	}
	if c.NotContains != nil {
		r, n = sp.Not(sp.ContainsTheText(strings.TrimSpace(*c.NotContains))), n+1
	}
	if c.Equals != nil {
		r, n = sp.IsEqualTo(strings.TrimSpace(*c.Equals)), n+1
	}
	if n != 1 {
		return nil, fmt.Errorf("text check has %d expectations, want exactly one of contains, contains_exact, not_contains, equals", n)
	}
	return r, nil
}

func countResolution(c *Check) (sp.Resolution[int], error) {
	switch {
	case c.Exactly != nil && c.AtLeast == nil:
		return sp.IsEqualTo(*c.Exactly), nil
	case c.AtLeast != nil && c.Exactly == nil:
		// IsGreaterThan is strict
		return sp.IsGreaterThan(*c.AtLeast - 1), nil
	case c.Equals != nil:
		n, err := strconv.Atoi(*c.Equals)
		if err != nil {
			return nil, fmt.Errorf("count equals %q: %w", *c.Equals, err)
		}
		return sp.IsEqualTo(n), nil
	}
	return nil, errors.New("count needs exactly one of exactly, at_least")
}
