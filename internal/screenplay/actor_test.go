package screenplay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickify/stickify-e2e/internal/browser/browsertest"
)

type spyAction struct {
	desc     string
	requires []AbilityKind
	err      error
	runs     *int
}

func (s spyAction) Description() string              { return s.desc }
func (s spyAction) RequiredAbilities() []AbilityKind { return s.requires }

func (s spyAction) PerformAs(ctx context.Context, actor Abilities) error {
	if s.runs != nil {
		*s.runs++
	}
	return s.err
}

type countingAbility struct {
	kind    AbilityKind
	forgets int
	err     error
}

func (c *countingAbility) Kind() AbilityKind { return c.kind }

func (c *countingAbility) Forget() error {
	c.forgets++
	return c.err
}

func browsingActor(t *testing.T, driver *browsertest.Driver) *Actor {
	t.Helper()
	actor := Named("Tester")
	require.NoError(t, actor.WhoCan(BrowseTheWebWith(driver)))
	return actor
}

func TestAttemptsTo_ShortCircuitsAfterFailure(t *testing.T) {
	ctx := context.Background()
	actor := Named("Tester")

	var before, after int
	boom := errors.New("boom")
	err := actor.AttemptsTo(ctx,
		spyAction{desc: "first", runs: &before},
		spyAction{desc: "fails", err: boom},
		spyAction{desc: "never", runs: &after},
		spyAction{desc: "never either", runs: &after},
	)

	require.Error(t, err)
	assert.Equal(t, 1, before)
	assert.Equal(t, 0, after, "steps after the failing one must not run")

	var failed *ActionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 1, failed.Index)
	assert.Equal(t, "fails", failed.Step)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, actor.CurrentStep())
}

func TestAttemptsTo_EmptyTaskList(t *testing.T) {
	assert.NoError(t, Named("Tester").AttemptsTo(context.Background()))
}

func TestAttemptsTo_CancelledContextRunsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var runs int
	err := Named("Tester").AttemptsTo(ctx, spyAction{desc: "late", runs: &runs})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, runs)
}

func TestAttemptsTo_RejectsUnknownStepType(t *testing.T) {
	err := Named("Tester").AttemptsTo(context.Background(), UserRole())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither an action nor a verification")
}

func TestWhoCan_ReplacesPriorAbilityAfterForgettingIt(t *testing.T) {
	actor := Named("Tester")
	first := &countingAbility{kind: ManagePlaylists}
	second := &countingAbility{kind: ManagePlaylists}

	require.NoError(t, actor.WhoCan(first))
	require.NoError(t, actor.WhoCan(second))

	assert.Equal(t, 1, first.forgets)
	assert.Equal(t, 0, second.forgets)

	held, err := actor.AbilityTo(ManagePlaylists)
	require.NoError(t, err)
	assert.Same(t, second, held)
}

func TestWhoCan_RegrantingSameInstanceKeepsIt(t *testing.T) {
	driver := browsertest.New().Add("#b", browsertest.NewElement("OK"))
	actor := Named("Tester")
	browse := BrowseTheWebWith(driver)

	require.NoError(t, actor.WhoCan(browse))
	require.NoError(t, actor.WhoCan(browse))

	assert.Equal(t, 0, driver.Closed())
	assert.True(t, actor.HasAbilityTo(BrowseTheWeb))
	assert.NoError(t, actor.AttemptsTo(context.Background(), Click(NewTarget("button", "#b"))))

	marker := &countingAbility{kind: SearchMusic}
	require.NoError(t, actor.WhoCan(marker, marker))
	assert.Equal(t, 0, marker.forgets)
}

func TestWhoCan_ReplacementSurvivesFailedCleanup(t *testing.T) {
	actor := Named("Tester")
	first := &countingAbility{kind: UploadSongs, err: errors.New("stuck")}
	second := &countingAbility{kind: UploadSongs}

	require.NoError(t, actor.WhoCan(first))
	require.NoError(t, actor.WhoCan(second))

	held, err := actor.AbilityTo(UploadSongs)
	require.NoError(t, err)
	assert.Same(t, second, held)
}

func TestWhoCan_RejectsUnknownKind(t *testing.T) {
	actor := Named("Tester")
	err := actor.WhoCan(Marker(FollowUsers), Marker(AbilityKind("fly")), Marker(SearchMusic))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fly")
	assert.True(t, actor.HasAbilityTo(FollowUsers))
	assert.False(t, actor.HasAbilityTo(SearchMusic))
	assert.False(t, actor.HasAbilityTo(AbilityKind("fly")))
}

func TestHasAbilityTo_FollowsGrantAndForget(t *testing.T) {
	actor := Named("Tester")
	assert.False(t, actor.HasAbilityTo(ManagePlaylists))

	require.NoError(t, actor.WhoCan(Marker(ManagePlaylists)))
	assert.True(t, actor.HasAbilityTo(ManagePlaylists))

	require.NoError(t, actor.Forget(ManagePlaylists))
	assert.False(t, actor.HasAbilityTo(ManagePlaylists))

	assert.NoError(t, actor.Forget(ManagePlaylists), "forgetting an ungranted kind is a no-op")
	assert.NoError(t, actor.Forget(RateAndComment))
}

func TestExit_RunsEveryCleanupAndIsIdempotent(t *testing.T) {
	actor := Named("Tester")
	driver := browsertest.New()
	failing := &countingAbility{kind: ManagePlaylists, err: errors.New("cleanup failed")}
	other := &countingAbility{kind: FollowUsers}

	require.NoError(t, actor.WhoCan(BrowseTheWebWith(driver), failing, other))

	err := actor.Exit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup failed")

	assert.Equal(t, 1, failing.forgets)
	assert.Equal(t, 1, other.forgets)
	assert.Equal(t, 1, driver.Closed())
	for _, kind := range Kinds() {
		assert.False(t, actor.HasAbilityTo(kind), kind)
	}

	assert.NoError(t, actor.Exit())
	assert.Equal(t, 1, driver.Closed())
}

func TestMissingAbility_FailsBeforeAnyDriverCall(t *testing.T) {
	driver := browsertest.New().Add("button", browsertest.NewElement("Go"))
	actor := Named("Tester")

	err := actor.AttemptsTo(context.Background(), Click(NewTarget("button", "button")))

	var missing *MissingAbilityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, BrowseTheWeb, missing.Kind)
	assert.Equal(t, "Tester", missing.Actor)
	assert.Empty(t, driver.Calls())
}

func TestRequiring_GatesOnMarkerAbility(t *testing.T) {
	driver := browsertest.New().Add(".create-playlist-button", browsertest.NewElement("Crear"))
	actor := browsingActor(t, driver)
	create := Requiring(Click(NewTarget("create playlist button", ".create-playlist-button")), ManagePlaylists)

	err := actor.AttemptsTo(context.Background(), create)
	var missing *MissingAbilityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ManagePlaylists, missing.Kind)
	assert.Empty(t, driver.Calls())

	require.NoError(t, actor.WhoCan(Marker(ManagePlaylists)))
	require.NoError(t, actor.AttemptsTo(context.Background(), create))
	assert.Contains(t, driver.Calls(), "click .create-playlist-button")
}

func TestInvalidLoginScenario(t *testing.T) {
	email := browsertest.NewElement("")
	password := browsertest.NewElement("")
	login := browsertest.NewElement("Iniciar Sesión")
	driver := browsertest.New().
		Add("input[formControlName='email']", email).
		Add("input[formControlName='password']", password).
		Add("button[type='submit']", login).
		Add("body", browsertest.NewElement("Invalid credentials"))

	emailField := NewTarget("email field", "input[formControlName='email']")
	passwordField := NewTarget("password field", "input[formControlName='password']")
	loginButton := NewTarget("login button", "button[type='submit']")
	page := NewTarget("page", "body")

	actor := browsingActor(t, driver)
	err := actor.AttemptsTo(context.Background(),
		Enter("bad-user").Into(emailField),
		Enter("bad-pass").Into(passwordField),
		Click(loginButton),
		See(TextOf(page), ContainsTheText("invalid")),
	)

	require.NoError(t, err)
	assert.Equal(t, "bad-user", email.Value())
	assert.Equal(t, "bad-pass", password.Value())
	assert.Equal(t, 1, login.Clicks())
}

func TestVerificationMismatchReportsExpectedAndActual(t *testing.T) {
	driver := browsertest.New().
		Add("#save", browsertest.NewElement("Save")).
		Add(".status", browsertest.NewElement("Not Saved"))

	actor := browsingActor(t, driver)
	err := actor.AttemptsTo(context.Background(),
		Click(NewTarget("save button", "#save")),
		See(TextOf(NewTarget("status", ".status")), IsEqualTo("Saved")),
	)

	var failed *AssertionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "Saved", failed.Expected)
	assert.Equal(t, "Not Saved", failed.Actual)
	assert.Equal(t, "the text of the status", failed.Question)

	var step *ActionFailedError
	require.ErrorAs(t, err, &step)
	assert.Equal(t, 1, step.Index)
}

func TestUserRole(t *testing.T) {
	ctx := context.Background()

	standard := Named("Standard")
	role, err := AsksFor(ctx, standard, UserRole())
	require.NoError(t, err)
	assert.Equal(t, RoleStandard, role)

	premium := Named("Premium")
	require.NoError(t, premium.WhoCan(Marker(UploadSongs)))
	role, err = AsksFor(ctx, premium, UserRole())
	require.NoError(t, err)
	assert.Equal(t, RolePremium, role)

	// Other markers don't make an actor premium
	require.NoError(t, standard.WhoCan(Marker(ManagePlaylists), Marker(FollowUsers)))
	assert.NoError(t, standard.AttemptsTo(ctx, See(UserRole(), IsEqualTo(RoleStandard))))
}

func TestAsksFor_RequiresAbility(t *testing.T) {
	_, err := AsksFor(context.Background(), Named("Tester"), BrowserURL())
	var missing *MissingAbilityError
	assert.ErrorAs(t, err, &missing)
}

func TestObserverSeesEveryAttemptedStep(t *testing.T) {
	var events []StepEvent
	actor := Named("Tester", WithObserver(func(ev StepEvent) {
		events = append(events, ev)
	}))

	boom := errors.New("boom")
	_ = actor.AttemptsTo(context.Background(),
		spyAction{desc: "ok"},
		spyAction{desc: "bad", err: boom},
		spyAction{desc: "skipped"},
	)

	require.Len(t, events, 2)
	assert.Equal(t, "ok", events[0].Description)
	assert.NoError(t, events[0].Err)
	assert.Equal(t, 1, events[1].Index)
	assert.ErrorIs(t, events[1].Err, boom)
}

func TestTask_ReportsInnerStep(t *testing.T) {
	driver := browsertest.New().Add("#email", browsertest.NewElement(""))
	actor := browsingActor(t, driver)

	login := Task("log in as pol",
		Enter("pol@correo.com").Into(NewTarget("email field", "#email")),
		Click(NewTarget("login button", "#login")),
	)
	assert.Equal(t, []AbilityKind{BrowseTheWeb}, login.RequiredAbilities())

	err := actor.AttemptsTo(context.Background(), login)

	var outer *ActionFailedError
	require.ErrorAs(t, err, &outer)
	assert.Equal(t, 0, outer.Index)
	assert.Equal(t, "log in as pol", outer.Step)

	var inner *ActionFailedError
	require.ErrorAs(t, outer.Err, &inner)
	assert.Equal(t, 1, inner.Index)

	var nf *ElementNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestTask_RefusesWithoutMarkerUsedInside(t *testing.T) {
	actor := Named("Tester")
	var runs int
	task := Task("rate a song", spyAction{desc: "rate", requires: []AbilityKind{RateAndComment}, runs: &runs})

	err := actor.AttemptsTo(context.Background(), task)
	var missing *MissingAbilityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, RateAndComment, missing.Kind)
	assert.Zero(t, runs)
}
