package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickify/stickify-e2e/internal/browser/browsertest"
	"github.com/stickify/stickify-e2e/internal/pages"
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

func TestLoad(t *testing.T) {
	sc, err := Load("testdata/invalid_login.yaml")
	require.NoError(t, err)

	assert.Equal(t, "invalid login", sc.Name)
	assert.Equal(t, "Stranger", sc.Actor)
	require.Len(t, sc.Steps, 7)
	assert.Equal(t, "/log-in", sc.Steps[0].Open)
	assert.True(t, sc.Steps[2].Enter.Secret)
	assert.Equal(t, 2*time.Second, sc.Steps[4].Wait.Within)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown key",
			yaml: "name: x\nsteps:\n  - tap: login.submit\n",
			want: "tap",
		},
		{
			name: "unknown target",
			yaml: "name: x\nsteps:\n  - click: login.nope\n",
			want: "step 1: unknown target",
		},
		{
			name: "two instructions in one step",
			yaml: "name: x\nsteps:\n  - click: login.submit\n    open: /home\n",
			want: "exactly one",
		},
		{
			name: "empty step",
			yaml: "name: x\nsteps:\n  - {}\n",
			want: "empty step",
		},
		{
			name: "no steps",
			yaml: "name: x\n",
			want: "no steps",
		},
		{
			name: "no name",
			yaml: "steps:\n  - open: /home\n",
			want: "no name",
		},
		{
			name: "unknown ability",
			yaml: "name: x\nabilities: [fly]\nsteps:\n  - open: /home\n",
			want: "fly",
		},
		{
			name: "resource ability",
			yaml: "name: x\nabilities: [browse the web]\nsteps:\n  - open: /home\n",
			want: "cannot be granted by a scenario",
		},
		{
			name: "check without expectation",
			yaml: "name: x\nsteps:\n  - see: {url: true}\n",
			want: "exactly one of contains",
		},
		{
			name: "check with two questions",
			yaml: "name: x\nsteps:\n  - see: {url: true, title: true, contains: a}\n",
			want: "2 questions",
		},
		{
			name: "bad wait",
			yaml: "name: x\nsteps:\n  - wait: {for: alert, to: explode}\n",
			want: "explode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshal_RoundTrips(t *testing.T) {
	sc, err := Load("testdata/invalid_login.yaml")
	require.NoError(t, err)

	data, err := sc.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, sc, again)
}

func TestCompile_Descriptions(t *testing.T) {
	sc, err := Load("testdata/invalid_login.yaml")
	require.NoError(t, err)

	steps, err := Compile(sc, Env{BaseURL: "http://localhost:4200"})
	require.NoError(t, err)
	require.Len(t, steps, len(sc.Steps))

	assert.Equal(t, "Open the browser on http://localhost:4200/log-in", steps[0].Description())
	assert.NotContains(t, steps[2].Description(), "bad-pass")
	assert.Equal(t, `See if the browser URL to contain the text "log-in"`, steps[6].Description())
}

func TestRun_InvalidLogin(t *testing.T) {
	login := browsertest.NewElement("Iniciar Sesión")
	driver := browsertest.New().SetPage("http://localhost:4200/log-in", "Stickify").
		Add(pages.EmailField.Selector(), browsertest.NewElement("")).
		Add(pages.PasswordField.Selector(), browsertest.NewElement("")).
		Add(pages.LoginButton.Selector(), login)
	login.OnClick = func() {
		driver.AddAfter(pages.FlashMessage.Selector(), 30*time.Millisecond, browsertest.NewElement("Invalid credentials"))
	}

	actor := sp.Named("Stranger")
	require.NoError(t, actor.WhoCan(sp.BrowseTheWebWith(driver)))
	defer actor.Exit()

	sc, err := Load("testdata/invalid_login.yaml")
	require.NoError(t, err)
	require.NoError(t, Run(context.Background(), actor, sc, Env{BaseURL: "http://localhost:4200"}))
	assert.Equal(t, 1, login.Clicks())
}

func TestRun_GrantsMarkers(t *testing.T) {
	sc, err := Parse([]byte(`
name: role check
abilities: [Upload Songs, manage playlists]
steps:
  - see: {role: true, equals: Premium}
`))
	require.NoError(t, err)

	actor := sp.Named("Pol")
	require.NoError(t, Run(context.Background(), actor, sc, Env{}))
	assert.True(t, actor.HasAbilityTo(sp.UploadSongs))
	assert.True(t, actor.HasAbilityTo(sp.ManagePlaylists))
}

func TestRun_FailureNamesTheStep(t *testing.T) {
	driver := browsertest.New().Add(pages.PlaylistModal.Selector(), browsertest.NewElement("").Hidden())
	actor := sp.Named("Pol")
	require.NoError(t, actor.WhoCan(sp.BrowseTheWebWith(driver)))
	defer actor.Exit()

	sc, err := Parse([]byte(`
name: modal
steps:
  - see: {count: playlists.user_card, exactly: 0}
  - see: {visible: playlists.modal, is: true}
`))
	require.NoError(t, err)

	err = Run(context.Background(), actor, sc, Env{})
	var failed *sp.ActionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 1, failed.Index)

	var mismatch *sp.AssertionFailedError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, false, mismatch.Actual)
}
