// Package pages holds the Stickify page objects: targets for each screen,
// the tasks built from them and the domain questions the suites check.
package pages

import (
	"strings"

	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Routes of the Stickify front end
const (
	WelcomePath   = "/"
	LoginPath     = "/log-in"
	SignUpPath    = "/sign-in"
	HomePath      = "/home"
	UploadPath    = "/upload"
	PlaylistsPath = "/playlist"
	ProfilePath   = "/profile"
	FollowsPath   = "/authors"
)

// URL joins a front-end base URL and a route
func URL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// SweetAlert popups are shared by every page
var (
	SweetAlert         = sp.NewTarget("alert popup", ".swal2-popup")
	SweetAlertTitle    = sp.NewTarget("alert title", ".swal2-title")
	SweetAlertOKButton = sp.NewTarget("alert OK button", ".swal2-confirm")
	LoaderAlert        = sp.NewTarget("loading alert", ".swal2-loader")
	FlashMessage       = sp.NewTarget("alert message", ".swal2-html-container")
)

// DismissAlert waits for the sweet alert and confirms it
func DismissAlert() sp.Action {
	return sp.Task("dismiss the alert",
		sp.WaitFor(SweetAlertOKButton).ToAppear(),
		sp.Click(SweetAlertOKButton),
		sp.WaitFor(SweetAlert).ToDisappear(),
	)
}

// TitleIs checks the exact text of a page title. Surrounding blanks in
// expected are ignored.
func TitleIs(title sp.Target, expected string) sp.Step {
	return sp.See(sp.TextOf(title), trimmedEqual(expected))
}

// TitleContains checks that a page title contains text
func TitleContains(title sp.Target, text string) sp.Step {
	return sp.See(sp.TextOf(title), sp.ContainsTheText(strings.TrimSpace(text)))
}

// IsShown checks that target is present and visible
func IsShown(target sp.Target) sp.Step {
	return sp.See(sp.IsVisible(target), sp.IsTrue())
}

// URLIs checks the browser is exactly at url
func URLIs(url string) sp.Step {
	return sp.See(sp.BrowserURL(), sp.IsEqualTo(url))
}

// OnPage checks the browser URL contains path
func OnPage(path string) sp.Step {
	return sp.See(sp.BrowserURL(), sp.ContainsTheText(path))
}

func trimmedEqual(expected string) sp.Resolution[string] {
	return trimmed{want: strings.TrimSpace(expected)}
}

// trimmed compares against the text the browser renders, which drops
// leading and trailing whitespace.
type trimmed struct {
	want string
}

func (t trimmed) Description() string        { return sp.IsEqualTo(t.want).Description() }
func (t trimmed) Expected() any              { return t.want }
func (t trimmed) Resolve(answer string) bool { return strings.TrimSpace(answer) == t.want }
