// Package fixture sets up actors for Go tests and tears them down when the
// test ends.
package fixture

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stickify/stickify-e2e/internal/browser"
	"github.com/stickify/stickify-e2e/internal/config"
	"github.com/stickify/stickify-e2e/internal/evidence"
	"github.com/stickify/stickify-e2e/internal/pages"
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// LaunchFunc opens a browser session
type LaunchFunc func(browser.Options) (browser.Driver, error)

// Fixture builds actors from one configuration
type Fixture struct {
	Config config.Config
	Launch LaunchFunc
}

// New loads the configuration and fails t when it is invalid
func New(t testing.TB) *Fixture {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("invalid configuration: %v", err)
	}
	return &Fixture{Config: cfg, Launch: launchRod}
}

func launchRod(opts browser.Options) (browser.Driver, error) {
	return browser.Launch(opts)
}

// Actor returns an actor who can browse the web plus any extra abilities.
// The test is skipped when no browser can be started. When the test ends a
// screenshot named after it is saved and the actor exits.
func (f *Fixture) Actor(t testing.TB, name string, abilities ...sp.Ability) *sp.Actor {
	t.Helper()

	driver, err := f.Launch(f.Config.BrowserOptions())
	if err != nil {
		t.Skipf("no browser available: %v", err)
	}

	actor := sp.Named(name,
		sp.WithLogger(Logger(t)),
		sp.WithWaitTimeout(f.Config.WaitTimeout),
	)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		path, err := evidence.SaveScreenshot(ctx, driver, f.Config.ScreenshotDir, t.Name(), !t.Failed())
		if err != nil {
			t.Logf("screenshot: %v", err)
		} else {
			t.Logf("screenshot saved to %s", path)
		}
		if err := actor.Exit(); err != nil {
			t.Logf("teardown: %v", err)
		}
	})

	granted := append([]sp.Ability{sp.BrowseTheWebWith(driver)}, abilities...)
	if err := actor.WhoCan(granted...); err != nil {
		t.Fatalf("granting abilities to %s: %v", name, err)
	}
	return actor
}

// APIActor returns an actor who can only call the back end
func (f *Fixture) APIActor(t testing.TB, name string, abilities ...sp.Ability) *sp.Actor {
	t.Helper()

	actor := sp.Named(name, sp.WithLogger(Logger(t)), sp.WithWaitTimeout(f.Config.WaitTimeout))
	t.Cleanup(func() {
		if err := actor.Exit(); err != nil {
			t.Logf("teardown: %v", err)
		}
	})

	granted := append([]sp.Ability{sp.CallAnAPIAt(f.Config.APIURL)}, abilities...)
	if err := actor.WhoCan(granted...); err != nil {
		t.Fatalf("granting abilities to %s: %v", name, err)
	}
	return actor
}

// URL resolves a front-end route against the configured base URL
func (f *Fixture) URL(path string) string {
	return pages.URL(f.Config.BaseURL, path)
}

// Logger sends slog records to the test log
func Logger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
