// Package config reads suite settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/stickify/stickify-e2e/internal/browser"
)

// Config holds everything a run needs to reach the app and drive a browser
type Config struct {
	BaseURL string // front end
	APIURL  string // back end, always ending in /api

	Headless   bool
	BrowserBin string
	ProfileDir string
	Width      int
	Height     int

	WaitTimeout   time.Duration
	ScreenshotDir string

	User     string
	Password string

	Provider     string
	AnthropicKey string
	OpenAIKey    string
}

// Default returns the settings used for a local dev stack
func Default() Config {
	return Config{
		BaseURL:       "http://localhost:4200",
		APIURL:        "http://localhost:3000/api",
		Headless:      true,
		Width:         1920,
		Height:        1080,
		WaitTimeout:   20 * time.Second,
		ScreenshotDir: "screenshots",
		User:          "test",
		Password:      "1234",
		Provider:      "claude",
	}
}

// Load reads .env if present, then the environment
func Load() (Config, error) {
	// Silently ignore a missing .env
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to Default for unset keys
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var errs []error

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("%s: want a positive integer, got %q", key, v))
			return
		}
		*dst = n
	}

	str("STICKIFY_BASE_URL", &cfg.BaseURL)
	str("STICKIFY_API_URL", &cfg.APIURL)
	str("STICKIFY_BROWSER_BIN", &cfg.BrowserBin)
	str("STICKIFY_PROFILE_DIR", &cfg.ProfileDir)
	str("STICKIFY_SCREENSHOT_DIR", &cfg.ScreenshotDir)
	str("STICKIFY_E2E_USER", &cfg.User)
	str("STICKIFY_E2E_PASS", &cfg.Password)
	str("STICKIFY_DEFAULT_PROVIDER", &cfg.Provider)
	integer("STICKIFY_WIDTH", &cfg.Width)
	integer("STICKIFY_HEIGHT", &cfg.Height)

	if v := strings.TrimSpace(getenv("STICKIFY_HEADLESS")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("STICKIFY_HEADLESS: want true or false, got %q", v))
		} else {
			cfg.Headless = b
		}
	}
	if v := strings.TrimSpace(getenv("STICKIFY_WAIT_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("STICKIFY_WAIT_TIMEOUT: want a positive duration like 20s, got %q", v))
		} else {
			cfg.WaitTimeout = d
		}
	}

	cfg.AnthropicKey = firstSet(getenv, "STICKIFY_ANTHROPIC_KEY", "ANTHROPIC_API_KEY")
	cfg.OpenAIKey = firstSet(getenv, "STICKIFY_OPENAI_KEY", "OPENAI_API_KEY")

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.APIURL = apiBase(cfg.APIURL)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// APIKey returns the key for the named AI provider
func (c Config) APIKey(provider string) string {
	switch provider {
	case "claude", "anthropic":
		return c.AnthropicKey
	case "openai", "gpt":
		return c.OpenAIKey
	}
	return ""
}

// BrowserOptions maps the browser settings onto a launch request
func (c Config) BrowserOptions() browser.Options {
	return browser.Options{
		Width:      c.Width,
		Height:     c.Height,
		Headless:   c.Headless,
		Bin:        c.BrowserBin,
		ProfileDir: c.ProfileDir,
	}
}

// apiBase trims trailing slashes and makes sure the URL ends in /api
func apiBase(u string) string {
	u = strings.TrimRight(u, "/")
	if !strings.HasSuffix(u, "/api") {
		u += "/api"
	}
	return u
}

func firstSet(getenv func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
