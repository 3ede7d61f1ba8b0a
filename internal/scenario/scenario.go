// Package scenario loads browser scenarios written in YAML and compiles
// them into task lists an actor can attempt.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stickify/stickify-e2e/internal/pages"
)

// Scenario is one scripted journey through the app
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Actor       string   `yaml:"actor,omitempty"`
	Abilities   []string `yaml:"abilities,omitempty"` // marker kinds, e.g. "upload songs"
	Steps       []Step   `yaml:"steps"`
}

// Step holds exactly one instruction
type Step struct {
	Open     string        `yaml:"open,omitempty"` // route or absolute URL
	Click    string        `yaml:"click,omitempty"`
	Clear    string        `yaml:"clear,omitempty"`
	Hover    string        `yaml:"hover,omitempty"`
	ScrollTo string        `yaml:"scroll_to,omitempty"`
	Enter    *Enter        `yaml:"enter,omitempty"`
	Upload   *Upload       `yaml:"upload,omitempty"`
	Wait     *Wait         `yaml:"wait,omitempty"`
	See      *Check        `yaml:"see,omitempty"`
	Pause    time.Duration `yaml:"pause,omitempty"`

	Login          *Login      `yaml:"login,omitempty"`
	UploadSong     *pages.Song `yaml:"upload_song,omitempty"`
	CreatePlaylist string      `yaml:"create_playlist,omitempty"`
	DismissAlert   bool        `yaml:"dismiss_alert,omitempty"`
}

// Enter types text into a catalog target
type Enter struct {
	Text    string `yaml:"text"`
	Into    string `yaml:"into"`
	Secret  bool   `yaml:"secret,omitempty"`
	Replace bool   `yaml:"replace,omitempty"`
}

// Upload selects local files on a file input
type Upload struct {
	Files []string `yaml:"files"`
	Into  string   `yaml:"into"`
}

// Wait polls a target until it appears, disappears or shows some text
type Wait struct {
	For    string        `yaml:"for"`
	To     string        `yaml:"to,omitempty"` // appear (default), disappear
	Text   string        `yaml:"text,omitempty"`
	Within time.Duration `yaml:"within,omitempty"`
}

// Check asks one question and matches the answer against one expectation.
// Text, Visible, Count, URL, Title and Role pick the question.
type Check struct {
	Text    string `yaml:"text,omitempty"`
	Visible string `yaml:"visible,omitempty"`
	Count   string `yaml:"count,omitempty"`
	URL     bool   `yaml:"url,omitempty"`
	Title   bool   `yaml:"title,omitempty"`
	Role    bool   `yaml:"role,omitempty"`

	Contains      *string `yaml:"contains,omitempty"`
	ContainsExact *string `yaml:"contains_exact,omitempty"`
	NotContains   *string `yaml:"not_contains,omitempty"`
	Equals        *string `yaml:"equals,omitempty"`
	Is            *bool   `yaml:"is,omitempty"`
	AtLeast       *int    `yaml:"at_least,omitempty"`
	Exactly       *int    `yaml:"exactly,omitempty"`

	// Eventually polls until the expectation holds instead of checking once
	Eventually bool `yaml:"eventually,omitempty"`
}

// Login signs in through the login form
type Login struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Load reads and validates a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates one scenario. Unknown keys are rejected so a
// typo fails before a browser is launched.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Marshal encodes the scenario back to YAML
func (s *Scenario) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks every step names exactly one instruction and every target
// exists in the page catalog
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("scenario has no name")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	var errs []error
	for i, step := range s.Steps {
		if _, err := compileStep(step, Env{}); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	for _, name := range s.Abilities {
		if _, err := parseKind(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
