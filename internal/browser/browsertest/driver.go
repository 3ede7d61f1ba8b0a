// Package browsertest provides a scripted in-memory browser.Driver for tests.
package browsertest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"
	"time"

	"github.com/stickify/stickify-e2e/internal/browser"
)

var _ browser.Driver = (*Driver)(nil)

// Driver serves canned elements keyed by selector and records every call
type Driver struct {
	mu       sync.Mutex
	url      string
	title    string
	elements map[string][]entry
	calls    []string
	closed   int

	ScriptResult any
	ScriptErr    error
	ShotErr      error
	CloseErr     error
	FindErr      error
}

type entry struct {
	el     *Element
	appear time.Time
	vanish time.Time
}

// New returns an empty driver on about:blank
func New() *Driver {
	return &Driver{url: "about:blank", elements: make(map[string][]entry)}
}

// Add registers elements matched by selector from now on
func (d *Driver) Add(selector string, els ...*Element) *Driver {
	return d.addAt(selector, time.Time{}, els)
}

// AddAfter registers elements that only match once delay has elapsed
func (d *Driver) AddAfter(selector string, delay time.Duration, els ...*Element) *Driver {
	return d.addAt(selector, time.Now().Add(delay), els)
}

// RemoveAfter stops selector matching once delay has elapsed
func (d *Driver) RemoveAfter(selector string, delay time.Duration) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	at := time.Now().Add(delay)
	for i := range d.elements[selector] {
		d.elements[selector][i].vanish = at
	}
	return d
}

func (d *Driver) addAt(selector string, at time.Time, els []*Element) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, el := range els {
		el.driver = d
		el.selector = selector
		d.elements[selector] = append(d.elements[selector], entry{el: el, appear: at})
	}
	return d
}

// SetPage sets the URL and title reported by the driver
func (d *Driver) SetPage(url, title string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url, d.title = url, title
	return d
}

// Calls returns the recorded calls in order
func (d *Driver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// Closed reports how many times Close was called
func (d *Driver) Closed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Driver) record(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	d.record("navigate %s", url)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
	return ctx.Err()
}

func (d *Driver) Find(ctx context.Context, selector string) ([]browser.Element, error) {
	d.record("find %s", selector)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.FindErr != nil {
		return nil, d.FindErr
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	var found []browser.Element
	for _, e := range d.elements[selector] {
		if !e.appear.IsZero() && now.Before(e.appear) {
			continue
		}
		if !e.vanish.IsZero() && !now.Before(e.vanish) {
			continue
		}
		found = append(found, e.el)
	}
	return found, nil
}

func (d *Driver) CurrentURL(ctx context.Context) (string, error) {
	d.record("url")
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	d.record("title")
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, nil
}

func (d *Driver) RunScript(ctx context.Context, js string, args ...any) (any, error) {
	d.record("script %s", js)
	return d.ScriptResult, d.ScriptErr
}

// Screenshot returns a tiny valid PNG
func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	d.record("screenshot")
	if d.ShotErr != nil {
		return nil, d.ShotErr
	}
	return append([]byte(nil), blankPNG...), nil
}

func (d *Driver) Close() error {
	d.record("close")
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed++
	return d.CloseErr
}

// ErrNotInteractable is what Element returns when configured as disabled
var ErrNotInteractable = errors.New("element is not interactable")

// Element is a canned element. Zero value is a visible, enabled element
// with empty text.
type Element struct {
	mu       sync.Mutex
	driver   *Driver
	selector string

	text     string
	value    string
	files    []string
	hidden   bool
	disabled bool
	blocking bool
	clicks   int

	// OnClick runs after a successful click, e.g. to reveal a message
	OnClick func()
}

// NewElement returns a visible element showing text
func NewElement(text string) *Element {
	return &Element{text: text}
}

// Hidden marks the element invisible
func (e *Element) Hidden() *Element {
	e.hidden = true
	return e
}

// Blocking makes every interaction hang until its context ends, like a
// button stuck under an overlay
func (e *Element) Blocking() *Element {
	e.blocking = true
	return e
}

// Disabled makes every interaction fail with ErrNotInteractable
func (e *Element) Disabled() *Element {
	e.disabled = true
	return e
}

func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

// Value returns what was typed into the element
func (e *Element) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

func (e *Element) Files() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.files...)
}

func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

func (e *Element) interact(ctx context.Context, op string, args ...any) error {
	if e.driver != nil {
		e.driver.record("%s %s%s", op, e.selector, fmt.Sprint(args...))
	}
	if e.blocking {
		<-ctx.Done()
		return ctx.Err()
	}
	if e.disabled {
		return ErrNotInteractable
	}
	return nil
}

func (e *Element) Click(ctx context.Context) error {
	if err := e.interact(ctx, "click"); err != nil {
		return err
	}
	e.mu.Lock()
	e.clicks++
	hook := e.OnClick
	e.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (e *Element) Type(ctx context.Context, text string) error {
	if err := e.interact(ctx, "type", " ", text); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value += text
	return nil
}

func (e *Element) Clear(ctx context.Context) error {
	if err := e.interact(ctx, "clear"); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = ""
	return nil
}

func (e *Element) Hover(ctx context.Context) error {
	return e.interact(ctx, "hover")
}

func (e *Element) ScrollIntoView(ctx context.Context) error {
	return e.interact(ctx, "scroll")
}

func (e *Element) SetFiles(ctx context.Context, paths ...string) error {
	if err := e.interact(ctx, "files", " ", paths); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.files = append([]string(nil), paths...)
	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, nil
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.hidden, nil
}

var blankPNG = func() []byte {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}()
