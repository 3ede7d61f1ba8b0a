package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options configures the launched browser
type Options struct {
	Width      int
	Height     int
	Headless   bool
	Bin        string        // Chrome/Chromium binary, looked up when empty
	ProfileDir string        // Chrome/Chromium profile directory for authenticated sessions
	Timeout    time.Duration // Navigation load timeout
}

// Browser wraps the Rod browser and the single page an actor drives
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

// Launch starts a browser and opens a blank page sized to the viewport
func Launch(opts Options) (*Browser, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = 1920, 1080
	}

	path := opts.Bin
	if path == "" {
		path, _ = launcher.LookPath()
	}
	l := launcher.New().Bin(path).Headless(opts.Headless).Set("no-sandbox").Set("disable-gpu")
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	return &Browser{browser: browser, page: page, timeout: opts.Timeout}, nil
}

// Close cleans up browser resources
func (b *Browser) Close() error {
	var err error
	if b.page != nil {
		err = b.page.Close()
	}
	if b.browser != nil {
		if cerr := b.browser.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Page returns the underlying Rod page
func (b *Browser) Page() *rod.Page {
	return b.page
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	page := b.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.Timeout(b.timeout).WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	return nil
}

func (b *Browser) Find(ctx context.Context, selector string) ([]Element, error) {
	found, err := b.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	elements := make([]Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &rodElement{el: el, page: b.page})
	}
	return elements, nil
}

func (b *Browser) CurrentURL(ctx context.Context) (string, error) {
	info, err := b.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (b *Browser) Title(ctx context.Context) (string, error) {
	info, err := b.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// RunScript evaluates a JS function expression, e.g. `(a) => a + 1`
func (b *Browser) RunScript(ctx context.Context, js string, args ...any) (any, error) {
	res, err := b.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return nil, fmt.Errorf("script failed: %w", err)
	}
	return res.Value.Val(), nil
}

func (b *Browser) Screenshot(ctx context.Context) ([]byte, error) {
	return b.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

type rodElement struct {
	el   *rod.Element
	page *rod.Page
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

// Type focuses the element and types text after the current value
func (e *rodElement) Type(ctx context.Context, text string) error {
	return e.el.Context(ctx).Input(text)
}

func (e *rodElement) Clear(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return e.page.Context(ctx).Keyboard.Type(input.Backspace)
}

func (e *rodElement) Hover(ctx context.Context) error {
	return e.el.Context(ctx).Hover()
}

func (e *rodElement) ScrollIntoView(ctx context.Context) error {
	return e.el.Context(ctx).ScrollIntoView()
}

func (e *rodElement) SetFiles(ctx context.Context, paths ...string) error {
	return e.el.Context(ctx).SetFiles(paths)
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *rodElement) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}
