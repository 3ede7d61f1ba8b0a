package browser

import "context"

// Driver is the browser session an actor drives. Implementations own one
// page; Close releases it.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	// Find returns every element currently matching the CSS selector. Zero
	// matches is not an error.
	Find(ctx context.Context, selector string) ([]Element, error)
	CurrentURL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	RunScript(ctx context.Context, js string, args ...any) (any, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Element is a live handle to a located element. Handles go stale as the
// page changes, so callers re-resolve instead of holding them.
type Element interface {
	Click(ctx context.Context) error
	Type(ctx context.Context, text string) error
	Clear(ctx context.Context) error
	Hover(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
	SetFiles(ctx context.Context, paths ...string) error
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)
}
