// Package evidence keeps what a test run leaves behind: end-of-test
// screenshots and a GIF timeline of every step an actor attempted.
package evidence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/stickify/stickify-e2e/internal/browser"
)

// TimestampLayout formats capture times in screenshot names
const TimestampLayout = "20060102_150405"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName builds "<test>_<PASSED|FAILED>_<timestamp>.png"
func FileName(test string, passed bool, at time.Time) string {
	status := "PASSED"
	if !passed {
		status = "FAILED"
	}
	return fmt.Sprintf("%s_%s_%s.png", unsafeChars.ReplaceAllString(test, "_"), status, at.Format(TimestampLayout))
}

// SaveScreenshot captures the current page into dir and returns the file
// written. dir is created if needed.
func SaveScreenshot(ctx context.Context, driver browser.Driver, dir, test string, passed bool) (string, error) {
	data, err := driver.Screenshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	path := filepath.Join(dir, FileName(test, passed, time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}
