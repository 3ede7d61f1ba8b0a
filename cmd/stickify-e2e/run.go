package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stickify/stickify-e2e/internal/browser"
	"github.com/stickify/stickify-e2e/internal/evidence"
	"github.com/stickify/stickify-e2e/internal/scenario"
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

var (
	headless   bool
	baseURL    string
	timeline   string
	shotDir    string
	frameDelay int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run scenario files in a fresh browser each",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScenarios,
	}
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser without a window")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Front-end URL (default: STICKIFY_BASE_URL)")
	cmd.Flags().StringVar(&timeline, "timeline", "", "Write a GIF timeline of each run to this file")
	cmd.Flags().StringVar(&shotDir, "screenshots", "", "Screenshot directory (default: STICKIFY_SCREENSHOT_DIR)")
	cmd.Flags().IntVar(&frameDelay, "frame-delay", 100, "Timeline delay per step (1/100 s)")
	return cmd
}

func runScenarios(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("headless") {
		cfg.Headless = headless
	}
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if shotDir != "" {
		cfg.ScreenshotDir = shotDir
	}

	logVerbose("Starting stickify-e2e")
	logVerbose("  Base URL: %s", cfg.BaseURL)
	logVerbose("  Headless: %t", cfg.Headless)

	// Validate every file before launching anything
	var scenarios []*scenario.Scenario
	for _, path := range args {
		sc, err := scenario.Load(path)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, sc)
	}

	failed := 0
	for i, sc := range scenarios {
		out := ""
		if timeline != "" {
			out = timelinePath(timeline, args[i], len(args) > 1)
		}
		if err := runOne(cmd.Context(), sc, out); err != nil {
			failed++
			fmt.Printf("✗ %s\n  %v\n", sc.Name, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	fmt.Printf("✓ %d scenarios passed\n", len(scenarios))
	return nil
}

func runOne(ctx context.Context, sc *scenario.Scenario, timelineOut string) error {
	fmt.Printf("→ Launching browser for %q... ", sc.Name)
	b, err := browser.Launch(cfg.BrowserOptions())
	if err != nil {
		fmt.Println("failed")
		return err
	}
	fmt.Println("done")

	rec := evidence.NewRecorder(b, slog.Default())
	name := sc.Actor
	if name == "" {
		name = "Tester"
	}
	actor := sp.Named(name,
		sp.WithLogger(slog.Default().With(slog.String("scenario", sc.Name), slog.String("run", rec.RunID()))),
		sp.WithWaitTimeout(cfg.WaitTimeout),
		sp.WithObserver(rec.Observe),
		sp.WithObserver(printStep),
	)
	if err := actor.WhoCan(sp.BrowseTheWebWith(b), sp.CallAnAPIAt(cfg.APIURL)); err != nil {
		_ = b.Close()
		return err
	}

	runErr := scenario.Run(ctx, actor, sc, scenario.Env{BaseURL: cfg.BaseURL})

	if path, err := evidence.SaveScreenshot(ctx, b, cfg.ScreenshotDir, sc.Name, runErr == nil); err != nil {
		slog.Warn("screenshot failed", slog.Any("error", err))
	} else {
		logVerbose("  Screenshot: %s", path)
	}

	if timelineOut != "" {
		fmt.Printf("→ Writing timeline (%d frames)... ", len(rec.Frames()))
		size, err := evidence.WriteTimeline(rec.Frames(), timelineOut, evidence.TimelineOptions{FrameDelay: frameDelay, MaxWidth: 800})
		if err != nil {
			fmt.Println("failed")
			slog.Warn("timeline failed", slog.Any("error", err))
		} else {
			fmt.Printf("done (%s, %.1f KB)\n", timelineOut, float64(size)/1024)
		}
	}

	return errors.Join(runErr, actor.Exit())
}

// printStep reports each finished step on stdout
func printStep(ev sp.StepEvent) {
	mark := "✓"
	if ev.Err != nil {
		mark = "✗"
	}
	fmt.Printf("  %s [%d] %s (%s)\n", mark, ev.Index+1, ev.Description, ev.Duration.Round(time.Millisecond))
}

// timelinePath gives each scenario its own GIF when several run at once
func timelinePath(out, scenarioFile string, many bool) string {
	if !many {
		return out
	}
	ext := filepath.Ext(out)
	base := strings.TrimSuffix(filepath.Base(scenarioFile), filepath.Ext(scenarioFile))
	return strings.TrimSuffix(out, ext) + "_" + base + ext
}
