// Package ai drafts scenario files from a plain-language request and a
// snapshot of the page the scenario starts on.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stickify/stickify-e2e/internal/browser"
	"github.com/stickify/stickify-e2e/internal/scenario"
)

// Provider drafts scenarios with a language model
type Provider interface {
	Draft(ctx context.Context, pageMap *browser.PageMap, prompt string) (*scenario.Scenario, error)
}

// NewProvider creates a new AI provider based on the provider name
func NewProvider(name, model, apiKey string) (Provider, error) {
	switch name {
	case "claude", "anthropic":
		return NewClaudeProvider(model, apiKey)
	case "openai", "gpt":
		return NewOpenAIProvider(model, apiKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: claude, openai)", name)
	}
}

// completeFunc sends one system+user exchange and returns the reply text
type completeFunc func(ctx context.Context, system, user string) (string, error)

// maxRepairs is how many times an invalid draft is sent back for fixing
const maxRepairs = 2

// draft asks for a scenario and feeds validation errors back until the
// reply parses or the repairs run out
func draft(ctx context.Context, complete completeFunc, pageMap *browser.PageMap, prompt string) (*scenario.Scenario, error) {
	pageMapJSON, err := json.MarshalIndent(pageMap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page map: %w", err)
	}

	user := buildUserPrompt(string(pageMapJSON), prompt)
	for attempt := 0; ; attempt++ {
		reply, err := complete(ctx, systemPrompt(), user)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(reply) == "" {
			return nil, fmt.Errorf("empty response")
		}

		sc, err := scenario.Parse([]byte(extractYAML(reply)))
		if err == nil {
			return sc, nil
		}
		if attempt >= maxRepairs {
			return nil, fmt.Errorf("failed to parse drafted scenario: %w\nResponse: %s", err, reply)
		}
		slog.Debug("drafted scenario rejected, asking for a fix",
			slog.Int("attempt", attempt+1), slog.Any("error", err))
		user = buildRepairPrompt(string(pageMapJSON), prompt, reply, err)
	}
}

// extractYAML strips a markdown fence around the reply, if any
func extractYAML(response string) string {
	text := strings.TrimSpace(response)
	start := strings.Index(text, "```")
	if start == -1 {
		return text
	}
	body := text[start+3:]
	// Drop the fence's language tag
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		body = body[nl+1:]
	}
	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
