package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIURL)
	assert.Equal(t, 20*time.Second, cfg.WaitTimeout)
	assert.True(t, cfg.Headless)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"STICKIFY_BASE_URL":         "https://stickify.test/",
		"STICKIFY_API_URL":          "https://api.stickify.test",
		"STICKIFY_HEADLESS":         "false",
		"STICKIFY_WIDTH":            "1280",
		"STICKIFY_HEIGHT":           "720",
		"STICKIFY_WAIT_TIMEOUT":     "5s",
		"STICKIFY_E2E_USER":         "pol",
		"STICKIFY_DEFAULT_PROVIDER": "openai",
		"OPENAI_API_KEY":            "sk-env",
		"STICKIFY_ANTHROPIC_KEY":    "ant-own",
		"ANTHROPIC_API_KEY":         "ant-env",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://stickify.test", cfg.BaseURL)
	assert.Equal(t, "https://api.stickify.test/api", cfg.APIURL)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 5*time.Second, cfg.WaitTimeout)
	assert.Equal(t, "pol", cfg.User)
	assert.Equal(t, "1234", cfg.Password)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.APIKey("openai"))
	assert.Equal(t, "ant-own", cfg.APIKey("claude"))
	assert.Empty(t, cfg.APIKey("gemini"))

	opts := cfg.BrowserOptions()
	assert.Equal(t, 1280, opts.Width)
	assert.Equal(t, 720, opts.Height)
	assert.False(t, opts.Headless)
}

func TestFromEnv_APISuffix(t *testing.T) {
	tests := map[string]string{
		"http://localhost:3000":      "http://localhost:3000/api",
		"http://localhost:3000/":     "http://localhost:3000/api",
		"http://localhost:3000/api/": "http://localhost:3000/api",
	}
	for in, want := range tests {
		cfg, err := FromEnv(env(map[string]string{"STICKIFY_API_URL": in}))
		require.NoError(t, err)
		assert.Equal(t, want, cfg.APIURL, in)
	}
}

func TestFromEnv_RejectsBadValues(t *testing.T) {
	_, err := FromEnv(env(map[string]string{
		"STICKIFY_HEADLESS":     "sometimes",
		"STICKIFY_WIDTH":        "-3",
		"STICKIFY_WAIT_TIMEOUT": "20",
	}))
	require.Error(t, err)
	assert.ErrorContains(t, err, "STICKIFY_HEADLESS")
	assert.ErrorContains(t, err, "STICKIFY_WIDTH")
	assert.ErrorContains(t, err, "STICKIFY_WAIT_TIMEOUT")
}
