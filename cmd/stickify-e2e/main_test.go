package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelinePath(t *testing.T) {
	assert.Equal(t, "run.gif", timelinePath("run.gif", "scenarios/login.yaml", false))
	assert.Equal(t, "out/run_login.gif", timelinePath("out/run.gif", "scenarios/login.yaml", true))
}

func TestTargetsCommand(t *testing.T) {
	cmd := newTargetsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out.String(), "login.email")
	assert.Contains(t, out.String(), ".swal2-confirm")
}
