package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func runCheck(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errBuf bytes.Buffer
	code = run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

// TestRun_PrintsAllKeysSorted verifies the default listing output.
func TestRun_PrintsAllKeysSorted(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "server:\n  port: 8080\n  host: localhost\n")
	code, stdout, _ := runCheck(t, "-file", path)

	require.Equal(t, 0, code)
	assert.Equal(t, "server.host=localhost\nserver.port=8080\n", stdout)
}

// TestRun_SingleKey verifies -key prints just the resolved value.
func TestRun_SingleKey(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "server:\n  port: 8080\n")
	code, stdout, _ := runCheck(t, "-file", path, "-key", "server.port")

	require.Equal(t, 0, code)
	assert.Equal(t, "8080\n", stdout)
}

// TestRun_MissingKey verifies a missing -key exits 1.
func TestRun_MissingKey(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCheck(t, "-key", "nope")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `"nope" not found`)
}

// TestRun_SetDefaultsAndFileOverride verifies -set pairs sit below file
// layers.
func TestRun_SetDefaultsAndFileOverride(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "a: file\n")
	code, stdout, _ := runCheck(t,
		"-set", "a=default",
		"-set", "b=kept",
		"-file", path,
		"-key", "a",
	)
	require.Equal(t, 0, code)
	assert.Equal(t, "file\n", stdout)

	code, stdout, _ = runCheck(t, "-set", "a=default", "-set", "b=kept", "-file", path, "-key", "b")
	require.Equal(t, 0, code)
	assert.Equal(t, "kept\n", stdout)
}

// TestRun_EnvLayer verifies the env prefix layer overrides files. Not
// parallel: mutates the process environment.
func TestRun_EnvLayer(t *testing.T) {
	t.Setenv("CONFCHECKTEST_SERVER_PORT", "9090")

	path := writeFile(t, "app.yaml", "server:\n  port: 8080\n")
	code, stdout, _ := runCheck(t, "-file", path, "-env", "CONFCHECKTEST", "-key", "server.port")

	require.Equal(t, 0, code)
	assert.Equal(t, "9090\n", stdout)
}

// TestRun_MissingRequiredFile verifies a missing file is a build error unless
// -optional is given.
func TestRun_MissingRequiredFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.yaml")

	code, _, stderr := runCheck(t, "-file", missing)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "confcheck:")

	code, stdout, _ := runCheck(t, "-file", missing, "-optional", "-set", "a=1", "-key", "a")
	require.Equal(t, 0, code)
	assert.Equal(t, "1\n", stdout)
}

// TestRun_InvalidSet verifies malformed -set pairs fail with usage exit code.
func TestRun_InvalidSet(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCheck(t, "-set", "novalue")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "invalid -set")
}
