// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package wrapper

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	gen := NewGenerator(fs, "/work", 3)

	a, err := gen.Generate("eu", "deploy --region eu")
	require.NoError(t, err)

	assert.Equal(t, "eu", a.Item)
	assert.Equal(t, filepath.Join("/work", "000_eu.sh"), a.Script)
	assert.Equal(t, filepath.Join("/work", "000_eu.ok"), a.SuccessMarker)
	assert.Equal(t, filepath.Join("/work", "000_eu.fail"), a.FailureMarker)

	b, err := afero.ReadFile(fs, a.Script)
	require.NoError(t, err)

	script := string(b)
	assert.True(t, strings.HasPrefix(script, "#!/bin/sh\n"), "expected shebang")
	assert.Contains(t, script, "deploy --region eu")
	assert.Contains(t, script, a.SuccessMarker)
	assert.Contains(t, script, a.FailureMarker)
	assert.Contains(t, script, "sleep 2", "expected fixed inter-attempt delay")
}

func TestGenerate_CollidingItemNames(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	gen := NewGenerator(fs, "/work", 1)

	a, err := gen.Generate("a/b", "true")
	require.NoError(t, err)

	b, err := gen.Generate("a_b", "true")
	require.NoError(t, err)

	// Both sanitize to a_b; the sequence number keeps them apart.
	assert.NotEqual(t, a.Script, b.Script)
	assert.NotEqual(t, a.SuccessMarker, b.SuccessMarker)
}

func TestGenerate_RetriesClampedToOne(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	gen := NewGenerator(fs, "/work", 0)

	a, err := gen.Generate("x", "true")
	require.NoError(t, err)

	b, err := afero.ReadFile(fs, a.Script)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"$attempt" -ge 1`)
}

func TestPurge(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/000_a.sh", []byte("stale"), 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/000_a.ok", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/001_b.fail", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/keep.txt", []byte("keep"), 0o644))

	require.NoError(t, Purge(fs, "/work"))

	for _, gone := range []string{"/work/000_a.sh", "/work/000_a.ok", "/work/001_b.fail"} {
		ok, err := afero.Exists(fs, gone)
		require.NoError(t, err)
		assert.False(t, ok, "expected %s to be removed", gone)
	}

	ok, err := afero.Exists(fs, "/work/keep.txt")
	require.NoError(t, err)
	assert.True(t, ok, "unrelated files must survive the purge")
}

func TestPurge_CreatesMissingDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, Purge(fs, "/does/not/exist"))

	ok, err := afero.DirExists(fs, "/does/not/exist")
	require.NoError(t, err)
	assert.True(t, ok)
}

// The remaining tests execute generated wrappers with a real shell.

func TestWrapperScript_SuccessCreatesMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs := afero.NewOsFs()
	gen := NewGenerator(fs, dir, 3)

	a, err := gen.Generate("a", "true")
	require.NoError(t, err)

	out, err := exec.Command("/bin/sh", a.Script).CombinedOutput()
	require.NoError(t, err, "wrapper should exit zero: %s", string(out))

	ok, err := afero.Exists(fs, a.SuccessMarker)
	require.NoError(t, err)
	assert.True(t, ok, "expected success marker")

	fail, err := afero.Exists(fs, a.FailureMarker)
	require.NoError(t, err)
	assert.False(t, fail, "failure marker must not exist")
}

func TestWrapperScript_ExhaustedRetriesCreateFailureMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs := afero.NewOsFs()
	gen := NewGenerator(fs, dir, 1)

	a, err := gen.Generate("b", "exit 7")
	require.NoError(t, err)

	err = exec.Command("/bin/sh", a.Script).Run()

	var exitErr *exec.ExitError

	require.ErrorAs(t, err, &exitErr, "wrapper should exit non-zero")
	assert.Equal(t, 7, exitErr.ExitCode(), "wrapper should propagate the command's exit code")

	fail, err := afero.Exists(fs, a.FailureMarker)
	require.NoError(t, err)
	assert.True(t, fail, "expected failure marker")
}

func TestWrapperScript_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs := afero.NewOsFs()
	gen := NewGenerator(fs, dir, 3)

	// Fails twice, succeeds on the third attempt. Each invocation appends a
	// line to the count file so the attempt count can be asserted exactly.
	count := filepath.Join(dir, "count")
	command := `echo x >> '` + count + `'; test "$(wc -l < '` + count + `')" -ge 3`

	a, err := gen.Generate("c", command)
	require.NoError(t, err)

	out, err := exec.Command("/bin/sh", a.Script).CombinedOutput()
	require.NoError(t, err, "wrapper should eventually succeed: %s", string(out))

	b, err := afero.ReadFile(fs, count)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(b), "x"), "command must be invoked exactly 3 times")

	ok, err := afero.Exists(fs, a.SuccessMarker)
	require.NoError(t, err)
	assert.True(t, ok, "expected success marker")
}
