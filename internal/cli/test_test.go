package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harnessScenarios is the harness package's own conformance suite.
var harnessScenarios = filepath.Join("..", "harness", "testdata", "scenarios")

// writeSuite creates a scenarios dir with one scenario and its tree, and
// returns the scenarios dir.
func writeSuite(t *testing.T, scenario, tree string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree.cue"), []byte(tree), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.yaml"), []byte(scenario), 0644))
	return dir
}

func TestTestCommand_HarnessSuite(t *testing.T) {
	out, _, err := execute(t, "test", harnessScenarios)
	require.NoError(t, err, "output:\n%s", out)

	assert.Contains(t, out, "✓ globals_and_main")
	assert.Contains(t, out, "✓ mutual_structs")
	assert.Contains(t, out, "0 failed")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_JSON(t *testing.T) {
	out, _, err := execute(t, "test", harnessScenarios, "--format", "json", "--filter", "short_*")
	require.NoError(t, err)

	resp, data := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.EqualValues(t, 1, data["total"])
	assert.EqualValues(t, 1, data["passed"])
}

func TestTestCommand_Failure(t *testing.T) {
	dir := writeSuite(t, `
name: wrong
description: Expects an error the tree does not have.
tree: tree.cue
expect:
  error: UNDEFINED_NAME
`, globalsTree)

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "but the program compiled")
	assert.Contains(t, out, "1 failed")
}

func TestTestCommand_FailureJSON(t *testing.T) {
	dir := writeSuite(t, `
name: wrong
description: Expects an error the tree does not have.
tree: tree.cue
expect:
  error: UNDEFINED_NAME
`, globalsTree)

	out, _, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp, data := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.EqualValues(t, 1, data["failed"])
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := writeSuite(t, "name: broken\n", globalsTree)

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ scenario.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_GoldenUpdateAndCompare(t *testing.T) {
	dir := writeSuite(t, `
name: globals
description: Globals and main.
tree: tree.cue
expect:
  ok: true
golden: true
`, globalsTree)
	goldenPath := filepath.Join(dir, "..", "golden", "globals.golden")

	out, _, err := execute(t, "test", dir)
	require.Error(t, err, "a golden scenario without a golden file fails")
	assert.Contains(t, out, "golden file missing")

	out, _, err = execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ globals (golden updated)")

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, globalsIR, string(data))

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte("stale\n"), 0644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "golden file mismatch")
}

func TestTestCommand_GoldenDirFlag(t *testing.T) {
	dir := writeSuite(t, `
name: globals
description: Globals and main.
tree: tree.cue
expect:
  ok: true
golden: true
`, globalsTree)
	goldenDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "globals.golden"), []byte(globalsIR), 0644))

	_, _, err := execute(t, "test", dir, "--golden", goldenDir)
	require.NoError(t, err)
}

func TestTestCommand_NoScenarios(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_NonExistentDir(t *testing.T) {
	_, _, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_InvalidFilter(t *testing.T) {
	_, _, err := execute(t, "test", harnessScenarios, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestFindScenarioFiles(t *testing.T) {
	files, err := findScenarioFiles(harnessScenarios, "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		assert.Equal(t, ".yaml", filepath.Ext(f))
	}
	assert.IsNonDecreasing(t, files)
}
