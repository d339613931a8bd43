package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCommand_Healthy(t *testing.T) {
	out, _, err := runCmd(t, fixture("healthy"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ No issues found")
}

func TestLintCommand_RootIssues(t *testing.T) {
	out, _, err := runCmd(t, fixture("root-issues"))
	require.Error(t, err)
	assert.Contains(t, out, "3 issues found in ./package.json:")
	assert.Contains(t, out, "root-package-private-field")
	assert.Contains(t, out, "root-package-manager-field")
	assert.Contains(t, out, "root-package-dependencies")
	assert.Contains(t, out, "(2 ⨯, 1 ⚠️, 0 ✓)")
	assert.Contains(t, out, "across 1 package in")
}

func TestLintCommand_PnpmWorkspace(t *testing.T) {
	out, _, err := runCmd(t, fixture("pnpm"))
	require.Error(t, err)
	assert.Contains(t, out, "packages-without-package-json")
	assert.Contains(t, out, "non-existent-packages")
	assert.Contains(t, out, "empty-dependencies")
	assert.NotContains(t, out, "legacy-api")
}

func TestLintCommand_WarningsOnlyPass(t *testing.T) {
	_, _, err := runCmd(t, fixture("pnpm"), "-r", "empty-dependencies")
	assert.NoError(t, err)
}

func TestLintCommand_FailOnWarnings(t *testing.T) {
	_, _, err := runCmd(t, fixture("pnpm"), "-r", "empty-dependencies", "--fail-on-warnings")
	assert.Error(t, err)
}

func TestLintCommand_IgnoreFlags(t *testing.T) {
	out, _, err := runCmd(t, fixture("dependencies"),
		"-i", "react",
		"-p", "admin",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestLintCommand_JSON(t *testing.T) {
	out, _, err := runCmd(t, fixture("dependencies"), "--json")
	require.Error(t, err)

	var reports []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &reports), "output should be valid JSON")
	require.Len(t, reports, 3)
	assert.Equal(t, "types-in-dependencies", reports[0]["name"])
	assert.Equal(t, "./apps/admin/package.json", reports[0]["scope"])
	assert.Equal(t, "unsync-similar-dependencies", reports[1]["name"])
	assert.Equal(t, "multiple-dependency-versions", reports[2]["name"])
	assert.Equal(t, "error", reports[2]["level"])
}

func TestLintCommand_InvalidSelect(t *testing.T) {
	_, _, err := runCmd(t, fixture("healthy"), "--select", "newest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown select")
}

func TestLintCommand_MissingWorkspace(t *testing.T) {
	_, _, err := runCmd(t, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to collect packages")
}

func TestLintCommand_FixRootIssues(t *testing.T) {
	dir := copyFixture(t, "root-issues")

	out, _, err := runCmd(t, dir, "--fix", "--no-install")
	require.Error(t, err, "packageManager cannot be fixed")
	assert.Contains(t, out, "(1 ⨯, 0 ⚠️, 2 ✓)")
	assert.Equal(t, `{
  "name": "root-issues",
  "workspaces": ["apps/*"],
  "devDependencies": {
    "eslint": "^9.10.0",
    "turbo": "^2.1.0"
  },
  "private": true
}
`, readManifest(t, dir, "."))
}

func TestLintCommand_FixDependencies(t *testing.T) {
	dir := copyFixture(t, "dependencies")

	out, _, err := runCmd(t, dir, "-f", "-s", "highest", "--no-install")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 ⨯, 0 ⚠️, 3 ✓)")

	admin := readManifest(t, dir, "apps/admin")
	assert.Contains(t, admin, `"react": "^18.3.1"`)
	assert.Contains(t, admin, `"devDependencies": {`)
	assert.Contains(t, admin, `"@types/node": "^20.14.0"`)

	out, _, err = runCmd(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestLintCommand_FixPnpmWorkspace(t *testing.T) {
	dir := copyFixture(t, "pnpm")

	_, _, err := runCmd(t, dir, "--fix", "--no-install")
	require.NoError(t, err)

	out, _, err := runCmd(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}
