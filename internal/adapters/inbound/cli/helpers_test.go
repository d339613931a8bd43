package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monolint/monolint/internal/adapters/inbound/cli"
)

const fixtureDir = "../../../../testdata/workspaces"

func fixture(name string) string {
	return filepath.Join(fixtureDir, name)
}

// copyFixture copies a fixture workspace into a temp dir so fixes can
// rewrite it.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(fixture(name))))
	return dir
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readManifest(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel), "package.json"))
	require.NoError(t, err)
	return string(data)
}
