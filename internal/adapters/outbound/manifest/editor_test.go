package manifest_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/monolint/monolint/internal/adapters/outbound/manifest"
	"github.com/monolint/monolint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEditor_EditManifestKeepsStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	writeFile(t, path, "{\r\n\t\"name\": \"root\"\r\n}\r\n")

	err := manifest.NewEditor().EditManifest(dir, func(doc domain.ManifestDocument) (bool, error) {
		return true, doc.SetBool(true, "private")
	})
	require.NoError(t, err)

	assert.Equal(t, "{\r\n\t\"name\": \"root\",\r\n\t\"private\": true\r\n}\r\n", readFile(t, path))
}

func TestEditor_EditManifestSkipsWriteWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	src := "{ \"name\" : \"untouched\" }"
	writeFile(t, path, src)

	err := manifest.NewEditor().EditManifest(dir, func(domain.ManifestDocument) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, src, readFile(t, path))
}

func TestEditor_EditManifestPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	err := manifest.NewEditor().EditManifest(t.TempDir(), func(domain.ManifestDocument) (bool, error) {
		return true, nil
	})
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), "{}")
	err = manifest.NewEditor().EditManifest(dir, func(domain.ManifestDocument) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestEditor_CreateManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.NewEditor().CreateManifest(dir, "ui"))

	assert.Equal(t, "{\n  \"name\": \"ui\",\n  \"version\": \"0.0.0\",\n  \"private\": true\n}\n", readFile(t, filepath.Join(dir, "package.json")))

	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"kept"}`)
	require.NoError(t, manifest.NewEditor().CreateManifest(dir, "ui"))
	assert.Equal(t, `{"name":"kept"}`, readFile(t, filepath.Join(dir, "package.json")))
}

func TestEditor_RemoveWorkspaceEntries_ManifestList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	writeFile(t, path, "{\n  \"workspaces\": [\n    \"apps/*\",\n    \"empty/*\",\n    \"docs\"\n  ]\n}\n")

	require.NoError(t, manifest.NewEditor().RemoveWorkspaceEntries(dir, domain.SourceManifestList, []string{"empty/*", "docs"}))

	assert.Equal(t, "{\n  \"workspaces\": [\n    \"apps/*\"\n  ]\n}\n", readFile(t, path))
}

func TestEditor_RemoveWorkspaceEntries_ManifestNested(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	writeFile(t, path, `{"workspaces":{"packages":["libs/*","gone"],"nohoist":["**/x"]}}`)

	require.NoError(t, manifest.NewEditor().RemoveWorkspaceEntries(dir, domain.SourceManifestNested, []string{"gone"}))

	var got map[string]map[string][]string
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &got))
	assert.Equal(t, []string{"libs/*"}, got["workspaces"]["packages"])
	assert.Equal(t, []string{"**/x"}, got["workspaces"]["nohoist"])
}

func TestEditor_RemoveWorkspaceEntries_PnpmBlockSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pnpm-workspace.yaml")
	writeFile(t, path, "# workspace\npackages:\n  - 'apps/*'\n  - 'empty/*' # stale\n  - \"docs\"\n\ncatalog:\n  react: ^18.2.0\n")

	require.NoError(t, manifest.NewEditor().RemoveWorkspaceEntries(dir, domain.SourceExternal, []string{"empty/*", "docs"}))

	assert.Equal(t, "# workspace\npackages:\n  - 'apps/*'\n\ncatalog:\n  react: ^18.2.0\n", readFile(t, path))
}

func TestEditor_RemoveWorkspaceEntries_PnpmFlowSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pnpm-workspace.yaml")
	writeFile(t, path, "packages: [apps/*, docs]\n")

	require.NoError(t, manifest.NewEditor().RemoveWorkspaceEntries(dir, domain.SourceExternal, []string{"docs"}))

	var got struct {
		Packages []string `yaml:"packages"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, path)), &got))
	assert.Equal(t, []string{"apps/*"}, got.Packages)
}

func TestEditor_RemoveWorkspaceEntries_PnpmWithoutPackages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pnpm-workspace.yaml"), "catalog: {}\n")

	err := manifest.NewEditor().RemoveWorkspaceEntries(dir, domain.SourceExternal, []string{"docs"})
	assert.ErrorContains(t, err, "no packages list")

	_, statErr := os.Stat(filepath.Join(dir, "package.json"))
	assert.True(t, os.IsNotExist(statErr))
}
