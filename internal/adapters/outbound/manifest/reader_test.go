package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/monolint/monolint/internal/adapters/outbound/manifest"
	"github.com/monolint/monolint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReader_Read(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "root",
  "private": true,
  "packageManager": "pnpm@9.0.0",
  "devDependencies": {"turbo": "2.0.0"}
}`)

	pkg, err := manifest.NewReader().Read(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, pkg.Dir)
	assert.Equal(t, "root", pkg.Manifest.Name)
	assert.True(t, pkg.Manifest.IsPrivate())
	require.NotNil(t, pkg.Manifest.PackageManager)
	assert.Equal(t, "pnpm@9.0.0", *pkg.Manifest.PackageManager)
	assert.Equal(t, 1, pkg.Manifest.DevDependencies.Len())
}

func TestReader_MissingManifest(t *testing.T) {
	_, err := manifest.NewReader().Read(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestReader_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	writeFile(t, file, "x")

	_, err := manifest.NewReader().Read(file)
	assert.ErrorIs(t, err, domain.ErrNotDirectory)

	_, err = manifest.NewReader().Read(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, domain.ErrNotDirectory)
}

func TestReader_MalformedManifestIsNotMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": `)

	_, err := manifest.NewReader().Read(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrManifestNotFound)
	assert.Contains(t, err.Error(), "decoding")
}
