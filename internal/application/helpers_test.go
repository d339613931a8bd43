package application_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/monolint/monolint/internal/adapters/outbound/config"
	"github.com/monolint/monolint/internal/adapters/outbound/manifest"
	"github.com/monolint/monolint/internal/adapters/outbound/workspace"
	"github.com/monolint/monolint/internal/application"
	"github.com/monolint/monolint/internal/domain"
)

func newLintService() *application.LintService {
	reader := manifest.NewReader()
	return application.NewLintService(reader, workspace.NewResolver(reader), config.New())
}

func quietContext() context.Context {
	return application.WithLogger(context.Background(), log.New(io.Discard))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func issueNames(list *domain.IssuesList) []string {
	var names []string
	for _, r := range list.Report() {
		names = append(names, r.Name)
	}
	return names
}

type fakeGit struct {
	dirty []string
	asked []string
}

func (g *fakeGit) DirtyFiles(_ string, files []string) ([]string, error) {
	g.asked = files
	return g.dirty, nil
}

type fakeInstaller struct {
	calls int
	err   error
}

func (i *fakeInstaller) Install(context.Context, *domain.RootPackage) error {
	i.calls++
	return i.err
}
