package rules_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/monolint/monolint/internal/adapters/outbound/manifest"
	"github.com/monolint/monolint/internal/domain"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers every prompt with a fixed choice.
type scriptedPrompter struct {
	choice  int
	decline bool
	prompts []string
	options [][]string
}

func (p *scriptedPrompter) SelectOne(prompt string, options []string) (int, bool, error) {
	p.prompts = append(p.prompts, prompt)
	p.options = append(p.options, options)
	if p.decline {
		return 0, false, nil
	}
	return p.choice, true, nil
}

func pkg(path, manifestJSON string) *domain.Package {
	var m domain.Manifest
	if err := json.Unmarshal([]byte(manifestJSON), &m); err != nil {
		panic(err)
	}
	return &domain.Package{Path: path, Manifest: m}
}

func rootPkg(manifestJSON string) *domain.RootPackage {
	return &domain.RootPackage{Package: *pkg(".", manifestJSON)}
}

func writeManifest(t *testing.T, root, rel, content string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))
}

func readManifest(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel), "package.json"))
	require.NoError(t, err)
	return string(data)
}

func mustVersion(t *testing.T, text string) domain.Version {
	t.Helper()
	v, err := domain.ParseVersion(text)
	require.NoError(t, err)
	return v
}

func fixContext(root string, prompter domain.Prompter) *domain.FixContext {
	return &domain.FixContext{Root: root, Prompter: prompter, Editor: manifest.NewEditor()}
}

func names(issues *domain.IssuesList) []string {
	var out []string
	for _, g := range issues.Groups() {
		for _, issue := range g.Issues {
			out = append(out, issue.Name())
		}
	}
	return out
}
