package tui_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/monolint/monolint/internal/adapters/outbound/tui"
	"github.com/monolint/monolint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIssue struct {
	name  string
	level domain.Level
}

func (f fakeIssue) Name() string                               { return f.name }
func (f fakeIssue) Level() domain.Level                        { return f.level }
func (f fakeIssue) Message() string                            { return "  │ detail of " + f.name }
func (f fakeIssue) Why() string                                { return "Because of " + f.name + "." }
func (f fakeIssue) Fix(*domain.FixContext, domain.Scope) error { return nil }

func sampleIssues() *domain.IssuesList {
	list := domain.NewIssuesList(nil)
	list.Add(domain.RootScope(), fakeIssue{name: "root-package-private-field", level: domain.LevelError})
	list.Add(domain.RootScope(), fakeIssue{name: "root-package-dependencies", level: domain.LevelWarning})
	list.Add(domain.PackageScope("./apps/web"), fakeIssue{name: "empty-dependencies", level: domain.LevelFixed})
	return list
}

func TestRenderIssues_GroupsByScope(t *testing.T) {
	output := tui.RenderIssues(sampleIssues())

	assert.Contains(t, output, "2 issues found in ./package.json:")
	assert.Contains(t, output, "1 issue found in ./apps/web/package.json:")
	assert.Contains(t, output, "⨯ error")
	assert.Contains(t, output, "⚠️ warning")
	assert.Contains(t, output, "✓ fixed")
	assert.Contains(t, output, "Because of root-package-private-field.")
	assert.Contains(t, output, "  │ detail of empty-dependencies")
	assert.Less(t, bytes.Index([]byte(output), []byte("./package.json")), bytes.Index([]byte(output), []byte("./apps/web")))
}

func TestRenderIssues_Empty(t *testing.T) {
	assert.Empty(t, tui.RenderIssues(domain.NewIssuesList(nil)))
}

func TestRenderFooter(t *testing.T) {
	output := tui.RenderFooter(sampleIssues(), 4, 1500*time.Microsecond)

	assert.Contains(t, output, "3 issues found")
	assert.Contains(t, output, "(1 ⨯, 1 ⚠️, 1 ✓)")
	assert.Contains(t, output, "across 4 packages in 1.5ms.")
	assert.Contains(t, output, "`-f` to autofix fixable issues.")
}

func TestRenderFooter_Singular(t *testing.T) {
	list := domain.NewIssuesList(nil)
	list.Add(domain.RootScope(), fakeIssue{name: "x", level: domain.LevelError})

	output := tui.RenderFooter(list, 1, time.Millisecond)
	assert.Contains(t, output, "1 issue found")
	assert.Contains(t, output, "across 1 package in")
}

func TestRenderSuccess(t *testing.T) {
	assert.Contains(t, tui.RenderSuccess(), "✓ No issues found")
}

func TestRenderError(t *testing.T) {
	output := tui.RenderError("Could not resolve workspace", errors.New("no workspace found"))
	assert.Contains(t, output, " ⨯ error")
	assert.Contains(t, output, "Could not resolve workspace")
	assert.Contains(t, output, "   no workspace found")
}

func TestRenderRules_ListsCatalog(t *testing.T) {
	output := tui.RenderRules(domain.Rules)
	for _, r := range domain.Rules {
		assert.Contains(t, output, r.Name)
	}
	assert.Contains(t, output, "(fixable)")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.WriteJSON(&buf, sampleIssues()))

	var reports []domain.IssueReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "./package.json", reports[0].Scope)
	assert.Equal(t, "./apps/web/package.json", reports[2].Scope)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "fixed", raw[2]["level"])
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.WriteJSON(&buf, domain.NewIssuesList(nil)))
	assert.Equal(t, "[]\n", buf.String())
}
