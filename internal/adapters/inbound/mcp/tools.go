package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/monolint/monolint/internal/adapters/outbound/config"
	"github.com/monolint/monolint/internal/adapters/outbound/gitinfo"
	"github.com/monolint/monolint/internal/adapters/outbound/manifest"
	"github.com/monolint/monolint/internal/adapters/outbound/workspace"
	"github.com/monolint/monolint/internal/application"
	"github.com/monolint/monolint/internal/domain"
)

// registerTools registers all monolint MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. monolint_lint
	s.AddTool(
		mcplib.NewTool("monolint_lint",
			mcplib.WithDescription("Lint the workspace and return every issue as JSON, grouped in discovery order"),
			mcplib.WithString("ignore_dependency", mcplib.Description("Comma-separated dependency patterns to ignore (name, name@version, prefix*, *suffix)")),
			mcplib.WithString("ignore_package", mcplib.Description("Comma-separated package names or paths to ignore")),
			mcplib.WithString("ignore_rule", mcplib.Description("Comma-separated rule names to ignore")),
		),
		handleLint(projectPath),
	)

	// 2. monolint_rules
	s.AddTool(
		mcplib.NewTool("monolint_rules",
			mcplib.WithDescription("Returns the rule catalog: name, level, whether it is fixable, and what it checks"),
		),
		handleRules(),
	)

	// 3. monolint_fix
	s.AddTool(
		mcplib.NewTool("monolint_fix",
			mcplib.WithDescription("Autofix fixable issues in place and return the resulting report. Dependencies are not reinstalled."),
			mcplib.WithString("select",
				mcplib.Required(),
				mcplib.Enum(string(domain.SelectHighest), string(domain.SelectLowest)),
				mcplib.Description("Version to keep when aligning diverging dependency versions"),
			),
			mcplib.WithString("ignore_dependency", mcplib.Description("Comma-separated dependency patterns to ignore")),
			mcplib.WithString("ignore_package", mcplib.Description("Comma-separated package names or paths to ignore")),
			mcplib.WithString("ignore_rule", mcplib.Description("Comma-separated rule names to ignore")),
		),
		handleFix(projectPath),
	)
}

// lintReport is the JSON payload of the lint and fix tools.
type lintReport struct {
	Packages int                  `json:"packages"`
	Errors   int                  `json:"errors"`
	Warnings int                  `json:"warnings"`
	Fixed    int                  `json:"fixed"`
	Issues   []domain.IssueReport `json:"issues"`
}

func newReport(result *application.LintResult) lintReport {
	return lintReport{
		Packages: len(result.Packages),
		Errors:   result.Issues.LenByLevel(domain.LevelError),
		Warnings: result.Issues.LenByLevel(domain.LevelWarning),
		Fixed:    result.Issues.LenByLevel(domain.LevelFixed),
		Issues:   result.Issues.Report(),
	}
}

// newLintService creates the standard set of outbound adapters and the
// lint service.
func newLintService() *application.LintService {
	reader := manifest.NewReader()
	return application.NewLintService(reader, workspace.NewResolver(reader), config.New())
}

func handleLint(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		result, err := newLintService().Lint(ctx, projectPath, ignoreFlags(request))
		if err != nil {
			return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
		}
		return jsonResult(newReport(result))
	}
}

func handleRules() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(domain.Rules)
	}
}

func handleFix(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		sel, err := request.RequireString("select")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		flags := ignoreFlags(request)
		flags.Select = domain.SelectPolicy(sel)
		flags.NoInstall = true

		result, err := newLintService().Lint(ctx, projectPath, flags)
		if err != nil {
			return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
		}

		// MCP fixes never prompt or install.
		fixSvc := application.NewFixService(manifest.NewEditor(), gitinfo.New(), nil, nil)
		if err := fixSvc.Fix(ctx, result); err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(newReport(result))
	}
}

func ignoreFlags(request mcplib.CallToolRequest) domain.Config {
	args := request.GetArguments()
	var cfg domain.Config
	if s, ok := args["ignore_dependency"].(string); ok {
		cfg.IgnoreDependency = splitAndTrim(s)
	}
	if s, ok := args["ignore_package"].(string); ok {
		cfg.IgnorePackage = splitAndTrim(s)
	}
	if s, ok := args["ignore_rule"].(string); ok {
		cfg.IgnoreRule = splitAndTrim(s)
	}
	return cfg
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
