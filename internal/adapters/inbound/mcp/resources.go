package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/monolint/monolint/internal/domain"
)

// registerResources registers all monolint MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. monolint://rules - rule catalog
	s.AddResource(
		mcplib.NewResource(
			"monolint://rules",
			"Rule Catalog",
			mcplib.WithResourceDescription("Every rule monolint checks, with its level and fixability"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(),
	)

	// 2. monolint://issues - current lint report
	s.AddResource(
		mcplib.NewResource(
			"monolint://issues",
			"Issues",
			mcplib.WithResourceDescription("Issues found in the workspace with the config on disk"),
			mcplib.WithMIMEType("application/json"),
		),
		handleIssuesResource(projectPath),
	)
}

func handleRulesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonResource("monolint://rules", domain.Rules)
	}
}

func handleIssuesResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		result, err := newLintService().Lint(ctx, projectPath, domain.Config{})
		if err != nil {
			return nil, fmt.Errorf("lint failed: %w", err)
		}
		return jsonResource("monolint://issues", newReport(result))
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
