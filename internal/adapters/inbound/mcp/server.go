package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMonolintMCPServer creates a new MCP server with all monolint tools and
// resources registered. The projectPath is the workspace root to lint.
func NewMonolintMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"monolint",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
