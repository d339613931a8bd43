package domain

// WorkspaceFile is the external workspace list document (pnpm style).
const WorkspaceFile = "pnpm-workspace.yaml"

// WorkspaceSource records where the workspace patterns were declared, which
// decides how stale entries are written back.
type WorkspaceSource int

const (
	// SourceManifestList is `"workspaces": [...]` in the root manifest.
	SourceManifestList WorkspaceSource = iota
	// SourceManifestNested is `"workspaces": {"packages": [...]}`.
	SourceManifestNested
	// SourceExternal is the packages list of pnpm-workspace.yaml.
	SourceExternal
)

// WorkspaceDescriptor is the ordered list of glob patterns plus its source.
type WorkspaceDescriptor struct {
	Patterns []string
	Source   WorkspaceSource
}

// Resolution is the outcome of expanding a descriptor against the file system.
type Resolution struct {
	Packages []*Package
	// MissingManifests holds "./"-prefixed candidate directories that have no
	// manifest file.
	MissingManifests []string
	// Unmatched holds the raw patterns that resolved to nothing.
	Unmatched []string
}
