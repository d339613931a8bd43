package domain

import "context"

// ManifestReader reads and decodes the manifest of one directory.
type ManifestReader interface {
	// Read returns ErrManifestNotFound when dir has no manifest file.
	Read(dir string) (*Package, error)
}

// WorkspaceResolver discovers member packages of a workspace.
type WorkspaceResolver interface {
	Descriptor(root *RootPackage) (WorkspaceDescriptor, error)
	Resolve(root string, desc WorkspaceDescriptor) (*Resolution, error)
}

// ConfigLoader loads the optional config file of a workspace root.
type ConfigLoader interface {
	Load(root string) (Config, error)
}

// Prompter asks the operator to choose one of options. ok is false when
// the operator declined.
type Prompter interface {
	SelectOne(prompt string, options []string) (index int, ok bool, err error)
}

// Entry is one key/value pair of a manifest object.
type Entry struct {
	Key   string
	Value string
}

// ManifestDocument is a manifest opened for a format-preserving edit. Paths
// are object keys from the document root.
type ManifestDocument interface {
	Has(path ...string) bool
	IsObject(path ...string) bool
	// Len is the number of entries of an object or elements of an array.
	Len(path ...string) int
	GetString(path ...string) (string, bool)
	Strings(path ...string) []string
	// Entries lists string-valued object members in document order.
	Entries(path ...string) []Entry
	SetBool(value bool, path ...string) error
	SetString(value string, path ...string) error
	SetStrings(values []string, path ...string) error
	SetEntries(entries []Entry, path ...string) error
	Delete(path ...string)
}

// ManifestEditor rewrites manifests and workspace documents on disk while
// keeping their formatting.
type ManifestEditor interface {
	// EditManifest re-reads the manifest in dir, applies edit and writes it
	// back when edit reports a change.
	EditManifest(dir string, edit func(doc ManifestDocument) (changed bool, err error)) error
	CreateManifest(dir, name string) error
	RemoveWorkspaceEntries(root string, source WorkspaceSource, entries []string) error
}

// Installer runs the workspace package manager's install step.
type Installer interface {
	Install(ctx context.Context, root *RootPackage) error
}

// GitInfo reports version-control state of workspace files.
type GitInfo interface {
	// DirtyFiles returns the subset of files (root-relative) with
	// uncommitted changes. Outside a repository it returns nil.
	DirtyFiles(root string, files []string) ([]string, error)
}
