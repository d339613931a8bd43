// Package workspace discovers the member packages of a workspace from its
// glob declaration.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/monolint/monolint/internal/domain"
)

var _ domain.WorkspaceResolver = (*Resolver)(nil)

// Resolver expands workspace patterns into packages.
type Resolver struct {
	reader domain.ManifestReader
}

func NewResolver(reader domain.ManifestReader) *Resolver {
	return &Resolver{reader: reader}
}

// Descriptor returns the root manifest's workspaces when declared, and the
// packages list of pnpm-workspace.yaml otherwise.
func (r *Resolver) Descriptor(root *domain.RootPackage) (domain.WorkspaceDescriptor, error) {
	if ws := root.Workspaces(); ws != nil {
		source := domain.SourceManifestList
		if ws.Nested {
			source = domain.SourceManifestNested
		}
		return domain.WorkspaceDescriptor{Patterns: ws.Patterns, Source: source}, nil
	}

	file := filepath.Join(root.Dir, domain.WorkspaceFile)
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.WorkspaceDescriptor{}, fmt.Errorf("no `workspaces` field in the root %s and no %s in %q: %w",
			domain.ManifestFile, domain.WorkspaceFile, root.Dir, domain.ErrNoWorkspace)
	}
	if err != nil {
		return domain.WorkspaceDescriptor{}, fmt.Errorf("reading %s: %w", file, err)
	}

	var doc struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.WorkspaceDescriptor{}, fmt.Errorf("parsing %s: %w", file, err)
	}
	return domain.WorkspaceDescriptor{Patterns: doc.Packages, Source: domain.SourceExternal}, nil
}

// exclusion is a "!" pattern. Plain and "dir/*" forms exclude base and
// everything below it; other wildcard forms match candidates as a glob.
type exclusion struct {
	base string
	glob string
}

func (e exclusion) matches(rel string) bool {
	if e.glob != "" {
		ok, _ := doublestar.Match(e.glob, rel)
		return ok
	}
	return rel == e.base || strings.HasPrefix(rel, e.base+"/")
}

func parseExclusion(pattern string) exclusion {
	p := normalize(pattern)
	if !strings.HasSuffix(p, "*") {
		return exclusion{base: p}
	}
	trimmed := strings.TrimRight(p, "*")
	switch {
	case trimmed == "":
		return exclusion{glob: "**"}
	case strings.HasSuffix(trimmed, "/"):
		return exclusion{base: strings.TrimSuffix(trimmed, "/")}
	default:
		return exclusion{glob: p}
	}
}

// normalize strips "./" prefixes and trailing slashes from a pattern.
func normalize(pattern string) string {
	p := filepath.ToSlash(strings.TrimSpace(pattern))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Resolve expands desc against root. Missing manifests and unmatched
// patterns are returned as diagnostics; an undecodable manifest aborts.
func (r *Resolver) Resolve(root string, desc domain.WorkspaceDescriptor) (*domain.Resolution, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", root, domain.ErrNotDirectory)
	}

	var exclusions []exclusion
	var inclusions []string
	for _, p := range desc.Patterns {
		if strings.HasPrefix(p, "!") {
			exclusions = append(exclusions, parseExclusion(p[1:]))
			continue
		}
		inclusions = append(inclusions, p)
	}

	excluded := func(rel string) bool {
		for _, e := range exclusions {
			if e.matches(rel) {
				return true
			}
		}
		return false
	}

	res := &domain.Resolution{}
	seen := make(map[string]bool)

	for _, raw := range inclusions {
		matched := false
		for _, p := range expandMidWildcard(root, normalize(raw)) {
			candidates, ok := candidatesFor(root, p)
			if !ok {
				continue
			}
			matched = true
			for _, rel := range candidates {
				if rel == "." || seen[rel] || excluded(rel) {
					continue
				}
				seen[rel] = true
				if err := r.load(root, rel, res); err != nil {
					return nil, err
				}
			}
		}
		if !matched {
			res.Unmatched = append(res.Unmatched, raw)
		}
	}

	return res, nil
}

func (r *Resolver) load(root, rel string, res *domain.Resolution) error {
	if strings.HasPrefix(path.Base(rel), ".") {
		return nil
	}
	display := "./" + rel
	pkg, err := r.reader.Read(filepath.Join(root, filepath.FromSlash(rel)))
	if errors.Is(err, domain.ErrManifestNotFound) {
		res.MissingManifests = append(res.MissingManifests, display)
		return nil
	}
	if err != nil {
		return err
	}
	pkg.Path = display
	res.Packages = append(res.Packages, pkg)
	return nil
}

// expandMidWildcard turns "dir/*/suffix" or "dir/**/suffix" into one
// pattern per immediate subdirectory of dir. Other patterns pass through.
func expandMidWildcard(root, p string) []string {
	segments := strings.Split(p, "/")
	for i, seg := range segments[:len(segments)-1] {
		if seg != "*" && seg != "**" {
			continue
		}
		dir := strings.Join(segments[:i], "/")
		suffix := strings.Join(segments[i+1:], "/")

		var out []string
		for _, name := range subdirectories(root, dir) {
			out = append(out, path.Join(dir, name, suffix))
		}
		return out
	}
	return []string{p}
}

// candidatesFor resolves one expanded pattern to root-relative directories.
// ok is false when the pattern matches nothing on disk.
func candidatesFor(root, p string) ([]string, bool) {
	if !strings.HasSuffix(p, "*") {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(p)))
		if err != nil || !info.IsDir() {
			return nil, false
		}
		return []string{path.Clean(p)}, true
	}

	before := strings.TrimRight(p, "*")
	if before == "" || strings.HasSuffix(before, "/") {
		dir := strings.TrimSuffix(before, "/")
		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
		if err != nil {
			return nil, false
		}
		var out []string
		for _, e := range entries {
			if e.IsDir() {
				out = append(out, path.Join(dir, e.Name()))
			}
		}
		return out, true
	}

	parent, prefix := path.Split(before)
	parent = strings.TrimSuffix(parent, "/")
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(parent)))
	if err != nil {
		return nil, false
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(prefix+"*", e.Name()); ok {
			out = append(out, path.Join(parent, e.Name()))
		}
	}
	return out, true
}

// subdirectories lists the immediate subdirectories of root/dir. Read
// failures yield nothing.
func subdirectories(root, dir string) []string {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
