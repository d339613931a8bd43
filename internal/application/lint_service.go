package application

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/monolint/monolint/internal/domain"
	"github.com/monolint/monolint/internal/domain/rules"
)

// LintService orchestrates the lint pipeline:
// read root → load config → resolve workspace → collect issues.
type LintService struct {
	reader   domain.ManifestReader
	resolver domain.WorkspaceResolver
	config   domain.ConfigLoader
}

func NewLintService(
	reader domain.ManifestReader,
	resolver domain.WorkspaceResolver,
	config domain.ConfigLoader,
) *LintService {
	return &LintService{
		reader:   reader,
		resolver: resolver,
		config:   config,
	}
}

// LintResult is the outcome of one lint run.
type LintResult struct {
	Root *domain.RootPackage
	// Packages are the resolved workspace members, root excluded.
	Packages []*domain.Package
	Config   domain.Config
	Issues   *domain.IssuesList
	Elapsed  time.Duration
}

// Manifests returns the root-relative manifest paths of the root and every
// member package.
func (r *LintResult) Manifests() []string {
	files := []string{domain.ManifestFile}
	for _, pkg := range r.Packages {
		files = append(files, filepath.ToSlash(filepath.Join(pkg.Path, domain.ManifestFile)))
	}
	return files
}

// Lint checks the workspace at path. flags take precedence over the
// manifest's embedded config, which takes precedence over the config file.
func (s *LintService) Lint(ctx context.Context, path string, flags domain.Config) (*LintResult, error) {
	logger := LoggerFrom(ctx)
	start := time.Now()

	// 1. Read the root manifest
	pkg, err := s.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading root package: %w", err)
	}
	pkg.Path = "."
	root := &domain.RootPackage{Package: *pkg}
	logger.Debug("read root package", "name", root.Name(), "dir", root.Dir)

	// 2. Layer configuration
	fileCfg, err := s.config.Load(root.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := flags.Merge(root.EmbeddedConfig()).Merge(fileCfg)
	cfg.Path = root.Dir
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// 3. Resolve workspace members
	desc, err := s.resolver.Descriptor(root)
	if err != nil {
		return nil, fmt.Errorf("reading workspace declaration: %w", err)
	}
	res, err := s.resolver.Resolve(root.Dir, desc)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace: %w", err)
	}
	logger.Debug("resolved workspace",
		"patterns", len(desc.Patterns),
		"packages", len(res.Packages),
		"missing", len(res.MissingManifests),
		"unmatched", len(res.Unmatched),
	)

	// 4. Run every rule
	issues := rules.Collect(cfg, root, desc, res)
	logger.Debug("collected issues", "total", issues.TotalLen())

	return &LintResult{
		Root:     root,
		Packages: res.Packages,
		Config:   cfg,
		Issues:   issues,
		Elapsed:  time.Since(start),
	}, nil
}
