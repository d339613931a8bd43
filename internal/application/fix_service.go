package application

import (
	"context"
	"fmt"

	"github.com/monolint/monolint/internal/domain"
)

// FixService applies the fixes of a lint result and reinstalls
// dependencies afterwards.
type FixService struct {
	editor    domain.ManifestEditor
	git       domain.GitInfo
	installer domain.Installer
	prompter  domain.Prompter
}

// NewFixService creates a FixService. git, installer and prompter may be nil.
func NewFixService(
	editor domain.ManifestEditor,
	git domain.GitInfo,
	installer domain.Installer,
	prompter domain.Prompter,
) *FixService {
	return &FixService{
		editor:    editor,
		git:       git,
		installer: installer,
		prompter:  prompter,
	}
}

// Fix repairs every issue of result in place. Issues that were repaired
// change to LevelFixed. The install step runs when at least one issue was
// fixed and the config does not disable it.
func (s *FixService) Fix(ctx context.Context, result *LintResult) error {
	logger := LoggerFrom(ctx)
	root := result.Root.Dir

	if s.git != nil {
		dirty, err := s.git.DirtyFiles(root, result.Manifests())
		if err != nil {
			logger.Debug("git status unavailable", "err", err)
		}
		for _, f := range dirty {
			logger.Warn("fixing a manifest with uncommitted changes", "file", f)
		}
	}

	fc := &domain.FixContext{
		Root:     root,
		Select:   result.Config.Select,
		Prompter: s.prompter,
		Editor:   s.editor,
	}
	if err := result.Issues.Fix(fc); err != nil {
		return err
	}

	fixed := result.Issues.LenByLevel(domain.LevelFixed)
	logger.Debug("applied fixes", "fixed", fixed)

	if fixed == 0 || result.Config.NoInstall || s.installer == nil {
		return nil
	}
	if err := s.installer.Install(ctx, result.Root); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}
	return nil
}
