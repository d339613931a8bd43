// Package installer runs the workspace package manager after fixes have
// rewritten manifests.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/monolint/monolint/internal/domain"
)

// ErrInstallFailed is returned when the install command exits unsuccessfully.
var ErrInstallFailed = errors.New("install command failed")

// lockfiles maps lockfile names to package managers, in detection order.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"package-lock.json", "npm"},
	{"bun.lockb", "bun"},
	{"bun.lock", "bun"},
	{"yarn.lock", "yarn"},
	{"pnpm-lock.yaml", "pnpm"},
}

// Managers lists the package managers offered when none can be detected.
var Managers = []string{"npm", "yarn", "pnpm", "bun"}

// RunFunc executes name with args in dir.
type RunFunc func(ctx context.Context, dir, name string, args ...string) error

var _ domain.Installer = (*Installer)(nil)

// Installer implements domain.Installer with os/exec.
type Installer struct {
	prompter domain.Prompter
	out      io.Writer
	logger   *log.Logger
	run      RunFunc
}

// Option configures an Installer.
type Option func(*Installer)

// WithOutput sets where the install note is printed.
func WithOutput(w io.Writer) Option { return func(i *Installer) { i.out = w } }

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option { return func(i *Installer) { i.logger = l } }

// WithRunner replaces the command runner.
func WithRunner(run RunFunc) Option { return func(i *Installer) { i.run = run } }

// New creates an Installer. prompter may be nil, in which case an
// undetectable package manager skips the install.
func New(prompter domain.Prompter, opts ...Option) *Installer {
	i := &Installer{
		prompter: prompter,
		out:      os.Stdout,
		logger:   log.Default(),
		run:      runCommand,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install detects the package manager of root and runs "<pm> install".
func (i *Installer) Install(ctx context.Context, root *domain.RootPackage) error {
	manager, ok := Detect(root)
	if !ok {
		var err error
		manager, ok, err = i.ask()
		if err != nil {
			return err
		}
		if !ok {
			i.logger.Debug("no package manager selected, skipping install")
			return nil
		}
	}

	fmt.Fprintf(i.out, "Note: running install command using %s...\n", manager)
	i.logger.Debug("running install", "manager", manager, "dir", root.Dir)

	if err := i.run(ctx, root.Dir, manager, "install"); err != nil {
		return fmt.Errorf("%w: %s install: %w", ErrInstallFailed, manager, err)
	}
	return nil
}

func (i *Installer) ask() (string, bool, error) {
	if i.prompter == nil {
		return "", false, nil
	}
	idx, ok, err := i.prompter.SelectOne("Select the package manager to use:", Managers)
	if err != nil || !ok || idx < 0 || idx >= len(Managers) {
		return "", false, err
	}
	return Managers[idx], true, nil
}

// Detect returns the package manager of root, first from a lockfile in
// the root directory, then from the packageManager manifest field.
func Detect(root *domain.RootPackage) (string, bool) {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(root.Dir, lf.file)); err == nil {
			return lf.manager, true
		}
	}

	if root.Manifest.PackageManager != nil {
		name, _, _ := strings.Cut(*root.Manifest.PackageManager, "@")
		if slices.Contains(Managers, name) {
			return name, true
		}
	}
	return "", false
}

func runCommand(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
