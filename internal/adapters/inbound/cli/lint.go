package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/monolint/monolint/internal/adapters/outbound/config"
	"github.com/monolint/monolint/internal/adapters/outbound/gitinfo"
	"github.com/monolint/monolint/internal/adapters/outbound/installer"
	"github.com/monolint/monolint/internal/adapters/outbound/manifest"
	"github.com/monolint/monolint/internal/adapters/outbound/tui"
	"github.com/monolint/monolint/internal/adapters/outbound/workspace"
	"github.com/monolint/monolint/internal/application"
	"github.com/monolint/monolint/internal/domain"
)

func newLintCmd() *cobra.Command {
	var (
		flags      domain.Config
		sel        string
		jsonOutput bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "monolint [path]",
		Short: "Lint and autofix JavaScript monorepos",
		Long: "Monolint checks the root package.json and every workspace package for " +
			"misconfigured fields, unordered or empty dependency blocks, and diverging " +
			"dependency versions, and can fix most issues in place.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			ctx := application.WithLogger(cmd.Context(), logger)

			flags.Select = domain.SelectPolicy(sel)
			if err := flags.Validate(); err != nil {
				return &fatalError{title: "Invalid options", err: err}
			}

			reader := manifest.NewReader()
			svc := application.NewLintService(reader, workspace.NewResolver(reader), config.New())

			result, err := svc.Lint(ctx, path, flags)
			if err != nil {
				return &fatalError{title: "Failed to collect packages", err: err}
			}

			if result.Config.Fix {
				prompter := tui.NewSelectPrompter(os.Stdin, cmd.ErrOrStderr())
				inst := installer.New(prompter,
					installer.WithOutput(cmd.OutOrStdout()),
					installer.WithLogger(logger),
				)
				fixSvc := application.NewFixService(manifest.NewEditor(), gitinfo.New(), inst, prompter)
				if err := fixSvc.Fix(ctx, result); err != nil {
					return &fatalError{title: "Failed to fix issues", err: err}
				}
			}

			issues := result.Issues
			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				if err := tui.WriteJSON(out, issues); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			case issues.TotalLen() == 0:
				fmt.Fprint(out, tui.RenderSuccess())
				return nil
			default:
				fmt.Fprint(out, tui.RenderIssues(issues))
				fmt.Fprint(out, tui.RenderFooter(issues, len(result.Packages), time.Since(start)))
			}

			errs := issues.LenByLevel(domain.LevelError)
			warnings := issues.LenByLevel(domain.LevelWarning)
			if errs > 0 || (result.Config.FailOnWarnings && warnings > 0) {
				return errIssuesFound
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.Fix, "fix", "f", false, "Automatically fix fixable issues")
	f.StringVarP(&sel, "select", "s", "", "Version to pick when fixing diverging dependencies (highest, lowest)")
	f.BoolVar(&flags.NoInstall, "no-install", false, "Skip running the package manager install after fixing")
	f.BoolVar(&flags.FailOnWarnings, "fail-on-warnings", false, "Exit with status 1 when warnings remain")
	f.StringSliceVarP(&flags.IgnoreDependency, "ignore-dependency", "i", nil, "Dependency patterns to ignore (name, name@version, prefix*, *suffix)")
	f.StringSliceVarP(&flags.IgnorePackage, "ignore-package", "p", nil, "Package names or paths to ignore")
	f.StringSliceVarP(&flags.IgnoreRule, "ignore-rule", "r", nil, "Rule names to ignore")
	f.BoolVar(&jsonOutput, "json", false, "Output issues as JSON")
	f.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
