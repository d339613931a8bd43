package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/monolint/monolint/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		sel   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .monolint.yaml configuration file",
		Long:  "Create a .monolint.yaml in the workspace root with every option documented.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, domain.ConfigFile)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", domain.ConfigFile)
				}
			}

			policy := domain.SelectPolicy(sel)
			if err := (domain.Config{Select: policy}).Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(policy)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", domain.ConfigFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&sel, "select", "", "Default version policy for fixes (highest, lowest)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .monolint.yaml")

	return cmd
}

func generateConfig(policy domain.SelectPolicy) string {
	result := "# monolint configuration\n# Values here are merged with command-line flags and the \"monolint\" block of package.json.\n\n"

	if policy != domain.SelectPrompt {
		result += fmt.Sprintf("select: %s\n\n", policy)
	} else {
		result += "# Version kept when fixing diverging dependencies; prompts when unset.\n# select: highest\n\n"
	}

	result += `# fix: false
# no_install: false
# fail_on_warnings: false

# ignore_dependency:
#   - react
#   - "@types/*"
#   - typescript@5.4.5

# ignore_package:
#   - docs
#   - ./apps/legacy

# ignore_rule:
`
	for _, r := range domain.Rules {
		result += fmt.Sprintf("#   - %s\n", r.Name)
	}

	return result
}
