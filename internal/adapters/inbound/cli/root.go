package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/monolint/monolint/internal/adapters/outbound/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// errIssuesFound signals a run whose issues warrant a failing exit status.
// The issues have already been printed.
var errIssuesFound = errors.New("issues found")

// fatalError is an error that aborted a run, printed under title.
type fatalError struct {
	title string
	err   error
}

func (e *fatalError) Error() string { return e.title + ": " + e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	cmd := newLintCmd()
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the command line and prints fatal errors to stderr. A
// non-nil error means the process should exit with status 1.
func Execute() error {
	err := newRootCmd().Execute()
	reportError(os.Stderr, err)
	return err
}

func reportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errIssuesFound) {
		return
	}
	var fe *fatalError
	if errors.As(err, &fe) {
		fmt.Fprint(w, tui.RenderError(fe.title, fe.err))
		return
	}
	fmt.Fprint(w, tui.RenderError("Command failed", err))
}
