package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/monolint/monolint/internal/domain"
)

const (
	errorIcon   = "⨯"
	warningIcon = "⚠️"
	fixedIcon   = "✓"
)

var (
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	dim     = lipgloss.Color("#6B7280") // muted gray
	accent  = lipgloss.Color("#22D3EE") // cyan
)

var (
	boldStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fixedTagStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// RenderIssues renders every issue, grouped by the manifest it applies to.
func RenderIssues(list *domain.IssuesList) string {
	var b strings.Builder

	for _, group := range list.Groups() {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s found in %s:\n", plural(len(group.Issues), "issue"), boldStyle.Render(group.Scope.String()))

		for _, issue := range group.Issues {
			b.WriteString("\n")
			fmt.Fprintf(&b, " %s %s %s\n",
				levelTag(issue.Level()),
				boldStyle.Render(issue.Why()),
				dimStyle.Render(issue.Name()),
			)
			b.WriteString(issue.Message())
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderFooter renders the issue counts summary of a run.
func RenderFooter(list *domain.IssuesList, packages int, elapsed time.Duration) string {
	counts := fmt.Sprintf("(%d %s, %d %s, %d %s)",
		list.LenByLevel(domain.LevelError), errorIcon,
		list.LenByLevel(domain.LevelWarning), warningIcon,
		list.LenByLevel(domain.LevelFixed), fixedIcon,
	)

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s found %s across %s in %s.\n",
		plural(list.TotalLen(), "issue"),
		dimStyle.Render(counts),
		plural(packages, "package"),
		elapsed.Round(time.Microsecond),
	)
	b.WriteString(dimStyle.Render(" Note: use `-i` to ignore dependencies, `-r` to ignore rules, `-p` to ignore packages, and `-f` to autofix fixable issues."))
	b.WriteString("\n")
	return b.String()
}

// RenderSuccess renders the line printed when a run finds nothing.
func RenderSuccess() string {
	return "\n" + passStyle.Render(fixedIcon+" No issues found") + "\n"
}

// RenderError renders a fatal error block.
func RenderError(title string, err error) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, " %s %s\n", levelTag(domain.LevelError), boldStyle.Render(title))
	fmt.Fprintf(&b, "   %s\n", dimStyle.Render(err.Error()))
	return b.String()
}

// RenderRules renders the rule catalog as an aligned table.
func RenderRules(rules []domain.RuleInfo) string {
	width := 0
	for _, r := range rules {
		width = max(width, len(r.Name))
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, r := range rules {
		fixable := ""
		if r.Fixable {
			fixable = passStyle.Render(" (fixable)")
		}
		fmt.Fprintf(&b, "  %s %s  %s%s\n",
			levelIcon(r.Level),
			padRight(r.Name, width),
			dimStyle.Render(r.Description),
			fixable,
		)
	}
	return b.String()
}

// WriteJSON writes the flattened issue report as indented JSON.
func WriteJSON(w io.Writer, list *domain.IssuesList) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(list.Report())
}

func levelTag(level domain.Level) string {
	switch level {
	case domain.LevelWarning:
		return warnTagStyle.Render(warningIcon + " warning")
	case domain.LevelFixed:
		return fixedTagStyle.Render(fixedIcon + " fixed")
	default:
		return errorTagStyle.Render(errorIcon + " error")
	}
}

func levelIcon(level domain.Level) string {
	switch level {
	case domain.LevelWarning:
		return warnTagStyle.Render(warningIcon)
	default:
		return errorTagStyle.Render(errorIcon)
	}
}

// plural formats n followed by word, adding an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
