// Package rules implements the lint checks over loaded manifests and the
// fixes that repair them.
package rules

import (
	"strings"

	"github.com/monolint/monolint/internal/domain"
)

// fixState tracks whether an issue has been repaired.
type fixState struct {
	fixed bool
}

func (s *fixState) levelOr(reported domain.Level) domain.Level {
	if s.fixed {
		return domain.LevelFixed
	}
	return reported
}

func (s *fixState) markFixed() { s.fixed = true }

// targetsManifest reports whether scope names a manifest a fix may edit.
func targetsManifest(scope domain.Scope) bool {
	return scope.Kind == domain.ScopeRoot || scope.Kind == domain.ScopePackage
}

// box renders the framed object snippet used by field-level messages.
func box(lines ...string) string {
	var b strings.Builder
	b.WriteString("  │ {\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("  │ }")
	return b.String()
}
