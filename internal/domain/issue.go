package domain

import (
	"fmt"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Level is the severity of an issue. Fixed is the state an Error or Warning
// reaches after a successful fix.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelFixed
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelFixed:
		return "fixed"
	default:
		return "error"
	}
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*l = LevelError
	case "warning":
		*l = LevelWarning
	case "fixed":
		*l = LevelFixed
	default:
		return fmt.Errorf("unknown level %q", text)
	}
	return nil
}

// ScopeKind tells where an issue applies.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeRoot
	ScopePackage
)

// Scope identifies the target of an issue. It is comparable and used as the
// grouping key of an IssuesList.
type Scope struct {
	Kind ScopeKind
	// Path is the "./"-prefixed package directory for ScopePackage.
	Path string
}

func NoScope() Scope                 { return Scope{Kind: ScopeNone} }
func RootScope() Scope               { return Scope{Kind: ScopeRoot} }
func PackageScope(path string) Scope { return Scope{Kind: ScopePackage, Path: path} }

func (s Scope) String() string {
	switch s.Kind {
	case ScopeRoot:
		return "./" + ManifestFile
	case ScopePackage:
		return s.Path + "/" + ManifestFile
	default:
		return "./"
	}
}

// Issue is one finding of a rule. Fix repairs it on disk; rules without a
// repair implement Fix as a successful no-op.
type Issue interface {
	Name() string
	Level() Level
	Message() string
	Why() string
	Fix(fc *FixContext, scope Scope) error
}

// FixContext carries the collaborators a fix may need.
type FixContext struct {
	// Root is the absolute workspace root directory.
	Root     string
	Select   SelectPolicy
	Prompter Prompter
	Editor   ManifestEditor
}

// Dir returns the directory whose manifest a fix for scope targets.
func (fc *FixContext) Dir(scope Scope) string {
	if scope.Kind == ScopePackage {
		return filepath.Join(fc.Root, filepath.FromSlash(scope.Path))
	}
	return fc.Root
}

// IssuesList is the ordered collection of issues found in a run.
type IssuesList struct {
	groups  *orderedmap.OrderedMap[Scope, []Issue]
	ignored map[string]bool
}

// NewIssuesList creates an empty list that drops any issue named in ignored.
func NewIssuesList(ignored []string) *IssuesList {
	set := make(map[string]bool, len(ignored))
	for _, name := range ignored {
		set[name] = true
	}
	return &IssuesList{
		groups:  orderedmap.New[Scope, []Issue](),
		ignored: set,
	}
}

// Add records issue under scope. A nil issue is dropped.
func (l *IssuesList) Add(scope Scope, issue Issue) {
	if issue == nil {
		return
	}
	l.AddRaw(scope, issue)
}

// AddRaw records issue under scope unless its rule is ignored.
func (l *IssuesList) AddRaw(scope Scope, issue Issue) {
	if l.ignored[issue.Name()] {
		return
	}
	existing, _ := l.groups.Get(scope)
	l.groups.Set(scope, append(existing, issue))
}

// TotalLen is the number of issues across all scopes.
func (l *IssuesList) TotalLen() int {
	total := 0
	for pair := l.groups.Oldest(); pair != nil; pair = pair.Next() {
		total += len(pair.Value)
	}
	return total
}

// LenByLevel counts the issues currently at level.
func (l *IssuesList) LenByLevel(level Level) int {
	count := 0
	for pair := l.groups.Oldest(); pair != nil; pair = pair.Next() {
		for _, issue := range pair.Value {
			if issue.Level() == level {
				count++
			}
		}
	}
	return count
}

// Fix applies every fix in discovery order. The first error aborts.
func (l *IssuesList) Fix(fc *FixContext) error {
	for pair := l.groups.Oldest(); pair != nil; pair = pair.Next() {
		for _, issue := range pair.Value {
			if err := issue.Fix(fc, pair.Key); err != nil {
				return fmt.Errorf("fixing %s in %s: %w", issue.Name(), pair.Key, err)
			}
		}
	}
	return nil
}

// IssueGroup is the issues of one scope.
type IssueGroup struct {
	Scope  Scope
	Issues []Issue
}

// Groups returns the scopes and their issues in discovery order.
func (l *IssuesList) Groups() []IssueGroup {
	groups := make([]IssueGroup, 0, l.groups.Len())
	for pair := l.groups.Oldest(); pair != nil; pair = pair.Next() {
		groups = append(groups, IssueGroup{Scope: pair.Key, Issues: pair.Value})
	}
	return groups
}

// IssueReport is the flattened, serializable form of one issue.
type IssueReport struct {
	Scope   string `json:"scope"`
	Name    string `json:"name"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Why     string `json:"why"`
}

// Report flattens the list for JSON output.
func (l *IssuesList) Report() []IssueReport {
	reports := []IssueReport{}
	for pair := l.groups.Oldest(); pair != nil; pair = pair.Next() {
		for _, issue := range pair.Value {
			reports = append(reports, IssueReport{
				Scope:   pair.Key.String(),
				Name:    issue.Name(),
				Level:   issue.Level(),
				Message: issue.Message(),
				Why:     issue.Why(),
			})
		}
	}
	return reports
}
