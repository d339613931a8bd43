package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/monolint/monolint/internal/domain"
)

// EmptyDependencies is reported for a dependency block declared as {}.
type EmptyDependencies struct {
	fixState
	Kind domain.DependencyKind
}

// CheckEmptyDependencies reports the block of the given kind when it is
// present but has no entries.
func CheckEmptyDependencies(pkg *domain.Package, kind domain.DependencyKind) domain.Issue {
	block := pkg.Manifest.Block(kind)
	if block == nil || block.Len() > 0 {
		return nil
	}
	return &EmptyDependencies{Kind: kind}
}

func (i *EmptyDependencies) Name() string        { return domain.RuleEmptyDependencies }
func (i *EmptyDependencies) Level() domain.Level { return i.levelOr(domain.LevelError) }

func (i *EmptyDependencies) Message() string {
	return box(fmt.Sprintf(`  -   "%s": {}   ← field is empty.`, i.Kind))
}

func (i *EmptyDependencies) Why() string {
	return "package.json should not have empty dependencies fields."
}

// Fix removes the empty block. A block that is already gone or no longer
// empty counts as repaired.
func (i *EmptyDependencies) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if !targetsManifest(scope) {
		return nil
	}
	field := i.Kind.String()
	err := fc.Editor.EditManifest(fc.Dir(scope), func(doc domain.ManifestDocument) (bool, error) {
		if !doc.IsObject(field) || doc.Len(field) > 0 {
			return false, nil
		}
		doc.Delete(field)
		return true, nil
	})
	if err != nil {
		return err
	}
	i.markFixed()
	return nil
}

// UnorderedDependencies is reported for a block whose keys are not sorted.
type UnorderedDependencies struct {
	fixState
	Kind domain.DependencyKind
}

// CheckUnorderedDependencies reports the block of the given kind when its
// names are not in ascending order.
func CheckUnorderedDependencies(pkg *domain.Package, kind domain.DependencyKind) domain.Issue {
	block := pkg.Manifest.Block(kind)
	if block == nil || block.Len() < 2 {
		return nil
	}
	names := make([]string, 0, block.Len())
	for pair := block.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	if slices.IsSorted(names) {
		return nil
	}
	return &UnorderedDependencies{Kind: kind}
}

func (i *UnorderedDependencies) Name() string        { return domain.RuleUnorderedDependencies }
func (i *UnorderedDependencies) Level() domain.Level { return i.levelOr(domain.LevelError) }

func (i *UnorderedDependencies) Message() string {
	return box(
		fmt.Sprintf(`  -   "%s": {   ← keys aren't sorted.`, i.Kind),
		"  -     ...",
		"  -   }",
	)
}

func (i *UnorderedDependencies) Why() string {
	return fmt.Sprintf("%s should be ordered alphabetically.", i.Kind)
}

// Fix rewrites the block with its entries sorted by name. Values are kept
// as declared.
func (i *UnorderedDependencies) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if !targetsManifest(scope) {
		return nil
	}
	field := i.Kind.String()
	err := fc.Editor.EditManifest(fc.Dir(scope), func(doc domain.ManifestDocument) (bool, error) {
		entries := doc.Entries(field)
		if len(entries) != doc.Len(field) {
			return false, fmt.Errorf("%s contains non-string values", field)
		}
		sorted := slices.Clone(entries)
		slices.SortStableFunc(sorted, byKey)
		if slices.Equal(entries, sorted) {
			return false, nil
		}
		return true, doc.SetEntries(sorted, field)
	})
	if err != nil {
		return err
	}
	i.markFixed()
	return nil
}

func byKey(a, b domain.Entry) int { return strings.Compare(a.Key, b.Key) }

// mergeEntries adds moved to the block at field. Names already declared in
// the block keep their version. A block that was sorted stays sorted.
func mergeEntries(doc domain.ManifestDocument, field string, moved []domain.Entry) error {
	existing := doc.Entries(field)
	if len(existing) != doc.Len(field) {
		for _, e := range moved {
			if doc.Has(field, e.Key) {
				continue
			}
			if err := doc.SetString(e.Value, field, e.Key); err != nil {
				return err
			}
		}
		return nil
	}

	sorted := slices.IsSortedFunc(existing, byKey)
	merged := existing
	for _, e := range moved {
		if !doc.Has(field, e.Key) {
			merged = append(merged, e)
		}
	}
	if len(merged) == len(existing) {
		return nil
	}
	if sorted {
		slices.SortStableFunc(merged, byKey)
	}
	return doc.SetEntries(merged, field)
}
