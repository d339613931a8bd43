package rules

import (
	"fmt"
	"strings"

	"github.com/monolint/monolint/internal/domain"
)

const typesPrefix = "@types/"

// TypesInDependencies is reported for a private package that declares type
// definition packages as runtime dependencies.
type TypesInDependencies struct {
	fixState
	Path  string
	Names []string
}

// CheckTypesInDependencies reports @types/* entries in the dependencies of
// a private package.
func CheckTypesInDependencies(pkg *domain.Package) domain.Issue {
	if !pkg.Manifest.IsPrivate() || pkg.Manifest.Dependencies == nil {
		return nil
	}
	var names []string
	for pair := pkg.Manifest.Dependencies.Oldest(); pair != nil; pair = pair.Next() {
		if strings.HasPrefix(pair.Key, typesPrefix) {
			names = append(names, pair.Key)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &TypesInDependencies{Path: pkg.Path, Names: names}
}

func (i *TypesInDependencies) Name() string        { return domain.RuleTypesInDependencies }
func (i *TypesInDependencies) Level() domain.Level { return i.levelOr(domain.LevelError) }

func (i *TypesInDependencies) Message() string {
	return fmt.Sprintf("%s/%s is private but has `@types/*` dependencies in `dependencies` instead of `devDependencies`.",
		i.Path, domain.ManifestFile)
}

func (i *TypesInDependencies) Why() string {
	return "Private packages shouldn't have `@types/*` in `dependencies`: " + strings.Join(i.Names, ", ")
}

// Fix moves each flagged entry to devDependencies with its declared
// version. An existing devDependencies entry of the same name wins, and a
// dependencies block left empty is removed.
func (i *TypesInDependencies) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if !targetsManifest(scope) {
		return nil
	}
	runtime := domain.Dependencies.String()
	dev := domain.DevDependencies.String()

	err := fc.Editor.EditManifest(fc.Dir(scope), func(doc domain.ManifestDocument) (bool, error) {
		var moved []domain.Entry
		for _, name := range i.Names {
			if version, ok := doc.GetString(runtime, name); ok {
				moved = append(moved, domain.Entry{Key: name, Value: version})
			}
		}
		if len(moved) == 0 {
			return false, nil
		}
		if err := mergeEntries(doc, dev, moved); err != nil {
			return false, err
		}
		for _, e := range moved {
			doc.Delete(runtime, e.Key)
		}
		if doc.IsObject(runtime) && doc.Len(runtime) == 0 {
			doc.Delete(runtime)
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	i.markFixed()
	return nil
}
