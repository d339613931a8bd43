package rules

import (
	"fmt"

	"github.com/monolint/monolint/internal/domain"
)

// RootPrivateField is reported when the root manifest is not private.
type RootPrivateField struct {
	fixState
}

// CheckRootPrivate reports a root manifest without "private": true.
func CheckRootPrivate(root *domain.RootPackage) domain.Issue {
	if root.Manifest.IsPrivate() {
		return nil
	}
	return &RootPrivateField{}
}

func (i *RootPrivateField) Name() string        { return domain.RuleRootPrivateField }
func (i *RootPrivateField) Level() domain.Level { return i.levelOr(domain.LevelError) }

func (i *RootPrivateField) Message() string {
	return box(`  +   "private": true   ← missing private field.`)
}

func (i *RootPrivateField) Why() string {
	return "The root package.json should be private to prevent accidentally publishing it to a registry."
}

func (i *RootPrivateField) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if scope.Kind != domain.ScopeRoot {
		return nil
	}
	err := fc.Editor.EditManifest(fc.Dir(scope), func(doc domain.ManifestDocument) (bool, error) {
		return true, doc.SetBool(true, "private")
	})
	if err != nil {
		return err
	}
	i.markFixed()
	return nil
}

// RootPackageManager is reported when the root manifest has no
// packageManager field. The version in use cannot be inferred, so it has
// no repair.
type RootPackageManager struct{}

// CheckRootPackageManager reports a root manifest without packageManager.
func CheckRootPackageManager(root *domain.RootPackage) domain.Issue {
	if pm := root.Manifest.PackageManager; pm != nil && *pm != "" {
		return nil
	}
	return &RootPackageManager{}
}

func (i *RootPackageManager) Name() string        { return domain.RuleRootPackageManager }
func (i *RootPackageManager) Level() domain.Level { return domain.LevelError }

func (i *RootPackageManager) Message() string {
	return box(`  +   "packageManager": "..."   ← missing packageManager field.`)
}

func (i *RootPackageManager) Why() string {
	return "The root package.json should specify the package manager and version to use. Useful for tools like corepack."
}

func (i *RootPackageManager) Fix(*domain.FixContext, domain.Scope) error { return nil }

// RootDependencies is reported when the root manifest declares runtime
// dependencies.
type RootDependencies struct {
	fixState
}

// CheckRootDependencies reports a root manifest with a dependencies block.
func CheckRootDependencies(root *domain.RootPackage) domain.Issue {
	if root.Manifest.Dependencies == nil {
		return nil
	}
	return &RootDependencies{}
}

func (i *RootDependencies) Name() string        { return domain.RuleRootDependencies }
func (i *RootDependencies) Level() domain.Level { return i.levelOr(domain.LevelWarning) }

func (i *RootDependencies) Message() string {
	return fmt.Sprintf("./%s shouldn't have any `dependencies`, only `devDependencies`.", domain.ManifestFile)
}

func (i *RootDependencies) Why() string {
	return "The root package.json is private, so making a distinction is useless."
}

// Fix moves every root dependency into devDependencies. Entries already
// present in devDependencies keep their declared version.
func (i *RootDependencies) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if scope.Kind != domain.ScopeRoot {
		return nil
	}
	runtime := domain.Dependencies.String()
	dev := domain.DevDependencies.String()

	err := fc.Editor.EditManifest(fc.Dir(scope), func(doc domain.ManifestDocument) (bool, error) {
		if !doc.Has(runtime) {
			return false, nil
		}
		if err := mergeEntries(doc, dev, doc.Entries(runtime)); err != nil {
			return false, err
		}
		doc.Delete(runtime)
		return true, nil
	})
	if err != nil {
		return err
	}
	i.markFixed()
	return nil
}
