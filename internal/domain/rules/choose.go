package rules

import (
	"fmt"
	"slices"

	"github.com/monolint/monolint/internal/domain"
)

const (
	markerLowest  = "↓ lowest"
	markerHighest = "↑ highest"
	markerBetween = "∼ between"
)

// sortVersions orders versions ascending. Ties keep their input order.
func sortVersions(versions []domain.Version) []domain.Version {
	sorted := slices.Clone(versions)
	slices.SortStableFunc(sorted, func(a, b domain.Version) int {
		return a.Compare(b)
	})
	return sorted
}

// marker annotates v relative to the bounds of a sorted set.
func marker(v domain.Version, sorted []domain.Version) string {
	switch {
	case v.Equal(sorted[len(sorted)-1]):
		return markerHighest
	case v.Equal(sorted[0]):
		return markerLowest
	default:
		return markerBetween
	}
}

// chooseVersion picks the version a fix converges on. The select policy
// wins; otherwise the operator is prompted with the distinct versions. ok
// is false when no version was chosen.
func chooseVersion(fc *domain.FixContext, name string, versions []domain.Version) (string, bool, error) {
	if len(versions) == 0 {
		return "", false, nil
	}
	sorted := sortVersions(versions)

	switch fc.Select {
	case domain.SelectHighest:
		return sorted[len(sorted)-1].String(), true, nil
	case domain.SelectLowest:
		return sorted[0].String(), true, nil
	}

	if fc.Prompter == nil {
		return "", false, nil
	}

	var distinct []domain.Version
	for _, v := range sorted {
		if !slices.ContainsFunc(distinct, func(d domain.Version) bool { return d.String() == v.String() }) {
			distinct = append(distinct, v)
		}
	}
	options := make([]string, len(distinct))
	for idx, v := range distinct {
		options[idx] = fmt.Sprintf("%s   %s", v, marker(v, sorted))
	}

	idx, ok, err := fc.Prompter.SelectOne(fmt.Sprintf("Select the version of %s to use:", name), options)
	if err != nil {
		return "", false, fmt.Errorf("prompting for %s: %w", name, err)
	}
	if !ok || idx < 0 || idx >= len(distinct) {
		return "", false, nil
	}
	return distinct[idx].String(), true, nil
}
