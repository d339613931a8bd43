package domain

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionKind distinguishes exact versions from range requirements.
type VersionKind int

const (
	VersionExact VersionKind = iota
	VersionRange
)

// Version is a declared dependency version. Exact versions order by their own
// components, ranges by the components of their first comparator.
type Version struct {
	kind        VersionKind
	raw         string
	canon       string
	major       uint64
	minor       uint64
	patch       uint64
	pre         string
	comparators int
}

// ParseVersion tries a strict exact version first and falls back to a range
// requirement. Text that is neither returns an error.
func ParseVersion(text string) (Version, error) {
	trimmed := strings.TrimSpace(text)

	if v, err := semver.StrictNewVersion(trimmed); err == nil {
		return Version{
			kind:        VersionExact,
			raw:         text,
			canon:       v.String(),
			major:       v.Major(),
			minor:       v.Minor(),
			patch:       v.Patch(),
			pre:         v.Prerelease(),
			comparators: 1,
		}, nil
	}

	c, err := semver.NewConstraint(trimmed)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", text, err)
	}

	v := Version{kind: VersionRange, raw: text, canon: c.String()}
	if lower := firstComparator(trimmed); lower != nil {
		v.major = lower.Major()
		v.minor = lower.Minor()
		v.patch = lower.Patch()
		v.pre = lower.Prerelease()
		v.comparators = 1
	}
	return v, nil
}

// firstComparator extracts the version of the first comparator of a range.
// Wildcard components truncate the version ("1.x" is 1.0.0); a bare
// wildcard yields nil, which means the range has no comparators.
func firstComparator(text string) *semver.Version {
	alt, _, _ := strings.Cut(text, "||")
	fields := strings.FieldsFunc(alt, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	var token string
	for _, f := range fields {
		f = strings.TrimLeft(f, "=<>~^!")
		if f != "" {
			token = strings.TrimPrefix(strings.TrimPrefix(f, "v"), "V")
			break
		}
	}
	if token == "" {
		return nil
	}

	var kept []string
	for _, part := range strings.SplitN(token, ".", 3) {
		if part == "x" || part == "X" || part == "*" || part == "" {
			break
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return nil
	}

	v, err := semver.NewVersion(strings.Join(kept, "."))
	if err != nil {
		return nil
	}
	return v
}

func (v Version) Kind() VersionKind  { return v.kind }
func (v Version) Major() uint64      { return v.major }
func (v Version) Minor() uint64      { return v.minor }
func (v Version) Patch() uint64      { return v.patch }
func (v Version) Prerelease() string { return v.pre }

// String returns the text exactly as it was declared.
func (v Version) String() string { return v.raw }

// IsValid reports whether the version takes part in ordering. Ranges
// without any comparator ("*", "x") do not.
func (v Version) IsValid() bool {
	return v.kind == VersionExact || v.comparators > 0
}

// Equal reports structural equality.
func (v Version) Equal(other Version) bool {
	return v.kind == other.kind && v.canon == other.canon
}

// Compare orders by major, minor, patch and then prerelease, where a
// release sorts above any of its prereleases.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.major, other.major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.minor, other.minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.patch, other.patch); c != 0 {
		return c
	}
	return comparePrerelease(v.pre, other.pre)
}

func comparePrerelease(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}
