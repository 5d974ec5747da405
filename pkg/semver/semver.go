// Package semver parses and bumps MAJOR.MINOR.PATCH release versions.
package semver

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/openscad-ofl/ofltools/pkg/errors"
)

// TagPrefix precedes the version in release tags.
const TagPrefix = "v"

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Mode selects the version component to increment.
type Mode string

const (
	Major Mode = "major"
	Minor Mode = "minor"
	Patch Mode = "patch"
)

// Version is a release version.
type Version struct {
	Major, Minor, Patch int
}

// Parse parses a version without tag prefix, e.g. "3.1.4".
func Parse(s string) (Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, errors.New(errors.ErrCodeInvalidVersion, "%s does not match the expected version pattern", s)
	}
	var v Version
	for i, dst := range []*int{&v.Major, &v.Minor, &v.Patch} {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, errors.Wrap(errors.ErrCodeInvalidVersion, err, "version %s", s)
		}
		*dst = n
	}
	return v, nil
}

// Bump returns v with the component selected by mode incremented and the
// lower components reset.
func (v Version) Bump(mode Mode) (Version, error) {
	switch mode {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	default:
		return v, errors.New(errors.ErrCodeInvalidInput, "unexpected bump mode %q", mode)
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the release tag for v, e.g. "v3.1.4".
func (v Version) Tag() string {
	return TagPrefix + v.String()
}
