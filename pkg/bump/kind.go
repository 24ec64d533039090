// Copyright © 2018 One Concern

package bump

import (
	"fmt"

	"github.com/oneconcern/versiond/pkg/model"
)

// Kind of version increment
type Kind string

// Supported version increments
const (
	Major Kind = "major"
	Minor Kind = "minor"
	Patch Kind = "patch"
)

// DefaultKind is used when no kind is specified
const DefaultKind = Patch

// Kinds lists the supported version increments
func Kinds() []Kind {
	return []Kind{Major, Minor, Patch}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a string into a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Major, Minor, Patch:
		return k, nil
	default:
		return "", ErrInvalidKind.Wrap(fmt.Errorf("got %q", s))
	}
}

// NextVersion computes the version following the given one:
//
//	major: X.Y.Z -> (X+1).0.0
//	minor: X.Y.Z -> X.(Y+1).0
//	patch: X.Y.Z -> X.Y.(Z+1)
func NextVersion(version string, kind Kind) (string, error) {
	v, err := model.ParseVersion(version)
	if err != nil {
		return "", err
	}
	switch kind {
	case Major:
		next := v.IncMajor()
		return next.String(), nil
	case Minor:
		next := v.IncMinor()
		return next.String(), nil
	case Patch:
		next := v.IncPatch()
		return next.String(), nil
	default:
		return "", ErrInvalidKind.Wrap(fmt.Errorf("got %q", kind))
	}
}
