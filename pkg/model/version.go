/*
 * Copyright © 2019 One Concern
 *
 */

package model

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses a version string of the form MAJOR.MINOR.PATCH.
//
// Note that we are stricter than semver: pre-release and build metadata
// suffixes are rejected, as is a leading "v" or a component with a leading zero (01.2.3).
func ParseVersion(version string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %v", version, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH without suffix", version)
	}
	return v, nil
}

// ValidVersion tells if the version string is a well-formed MAJOR.MINOR.PATCH
func ValidVersion(version string) bool {
	_, err := ParseVersion(version)
	return err == nil
}
