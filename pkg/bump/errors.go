// Copyright © 2018 One Concern

package bump

import "github.com/oneconcern/versiond/pkg/errors"

var (
	// ErrInvalidKind indicates a bump kind other than major, minor or patch
	ErrInvalidKind = errors.New("invalid bump kind: use major, minor or patch")

	// ErrInvalidOverride indicates an override value which cannot be applied to a release
	ErrInvalidOverride = errors.New("invalid release override")
)
