// Copyright © 2018 One Concern

// Package status declares the errors returned by the version store.
package status

import "github.com/oneconcern/versiond/pkg/errors"

var (
	// ErrReadStore indicates the version document could not be read from its backend
	ErrReadStore = errors.New("failed to read version store")

	// ErrCorruptStore indicates the version document does not parse or breaks an invariant
	ErrCorruptStore = errors.New("version store is corrupt")

	// ErrWriteStore indicates the version document could not be written to its backend
	ErrWriteStore = errors.New("failed to write version store")

	// ErrInvalidState indicates an attempt to save a document that breaks an invariant
	ErrInvalidState = errors.New("refusing to save an inconsistent version store")

	// ErrStoreExists indicates a seed over an already existing document
	ErrStoreExists = errors.New("version store already exists")
)
