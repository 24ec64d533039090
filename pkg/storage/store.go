// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
)

const (
	// OverWrite replaces an existing object on Put
	OverWrite = false

	// NoOverWrite refuses to replace an existing object on Put
	NoOverWrite = true
)

// Store implementations know how to write objects to a K/V model.
//
// Typically this is something file system-like. Examples are S3, local FS, NFS, ...
//
// Implementations must make Put all-or-nothing: a concurrent or later Get observes
// either the previous object or the new one, never a partially written object.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, bool) error
}
