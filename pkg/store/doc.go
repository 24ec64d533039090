// Copyright © 2018 One Concern

// Package store persists the version document on a storage backend.
//
// The document is always read and written as a whole. It is validated
// on every Load and before every Save, so that neither the registry API nor
// the bumper ever operate on a document which breaks an invariant.
package store
