// Copyright © 2018 One Concern

// Package model describes the base objects manipulated by versiond.
//
// The object model for versiond is composed of:
//
//	VersionRecord:
//	  One released build of the product: a semantic version, an upstream base,
//	  a strictly increasing build number and the channel it was released on.
//
//	VersionStore:
//	  The whole registry document. It holds the current release, the history of
//	  previous releases (most recent first) and the channel to version mapping.
//
//	Channels:
//	  A named release track (stable, beta, dev, canary) pointing to one version.
//
// A VersionStore is only ever persisted after Validate accepted it, and every
// reader validates it again after loading.
package model
