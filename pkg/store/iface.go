// Copyright © 2018 One Concern

package store

import (
	"context"

	"github.com/oneconcern/versiond/pkg/model"
)

// A Loader reads the whole version document
type Loader interface {
	Load(context.Context) (*model.VersionStore, error)
}

// A Saver replaces the whole version document
type Saver interface {
	Save(context.Context, *model.VersionStore) error
}

// A Repository manages the version document in some storage mechanism
type Repository interface {
	Loader
	Saver
}
