// Copyright © 2018 One Concern

package web

import "github.com/oneconcern/versiond/pkg/errors"

var errMissingStore = errors.New("registry API requires a version store")
