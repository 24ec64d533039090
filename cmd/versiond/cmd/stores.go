// Copyright © 2018 One Concern

package cmd

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/oneconcern/versiond/pkg/storage"
	"github.com/oneconcern/versiond/pkg/storage/localfs"
	"github.com/oneconcern/versiond/pkg/storage/sthree"
	"github.com/oneconcern/versiond/pkg/store"
	"github.com/opentracing/opentracing-go"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// newBackend builds the storage backend described by the configuration.
//
// Writers need an atomic local store. Readers use a plain one, which does not
// need write access to the store directory.
func newBackend(c *CLIConfig, atomic bool) (storage.Store, error) {
	switch c.Store.Backend {
	case backendS3:
		awsConfig := aws.NewConfig().
			WithRegion(c.Store.Region).
			WithCredentialsChainVerboseErrors(true)
		if c.Store.Endpoint != "" {
			awsConfig = awsConfig.WithEndpoint(c.Store.Endpoint).WithS3ForcePathStyle(true)
		}
		prefix := c.Store.Path
		if prefix != "" && prefix[len(prefix)-1] != '/' {
			prefix += "/"
		}
		return sthree.New(sthree.Bucket(c.Store.Bucket), sthree.Prefix(prefix), sthree.AWSConfig(awsConfig))
	default:
		fs := afero.NewBasePathFs(afero.NewOsFs(), c.Store.Path)
		if atomic {
			return localfs.NewAtomic(fs)
		}
		return localfs.New(fs), nil
	}
}

// newVersionStore builds the version store, with storage calls traced and logged
func newVersionStore(c *CLIConfig, atomic bool, tr opentracing.Tracer, logger *zap.Logger) (*store.Store, error) {
	backend, err := newBackend(c, atomic)
	if err != nil {
		return nil, err
	}
	return store.New(storage.Instrument(tr, logger, backend), store.Key(c.Store.File)), nil
}
