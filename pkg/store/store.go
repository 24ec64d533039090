// Copyright © 2018 One Concern

package store

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"

	"github.com/oneconcern/versiond/pkg/model"
	"github.com/oneconcern/versiond/pkg/storage"
	"github.com/oneconcern/versiond/pkg/store/status"
)

// DefaultKey is the name of the version document on its backend
const DefaultKey = "version.json"

// Option configures the version store
type Option func(*Store)

// Key sets the name of the version document on the backend
func Key(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New builds a version store over a storage backend
func New(backend storage.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

var _ Repository = &Store{}

// Store reads and writes the version document
type Store struct {
	backend storage.Store
	key     string
}

// Load reads, parses and validates the version document
func (s *Store) Load(ctx context.Context) (*model.VersionStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.ErrReadStore.Wrap(err)
	}

	rdr, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, status.ErrReadStore.Wrap(err)
	}
	defer func() {
		_ = rdr.Close()
	}()

	b, err := ioutil.ReadAll(rdr)
	if err != nil {
		return nil, status.ErrReadStore.Wrap(err)
	}

	vs, err := Decode(b)
	if err != nil {
		return nil, status.ErrCorruptStore.Wrap(err)
	}
	if err = vs.Validate(); err != nil {
		return nil, status.ErrCorruptStore.Wrap(err)
	}
	return vs, nil
}

// Save validates then replaces the version document as a whole
func (s *Store) Save(ctx context.Context, vs *model.VersionStore) error {
	return s.write(ctx, vs, storage.OverWrite)
}

// Seed writes the initial version document. It refuses to replace an existing one.
func (s *Store) Seed(ctx context.Context, vs *model.VersionStore) error {
	has, err := s.backend.Has(ctx, s.key)
	if err != nil {
		return status.ErrReadStore.Wrap(err)
	}
	if has {
		return status.ErrStoreExists.Wrap(fmt.Errorf("%s on %s", s.key, s.backend))
	}
	return s.write(ctx, vs, storage.NoOverWrite)
}

func (s *Store) write(ctx context.Context, vs *model.VersionStore, exclusive bool) error {
	if err := vs.Validate(); err != nil {
		return status.ErrInvalidState.Wrap(err)
	}
	if err := ctx.Err(); err != nil {
		return status.ErrWriteStore.Wrap(err)
	}

	b, err := Encode(vs)
	if err != nil {
		return status.ErrWriteStore.Wrap(err)
	}
	if err = s.backend.Put(ctx, s.key, bytes.NewReader(b), exclusive); err != nil {
		return status.ErrWriteStore.Wrap(err)
	}
	return nil
}

func (s *Store) String() string {
	return s.key + "@" + s.backend.String()
}
