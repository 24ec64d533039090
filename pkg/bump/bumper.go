// Copyright © 2018 One Concern

package bump

import (
	"context"
	"time"

	"github.com/oneconcern/versiond/pkg/model"
	"github.com/oneconcern/versiond/pkg/store"
	"go.uber.org/zap"
)

// Option configures a Bumper
type Option func(*Bumper)

// Clock sets the source of release dates
func Clock(clock func() time.Time) Option {
	return func(b *Bumper) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// Logger sets the logger of the Bumper
func Logger(l *zap.Logger) Option {
	return func(b *Bumper) {
		if l != nil {
			b.l = l
		}
	}
}

// Bumper cuts new releases in a version store
type Bumper struct {
	repo  store.Repository
	clock func() time.Time
	l     *zap.Logger
}

// Result sums up a release bump
type Result struct {
	OldVersion   string        `json:"old_version" yaml:"old_version"`
	NewVersion   string        `json:"new_version" yaml:"new_version"`
	BuildNumber  int64         `json:"build_number" yaml:"build_number"`
	ChromiumBase string        `json:"chromium_base" yaml:"chromium_base"`
	ReleaseDate  string        `json:"release_date" yaml:"release_date"`
	Channel      model.Channel `json:"channel" yaml:"channel"`
}

// New Bumper over a version repository
func New(repo store.Repository, opts ...Option) *Bumper {
	b := &Bumper{
		repo:  repo,
		clock: time.Now,
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(b)
	}
	return b
}

// Bump loads the version store, applies the bump and saves the result.
//
// The kind and the overrides are checked before the store is read. The save is
// attempted once: on failure, the previously persisted document remains.
func (b *Bumper) Bump(ctx context.Context, kind string, o Overrides) (Result, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Result{}, err
	}
	if _, err = o.channel(); err != nil {
		return Result{}, err
	}

	vs, err := b.repo.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	bumped, err := Apply(vs, k, o, b.clock())
	if err != nil {
		return Result{}, err
	}

	if err = b.repo.Save(ctx, bumped); err != nil {
		b.l.Error("could not save bumped release",
			zap.String("from", vs.Current.Version),
			zap.String("to", bumped.Current.Version),
			zap.Error(err))
		return Result{}, err
	}

	res := Result{
		OldVersion:   vs.Current.Version,
		NewVersion:   bumped.Current.Version,
		BuildNumber:  bumped.Current.BuildNumber,
		ChromiumBase: bumped.Current.ChromiumBase,
		ReleaseDate:  bumped.Current.ReleaseDate,
		Channel:      bumped.Current.Channel,
	}
	b.l.Info("release bumped",
		zap.String("kind", k.String()),
		zap.String("from", res.OldVersion),
		zap.String("to", res.NewVersion),
		zap.Int64("build", res.BuildNumber))
	return res, nil
}
