// Copyright © 2018 One Concern

package bump

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/oneconcern/versiond/pkg/model"
	"github.com/oneconcern/versiond/pkg/storage/localfs"
	"github.com/oneconcern/versiond/pkg/store"
	"github.com/oneconcern/versiond/pkg/store/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var releaseDay = time.Date(2025, 12, 24, 23, 30, 0, 0, time.FixedZone("PST", -8*3600))

func sampleStore() *model.VersionStore {
	return &model.VersionStore{
		Current: model.VersionRecord{
			Version:      "1.2.3",
			Codename:     swag.String("Aurora"),
			ReleaseDate:  "2025-11-02",
			ChromiumBase: "142.0.7444.60",
			BuildNumber:  12,
			Channel:      model.Stable,
		},
		History: []model.VersionRecord{
			{
				Version:      "1.2.2",
				Codename:     swag.String("Aurora"),
				ReleaseDate:  "2025-10-12",
				ChromiumBase: "141.0.7390.122",
				BuildNumber:  11,
				Channel:      model.Beta,
				Notes:        "Version 1.2.2",
			},
		},
		Channels: map[string]string{
			"stable": "1.2.3",
			"beta":   "1.2.2",
		},
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	for _, bad := range []string{"", "Major", "build", "patch "} {
		_, err := ParseKind(bad)
		require.Errorf(t, err, "expected %q to be rejected", bad)
		assert.True(t, errors.Is(err, ErrInvalidKind))
	}
}

func TestNextVersion(t *testing.T) {
	for _, toPin := range []struct {
		Version  string
		Kind     Kind
		Expected string
	}{
		{Version: "1.2.3", Kind: Major, Expected: "2.0.0"},
		{Version: "1.2.3", Kind: Minor, Expected: "1.3.0"},
		{Version: "1.2.3", Kind: Patch, Expected: "1.2.4"},
		{Version: "0.0.0", Kind: Patch, Expected: "0.0.1"},
		{Version: "0.9.9", Kind: Minor, Expected: "0.10.0"},
		{Version: "9.99.999", Kind: Major, Expected: "10.0.0"},
	} {
		fixture := toPin
		t.Run(fmt.Sprintf("%s-%s", fixture.Version, fixture.Kind), func(t *testing.T) {
			next, err := NextVersion(fixture.Version, fixture.Kind)
			require.NoError(t, err)
			assert.Equal(t, fixture.Expected, next)
		})
	}

	_, err := NextVersion("1.2", Patch)
	require.Error(t, err)

	_, err = NextVersion("1.2.3", Kind("build"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidKind))
}

func TestApply(t *testing.T) {
	vs := sampleStore()
	before := vs.Clone()

	bumped, err := Apply(vs, Minor, Overrides{}, releaseDay)
	require.NoError(t, err)
	require.NoError(t, bumped.Validate())

	// input untouched
	assert.Equal(t, before, vs)

	assert.Equal(t, model.VersionRecord{
		Version:      "1.3.0",
		Codename:     swag.String("Aurora"),
		ReleaseDate:  "2025-12-25",
		ChromiumBase: "142.0.7444.60",
		BuildNumber:  13,
		Channel:      model.Stable,
	}, bumped.Current)

	require.Len(t, bumped.History, 2)
	archived := before.Current.Clone()
	archived.Notes = "Version 1.2.3"
	assert.Equal(t, archived, bumped.History[0])
	assert.Equal(t, before.History[0], bumped.History[1])

	assert.Equal(t, map[string]string{"stable": "1.3.0", "beta": "1.2.2"}, bumped.Channels)
}

func TestApplyOverrides(t *testing.T) {
	bumped, err := Apply(sampleStore(), Major, Overrides{
		Codename:     "Borealis",
		ChromiumBase: "143.0.7499.4",
		Channel:      "canary",
		Notes:        "Last of the Aurora line",
	}, releaseDay)
	require.NoError(t, err)
	require.NoError(t, bumped.Validate())

	assert.Equal(t, "2.0.0", bumped.Current.Version)
	assert.Equal(t, "Borealis", bumped.Current.CodenameValue())
	assert.Equal(t, "143.0.7499.4", bumped.Current.ChromiumBase)
	assert.Equal(t, model.Canary, bumped.Current.Channel)
	assert.Empty(t, bumped.Current.Notes)

	assert.Equal(t, "Last of the Aurora line", bumped.History[0].Notes)
	assert.Equal(t, "Aurora", bumped.History[0].CodenameValue())

	// the previous channel keeps pointing at the archived release
	assert.Equal(t, map[string]string{"stable": "1.2.3", "beta": "1.2.2", "canary": "2.0.0"}, bumped.Channels)
}

func TestApplyNullCodenameCarriedOver(t *testing.T) {
	vs := sampleStore()
	vs.Current.Codename = nil

	bumped, err := Apply(vs, Patch, Overrides{}, releaseDay)
	require.NoError(t, err)
	assert.Nil(t, bumped.Current.Codename)
	assert.Nil(t, bumped.History[0].Codename)
}

func TestApplyInvalidChannel(t *testing.T) {
	_, err := Apply(sampleStore(), Patch, Overrides{Channel: "nightly"}, releaseDay)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOverride))
}

// TestApplySequence checks that any sequence of bumps keeps the store consistent
func TestApplySequence(t *testing.T) {
	channels := []string{"", "beta", "", "dev", "stable", "", "canary"}
	kinds := []Kind{Patch, Minor, Patch, Major, Patch, Minor, Patch, Patch, Major}

	vs := sampleStore()
	for i := 0; i < 50; i++ {
		kind := kinds[i%len(kinds)]
		o := Overrides{Channel: channels[i%len(channels)]}
		if i%5 == 0 {
			o.Notes = fmt.Sprintf("release #%d", i)
		}

		previous := vs.Clone()
		next, err := Apply(vs, kind, o, releaseDay.Add(time.Duration(i)*24*time.Hour))
		require.NoError(t, err)
		require.NoErrorf(t, next.Validate(), "bump #%d broke the store", i)

		assert.Equal(t, previous.Current.BuildNumber+1, next.Current.BuildNumber)
		require.Len(t, next.History, len(previous.History)+1)
		assert.Equal(t, previous.History, next.History[1:])
		assert.Equal(t, previous.Current.Version, next.History[0].Version)
		assert.NotEmpty(t, next.History[0].Notes)
		assert.Equal(t, next.Current.Version, next.Channels[next.Current.Channel.String()])

		for name, version := range previous.Channels {
			if name == next.Current.Channel.String() {
				continue
			}
			assert.Equal(t, version, next.Channels[name])
		}
		vs = next
	}
}

func setupBumper(t testing.TB) (*Bumper, *store.Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	backend, err := localfs.NewAtomic(fs)
	require.NoError(t, err)
	s := store.New(backend)
	require.NoError(t, s.Seed(context.Background(), sampleStore()))

	return New(s, Clock(func() time.Time { return releaseDay })), s, fs
}

func TestBump(t *testing.T) {
	b, s, _ := setupBumper(t)

	res, err := b.Bump(context.Background(), "patch", Overrides{ChromiumBase: "142.0.7444.100"})
	require.NoError(t, err)
	assert.Equal(t, Result{
		OldVersion:   "1.2.3",
		NewVersion:   "1.2.4",
		BuildNumber:  13,
		ChromiumBase: "142.0.7444.100",
		ReleaseDate:  "2025-12-25",
		Channel:      model.Stable,
	}, res)

	vs, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.4", vs.Current.Version)
	assert.Len(t, vs.History, 2)
	assert.Equal(t, "1.2.4", vs.Channels["stable"])
}

func TestBumpInvalidKindLeavesStore(t *testing.T) {
	b, _, fs := setupBumper(t)
	before, err := afero.ReadFile(fs, store.DefaultKey)
	require.NoError(t, err)

	for _, bad := range []string{"build", "", "MINOR"} {
		_, err = b.Bump(context.Background(), bad, Overrides{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidKind))
	}

	_, err = b.Bump(context.Background(), "patch", Overrides{Channel: "nightly"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOverride))

	after, err := afero.ReadFile(fs, store.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// countingRepo records calls, and never finds a store
type countingRepo struct {
	loads int
	saves int
}

func (c *countingRepo) Load(_ context.Context) (*model.VersionStore, error) {
	c.loads++
	return nil, status.ErrReadStore.Wrap(os.ErrNotExist)
}

func (c *countingRepo) Save(_ context.Context, _ *model.VersionStore) error {
	c.saves++
	return nil
}

func TestBumpChecksKindBeforeLoading(t *testing.T) {
	repo := &countingRepo{}
	b := New(repo)

	_, err := b.Bump(context.Background(), "huge", Overrides{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidKind))
	assert.Zero(t, repo.loads)

	_, err = b.Bump(context.Background(), "major", Overrides{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrReadStore))
	assert.Equal(t, 1, repo.loads)
	assert.Zero(t, repo.saves)
}

// crashingFs fails renames, as if the process died right before the new document was moved into place
type crashingFs struct {
	afero.Fs
}

func (crashingFs) Rename(_, _ string) error {
	return &os.LinkError{Op: "rename", Err: errors.New("interrupted")}
}

func TestBumpInterruptedKeepsPreviousDocument(t *testing.T) {
	_, _, fs := setupBumper(t)
	before, err := afero.ReadFile(fs, store.DefaultKey)
	require.NoError(t, err)

	backend, err := localfs.NewAtomic(crashingFs{Fs: fs})
	require.NoError(t, err)
	b := New(store.New(backend), Clock(func() time.Time { return releaseDay }))

	_, err = b.Bump(context.Background(), "minor", Overrides{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrWriteStore))

	after, err := afero.ReadFile(fs, store.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
