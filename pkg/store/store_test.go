// Copyright © 2018 One Concern

package store

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"testing"

	"github.com/oneconcern/versiond/pkg/model"
	"github.com/oneconcern/versiond/pkg/storage"
	"github.com/oneconcern/versiond/pkg/storage/localfs"
	storagestatus "github.com/oneconcern/versiond/pkg/storage/status"
	"github.com/oneconcern/versiond/pkg/store/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t testing.TB) []byte {
	t.Helper()
	b, err := ioutil.ReadFile("testdata/version.json")
	require.NoError(t, err)
	return b
}

func setupStore(t testing.TB, content []byte) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if content != nil {
		require.NoError(t, afero.WriteFile(fs, DefaultKey, content, 0600))
	}
	backend, err := localfs.NewAtomic(fs)
	require.NoError(t, err)
	return New(backend), fs
}

func TestLoad(t *testing.T) {
	s, _ := setupStore(t, fixture(t))

	vs, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", vs.Current.Version)
	assert.Equal(t, "Aurora", vs.Current.CodenameValue())
	assert.Equal(t, int64(12), vs.Current.BuildNumber)
	assert.Equal(t, model.Stable, vs.Current.Channel)
	require.Len(t, vs.History, 2)
	assert.Nil(t, vs.History[1].Codename)
	assert.Equal(t, "First public release", vs.History[1].Notes)
	assert.Equal(t, map[string]string{"stable": "1.2.0", "beta": "1.1.0"}, vs.Channels)
}

func TestLoadMissing(t *testing.T) {
	s, _ := setupStore(t, nil)

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrReadStore))
	assert.True(t, errors.Is(err, storagestatus.ErrNotExists))
	assert.False(t, errors.Is(err, status.ErrCorruptStore))
}

func TestLoadCancelled(t *testing.T) {
	s, _ := setupStore(t, fixture(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrReadStore))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadCorrupt(t *testing.T) {
	for _, toPin := range []struct {
		Name    string
		Content string
	}{
		{Name: "not json", Content: `{"current": `},
		{Name: "wrong type", Content: `{"current": {"version": 1}}`},
		{Name: "empty object", Content: `{}`},
		{
			Name: "dangling channel",
			Content: `{"current":{"version":"1.0.0","codename":null,"release_date":"2025-01-01",` +
				`"chromium_base":"x","build_number":1,"channel":"stable"},"history":[],` +
				`"channels":{"stable":"1.0.0","beta":"0.9.0"}}`,
		},
	} {
		fixture := toPin
		t.Run(fixture.Name, func(t *testing.T) {
			s, _ := setupStore(t, []byte(fixture.Content))
			_, err := s.Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, status.ErrCorruptStore))
			assert.False(t, errors.Is(err, status.ErrReadStore))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s, fs := setupStore(t, fixture(t))

	vs, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), vs))

	b, err := afero.ReadFile(fs, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(fixture(t)), string(b))
	assert.Contains(t, string(b), "\n  \"current\": {\n    \"version\": \"1.2.0\"")
	assert.Contains(t, string(b), `"codename": null`)
}

func TestSaveInvalidLeavesDocument(t *testing.T) {
	s, fs := setupStore(t, fixture(t))

	vs, err := s.Load(context.Background())
	require.NoError(t, err)
	vs.Current.BuildNumber = 3

	err = s.Save(context.Background(), vs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidState))

	b, err := afero.ReadFile(fs, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, fixture(t), b)
}

// crashingFs fails every rename, as if the process died before the staged document was moved into place
type crashingFs struct {
	afero.Fs
}

func (crashingFs) Rename(_, _ string) error {
	return &os.LinkError{Op: "rename", Err: errors.New("interrupted")}
}

func TestSaveInterrupted(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, DefaultKey, fixture(t), 0600))
	backend, err := localfs.NewAtomic(crashingFs{Fs: mem})
	require.NoError(t, err)
	s := New(backend)

	vs, err := s.Load(context.Background())
	require.NoError(t, err)
	vs.Current.ChromiumBase = "143.0.0.0"

	err = s.Save(context.Background(), vs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrWriteStore))

	reloaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "142.0.7444.60", reloaded.Current.ChromiumBase)
}

func TestSeed(t *testing.T) {
	s, fs := setupStore(t, nil)

	codename := "Aurora"
	vs := model.NewVersionStore(model.VersionRecord{
		Version:      "1.0.0",
		Codename:     &codename,
		ReleaseDate:  "2025-09-01",
		ChromiumBase: "140.0.7339.207",
		BuildNumber:  1,
		Channel:      model.Stable,
	})
	require.NoError(t, s.Seed(context.Background(), vs))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, vs, loaded)

	err = s.Seed(context.Background(), vs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreExists))

	has, err := afero.Exists(fs, DefaultKey)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "releases/browser.json", fixture(t), 0600))
	s := New(localfs.New(fs), Key("releases/browser.json"))
	assert.Equal(t, "releases/browser.json@localfs", s.String())

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultKey+"@localfs", New(localfs.New(fs), Key("")).String())
}

var _ storage.Store = failingBackend{}

type failingBackend struct {
	storage.Store
}

func (failingBackend) Has(_ context.Context, _ string) (bool, error) {
	return false, storagestatus.ErrStorageAPI
}

func TestSeedBackendFailure(t *testing.T) {
	s := New(failingBackend{Store: localfs.New(afero.NewMemMapFs())})
	err := s.Seed(context.Background(), &model.VersionStore{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrReadStore))
}
