// Copyright © 2018 One Concern

package sthree

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/oneconcern/versiond/pkg/storage"
	"github.com/oneconcern/versiond/pkg/storage/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "versions"

// fakeS3 answers the path-style object calls the store issues
type fakeS3 struct {
	mx      sync.Mutex
	objects map[string][]byte
	deny    bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mx.Lock()
	defer f.mx.Unlock()

	if f.deny {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/"+testBucket+"/")
	switch r.Method {
	case http.MethodHead:
		if _, ok := f.objects[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		b, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	case http.MethodPut:
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		f.objects[key] = b
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestHas(t *testing.T) {
	bs, _ := setupStore(t)

	has, err := bs.Has(context.Background(), "sixteentons")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "fifteentons")
	require.NoError(t, err)
	require.False(t, has)
}

func TestGet(t *testing.T) {
	bs, _ := setupStore(t)

	rdr, err := bs.Get(context.Background(), "sixteentons")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "this is the text", string(b))

	_, err = bs.Get(context.Background(), "fifteentons")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotExists))
}

func TestPut(t *testing.T) {
	bs, fake := setupStore(t)

	err := bs.Put(context.Background(), "eighteentons", bytes.NewBufferString("here we go once again"), storage.OverWrite)
	require.NoError(t, err)
	assert.Equal(t, "here we go once again", string(fake.objects["eighteentons"]))

	err = bs.Put(context.Background(), "sixteentons", bytes.NewBufferString("clobber"), storage.NoOverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))
	assert.Equal(t, "this is the text", string(fake.objects["sixteentons"]))
}

func TestForbidden(t *testing.T) {
	bs, fake := setupStore(t)
	fake.deny = true

	_, err := bs.Get(context.Background(), "sixteentons")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrForbidden))
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(Bucket(""))
	require.Error(t, err)
}

func setupStore(t testing.TB) (storage.Store, *fakeS3) {
	t.Helper()

	fake := &fakeS3{objects: map[string][]byte{
		"sixteentons": []byte("this is the text"),
	}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	bs, err := New(Bucket(testBucket), AWSConfig(&aws.Config{
		Credentials:      credentials.NewStaticCredentials("access-key", "secret-key-thing", ""),
		Region:           aws.String("us-west-2"),
		Endpoint:         aws.String(server.URL),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(true),
		MaxRetries:       aws.Int(0),
	}))
	require.NoError(t, err)
	assert.Equal(t, "s3@"+testBucket, bs.String())
	return bs, fake
}
