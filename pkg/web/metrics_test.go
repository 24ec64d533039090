// Copyright © 2018 One Concern

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetricsOptions(t *testing.T) {
	m := &StoreMock{}
	m.On("Load", mock.Anything).Return(sampleStore(), nil)

	registry := prometheus.NewRegistry()
	srv, err := NewServer(ServerParams{
		Store:   m,
		Metrics: NewMetrics(WithRegistry(registry), WithNamespace("registry"), WithBuckets([]float64{0.5, 1})),
	})
	require.NoError(t, err)
	ts := testServer{handler: InitRouter(srv), store: m}

	resp, _ := ts.do(t, http.MethodGet, "/api/version/current")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
		if family.GetName() != "registry_http_request_duration_seconds" {
			continue
		}
		require.Len(t, family.GetMetric(), 1)
		buckets := family.GetMetric()[0].GetHistogram().GetBucket()
		require.Len(t, buckets, 2)
		assert.Equal(t, 0.5, buckets[0].GetUpperBound())
		assert.Equal(t, 1.0, buckets[1].GetUpperBound())
	}
	assert.True(t, names["registry_http_requests_total"])
	assert.True(t, names["registry_http_request_duration_seconds"])
	assert.True(t, names["registry_http_response_bytes_total"])
	assert.False(t, names["versiond_http_requests_total"])
}

func TestRecovererAfterResponseStarted(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	srv, err := NewServer(ServerParams{Store: &StoreMock{}, Logger: zap.New(core)})
	require.NoError(t, err)

	handler := srv.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"version":`))
		panic("half way")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version/current", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"version":`, rec.Body.String())

	recovered := logs.FilterMessage("recovered from panic").All()
	require.Len(t, recovered, 1)
	assert.Equal(t, true, recovered[0].ContextMap()["response_started"])
}
