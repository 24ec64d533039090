// Copyright © 2018 One Concern

package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/versiond/pkg/model"
	"github.com/oneconcern/versiond/pkg/store"
	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// DefaultServiceName is reported by the health endpoint
const DefaultServiceName = "BaseOne Version Manager"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Endpoints advertised by the health endpoint
var Endpoints = []string{
	"/api/version/current",
	"/api/version/check?current=1.0.0",
	"/api/version/history",
	"/api/version/channels",
}

const (
	msgStoreUnavailable = "Failed to load version data"
	msgNotFound         = "Not found"
)

/* response payloads */

type errorResponse struct {
	Error string `json:"error"`
}

type currentResponse struct {
	Version      string        `json:"version"`
	Codename     *string       `json:"codename"`
	ReleaseDate  string        `json:"release_date"`
	ChromiumBase string        `json:"chromium_base"`
	BuildNumber  int64         `json:"build_number"`
	Channel      model.Channel `json:"channel"`
	DownloadURL  string        `json:"download_url"`
}

type checkResponse struct {
	CurrentVersion  string  `json:"current_version"`
	LatestVersion   string  `json:"latest_version"`
	UpdateAvailable bool    `json:"update_available"`
	ReleaseNotesURL string  `json:"release_notes_url"`
	DownloadURL     *string `json:"download_url"`
}

type historyResponse struct {
	History []model.VersionRecord `json:"history"`
}

type channelsResponse struct {
	Channels map[string]string `json:"channels"`
}

type healthResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

// ServerParams configure the registry API
type ServerParams struct {
	// Store is read on every request
	Store store.Loader

	// Site builds download and release notes links
	Site model.ReleaseSite

	// ServiceName is reported by the health endpoint
	ServiceName string

	Logger  *zap.Logger
	Metrics *Metrics
	Tracer  opentracing.Tracer
}

// Server is the registry API. It is stateless: the version store is loaded on each request.
type Server struct {
	params  ServerParams
	l       *zap.Logger
	metrics *Metrics
	tracer  opentracing.Tracer
}

// NewServer builds a registry API server
func NewServer(params ServerParams) (*Server, error) {
	if params.Store == nil {
		return nil, errMissingStore
	}
	if params.ServiceName == "" {
		params.ServiceName = DefaultServiceName
	}
	if params.Site == (model.ReleaseSite{}) {
		params.Site = model.DefaultReleaseSite()
	}
	l := params.Logger
	if l == nil {
		l = zap.NewNop()
	}
	tr := params.Tracer
	if tr == nil {
		tr = opentracing.NoopTracer{}
	}
	return &Server{params: params, l: l, metrics: params.Metrics, tracer: tr}, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	b, err := json.Marshal(payload)
	if err != nil {
		s.l.Error("could not marshal response", zap.Error(err))
		code = http.StatusInternalServerError
		b = []byte(`{"error":"Internal server error"}`)
	}
	w.WriteHeader(code)
	if _, err = w.Write(b); err != nil {
		s.l.Debug("could not write response", zap.Error(err))
	}
}

// load reads the version store, or answers with a store failure
func (s *Server) load(ctx context.Context, w http.ResponseWriter) (*model.VersionStore, bool) {
	vs, err := s.params.Store.Load(ctx)
	if err != nil {
		s.l.Error("error loading version store",
			zap.String("request_id", middleware.GetReqID(ctx)),
			zap.Error(err))
		if s.metrics != nil {
			s.metrics.storeFailures.Inc()
		}
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgStoreUnavailable})
		return nil, false
	}
	return vs, true
}

/* handlers */

// HandleCurrent describes the current release
func (s *Server) HandleCurrent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vs, ok := s.load(r.Context(), w)
		if !ok {
			return
		}
		c := vs.Current
		s.writeJSON(w, http.StatusOK, currentResponse{
			Version:      c.Version,
			Codename:     c.Codename,
			ReleaseDate:  c.ReleaseDate,
			ChromiumBase: c.ChromiumBase,
			BuildNumber:  c.BuildNumber,
			Channel:      c.Channel,
			DownloadURL:  s.params.Site.DownloadURL(c.Version),
		})
	}
}

// HandleCheck tells a client whether its version is the latest one.
//
// Versions are compared as plain strings: any version other than the latest one,
// including a more recent one, is told that an update is available.
func (s *Server) HandleCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientVersion := r.URL.Query().Get("current")
		vs, ok := s.load(r.Context(), w)
		if !ok {
			return
		}

		latest := vs.Current.Version
		resp := checkResponse{
			CurrentVersion:  clientVersion,
			LatestVersion:   latest,
			UpdateAvailable: clientVersion != latest,
			ReleaseNotesURL: s.params.Site.ReleaseNotesURL(latest),
		}
		if resp.UpdateAvailable {
			u := s.params.Site.DownloadURL(latest)
			resp.DownloadURL = &u
		}
		s.writeJSON(w, http.StatusOK, resp)
	}
}

// HandleHistory lists archived releases, most recent first
func (s *Server) HandleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vs, ok := s.load(r.Context(), w)
		if !ok {
			return
		}
		history := vs.History
		if history == nil {
			history = []model.VersionRecord{}
		}
		s.writeJSON(w, http.StatusOK, historyResponse{History: history})
	}
}

// HandleChannels maps release channels to versions
func (s *Server) HandleChannels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vs, ok := s.load(r.Context(), w)
		if !ok {
			return
		}
		s.writeJSON(w, http.StatusOK, channelsResponse{Channels: vs.Channels})
	}
}

// HandleHealth describes the service. It never reads the version store.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Service:   s.params.ServiceName,
			Endpoints: Endpoints,
		})
	}
}

// HandleNotFound answers any unknown path, or any unsupported method
func (s *Server) HandleNotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNotFound})
	}
}

// InitRouter wires the registry API routes
func InitRouter(srv *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(srv.instrument)
	r.Use(srv.recoverer)
	r.Use(cors)

	r.NotFound(srv.HandleNotFound())
	r.MethodNotAllowed(srv.HandleNotFound())

	r.Get("/", srv.HandleHealth())
	r.Get("/health", srv.HandleHealth())

	r.Get("/api/version", srv.HandleCurrent())
	r.Get("/api/version/current", srv.HandleCurrent())
	r.Get("/api/version/check", srv.HandleCheck())
	r.Get("/api/version/history", srv.HandleHistory())
	r.Get("/api/version/channels", srv.HandleChannels())

	return r
}
