// Copyright © 2018 One Concern

package model

import (
	"github.com/go-openapi/swag"
)

// ReleaseDateLayout is the layout of release dates (ISO 8601 calendar date)
const ReleaseDateLayout = "2006-01-02"

// VersionRecord represents one released build
type VersionRecord struct {
	Version      string  `json:"version" yaml:"version"`
	Codename     *string `json:"codename" yaml:"codename"`
	ReleaseDate  string  `json:"release_date" yaml:"release_date"`
	ChromiumBase string  `json:"chromium_base" yaml:"chromium_base"`
	BuildNumber  int64   `json:"build_number" yaml:"build_number"`
	Channel      Channel `json:"channel" yaml:"channel"`

	// Notes are only set on archived records
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Clone returns a deep copy of the record
func (r VersionRecord) Clone() VersionRecord {
	c := r
	if r.Codename != nil {
		c.Codename = swag.String(*r.Codename)
	}
	return c
}

// CodenameValue returns the codename, or the empty string when there is none
func (r VersionRecord) CodenameValue() string {
	return swag.StringValue(r.Codename)
}

// VersionStore is the whole persisted registry document
type VersionStore struct {
	Current  VersionRecord     `json:"current" yaml:"current"`
	History  []VersionRecord   `json:"history" yaml:"history"`
	Channels map[string]string `json:"channels" yaml:"channels"`
}

// Clone returns a deep copy of the store
func (s *VersionStore) Clone() *VersionStore {
	c := &VersionStore{
		Current:  s.Current.Clone(),
		History:  make([]VersionRecord, 0, len(s.History)),
		Channels: make(map[string]string, len(s.Channels)),
	}
	for _, r := range s.History {
		c.History = append(c.History, r.Clone())
	}
	for k, v := range s.Channels {
		c.Channels[k] = v
	}
	return c
}

// NewVersionStore builds a store with a single release and no history.
// The release's channel points to it.
func NewVersionStore(current VersionRecord) *VersionStore {
	return &VersionStore{
		Current: current.Clone(),
		History: []VersionRecord{},
		Channels: map[string]string{
			current.Channel.String(): current.Version,
		},
	}
}

// HasVersion tells if the version is either the current one or an archived one
func (s *VersionStore) HasVersion(version string) bool {
	if s.Current.Version == version {
		return true
	}
	for _, r := range s.History {
		if r.Version == version {
			return true
		}
	}
	return false
}
