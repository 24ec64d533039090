// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/multierr"
)

// Validate checks all invariants of a version store.
//
// All violations are reported at once, combined with multierr.
func (s *VersionStore) Validate() error {
	if s == nil {
		return fmt.Errorf("empty version store")
	}

	err := validateRecord("current", s.Current)
	if s.Current.Notes != "" {
		err = multierr.Append(err, fmt.Errorf("current: notes are only allowed on archived releases"))
	}

	for i, r := range s.History {
		err = multierr.Append(err, validateRecord(fmt.Sprintf("history[%d]", i), r))
	}

	err = multierr.Append(err, s.validateBuildNumbers())
	err = multierr.Append(err, s.validateChannels())

	return err
}

func validateRecord(where string, r VersionRecord) error {
	var err error
	if !ValidVersion(r.Version) {
		err = multierr.Append(err, fmt.Errorf("%s: version %q is not of the form MAJOR.MINOR.PATCH", where, r.Version))
	}
	if _, perr := time.Parse(ReleaseDateLayout, r.ReleaseDate); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%s: release date %q is not a YYYY-MM-DD date", where, r.ReleaseDate))
	}
	if r.BuildNumber < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: negative build number %d", where, r.BuildNumber))
	}
	if !r.Channel.Valid() {
		err = multierr.Append(err, fmt.Errorf("%s: unknown channel %q", where, r.Channel))
	}
	return err
}

// validateBuildNumbers ensures the current build is the latest and the
// history is sorted by strictly decreasing build number.
func (s *VersionStore) validateBuildNumbers() error {
	var err error
	if len(s.History) > 0 && s.Current.BuildNumber <= s.History[0].BuildNumber {
		err = multierr.Append(err, fmt.Errorf("current build number %d is not greater than the latest archived build %d",
			s.Current.BuildNumber, s.History[0].BuildNumber))
	}
	for i := 1; i < len(s.History); i++ {
		if s.History[i].BuildNumber >= s.History[i-1].BuildNumber {
			err = multierr.Append(err, fmt.Errorf("history is not sorted by decreasing build number: history[%d]=%d, history[%d]=%d",
				i-1, s.History[i-1].BuildNumber, i, s.History[i].BuildNumber))
		}
	}
	return err
}

func (s *VersionStore) validateChannels() error {
	var err error
	if got, ok := s.Channels[s.Current.Channel.String()]; !ok || got != s.Current.Version {
		err = multierr.Append(err, fmt.Errorf("channel %q should point to current version %q, got %q",
			s.Current.Channel, s.Current.Version, got))
	}

	// sorted for stable error messages
	names := make([]string, 0, len(s.Channels))
	for name := range s.Channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		version := s.Channels[name]
		if !Channel(name).Valid() {
			err = multierr.Append(err, fmt.Errorf("unknown channel %q in channels", name))
		}
		if !ValidVersion(version) {
			err = multierr.Append(err, fmt.Errorf("channel %q: version %q is not of the form MAJOR.MINOR.PATCH", name, version))
			continue
		}
		if !s.HasVersion(version) {
			err = multierr.Append(err, fmt.Errorf("channel %q points to unknown version %q", name, version))
		}
	}
	return err
}
