// Copyright © 2018 One Concern

package bump

import (
	"fmt"
	"time"

	"github.com/go-openapi/swag"
	"github.com/imdario/mergo"
	"github.com/oneconcern/versiond/pkg/model"
)

// Overrides hold the optional values of the new release.
//
// An empty value means not supplied: the value of the previous release is carried over,
// or a default is used for Notes.
type Overrides struct {
	Codename     string
	ChromiumBase string
	Channel      string

	// Notes attached to the archived release
	Notes string
}

func (o Overrides) channel() (model.Channel, error) {
	if o.Channel == "" {
		return "", nil
	}
	c, err := model.ParseChannel(o.Channel)
	if err != nil {
		return "", ErrInvalidOverride.Wrap(err)
	}
	return c, nil
}

func (o Overrides) notes(archived string) string {
	if o.Notes != "" {
		return o.Notes
	}
	return "Version " + archived
}

// Apply computes the store resulting from a release bump. The input store is left untouched.
//
// The current release is archived at the head of the history, with notes. The new release
// gets the next version and build number, and is dated from now in UTC. The channel of the
// new release points to it: other channels are left as they are.
func Apply(vs *model.VersionStore, kind Kind, o Overrides, now time.Time) (*model.VersionStore, error) {
	if vs == nil {
		return nil, fmt.Errorf("no version store to bump")
	}
	channel, err := o.channel()
	if err != nil {
		return nil, err
	}

	old := vs.Current
	next, err := NextVersion(old.Version, kind)
	if err != nil {
		return nil, err
	}

	fresh := model.VersionRecord{
		Version:      next,
		ReleaseDate:  now.UTC().Format(model.ReleaseDateLayout),
		ChromiumBase: o.ChromiumBase,
		BuildNumber:  old.BuildNumber + 1,
		Channel:      channel,
	}
	if o.Codename != "" {
		fresh.Codename = swag.String(o.Codename)
	}
	// carry over whatever was not overridden
	carried := old.Clone()
	carried.Notes = ""
	if err = mergo.Merge(&fresh, carried); err != nil {
		return nil, fmt.Errorf("carrying over release fields: %v", err)
	}

	archived := old.Clone()
	archived.Notes = o.notes(old.Version)

	bumped := vs.Clone()
	bumped.Current = fresh
	bumped.History = append([]model.VersionRecord{archived}, bumped.History...)
	if bumped.Channels == nil {
		bumped.Channels = make(map[string]string, 1)
	}
	bumped.Channels[fresh.Channel.String()] = fresh.Version

	return bumped, nil
}
