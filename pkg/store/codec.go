// Copyright © 2018 One Concern

package store

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/versiond/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode renders the document as pretty-printed JSON, with a trailing newline
func Encode(vs *model.VersionStore) ([]byte, error) {
	b, err := json.MarshalIndent(vs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Decode parses a JSON document. It does not validate the result.
func Decode(b []byte) (*model.VersionStore, error) {
	var vs model.VersionStore
	if err := json.Unmarshal(b, &vs); err != nil {
		return nil, err
	}
	return &vs, nil
}
