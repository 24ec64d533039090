// Copyright © 2018 One Concern

package model

import "fmt"

// ReleaseSite describes where release artifacts are published.
//
// Download URLs are consumed by existing clients: the layout must not change.
type ReleaseSite struct {
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Owner    string `json:"owner" yaml:"owner" mapstructure:"owner"`
	Product  string `json:"product" yaml:"product" mapstructure:"product"`
	Platform string `json:"platform" yaml:"platform" mapstructure:"platform"`
	Ext      string `json:"ext" yaml:"ext" mapstructure:"ext"`
}

// DefaultReleaseSite is the release site of the BaseOne browser for macOS on Apple silicon
func DefaultReleaseSite() ReleaseSite {
	return ReleaseSite{
		Host:     "github.com",
		Owner:    "baseone",
		Product:  "BaseOne",
		Platform: "macos-arm64",
		Ext:      "dmg",
	}
}

// DownloadURL yields the artifact URL for a version:
//
//	https://<host>/<owner>/releases/download/v<version>/<Product>-<version>-<platform>.<ext>
func (r ReleaseSite) DownloadURL(version string) string {
	return fmt.Sprintf("https://%s/%s/releases/download/v%s/%s-%s-%s.%s",
		r.Host, r.Owner, version, r.Product, version, r.Platform, r.Ext)
}

// ReleaseNotesURL yields the release page for a version
func (r ReleaseSite) ReleaseNotesURL(version string) string {
	return fmt.Sprintf("https://%s/%s/releases/tag/v%s", r.Host, r.Owner, version)
}
