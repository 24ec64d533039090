// Copyright © 2018 One Concern

// Package bump cuts new releases: it advances the current release of a
// version store and archives the previous one in the history.
package bump
