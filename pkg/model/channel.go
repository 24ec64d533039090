// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"strings"
)

// Channel is a named release track
type Channel string

// Known release channels
const (
	Stable Channel = "stable"
	Beta   Channel = "beta"
	Dev    Channel = "dev"
	Canary Channel = "canary"
)

// Channels lists all known release channels, from the most to the least conservative
func Channels() []Channel {
	return []Channel{Stable, Beta, Dev, Canary}
}

// Valid tells if this channel is one of the known release channels
func (c Channel) Valid() bool {
	switch c {
	case Stable, Beta, Dev, Canary:
		return true
	default:
		return false
	}
}

func (c Channel) String() string {
	return string(c)
}

// ParseChannel converts a string into a known Channel
func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.Valid() {
		names := make([]string, 0, len(Channels()))
		for _, known := range Channels() {
			names = append(names, known.String())
		}
		return "", fmt.Errorf("unknown channel %q: expected one of %s", s, strings.Join(names, ", "))
	}
	return c, nil
}
