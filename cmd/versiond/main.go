// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/versiond/cmd/versiond/cmd"
)

func main() {
	cmd.Execute()
}
