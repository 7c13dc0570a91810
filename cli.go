//go:build cli
// +build cli

package main

import (
	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/cmd"
	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
