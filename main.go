// Package main is the entry point for peel.
package main

import (
	"github.com/anisan-cli/peel/cmd"
	"github.com/anisan-cli/peel/config"
	"github.com/anisan-cli/peel/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
