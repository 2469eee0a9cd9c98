// Package main is the entry point for the dupfind CLI application.
// It initializes all subcommands and executes the root command.
package main

import (
	"github.com/finder-tools/dupfind/cmd"
	_ "github.com/finder-tools/dupfind/cmd/find"
	_ "github.com/finder-tools/dupfind/cmd/purge"
)

// main is the entry point of the application.
// It executes the root command which handles all CLI interactions.
func main() {
	cmd.Execute()
}
