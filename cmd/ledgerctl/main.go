package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"ledger/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "ledger")
	}
	for _, c := range exportCommands {
		commander.Register(c, "export")
	}

	cli.LoadEnvFile()
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
