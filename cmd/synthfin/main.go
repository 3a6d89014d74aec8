// Command synthfin prints, exports and charts synthetic financial statements.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// register adds every synthfin subcommand to c.
func register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&showCmd{}, "statements")
	c.Register(&exportCmd{}, "statements")
	c.Register(&chartCmd{}, "statements")
	c.Register(&validateCmd{}, "statements")

	c.Register(&glossaryCmd{}, "reference")
	c.Register(&versionCmd{}, "reference")
}
