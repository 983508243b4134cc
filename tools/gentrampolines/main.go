// The gentrampolines tool generates the assembly entry points that bridge
// CPU exceptions to the Go handlers of the irq package. Bindings between
// vectors and handlers are read from a TOML file.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var debug = flag.Bool("debug", false, "enable debug logging")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(generateCmd), "")
	subcommands.Register(new(checkCmd), "")

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
