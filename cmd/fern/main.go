package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/fernlang/fern"
)

// Context carries the global flags into command Run methods.
type Context struct {
	Optimize string
	Main     string
	Time     bool
}

var CLI struct {
	VersionFlag kong.VersionFlag `name:"version" short:"v" help:"Print the compiler version"`
	Optimize    string           `help:"Optimization profile" enum:"perf,size,dev" default:"dev"`
	Main        string           `help:"Entry point path for multi-file units"`
	Time        bool             `help:"Print per-stage timings" negatable:""`

	Version VersionCmd `cmd:"" help:"Show version information"`
	Check   CheckCmd   `cmd:"" help:"Check a source file and report diagnostics"`
	Build   BuildCmd   `cmd:"" help:"Regenerate a golden record in place"`
	Run     RunCmd     `cmd:"" default:"withargs" help:"Run a source file"`
}

func newParser() *kong.Kong {
	return kong.Must(&CLI,
		kong.Name("fern"),
		kong.Description("The fern compiler front end"),
		kong.Vars{"version": "fern v" + fern.Version},
	)
}

func main() {
	parser := newParser()
	ctx, err := parser.Parse(Classify(os.Args[1:]))
	parser.FatalIfErrorf(err)

	appCtx := &Context{
		Optimize: CLI.Optimize,
		Main:     CLI.Main,
		Time:     CLI.Time,
	}
	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
