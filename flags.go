// flags.go - Command-line flag handling
//
// Grounded on the teacher's/KTStephano-GVM's flat stdlib `flag` usage
// (no CLI framework dependency, per SPEC_FULL.md's ambient-stack
// justification). The positional program path plus a small set of
// named flags mirror the original Rust CLI's clap arguments.

package main

import (
	"flag"
	"fmt"
)

type cliOptions struct {
	program string
	verbose bool
	limit   uint64
	logPath string
	gui     bool
}

type cliFlagSet struct {
	fs      *flag.FlagSet
	args    []string
	verbose verboseCount
	limit   uint64
	logPath string
	gui     bool
}

func newFlagSet(args []string) *cliFlagSet {
	cfs := &cliFlagSet{fs: flag.NewFlagSet("rv32sim", flag.ContinueOnError), args: args}
	cfs.fs.Var(&cfs.verbose, "v", "increase verbosity (repeatable)")
	cfs.fs.Var(&cfs.verbose, "verbose", "increase verbosity (repeatable)")
	cfs.fs.Uint64Var(&cfs.limit, "l", 0, "run for exactly N cycles, then stop (0 = interactive stepping)")
	cfs.fs.Uint64Var(&cfs.limit, "limit", 0, "run for exactly N cycles, then stop (0 = interactive stepping)")
	cfs.fs.StringVar(&cfs.logPath, "log", "", "write a binary instruction trace to this path")
	cfs.fs.BoolVar(&cfs.gui, "gui", false, "open a window showing the TextMode/framebuffer output")
	return cfs
}

func (c *cliFlagSet) parse() (cliOptions, error) {
	// The flag package stops at the first positional argument; keep parsing
	// after it so flags may follow the program path.
	var rest []string
	args := c.args
	for {
		if err := c.fs.Parse(args); err != nil {
			return cliOptions{}, err
		}
		args = c.fs.Args()
		if len(args) == 0 {
			break
		}
		rest = append(rest, args[0])
		args = args[1:]
	}
	if len(rest) != 1 {
		return cliOptions{}, fmt.Errorf("usage: %s [-v] [-l cycles] [--log path] [--gui] <program-path>", c.fs.Name())
	}
	return cliOptions{
		program: rest[0],
		verbose: c.verbose > 0,
		limit:   c.limit,
		logPath: c.logPath,
		gui:     c.gui,
	}, nil
}
