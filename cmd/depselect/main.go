// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command depselect loads a package-version selection problem from a TOML
// file, solves it, and prints a per-package readout.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	deplog "github.com/ramereth/dep-selector/log"
)

type command interface {
	Name() string
	Args() string
	ShortHelp() string
	LongHelp() string
	Register(*flag.FlagSet)
	Hidden() bool
	Run(*Loggers, []string) error
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) (exitCode int) {
	commands := []command{
		&solveCommand{},
		&versionCommand{},
	}

	usage := func() {
		fmt.Fprintln(os.Stderr, "depselect solves package-version selection problems")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: depselect <command>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Commands:")
		w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
		for _, cmd := range commands {
			if !cmd.Hidden() {
				fmt.Fprintf(w, "\t%s\t%s\n", cmd.Name(), cmd.ShortHelp())
			}
		}
		w.Flush()
	}

	if len(args) < 2 || strings.ToLower(args[1]) == "-h" || strings.Contains(strings.ToLower(args[1]), "help") {
		usage()
		return 1
	}
	cmdName := args[1]

	for _, cmd := range commands {
		if cmd.Name() != cmdName {
			continue
		}

		fs := flag.NewFlagSet(cmdName, flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		verbose := fs.Bool("v", false, "enable verbose logging")
		cmd.Register(fs)

		if err := fs.Parse(args[2:]); err != nil {
			return 1
		}

		level := logrus.InfoLevel
		if *verbose {
			level = logrus.DebugLevel
		}
		lg := &Loggers{Log: deplog.New(level), Verbose: *verbose}

		if err := cmd.Run(lg, fs.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "depselect: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(os.Stderr, "depselect: %s: no such command\n", cmdName)
	usage()
	return 1
}
