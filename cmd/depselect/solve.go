// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/ramereth/dep-selector/internal/cache"
	"github.com/ramereth/dep-selector/internal/problemfile"
	"github.com/ramereth/dep-selector/selector"
)

const solveShortHelp = `Solve a package-version selection problem`
const solveLongHelp = `
Load a problem description from a TOML file, solve it for the
lexicographically best assignment of versions and disabled flags, and
print a per-package readout.
`

type solveCommand struct {
	cacheDir string
	noCache  bool
}

func (cmd *solveCommand) Name() string      { return "solve" }
func (cmd *solveCommand) Args() string      { return "<problem.toml>" }
func (cmd *solveCommand) ShortHelp() string { return solveShortHelp }
func (cmd *solveCommand) LongHelp() string  { return solveLongHelp }
func (cmd *solveCommand) Hidden() bool      { return false }

func (cmd *solveCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.cacheDir, "cache-dir", defaultCacheDir(), "directory for the solve memoization cache")
	fs.BoolVar(&cmd.noCache, "no-cache", false, "ignore and do not update the memoization cache")
}

func (cmd *solveCommand) Run(lg *Loggers, args []string) error {
	if len(args) != 1 {
		return errors.New("solve takes exactly one argument, a problem file path")
	}

	spec, err := problemfile.Load(args[0])
	if err != nil {
		return errors.Wrap(err, "failed to load problem file")
	}

	prob, ids, err := problemfile.Build(spec)
	if err != nil {
		return errors.Wrap(err, "failed to build problem")
	}
	if lg.Verbose {
		prob.SetLogger(lg.Log)
	}

	names := make([]string, len(ids))
	for name, id := range ids {
		names[id] = name
	}

	if !cmd.noCache {
		c, cerr := cache.Open(filepath.Join(cmd.cacheDir, "solve.db"))
		if cerr == nil {
			defer c.Close()
			key := spec.Hash()
			if res, hit, gerr := c.Get(key); gerr == nil && hit {
				printReadout(names, res.Versions, res.Disabled)
				return nil
			}
			if err := prob.Solve(); err != nil {
				return errors.Wrap(err, "solve failed")
			}
			if res, derr := readoutResult(prob, len(names)); derr == nil {
				c.Put(key, res)
			}
			printProblemReadout(prob, names)
			return nil
		}
		lg.Log.WithField("cache_dir", cmd.cacheDir).Warn(errors.Wrap(cerr, "failed to open solve cache, continuing without it").Error())
	}

	if err := prob.Solve(); err != nil {
		return errors.Wrap(err, "solve failed")
	}
	printProblemReadout(prob, names)
	return nil
}

func readoutResult(prob *selector.Problem, n int) (cache.Result, error) {
	res := cache.Result{Versions: make([]int, n), Disabled: make([]bool, n)}
	for i := 0; i < n; i++ {
		v, err := prob.GetPackageVersion(i)
		if err != nil {
			return cache.Result{}, err
		}
		d, err := prob.GetPackageDisabledState(i)
		if err != nil {
			return cache.Result{}, err
		}
		res.Versions[i] = v
		res.Disabled[i] = d
	}
	return res, nil
}

func printProblemReadout(prob *selector.Problem, names []string) {
	versions := make([]int, len(names))
	disabled := make([]bool, len(names))
	for i := range names {
		versions[i], _ = prob.GetPackageVersion(i)
		disabled[i], _ = prob.GetPackageDisabledState(i)
	}
	printReadout(names, versions, disabled)
}

func printReadout(names []string, versions []int, disabled []bool) {
	for i, name := range names {
		fmt.Printf("%s\tversion_index=%d\tdisabled=%v\n", name, versions[i], disabled[i])
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".depselect-cache"
	}
	return filepath.Join(dir, "depselect")
}
