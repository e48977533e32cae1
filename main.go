// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/coupledlaplace/drv"
	"github.com/cpmech/coupledlaplace/fem"
	"github.com/cpmech/coupledlaplace/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCmd(run)
	if err := execute(cmd, os.Args[1:]); err != nil {
		if _, reported := err.(*runError); !reported {
			io.PfRed("\nERROR: %v\n", err)
		}
		os.Exit(1)
	}
}

// runError is an error of the simulation that has already been printed
type runError struct{ error }

// flags holds the command line flags
type flags struct {
	config   string
	dirout   string
	quiet    bool
	linType  string
	library  string
	sparsity string
}

// newRootCmd returns the root command. The parameters are fully read and checked before
// calling runner.
func newRootCmd(runner func(p *inp.Params) error) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "coupledlaplace [numberXElements [numberYElements [numberZElements [interpolationType]]]]",
		Short:         "Laplace equation on two regions coupled by Lagrange multipliers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := readParams(c, &f, args)
			if err != nil {
				return err
			}
			return runner(p)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "", "parameters file (.yaml or .json)")
	cmd.Flags().StringVar(&f.dirout, "dirout", "", "directory for exported files")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "do not print summary and progress messages")
	cmd.Flags().StringVar(&f.linType, "linsol", "", "linear solver type: direct or iterative")
	cmd.Flags().StringVar(&f.library, "library", "", "direct solver library: mumps, umfpack or lapack")
	cmd.Flags().StringVar(&f.sparsity, "sparsity", "", "solver matrices: sparse or full")
	return cmd
}

// execute runs cmd with the command line arguments args
func execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(numericArgs(cmd, args))
	return cmd.Execute()
}

// numericArgs moves numbers (e.g. -3) after a "--" separator so they are parsed as positional
// arguments instead of shorthand flags. Values of flags are kept next to their flags.
func numericArgs(cmd *cobra.Command, args []string) []string {
	var flagArgs, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case isNumber(a):
			positional = append(positional, a)
		case strings.HasPrefix(a, "-"):
			flagArgs = append(flagArgs, a)
			name := strings.TrimLeft(a, "-")
			if strings.Contains(name, "=") {
				continue
			}
			if f := cmd.Flags().Lookup(name); f != nil && f.NoOptDefVal == "" && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		default:
			positional = append(positional, a)
		}
	}
	if len(positional) == 0 {
		return flagArgs
	}
	return append(append(flagArgs, "--"), positional...)
}

// isNumber tells whether a is an integer or a real number
func isNumber(a string) bool {
	_, err := strconv.ParseFloat(a, 64)
	return err == nil
}

// readParams reads the parameters file, applies the positional arguments and flags and
// validates the result
func readParams(c *cobra.Command, f *flags, args []string) (p *inp.Params, err error) {
	p = inp.NewParams()
	if f.config != "" {
		if p, err = inp.ReadParams(f.config); err != nil {
			return nil, err
		}
	}
	if err = p.ApplyArgs(args); err != nil {
		return nil, err
	}
	if c.Flags().Changed("dirout") {
		p.Output.DirOut = f.dirout
	}
	if f.quiet {
		p.SetupOutput = false
		p.ProgressDiagnostics = false
	}
	if c.Flags().Changed("linsol") {
		p.LinSol.Type = f.linType
	}
	if c.Flags().Changed("library") {
		p.LinSol.Library = f.library
	}
	if c.Flags().Changed("sparsity") {
		p.LinSol.Sparsity = f.sparsity
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return
}

// run starts MPI, runs the simulation and stops MPI. Panics are returned as errors.
// Errors are printed by the first processor.
func run(p *inp.Params) (err error) {

	// catch errors
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%v", r)
		}
		if err != nil {
			if mpi.WorldRank() == 0 {
				io.PfRed("\nERROR: %v\n", err)
			}
			err = &runError{err}
		}
		mpi.Stop()
	}()
	mpi.Start()

	// run
	_, err = drv.Run(p, fem.NewComputationEnvironment())
	return
}
