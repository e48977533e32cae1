// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/coupledlaplace/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runArgs runs the root command with args and returns the parameters given to the runner
func runArgs(args ...string) (p *inp.Params, called bool, err error) {
	cmd := newRootCmd(func(prms *inp.Params) error {
		p, called = prms, true
		return nil
	})
	err = execute(cmd, args)
	return
}

func Test_cli01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cli01. positional arguments and flags")

	p, called, err := runArgs()
	require.NoError(tst, err)
	require.True(tst, called)
	assert.Equal(tst, inp.NewParams(), p)

	p, _, err = runArgs("3", "4", "2", "4", "--quiet", "--dirout", "/tmp/coupledlaplace", "--library", "lapack", "--sparsity", "full")
	require.NoError(tst, err)
	assert.Equal(tst, []int{3, 4, 2}, p.NumberOfElements())
	assert.Equal(tst, inp.CubicHermite, p.Interp)
	assert.False(tst, p.SetupOutput)
	assert.False(tst, p.ProgressDiagnostics)
	assert.Equal(tst, "/tmp/coupledlaplace", p.Output.DirOut)
	assert.Equal(tst, "lapack", p.LinSol.Library)
	assert.Equal(tst, "full", p.LinSol.Sparsity)

	p, _, err = runArgs("--linsol", "iterative")
	require.NoError(tst, err)
	assert.Equal(tst, "iterative", p.LinSol.Type)

	// values of flags are not positional arguments even if they look like numbers
	p, _, err = runArgs("--dirout", "-5", "3", "--quiet", "1")
	require.NoError(tst, err)
	assert.Equal(tst, "-5", p.Output.DirOut)
	assert.Equal(tst, []int{3, 1}, p.NumberOfElements())
	assert.False(tst, p.SetupOutput)
}

func Test_cli02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cli02. errors are caught before running")

	_, called, err := runArgs("1", "1", "1", "1", "1")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "too many arguments")

	_, called, err = runArgs("--", "2", "-3")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "numberYElements")

	_, called, err = runArgs("-1")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "numberXElements of -1")

	_, called, err = runArgs("2", "-3")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "numberYElements of -3")

	_, called, err = runArgs("2", "2", "-1", "1", "--quiet")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "numberZElements of -1")

	_, called, err = runArgs("2", "2", "2", "-4")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "interpolationType of -4")

	_, called, err = runArgs("2", "2", "0", "7")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "interpolationType")

	_, called, err = runArgs("--library", "petsc")
	require.Error(tst, err)
	assert.False(tst, called)

	_, called, err = runArgs("--library", "lapack")
	require.Error(tst, err)
	assert.False(tst, called)
	assert.Contains(tst, err.Error(), "requires full matrices")

	_, called, err = runArgs("--config", filepath.Join(tst.TempDir(), "missing.yaml"))
	require.Error(tst, err)
	assert.False(tst, called)
}

func Test_cli03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cli03. parameters file with overrides")

	fn := filepath.Join(tst.TempDir(), "params.yaml")
	require.NoError(tst, os.WriteFile(fn, []byte("nx: 5\nny: 3\ninterp: QUADRATIC_LAGRANGE\nlinsol:\n  library: umfpack\n"), 0o644))

	p, called, err := runArgs("--config", fn, "7")
	require.NoError(tst, err)
	require.True(tst, called)
	assert.Equal(tst, []int{7, 3}, p.NumberOfElements())
	assert.Equal(tst, inp.QuadraticLagrange, p.Interp)
	assert.Equal(tst, "umfpack", p.LinSol.Library)
}
