// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_args01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("args01. defaults and valid overrides")

	o := NewParams()
	require.NoError(tst, o.ApplyArgs(nil))
	assert.Equal(tst, []int{2, 2}, o.NumberOfElements())
	assert.Equal(tst, LinearLagrange, o.Interp)
	assert.Equal(tst, 2, o.Ndim())

	require.NoError(tst, o.ApplyArgs([]string{"4"}))
	assert.Equal(tst, []int{4, 2}, o.NumberOfElements())

	require.NoError(tst, o.ApplyArgs([]string{"3", "5", "1", "4"}))
	assert.Equal(tst, []int{3, 5, 1}, o.NumberOfElements())
	assert.Equal(tst, CubicHermite, o.Interp)
	assert.Equal(tst, 3, o.Ndim())
	assert.Equal(tst, 2, o.NdimInterface())
	assert.Equal(tst, []float64{2, 1, 3}, o.Extent())

	// zero counts are accepted here; mesh generation rejects them later
	require.NoError(tst, o.ApplyArgs([]string{"0", "0", "0", "2"}))
	assert.Equal(tst, []int{0, 0}, o.NumberOfElements())
	assert.Equal(tst, QuadraticLagrange, o.Interp)
	assert.NoError(tst, o.Validate())
}

func Test_args02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("args02. too many arguments")

	o := NewParams()
	err := o.ApplyArgs([]string{"1", "1", "1", "1", "1"})
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "too many arguments")
	assert.Contains(tst, err.Error(), "numberXElements numberYElements numberZElements interpolationType")

	// nothing changed
	assert.Equal(tst, NewParams(), o)
}

func Test_args03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("args03. negative or invalid element counts")

	cases := []struct {
		args []string
		name string
	}{
		{[]string{"-1"}, "numberXElements"},
		{[]string{"2", "-3"}, "numberYElements"},
		{[]string{"2", "3", "-1", "1"}, "numberZElements"},
		{[]string{"abc"}, "numberXElements"},
		{[]string{"2", "1.5"}, "numberYElements"},
	}
	for _, c := range cases {
		o := NewParams()
		err := o.ApplyArgs(c.args)
		require.Error(tst, err, "args = %v", c.args)
		assert.Contains(tst, err.Error(), c.name, "args = %v", c.args)
		assert.Equal(tst, NewParams(), o)
	}

	o := NewParams()
	err := o.ApplyArgs([]string{"-7"})
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "of -7 is invalid. The number should be >= 0")
}

func Test_args04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("args04. interpolation type")

	for _, code := range []string{"0", "5", "6", "7", "8", "-1", "x"} {
		o := NewParams()
		err := o.ApplyArgs([]string{"1", "1", "0", code})
		require.Error(tst, err, "code = %s", code)
		assert.Contains(tst, err.Error(), "interpolationType", "code = %s", code)
	}
	for code, interp := range map[string]Interpolation{"1": LinearLagrange, "2": QuadraticLagrange, "3": CubicLagrange, "4": CubicHermite} {
		o := NewParams()
		require.NoError(tst, o.ApplyArgs([]string{"1", "1", "0", code}))
		assert.Equal(tst, interp, o.Interp)
	}
}

func Test_interp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp01. interpolation constants")

	chk.Ints(tst, "nodes", []int{
		LinearLagrange.NodesXi(), QuadraticLagrange.NodesXi(), CubicLagrange.NodesXi(), CubicHermite.NodesXi(),
		LinearSimplex.NodesXi(), QuadraticSimplex.NodesXi(), CubicSimplex.NodesXi(),
	}, []int{2, 3, 4, 2, 2, 3, 4})
	chk.Ints(tst, "gauss", []int{
		LinearLagrange.GaussXi(), QuadraticLagrange.GaussXi(), CubicLagrange.GaussXi(), CubicHermite.GaussXi(),
		LinearSimplex.GaussXi(), QuadraticSimplex.GaussXi(), CubicSimplex.GaussXi(),
	}, []int{2, 3, 3, 3, 2, 4, 5})

	assert.Equal(tst, "CUBIC_HERMITE", CubicHermite.String())
	assert.Equal(tst, "UNKNOWN(9)", Interpolation(9).String())
	assert.True(tst, QuadraticSimplex.IsSimplex())
	assert.False(tst, CubicLagrange.IsSimplex())

	interp, err := ParseInterpolation("quadratic_lagrange")
	require.NoError(tst, err)
	assert.Equal(tst, QuadraticLagrange, interp)
	interp, err = ParseInterpolation(" 3 ")
	require.NoError(tst, err)
	assert.Equal(tst, CubicLagrange, interp)
	_, err = ParseInterpolation("12")
	assert.Error(tst, err)
	_, err = ParseInterpolation("bilinear")
	assert.Error(tst, err)
}

func Test_summary01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("summary01")

	o := NewParams()
	s := o.Summary()
	assert.Contains(tst, s, "    Interpolation type: LINEAR_LAGRANGE\n")
	assert.Contains(tst, s, "    Height: 1.000000\n")
	assert.Contains(tst, s, "    Width : 2.000000\n")
	assert.Contains(tst, s, "    Length: 3.000000\n")
	assert.Contains(tst, s, "    Number of Z elements: 0\n")
	if chk.Verbose {
		tst.Log("\n" + s)
	}
}
