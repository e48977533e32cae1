// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/diff/fd"
)

// CheckShape checks that value functions evaluate to 1.0 @ their own nodes and that all
// other functions vanish @ nodes
func CheckShape(tst *testing.T, basis *Basis, tol float64, verbose bool) {

	// loop over all nodes
	errS := 0.0
	S := make([]float64, basis.Nparams)
	for n := 0; n < basis.Nnodes; n++ {

		// compute functions
		basis.Eval(S, nil, basis.NodeXi[n], nil)

		// check
		if verbose {
			io.Pf("S = %v\n", S)
		}
		for m := 0; m < basis.Nnodes; m++ {
			for d := 1; d <= basis.Nderivs; d++ {
				p := basis.Param(m, d)
				if n == m && d == 1 {
					errS += math.Abs(S[p] - 1.0)
				} else {
					errS += math.Abs(S[p])
				}
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", basis.Label(), errS)
		return
	}
}

// CheckPartition checks that value functions add up to 1.0 @ xi
func CheckPartition(tst *testing.T, basis *Basis, xi []float64, tol float64) {
	S := make([]float64, basis.Nparams)
	basis.Eval(S, nil, xi, nil)
	sum := 0.0
	for n := 0; n < basis.Nnodes; n++ {
		sum += S[basis.Param(n, 1)]
	}
	if math.Abs(sum-1.0) > tol {
		tst.Errorf("%s: sum of value functions @ %v = %g != 1\n", basis.Label(), xi, sum)
	}
}

// CheckDSdXi checks dSdXi derivatives against central finite differences
func CheckDSdXi(tst *testing.T, basis *Basis, xi []float64, tol float64, verbose bool) {

	// analytical
	S := make([]float64, basis.Nparams)
	dSdXi := utl.Alloc(basis.Nparams, basis.Nxi)
	basis.Eval(S, dSdXi, xi, nil)

	// numerical
	tmp := make([]float64, basis.Nparams)
	x := make([]float64, basis.Nxi)
	settings := &fd.Settings{Formula: fd.Central}
	for p := 0; p < basis.Nparams; p++ {
		for j := 0; j < basis.Nxi; j++ {
			num := fd.Derivative(func(s float64) float64 {
				copy(x, xi)
				x[j] = s
				basis.Eval(tmp, nil, x, nil)
				return tmp[p]
			}, xi[j], settings)
			if verbose {
				io.Pf("dS%d/dxi%d: ana = %23.15e  num = %23.15e\n", p, j+1, dSdXi[p][j], num)
			}
			if math.Abs(num-dSdXi[p][j]) > tol {
				tst.Errorf("%s: dS%d/dxi%d @ %v failed: ana = %g, num = %g\n", basis.Label(), p, j+1, xi, dSdXi[p][j], num)
			}
		}
	}
}
