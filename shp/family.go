// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/chk"

// Family defines the one-dimensional interpolation along one xi direction
type Family int

// one-dimensional interpolation families
const (
	LinearLagrange Family = iota + 1
	QuadraticLagrange
	CubicLagrange
	CubicHermite
)

// String returns the CMGUI label of the family; e.g. l.Lagrange
func (o Family) String() string {
	switch o {
	case LinearLagrange:
		return "l.Lagrange"
	case QuadraticLagrange:
		return "q.Lagrange"
	case CubicLagrange:
		return "c.Lagrange"
	case CubicHermite:
		return "c.Hermite"
	}
	return "unknown"
}

// Nnodes returns the number of nodes along xi
func (o Family) Nnodes() int {
	switch o {
	case LinearLagrange, CubicHermite:
		return 2
	case QuadraticLagrange:
		return 3
	case CubicLagrange:
		return 4
	}
	return 0
}

// Nderivs returns the number of parameters per node along xi (value and derivatives)
func (o Family) Nderivs() int {
	if o == CubicHermite {
		return 2
	}
	return 1
}

// IsHermite tells whether the family carries derivative parameters
func (o Family) IsHermite() bool { return o == CubicHermite }

// NodeXi returns the xi coordinate of local node n along xi
func (o Family) NodeXi(n int) float64 {
	return float64(n) / float64(o.Nnodes()-1)
}

// eval1d computes the one-dimensional functions f[n][d] and their derivatives df[n][d]
// at ξ ∈ [0,1] for node n and nodal parameter d (d=0: value; d=1: derivative; Hermite only)
func (o Family) eval1d(f, df [][]float64, ξ float64) {
	switch o {

	// Lagrange polynomials on equispaced nodes
	case LinearLagrange, QuadraticLagrange, CubicLagrange:
		nn := o.Nnodes()
		for n := 0; n < nn; n++ {
			ξn := o.NodeXi(n)
			val := 1.0
			der := 0.0
			for m := 0; m < nn; m++ {
				if m == n {
					continue
				}
				ξm := o.NodeXi(m)
				den := ξn - ξm
				der = der*(ξ-ξm)/den + val/den
				val *= (ξ - ξm) / den
			}
			f[n][0] = val
			df[n][0] = der
		}

	// cubic Hermite
	case CubicHermite:
		ξ2 := ξ * ξ
		ξ3 := ξ2 * ξ
		f[0][0] = 1.0 - 3.0*ξ2 + 2.0*ξ3
		f[0][1] = ξ3 - 2.0*ξ2 + ξ
		f[1][0] = 3.0*ξ2 - 2.0*ξ3
		f[1][1] = ξ3 - ξ2
		df[0][0] = -6.0*ξ + 6.0*ξ2
		df[0][1] = 3.0*ξ2 - 4.0*ξ + 1.0
		df[1][0] = 6.0*ξ - 6.0*ξ2
		df[1][1] = 3.0*ξ2 - 2.0*ξ

	default:
		chk.Panic("cannot evaluate functions of unknown family %d", o)
	}
}
