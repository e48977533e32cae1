// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements basis (shape) functions and quadrature rules for tensor-product
// Lagrange and Hermite elements defined on xi ∈ [0,1]^nxi
package shp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Type defines the type of basis
type Type int

// basis types
const (
	LagrangeHermiteTP Type = iota + 1 // tensor-product Lagrange/Hermite
	Simplex                           // simplex (triangles, tetrahedra); not available
)

// Basis holds a tensor-product basis.
//
//  Element parameters are numbered node by node; for each node, the nodal parameters are
//  ordered by partial derivatives: none, s1, s2, s1s2, s3, s1s3, s2s3, s1s2s3; i.e. the
//  bits of (derivative number - 1) tell which directions are differentiated.
//
//  Local nodes are numbered with xi1 running fastest, then xi2 and xi3.
type Basis struct {

	// input
	UserNumber int      // user number
	Type       Type     // type of basis
	Nxi        int      // number of xi directions
	Interp     []Family // [nxi] interpolation along each xi
	Ngauss     []int    // [nxi] number of Gauss points along each xi

	// derived
	NnodesXi []int       // [nxi] number of nodes along each xi
	Nnodes   int         // number of local nodes
	Nderivs  int         // number of parameters per node (1 for Lagrange)
	Nparams  int         // number of element parameters: Nnodes * Nderivs
	NodeIdx  [][]int     // [nnodes][nxi] position of each local node along each xi
	NodeXi   [][]float64 // [nnodes][nxi] xi coordinates of local nodes
	Vertices []int       // [2^nxi] local nodes at the corners of the element
	GaussXi  [][]float64 // [ngp][nxi] Gauss points
	GaussW   []float64   // [ngp] Gauss weights (product of one-dimensional weights)

	// scratchpad
	f  [][][]float64 // [nxi][nnodes1d][nderivs1d] one-dimensional functions
	df [][][]float64 // [nxi][nnodes1d][nderivs1d] one-dimensional derivatives
}

// NewBasis returns a new tensor-product basis
//  userNumber -- user number of basis
//  interp     -- [nxi] interpolation along each xi direction
//  ngauss     -- [nxi] number of Gauss points along each xi direction
func NewBasis(userNumber int, interp []Family, ngauss []int) (o *Basis, err error) {

	// check
	nxi := len(interp)
	if nxi < 1 || nxi > 3 {
		return nil, chk.Err("number of xi directions must be 1, 2 or 3. %d is invalid", nxi)
	}
	if len(ngauss) != nxi {
		return nil, chk.Err("number of Gauss points must be given for each of the %d xi directions. len(ngauss)=%d", nxi, len(ngauss))
	}
	nherm := 0
	for i := 0; i < nxi; i++ {
		if interp[i].Nnodes() == 0 {
			return nil, chk.Err("interpolation %d along xi %d is invalid", interp[i], i+1)
		}
		if ngauss[i] < 1 {
			return nil, chk.Err("number of Gauss points along xi %d must be >= 1. %d is invalid", i+1, ngauss[i])
		}
		if interp[i].IsHermite() {
			nherm++
		}
	}
	if nherm > 0 && nherm != nxi {
		return nil, chk.Err("Hermite interpolation cannot be mixed with Lagrange interpolation")
	}

	// input
	o = new(Basis)
	o.UserNumber = userNumber
	o.Type = LagrangeHermiteTP
	o.Nxi = nxi
	o.Interp = append([]Family{}, interp...)
	o.Ngauss = append([]int{}, ngauss...)

	// nodes
	o.NnodesXi = make([]int, nxi)
	o.Nnodes = 1
	for i := 0; i < nxi; i++ {
		o.NnodesXi[i] = interp[i].Nnodes()
		o.Nnodes *= o.NnodesXi[i]
	}
	o.Nderivs = 1
	if nherm > 0 {
		o.Nderivs = 1 << uint(nxi)
	}
	o.Nparams = o.Nnodes * o.Nderivs
	o.NodeIdx = TensorIndices(o.NnodesXi)
	o.NodeXi = utl.Alloc(o.Nnodes, nxi)
	for n, idx := range o.NodeIdx {
		for i := 0; i < nxi; i++ {
			o.NodeXi[n][i] = interp[i].NodeXi(idx[i])
		}
	}

	// vertices
	for n, idx := range o.NodeIdx {
		corner := true
		for i := 0; i < nxi; i++ {
			if idx[i] != 0 && idx[i] != o.NnodesXi[i]-1 {
				corner = false
				break
			}
		}
		if corner {
			o.Vertices = append(o.Vertices, n)
		}
	}

	// Gauss points
	xs := make([][]float64, nxi)
	ws := make([][]float64, nxi)
	for i := 0; i < nxi; i++ {
		xs[i], ws[i] = GaussLegendre(ngauss[i])
	}
	for _, idx := range TensorIndices(ngauss) {
		x := make([]float64, nxi)
		w := 1.0
		for i := 0; i < nxi; i++ {
			x[i] = xs[i][idx[i]]
			w *= ws[i][idx[i]]
		}
		o.GaussXi = append(o.GaussXi, x)
		o.GaussW = append(o.GaussW, w)
	}

	// scratchpad
	o.f = make([][][]float64, nxi)
	o.df = make([][][]float64, nxi)
	for i := 0; i < nxi; i++ {
		o.f[i] = utl.Alloc(o.NnodesXi[i], interp[i].Nderivs())
		o.df[i] = utl.Alloc(o.NnodesXi[i], interp[i].Nderivs())
	}
	return
}

// IsHermite tells whether the basis has derivative parameters
func (o *Basis) IsHermite() bool { return o.Nderivs > 1 }

// Label returns the CMGUI label of the basis; e.g. l.Lagrange*l.Lagrange
func (o *Basis) Label() string {
	labels := make([]string, o.Nxi)
	for i, f := range o.Interp {
		labels[i] = f.String()
	}
	return strings.Join(labels, "*")
}

// Ngp returns the number of Gauss points
func (o *Basis) Ngp() int { return len(o.GaussW) }

// Param returns the element parameter index corresponding to local node n and
// derivative number d (1-based, as in derivative numbers of nodal parameters)
func (o *Basis) Param(n, d int) int {
	return n*o.Nderivs + d - 1
}

// DerivativeDirs returns the xi directions differentiated by derivative number d (1-based)
func (o *Basis) DerivativeDirs(d int) (dirs []int) {
	bits := d - 1
	for i := 0; i < o.Nxi; i++ {
		if bits&(1<<uint(i)) != 0 {
			dirs = append(dirs, i)
		}
	}
	return
}

// Eval computes the element functions S and their xi-derivatives dSdXi at xi
//  S      -- [nparams] functions (output)
//  dSdXi  -- [nparams][nxi] derivatives (output); may be nil
//  xi     -- [nxi] natural coordinates in [0,1]
//  scales -- [nparams] scale factors multiplying each function; nil means unit factors
func (o *Basis) Eval(S []float64, dSdXi [][]float64, xi []float64, scales []float64) {

	// one-dimensional functions
	for i := 0; i < o.Nxi; i++ {
		o.Interp[i].eval1d(o.f[i], o.df[i], xi[i])
	}

	// tensor products
	for n, idx := range o.NodeIdx {
		for d := 0; d < o.Nderivs; d++ {
			p := n*o.Nderivs + d
			val := 1.0
			for i := 0; i < o.Nxi; i++ {
				val *= o.f[i][idx[i]][o.bit(d, i)]
			}
			scale := 1.0
			if scales != nil {
				scale = scales[p]
			}
			S[p] = scale * val
			if dSdXi == nil {
				continue
			}
			for j := 0; j < o.Nxi; j++ {
				der := 1.0
				for i := 0; i < o.Nxi; i++ {
					if i == j {
						der *= o.df[i][idx[i]][o.bit(d, i)]
					} else {
						der *= o.f[i][idx[i]][o.bit(d, i)]
					}
				}
				dSdXi[p][j] = scale * der
			}
		}
	}
}

// bit returns the one-dimensional parameter index (0: value, 1: derivative) of nodal
// parameter d along xi direction i
func (o *Basis) bit(d, i int) int {
	if o.Nderivs == 1 {
		return 0
	}
	return (d >> uint(i)) & 1
}

// TensorIndices returns all multi-indices of a tensor grid with n[i] points along
// direction i. The first direction runs fastest.
func TensorIndices(n []int) (indices [][]int) {
	total := 1
	for _, m := range n {
		total *= m
	}
	indices = make([][]int, total)
	for k := 0; k < total; k++ {
		idx := make([]int, len(n))
		r := k
		for i, m := range n {
			idx[i] = r % m
			r /= m
		}
		indices[k] = idx
	}
	return
}
