// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// elemGeom computes the geometry of elements of a geometric field @ points in xi space
type elemGeom struct {

	// input
	geo   *Field     // geometric field
	basis *shp.Basis // basis of geometric field
	ndim  int        // space dimension
	nxi   int        // number of xi

	// element data
	X      [][]float64 // [ndim][nparams] element coordinates
	scales []float64   // [nparams] scale factors; may be nil

	// @ point
	S     []float64   // [nparams] functions
	dSdXi [][]float64 // [nparams][nxi] derivatives of functions with respect to xi
	dSdx  [][]float64 // [nparams][ndim] derivatives of functions with respect to x; if ndim == nxi
	x     []float64   // [ndim] position
	J     *mat.Dense  // [ndim][nxi] dx/dxi
	Jinv  *mat.Dense  // [nxi][ndim] inverse of J; if ndim == nxi
	G     *mat.Dense  // [nxi][nxi] metric tensor Jᵀ・J
}

// newElemGeom returns a new structure to compute the geometry of elements of field geo
func newElemGeom(geo *Field) (o *elemGeom) {
	o = new(elemGeom)
	o.geo = geo
	o.basis = geo.Mesh.Basis
	o.ndim = geo.Var(VariableU).Ncomps
	o.nxi = o.basis.Nxi
	np := o.basis.Nparams
	o.X = utl.Alloc(o.ndim, np)
	o.S = make([]float64, np)
	o.dSdXi = utl.Alloc(np, o.nxi)
	o.dSdx = utl.Alloc(np, o.ndim)
	o.x = make([]float64, o.ndim)
	o.J = mat.NewDense(o.ndim, o.nxi, nil)
	o.Jinv = mat.NewDense(o.nxi, o.ndim, nil)
	o.G = mat.NewDense(o.nxi, o.nxi, nil)
	return
}

// setElem gathers the coordinates and scale factors of element e
func (o *elemGeom) setElem(e *msh.Elem) {
	for c := 0; c < o.ndim; c++ {
		o.geo.ElemParams(o.X[c], VariableU, e, c+1)
	}
	o.scales = o.geo.ElemScales(e)
}

// at computes functions, position and Jacobian @ xi
func (o *elemGeom) at(xi []float64) {
	o.basis.Eval(o.S, o.dSdXi, xi, o.scales)
	for a := 0; a < o.ndim; a++ {
		o.x[a] = 0
		for i := 0; i < o.nxi; i++ {
			o.J.Set(a, i, 0)
		}
		for p, s := range o.S {
			o.x[a] += s * o.X[a][p]
			for i := 0; i < o.nxi; i++ {
				o.J.Set(a, i, o.J.At(a, i)+o.dSdXi[p][i]*o.X[a][p])
			}
		}
	}
}

// volume computes dSdx and returns the determinant of J; nxi must be equal to ndim
func (o *elemGeom) volume() (detJ float64, err error) {
	if o.nxi != o.ndim {
		chk.Panic("volume measure requires nxi == ndim. %d != %d", o.nxi, o.ndim)
	}
	detJ = mat.Det(o.J)
	if detJ <= 0 {
		return 0, chk.Err("element Jacobian determinant is not positive: detJ = %g", detJ)
	}
	if err = o.Jinv.Inverse(o.J); err != nil {
		return 0, chk.Err("cannot invert element Jacobian:\n%v", err)
	}
	for p := range o.S {
		for a := 0; a < o.ndim; a++ {
			o.dSdx[p][a] = 0
			for i := 0; i < o.nxi; i++ {
				o.dSdx[p][a] += o.dSdXi[p][i] * o.Jinv.At(i, a)
			}
		}
	}
	return
}

// measure returns the length/area/volume measure sqrt(det(Jᵀ・J)) @ the current point
func (o *elemGeom) measure() float64 {
	o.G.Mul(o.J.T(), o.J)
	return math.Sqrt(math.Abs(mat.Det(o.G)))
}

// position returns a copy of the current position
func (o *elemGeom) position() []float64 {
	return append([]float64{}, o.x...)
}
