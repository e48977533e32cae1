// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func serialContext() *Context {
	return NewContext(1, &ComputationEnvironment{NumberOfGroupNodes: 1}, chk.Verbose)
}

func newBasis(tst *testing.T, userNumber int, f shp.Family, nxi, ngauss int) *shp.Basis {
	interp := make([]shp.Family, nxi)
	ng := make([]int, nxi)
	for i := 0; i < nxi; i++ {
		interp[i] = f
		ng[i] = ngauss
	}
	b, err := shp.NewBasis(userNumber, interp, ng)
	if err != nil {
		tst.Fatalf("NewBasis failed:\n%v", err)
	}
	return b
}

// singleRegion creates a region with a geometric field over a box mesh
func singleRegion(tst *testing.T, ctx *Context, f shp.Family, origin, extent []float64, nelems []int, scaling ScalingType) (*Region, *Field) {
	ndim := len(origin)
	cs, err := ctx.NewCoordinateSystem(1, ndim)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	reg, err := ctx.WorldRegion.NewSubRegion(1, "Region", cs)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	g := msh.NewGeneratedMesh(1)
	g.Basis = newBasis(tst, 1, f, ndim, 3)
	g.Origin, g.Extent, g.NumberOfElements = origin, extent, nelems
	m, err := reg.GenerateMesh(g, 1)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	d, err := ctx.NewDecomposition(1, m)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	if err = d.Partition(); err != nil {
		tst.Fatalf("%v", err)
	}
	geo, err := ctx.NewField(1, FieldGeometric, d, []VariableType{VariableU}, ndim)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	geo.Scaling = scaling
	if err = geo.GeometricParametersCalculate(); err != nil {
		tst.Fatalf("%v", err)
	}
	return reg, geo
}

func Test_laplace01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("laplace01. stiffness of bilinear element")

	ctx := serialContext()
	reg, geo := singleRegion(tst, ctx, shp.LinearLagrange, []float64{0, 0}, []float64{1, 1}, []int{1, 1}, ScalingNone)
	s, err := reg.NewEquationsSet(1, geo, LaplaceStandard, 2)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if _, err = s.DependentCreate(3, "Phi"); err != nil {
		tst.Errorf("%v", err)
		return
	}

	K := utl.Alloc(4, 4)
	g := newElemGeom(geo)
	if err = s.ElemStiffness(K, geo.Mesh.Elem(1), g); err != nil {
		tst.Errorf("%v", err)
		return
	}
	a, b, c := 2.0/3.0, -1.0/6.0, -1.0/3.0
	io.Pforan("K = %v\n", K)
	chk.Deep2(tst, "K", 1e-14, K, [][]float64{
		{a, b, b, c},
		{b, a, c, b},
		{b, c, a, b},
		{c, b, b, a},
	})
}

func Test_laplace02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("laplace02. stiffness: symmetry and zero flux of constant and linear fields")

	for _, f := range []shp.Family{shp.LinearLagrange, shp.QuadraticLagrange, shp.CubicLagrange, shp.CubicHermite} {
		for ndim := 2; ndim <= 3; ndim++ {
			ctx := serialContext()
			origin := make([]float64, ndim)
			extent := []float64{2, 1, 3}[:ndim]
			nelems := []int{2, 1, 1}[:ndim]
			reg, geo := singleRegion(tst, ctx, f, origin, extent, nelems, ScalingArithmeticMean)
			s, err := reg.NewEquationsSet(1, geo, LaplaceStandard, 2)
			if err != nil {
				tst.Errorf("%v", err)
				return
			}
			if _, err = s.DependentCreate(3, "Phi"); err != nil {
				tst.Errorf("%v", err)
				return
			}

			// K is symmetric; constant fields (unit value parameters) have no flux
			b := geo.Mesh.Basis
			K := utl.Alloc(b.Nparams, b.Nparams)
			g := newElemGeom(geo)
			e := geo.Mesh.Elem(1)
			if err = s.ElemStiffness(K, e, g); err != nil {
				tst.Errorf("%v", err)
				return
			}
			values := make([]int, b.Nnodes)
			for n := 0; n < b.Nnodes; n++ {
				values[n] = b.Param(n, 1)
			}
			for p := 0; p < b.Nparams; p++ {
				sum := 0.0
				for _, q := range values {
					sum += K[p][q]
				}
				for q := 0; q < b.Nparams; q++ {
					if diff := K[p][q] - K[q][p]; diff > 1e-12 || diff < -1e-12 {
						tst.Errorf("%s: K is not symmetric", b.Label())
						return
					}
				}
				if sum > 1e-12 || sum < -1e-12 {
					tst.Errorf("%s %dD: K times constant field does not vanish at parameter %d: %g", b.Label(), ndim, p, sum)
					return
				}
			}

			// linear field u = x: the total flux through the element boundary is zero
			ue := make([]float64, b.Nparams)
			geo.ElemParams(ue, VariableU, e, 1)
			total := 0.0
			for _, p := range values {
				for q := 0; q < b.Nparams; q++ {
					total += K[p][q] * ue[q]
				}
			}
			chk.Float64(tst, io.Sf("%s %dD: total flux", b.Label(), ndim), 1e-12, total, 0)
		}
	}
}
