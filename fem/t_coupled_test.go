// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	goio "io"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// coupledSystem holds the objects of a coupled problem over two abutting boxes
type coupledSystem struct {
	ctx   *Context
	sets  []*EquationsSet
	cond  *InterfaceCondition
	prob  *Problem
	sol   *Solver
	eqs   *SolverEquations
	width float64
}

// newCoupled sets up a coupled Laplace problem over [0,2w]×[0,h](×[0,l]) made of two boxes
func newCoupled(tst *testing.T, f shp.Family, nelems []int, w float64, setSolver func(s *Solver) Sparsity) (o *coupledSystem) {

	// auxiliary
	o = &coupledSystem{ctx: serialContext(), width: w}
	ctx := o.ctx
	ndim := len(nelems)
	extent := []float64{w, 1, 1.5}[:ndim]
	scaling := ScalingNone
	if f == shp.CubicHermite {
		scaling = ScalingArithmeticMean
	}
	must := func(err error) {
		if err != nil {
			tst.Fatalf("%v", err)
		}
	}

	// regions and meshes
	var meshes []*msh.Mesh
	var geos []*Field
	var decomps []*msh.Decomposition
	for r := 0; r < 2; r++ {
		cs, err := ctx.NewCoordinateSystem(r+1, ndim)
		must(err)
		reg, err := ctx.WorldRegion.NewSubRegion(r+1, io.Sf("Region%d", r+1), cs)
		must(err)
		g := msh.NewGeneratedMesh(r + 1)
		g.Basis = newBasis(tst, r+1, f, ndim, 4)
		g.Origin = make([]float64, ndim)
		g.Origin[0] = float64(r) * w
		g.Extent, g.NumberOfElements = extent, nelems
		m, err := reg.GenerateMesh(g, r+1)
		must(err)
		d, err := ctx.NewDecomposition(r+1, m)
		must(err)
		geo, err := ctx.NewField(r+1, FieldGeometric, d, []VariableType{VariableU}, ndim)
		must(err)
		geo.Scaling = scaling
		meshes = append(meshes, m)
		geos = append(geos, geo)
		decomps = append(decomps, d)
		s, err := reg.NewEquationsSet(r+1, geo, LaplaceStandard, 10+r)
		must(err)
		o.sets = append(o.sets, s)
	}

	// interface
	csI, err := ctx.NewCoordinateSystem(3, ndim)
	must(err)
	it, err := ctx.WorldRegion.NewInterface(1, "Interface")
	must(err)
	it.CoordSys = csI
	it.AddMesh(meshes[0])
	it.AddMesh(meshes[1])
	gI := msh.NewGeneratedMesh(3)
	gI.Basis = newBasis(tst, 3, f, ndim-1, 4)
	gI.Origin = make([]float64, ndim)
	gI.Origin[0] = w
	gI.Extent = append([]float64{0}, extent[1:]...)
	gI.NumberOfElements = nelems[1:]
	mI, err := it.GenerateMesh(gI, 3)
	must(err)

	// mesh connectivity
	conn, err := it.MeshConnectivityCreate(newBasis(tst, 4, shp.LinearLagrange, ndim-1, 2))
	must(err)
	nx := nelems[0]
	for _, eI := range mI.Elems {
		for k := 0; k < 2; k++ {
			grid := append([]int{(1 - k) * (nx - 1)}, eI.Grid...)
			e, err := meshes[k].ElemAt(grid)
			must(err)
			must(conn.SetElementNumber(eI.Id, k+1, e.Id))
			for v, idx := range conn.Basis.NodeIdx {
				xi := []float64{float64(1 - k)}
				for _, i := range idx {
					xi = append(xi, float64(i))
				}
				must(conn.SetElementXi(eI.Id, k+1, e.Id, v+1, 1, xi))
			}
		}
	}

	// decompositions and geometric fields
	dI, err := ctx.NewDecomposition(3, mI)
	must(err)
	dc, err := ctx.NewDecomposer(1)
	must(err)
	dc.AddDecomposition(decomps[0])
	dc.AddDecomposition(decomps[1])
	dc.AddDecomposition(dI)
	must(dc.Finish())
	for _, geo := range geos {
		must(geo.GeometricParametersCalculate())
	}
	geoI, err := ctx.NewField(3, FieldGeometric, dI, []VariableType{VariableU}, ndim)
	must(err)
	geoI.Scaling = scaling
	must(geoI.GeometricParametersCalculate())

	// dependent fields and equations
	for r, s := range o.sets {
		_, err = s.DependentCreate(20+r, io.Sf("Phi%d", r+1))
		must(err)
		_, err = s.EquationsCreate(SparsitySparse, OutputNone)
		must(err)
	}

	// interface condition
	o.cond, err = it.NewInterfaceCondition(1, geoI, LagrangeMultipliers, FieldContinuity)
	must(err)
	must(o.cond.AddDependentVariable(1, o.sets[0], VariableU))
	must(o.cond.AddDependentVariable(2, o.sets[1], VariableU))
	_, err = o.cond.LagrangeFieldCreate(30, "InterfaceLagrange")
	must(err)
	_, err = o.cond.EquationsCreate(SparsitySparse, OutputNone)
	must(err)
	must(o.cond.Finish())

	// problem and solver
	o.prob, err = ctx.NewProblem(1, LaplaceStandard)
	must(err)
	o.sol, err = o.prob.ControlLoopCreate().Solver(1)
	must(err)
	sparsity := setSolver(o.sol)
	o.eqs, err = o.sol.SolverEquationsCreate(sparsity)
	must(err)
	for _, s := range o.sets {
		_, err = o.eqs.AddEquationsSet(s)
		must(err)
	}
	_, err = o.eqs.AddInterfaceCondition(o.cond)
	must(err)

	// boundary conditions
	bcs, err := o.eqs.BoundaryConditionsCreate(ctx.Env)
	must(err)
	must(bcs.SetNode(o.sets[0].Dependent, VariableU, 1, 1, 1, 1, ConditionFixed, 0))
	last := meshes[1].NumberOfNodes()
	must(bcs.SetNode(o.sets[1].Dependent, VariableU, 1, 1, last, 1, ConditionFixed, 1))
	bcs.Finish()
	return
}

// lapack selects the dense direct solver
func lapack(s *Solver) Sparsity {
	s.Library = LibraryLapack
	return SparsityFull
}

// check checks antisymmetry, interface continuity and prescribed values
func (o *coupledSystem) check(tst *testing.T, tol float64) {

	// fixed values
	u1 := o.sets[0].Dependent
	u2 := o.sets[1].Dependent
	last := u2.Mesh.NumberOfNodes()
	chk.Float64(tst, "u @ first node of mesh 1", 1e-15, u1.NodeValue(VariableU, 1, 1, 1), 0)
	chk.Float64(tst, "u @ last node of mesh 2", 1e-15, u2.NodeValue(VariableU, 1, last, 1), 1)

	// antisymmetry about the centre of the combined box: u(p) + u(p*) = 1
	// node n of mesh 1 is the reflection of node N+1-n of mesh 2
	for n := 1; n <= last; n++ {
		a := u1.NodeValue(VariableU, 1, n, 1)
		b := u2.NodeValue(VariableU, 1, last+1-n, 1)
		if math.Abs(a+b-1) > tol {
			tst.Errorf("antisymmetry failed @ node %d: %g + %g != 1", n, a, b)
			return
		}
	}

	// continuity: nodes of mesh 1 at x = w coincide with nodes of mesh 2 at x = w
	for _, nod1 := range u1.Mesh.Nodes {
		if math.Abs(nod1.X[0]-o.width) > 1e-12 {
			continue
		}
		for _, nod2 := range u2.Mesh.Nodes {
			same := true
			for a := range nod1.X {
				if math.Abs(nod1.X[a]-nod2.X[a]) > 1e-12 {
					same = false
				}
			}
			if same {
				a := u1.NodeValue(VariableU, 1, nod1.Id, 1)
				b := u2.NodeValue(VariableU, 1, nod2.Id, 1)
				if math.Abs(a-b) > tol {
					tst.Errorf("continuity failed @ %v: %g != %g", nod1.X, a, b)
					return
				}
			}
		}
	}
}

func Test_coupled01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coupled01. 2D coupled problem with all bases")

	for _, f := range []shp.Family{shp.LinearLagrange, shp.QuadraticLagrange, shp.CubicLagrange, shp.CubicHermite} {
		o := newCoupled(tst, f, []int{2, 2}, 2, lapack)
		if err := o.prob.Solve(); err != nil {
			tst.Errorf("%v: Solve failed:\n%v", f, err)
			return
		}
		io.Pforan("%v: residual = %g\n", f, o.sol.Residual)
		o.check(tst, 1e-10)
	}
}

func Test_coupled02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coupled02. 3D coupled problem")

	for _, f := range []shp.Family{shp.LinearLagrange, shp.QuadraticLagrange} {
		o := newCoupled(tst, f, []int{2, 2, 1}, 2, lapack)
		if err := o.prob.Solve(); err != nil {
			tst.Errorf("%v: Solve failed:\n%v", f, err)
			return
		}
		o.check(tst, 1e-10)
	}
}

func Test_coupled03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coupled03. one element per region: exact linear solution")

	// the solution is antisymmetric; thus the mean value on the interface is 1/2
	o := newCoupled(tst, shp.LinearLagrange, []int{1, 1}, 1, lapack)
	if err := o.prob.Solve(); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	u1 := o.sets[0].Dependent
	a := u1.NodeValue(VariableU, 1, 2, 1)
	b := u1.NodeValue(VariableU, 1, 4, 1)
	chk.Float64(tst, "mean u @ interface", 1e-12, (a+b)/2, 0.5)

	// the Lagrange multipliers balance the fluxes: the flux of mesh 1 at the interface is
	// equal and opposite to the flux of mesh 2
	q1 := u1.NodeValue(VariableDelUDelN, 1, 2, 1) + u1.NodeValue(VariableDelUDelN, 1, 4, 1)
	u2 := o.sets[1].Dependent
	q2 := u2.NodeValue(VariableDelUDelN, 1, 1, 1) + u2.NodeValue(VariableDelUDelN, 1, 3, 1)
	chk.Float64(tst, "q1 + q2", 1e-12, q1+q2, 0)
}

func Test_coupled04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coupled04. iterative solver with sparse and full operators")

	for _, sparsity := range []Sparsity{SparsitySparse, SparsityFull} {
		o := newCoupled(tst, shp.LinearLagrange, []int{2, 2}, 2, func(s *Solver) Sparsity {
			s.LinearType = LinearIterative
			s.RelTol = 1e-12
			s.AbsTol = 0
			s.Restart = 1000
			s.MaxIterations = 1000
			return sparsity
		})
		if err := o.prob.Solve(); err != nil {
			tst.Errorf("%v: Solve failed:\n%v", sparsity, err)
			return
		}
		io.Pforan("%v: iterations = %d\n", sparsity, o.sol.Iterations)
		o.check(tst, 1e-8)
	}
}

func Test_coupled05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coupled05. incompatible sparsity and invalid settings")

	ctx := serialContext()
	p, err := ctx.NewProblem(1, LaplaceStandard)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	s, err := p.ControlLoopCreate().Solver(1)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if _, err = s.SolverEquationsCreate(SparsityFull); err == nil {
		tst.Errorf("mumps with full matrices should have failed")
	}
	s.Library = LibraryUmfpack
	if _, err = s.SolverEquationsCreate(SparsityFull); err == nil {
		tst.Errorf("umfpack with full matrices should have failed")
	}
	s.Library = LibraryLapack
	if _, err = s.SolverEquationsCreate(SparsitySparse); err == nil {
		tst.Errorf("lapack with sparse matrices should have failed")
	}
	s.LinearType = LinearIterative
	if _, err = s.SolverEquationsCreate(SparsitySparse); err != nil {
		tst.Errorf("iterative solver accepts sparse matrices:\n%v", err)
	}
	if _, err = s.SolverEquationsCreate(SparsityFull); err != nil {
		tst.Errorf("iterative solver accepts full matrices:\n%v", err)
	}
	s.Restart = 0
	if _, err = s.SolverEquationsCreate(SparsityFull); err == nil {
		tst.Errorf("restart = 0 should have failed")
	}
	if _, err = p.ControlLoop.Solver(2); err == nil {
		tst.Errorf("solver 2 does not exist")
	}
	if _, err = ctx.NewProblem(1, LaplaceStandard); err == nil {
		tst.Errorf("duplicated user number should have failed")
	}
	if err = p.Solve(); err == nil {
		tst.Errorf("Solve without solver equations should have failed")
	}
}

// captureStdout returns what fcn prints to the standard output
func captureStdout(tst *testing.T, fcn func()) string {
	r, w, err := os.Pipe()
	if err != nil {
		tst.Fatalf("%v", err)
	}
	stdout, verbose := os.Stdout, io.Verbose
	os.Stdout, io.Verbose = w, true
	done := make(chan string)
	go func() {
		var b bytes.Buffer
		goio.Copy(&b, r)
		done <- b.String()
	}()
	defer func() {
		os.Stdout, io.Verbose = stdout, verbose
	}()
	fcn()
	w.Close()
	return <-done
}

// nodalValues returns the values of u of both equations sets and of the Lagrange multipliers
func (o *coupledSystem) nodalValues() (res []float64) {
	for _, s := range o.sets {
		for _, vals := range s.Dependent.Var(VariableU).Values {
			res = append(res, vals[0][0])
		}
	}
	for _, vals := range o.cond.Lagrange.Var(VariableU).Values {
		res = append(res, vals[0][0])
	}
	return
}

func Test_coupled06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coupled06. sparse direct solvers versus dense solver")

	ref := newCoupled(tst, shp.LinearLagrange, []int{2, 2}, 2, lapack)
	if err := ref.prob.Solve(); err != nil {
		tst.Errorf("lapack: Solve failed:\n%v", err)
		return
	}

	// mumps runs with umfpack if MPI is off
	for _, library := range []string{LibraryUmfpack, LibraryMumps} {
		o := newCoupled(tst, shp.LinearLagrange, []int{2, 2}, 2, func(s *Solver) Sparsity {
			s.Library = library
			return SparsitySparse
		})
		if err := o.prob.Solve(); err != nil {
			tst.Errorf("%s: Solve failed:\n%v", library, err)
			return
		}
		io.Pforan("%s: residual = %g\n", library, o.sol.Residual)
		o.check(tst, 1e-12)
		chk.Array(tst, library+": u and λ", 1e-12, o.nodalValues(), ref.nodalValues())
		chk.Float64(tst, library+": residual", 1e-12, o.sol.Residual, 0)
	}
}

func Test_coupled07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("coupled07. output of equations sets, equations and interface equations")

	o := newCoupled(tst, shp.LinearLagrange, []int{1, 1}, 1, lapack)
	o.ctx.ShowMsg = true
	o.sets[0].Output = OutputTiming
	o.sets[0].Equations.Output = OutputElementMatrix
	o.sets[1].Equations.Output = OutputMatrix
	o.cond.Equations.Output = OutputMatrix
	o.sol.Output = OutputMonitor

	var err error
	txt := captureStdout(tst, func() {
		err = o.prob.Solve()
	})
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	if chk.Verbose {
		io.Pf("%s", txt)
	}

	// printed
	for _, key := range []string{
		"equations set 1: assembly time =",
		"equations set 1: element 1: K =",
		"equations set 2: K (i, j, value) =",
		"interface condition 1: mesh 1: C (i, j, value) =",
		"interface condition 1: mesh 2: C (i, j, value) =",
		"neq = 8,",
	} {
		if !strings.Contains(txt, key) {
			tst.Errorf("output should contain %q", key)
		}
	}

	// not printed
	for _, key := range []string{
		"equations set 1: K (",
		"equations set 2: assembly time",
		"equations set 2: element",
		"interface element 1, mesh 1: C =",
	} {
		if strings.Contains(txt, key) {
			tst.Errorf("output should not contain %q", key)
		}
	}

	// element matrices are printed during assembly only
	chk.Int(tst, "number of element matrices of set 1", strings.Count(txt, "equations set 1: element 1: K ="), 1)
}
