// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
)

// Mapping holds the numbering of the equations of the solver system
//
//      _            _   _  _     _  _
//     |  K1  0   C1ᵀ | | u1 |   | f1 |
//     |  0   K2  C2ᵀ | | u2 | = | f2 |
//     |_ C1  C2  0  _| |_ λ_|   |_0 _|
//
//  Prescribed dependent parameters are not equations; their columns are moved to the right-hand side.
type Mapping struct {
	Neq    int     // total number of equations
	SetEqs [][]int // [nsets][ndofs] equation of each dependent parameter; -1 => prescribed
	LamEqs []int   // [nconditions] first equation of the Lagrange multipliers of each condition
}

// NewMapping numbers the free dependent parameters of each equations set followed by the
// Lagrange multipliers of each interface condition
func (o *SolverEquations) NewMapping() (m *Mapping) {
	m = new(Mapping)
	m.SetEqs = make([][]int, len(o.Sets))
	for k, s := range o.Sets {
		m.SetEqs[k] = make([]int, s.NumberOfDofs())
		for dof := range m.SetEqs[k] {
			if o.Bcs.Fixed[k][dof] {
				m.SetEqs[k][dof] = -1
				continue
			}
			m.SetEqs[k][dof] = m.Neq
			m.Neq++
		}
	}
	m.LamEqs = make([]int, len(o.Conditions))
	for c, cond := range o.Conditions {
		m.LamEqs[c] = m.Neq
		m.Neq += cond.NumberOfDofs()
	}
	return
}

// Solve solves the problem: assembles the solver system, solves it and sets the dependent
// and Lagrange fields with the solution. Finally, DelUDelN = K・u is computed for each
// equations set.
func (o *Problem) Solve() (err error) {

	// check
	if o.ControlLoop == nil || len(o.ControlLoop.Solvers) == 0 {
		return chk.Err("problem %d: control loop with solver is required", o.UserNumber)
	}
	sol := o.ControlLoop.Solvers[0]
	eqs := sol.Equations
	if eqs == nil || len(eqs.Sets) == 0 {
		return chk.Err("problem %d: solver equations with at least one equations set are required", o.UserNumber)
	}
	if eqs.Bcs == nil || !eqs.Bcs.Finished {
		return chk.Err("problem %d: boundary conditions must be created and finished before solving", o.UserNumber)
	}
	if err = sol.CheckCompatibility(); err != nil {
		return
	}
	for _, c := range eqs.Conditions {
		if c.Lagrange == nil {
			return chk.Err("problem %d: interface condition %d has no Lagrange field", o.UserNumber, c.UserNumber)
		}
	}

	// auxiliary
	env := o.ctx.Env
	rank := env.GroupNodeNumber
	distr := env.Distributed() && sol.LinearType == LinearDirect && sol.library(false) == LibraryMumps
	showMsg := o.ctx.ShowMsg && sol.Output != OutputNone
	if showMsg && sol.Output == OutputProgress {
		io.Pf("solver %d: assembling\n", sol.Index)
	}

	// assemble
	tAssembly := time.Now()
	m := eqs.NewMapping()
	A := newSystemMatrix(m.Neq)
	b := make([]float64, m.Neq)
	for k, s := range eqs.Sets {
		if err = o.assembleSet(A, b, m, k, s, distr, rank); err != nil {
			return
		}
	}
	for c, cond := range eqs.Conditions {
		if err = o.assembleCondition(A, b, m, c, cond, distr, rank); err != nil {
			return
		}
	}
	sol.TimeAssembly = time.Since(tAssembly)
	if showMsg && sol.Output == OutputMatrix {
		o.printSystem(A, b, eqs.Sparsity)
	}

	// solve
	if showMsg && sol.Output == OutputProgress {
		io.Pf("solver %d: solving %d equations\n", sol.Index, m.Neq)
	}
	tSolve := time.Now()
	x, err := sol.solveLinear(A, b, distr, o.ctx.ShowMsg)
	if err != nil {
		return chk.Err("problem %d: linear solver failed:\n%v", o.UserNumber, err)
	}
	sol.TimeSolve = time.Since(tSolve)

	// residual: only meaningful if A and b are complete
	if !distr {
		r := make([]float64, m.Neq)
		A.MulVecTo(r, false, x)
		floats.Sub(r, b)
		sol.Residual = floats.Norm(r, 2)
	}

	// messages
	if showMsg {
		switch sol.Output {
		case OutputTiming:
			io.Pf("solver %d: assembly time = %v, solution time = %v\n", sol.Index, sol.TimeAssembly, sol.TimeSolve)
		case OutputMonitor:
			if sol.LinearType == LinearIterative {
				io.Pf("solver %d: GMRES iterations = %d\n", sol.Index, sol.Iterations)
			}
			io.Pf("solver %d: neq = %d, nnz = %d, |A・x - b| = %g\n", sol.Index, m.Neq, A.ToCSR().NNZ(), sol.Residual)
		}
	}

	// set fields
	for k, s := range eqs.Sets {
		o.scatterSet(x, m, k, s)
	}
	for c, cond := range eqs.Conditions {
		v := cond.Lagrange.Var(VariableU)
		nd := cond.Lagrange.Nderivs()
		for n := range v.Values {
			for d := 0; d < nd; d++ {
				v.Values[n][d][0] = x[m.LamEqs[c]+n*nd+d]
			}
		}
	}

	// DelUDelN = K・u
	for _, s := range eqs.Sets {
		if err = fluxes(s); err != nil {
			return
		}
	}
	return
}

// assembleSet adds the stiffness of equations set k to A and b
func (o *Problem) assembleSet(A *sparse.COO, b []float64, m *Mapping, k int, s *EquationsSet, distr bool, rank int) (err error) {
	tStart := time.Now()
	fixed := o.ControlLoop.Solvers[0].Equations.Bcs
	eqmap := m.SetEqs[k]
	g := newElemGeom(s.Geometric)
	np := s.Dependent.Mesh.Basis.Nparams
	K := utl.Alloc(np, np)
	decomp := s.Dependent.Decomposition
	var Kset *sparse.COO
	if s.shows(OutputMatrix) {
		Kset = newSystemMatrix(s.NumberOfDofs())
	}
	nelems := 0
	for _, e := range s.Dependent.Mesh.Elems {
		if distr && decomp.ElemDomain[e.Id-1] != rank {
			continue
		}
		if err = s.ElemStiffness(K, e, g); err != nil {
			return
		}
		if s.shows(OutputElementMatrix) {
			printElemMatrix(io.Sf("equations set %d: element %d: K", s.UserNumber, e.Id), K)
		}
		dofs := s.ElemDofs(e)
		for p, I := range dofs {
			for q, J := range dofs {
				if Kset != nil {
					put(Kset, I, J, K[p][q])
				}
				if eqmap[I] < 0 {
					continue
				}
				if eqmap[J] < 0 {
					b[eqmap[I]] -= K[p][q] * fixed.Values[k][J]
					continue
				}
				put(A, eqmap[I], eqmap[J], K[p][q])
			}
		}
		nelems++
	}

	// prescribed fluxes: added once
	if !distr || rank == 0 {
		for dof, flux := range fixed.Fluxes[k] {
			if eqmap[dof] >= 0 {
				b[eqmap[dof]] += flux
			}
		}
	}

	// messages
	if Kset != nil {
		printMatrix(io.Sf("equations set %d: K", s.UserNumber), Kset, s.Equations.Sparsity)
	}
	if s.shows(OutputTiming) {
		io.Pf("equations set %d: assembly time = %v\n", s.UserNumber, time.Since(tStart))
	}
	if s.Output == OutputProgress && o.ctx.ShowMsg {
		io.Pf("equations set %d: %d elements assembled\n", s.UserNumber, nelems)
	}
	return
}

// assembleCondition adds the coupling matrices of interface condition c to A and b
func (o *Problem) assembleCondition(A *sparse.COO, b []float64, m *Mapping, c int, cond *InterfaceCondition, distr bool, rank int) (err error) {
	tStart := time.Now()
	eqs := o.ControlLoop.Solvers[0].Equations
	gI := newElemGeom(cond.Geometric)
	lamMesh := cond.Lagrange.Mesh
	decomp := cond.Lagrange.Decomposition
	nd := cond.Lagrange.Nderivs()
	for meshIndex, s := range cond.Sets {

		// index of equations set in solver equations
		k := -1
		for i, t := range eqs.Sets {
			if t == s {
				k = i
			}
		}
		if k < 0 {
			return chk.Err("interface condition %d: equations set %d is not in solver equations", cond.UserNumber, s.UserNumber)
		}

		// coupling matrix of this mesh: [nLagrangeDofs][nDependentDofs]
		var Cmesh *sparse.COO
		if cond.shows(OutputMatrix) {
			Cmesh = sparse.NewCOO(cond.NumberOfDofs(), s.NumberOfDofs(), nil, nil, nil)
		}

		// interface elements
		gM := newElemGeom(s.Geometric)
		C := cond.allocCoupling(meshIndex + 1)
		for _, eI := range lamMesh.Elems {
			if distr && decomp.ElemDomain[eI.Id-1] != rank {
				continue
			}
			cond.ElemCoupling(C, eI.Id, meshIndex+1, gI, gM)
			if cond.shows(OutputElementMatrix) {
				printElemMatrix(io.Sf("interface condition %d: interface element %d, mesh %d: C", cond.UserNumber, eI.Id, meshIndex+1), C)
			}
			eM := s.Dependent.Mesh.Elem(cond.Interface.Connectivity.Elems[eI.Id-1][meshIndex])
			udofs := s.ElemDofs(eM)
			for i, nodI := range eI.Nodes {
				for d := 1; d <= nd; d++ {
					lam := cond.Dof(nodI, d)
					row := m.LamEqs[c] + lam
					for j, J := range udofs {
						v := C[lamMesh.Basis.Param(i, d)][j]
						if Cmesh != nil {
							put(Cmesh, lam, J, v)
						}
						if m.SetEqs[k][J] < 0 {
							b[row] -= v * eqs.Bcs.Values[k][J]
							continue
						}
						put(A, row, m.SetEqs[k][J], v)
						put(A, m.SetEqs[k][J], row, v)
					}
				}
			}
		}
		if Cmesh != nil {
			printMatrix(io.Sf("interface condition %d: mesh %d: C", cond.UserNumber, meshIndex+1), Cmesh, cond.Equations.Sparsity)
		}
	}
	if cond.shows(OutputTiming) {
		io.Pf("interface condition %d: assembly time = %v\n", cond.UserNumber, time.Since(tStart))
	}
	return
}

// scatterSet sets the dependent field of equations set k with the solution x
func (o *Problem) scatterSet(x []float64, m *Mapping, k int, s *EquationsSet) {
	bcs := o.ControlLoop.Solvers[0].Equations.Bcs
	v := s.Dependent.Var(VariableU)
	nd := s.Dependent.Nderivs()
	for n := range v.Values {
		for d := 0; d < nd; d++ {
			dof := n*nd + d
			if eq := m.SetEqs[k][dof]; eq >= 0 {
				v.Values[n][d][0] = x[eq]
			} else {
				v.Values[n][d][0] = bcs.Values[k][dof]
			}
		}
	}
}

// fluxes computes DelUDelN = K・u with the complete stiffness matrix of equations set s
func fluxes(s *EquationsSet) (err error) {
	g := newElemGeom(s.Geometric)
	np := s.Dependent.Mesh.Basis.Nparams
	K := utl.Alloc(np, np)
	ue := make([]float64, np)
	q := s.Dependent.Var(VariableDelUDelN)
	nd := s.Dependent.Nderivs()
	for n := range q.Values {
		for d := 0; d < nd; d++ {
			q.Values[n][d][0] = 0
		}
	}
	for _, e := range s.Dependent.Mesh.Elems {
		if err = s.ElemStiffness(K, e, g); err != nil {
			return
		}
		s.Dependent.ElemParams(ue, VariableU, e, 1)
		for p, dof := range s.ElemDofs(e) {
			for j := range ue {
				q.Values[dof/nd][dof%nd][0] += K[p][j] * ue[j]
			}
		}
	}
	return
}

// printSystem prints the assembled system
func (o *Problem) printSystem(A *sparse.COO, b []float64, sparsity Sparsity) {
	printMatrix("A", A, sparsity)
	io.Pf("b = %v\n", b)
}
