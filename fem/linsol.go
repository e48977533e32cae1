// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
	"github.com/james-bowman/sparse"
	"github.com/vladimir-ch/iterative"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// newSystemMatrix returns an empty n×n matrix in coordinate format. Repeated entries are added.
func newSystemMatrix(n int) *sparse.COO {
	return sparse.NewCOO(n, n, nil, nil, nil)
}

// put adds a nonzero entry to A
func put(A *sparse.COO, i, j int, x float64) {
	if x != 0 {
		A.Set(i, j, x)
	}
}

// toLa returns the triplet used by gosl sparse solvers
func toLa(A *sparse.COO) (t *la.Triplet) {
	n, _ := A.Dims()
	t = new(la.Triplet)
	t.Init(n, n, A.NNZ())
	A.DoNonZero(func(i, j int, x float64) {
		t.Put(i, j, x)
	})
	return
}

// printMatrix prints A as a dense matrix (full) or as a list of (i, j, value) entries (sparse)
func printMatrix(title string, A *sparse.COO, sparsity Sparsity) {
	if sparsity == SparsityFull {
		io.Pf("%s =\n%v\n", title, mat.Formatted(A.ToDense(), mat.Squeeze()))
		return
	}
	io.Pf("%s (i, j, value) =\n", title)
	A.ToCSR().DoNonZero(func(i, j int, v float64) {
		io.Pf("%6d %6d %23.15e\n", i, j, v)
	})
}

// printElemMatrix prints an element matrix
func printElemMatrix(title string, M [][]float64) {
	io.Pf("%s =\n", title)
	for _, row := range M {
		io.Pf("%v\n", row)
	}
}

// solveLinear solves A・x = b with the library selected in the solver
//  distr -- A and b hold only the contributions of this processor (distributed MUMPS)
func (o *Solver) solveLinear(A *sparse.COO, b []float64, distr bool, showMsg bool) (x []float64, err error) {
	switch o.LinearType {
	case LinearDirect:
		switch o.Library {
		case LibraryMumps, LibraryUmfpack:
			return o.solveSparseDirect(A, b, distr, showMsg)
		case LibraryLapack:
			return o.solveDenseDirect(A, b)
		}
		return nil, chk.Err("solver %d: direct library %q is not available", o.Index, o.Library)
	case LinearIterative:
		return o.solveIterative(A, b)
	}
	return nil, chk.Err("solver %d: linear type %d is invalid", o.Index, o.LinearType)
}

// library returns the sparse direct library to be used. MUMPS requires MPI; if MPI is off,
// UMFPACK is used instead
func (o *Solver) library(showMsg bool) string {
	if o.Library == LibraryMumps && !mpi.IsOn() {
		if showMsg {
			io.Pforan("solver %d: MPI is off; using %s instead of %s\n", o.Index, LibraryUmfpack, LibraryMumps)
		}
		return LibraryUmfpack
	}
	return o.Library
}

// solveSparseDirect solves the system with UMFPACK or MUMPS from gosl/la
func (o *Solver) solveSparseDirect(A *sparse.COO, b []float64, distr bool, showMsg bool) (x []float64, err error) {

	// gosl solvers panic on failure
	lib := o.library(showMsg)
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("solver %d: %s failed:\n%v", o.Index, lib, r)
		}
	}()

	// communicator
	var comm *mpi.Communicator
	if lib == LibraryMumps {
		comm = mpi.NewCommunicator(nil)
	}

	// factorise and solve
	t := toLa(A)
	n, _ := A.Dims()
	sol := la.NewSparseSolver(lib)
	defer sol.Free()
	sol.Init(t, &la.SpArgs{Verbose: o.Verbose && showMsg, Communicator: comm})
	sol.Fact()
	x = make([]float64, n)
	sol.Solve(x, b, distr)
	return
}

// solveDenseDirect solves the system with the LU factorisation of gonum/mat
func (o *Solver) solveDenseDirect(A *sparse.COO, b []float64) (x []float64, err error) {
	var lu mat.LU
	n, _ := A.Dims()
	lu.Factorize(A.ToDense())
	var xv mat.VecDense
	err = lu.SolveVecTo(&xv, false, mat.NewVecDense(n, b))
	if err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, chk.Err("solver %d: %s failed:\n%v", o.Index, LibraryLapack, err)
		}
		if lu.Det() == 0 {
			return nil, chk.Err("solver %d: matrix is singular", o.Index)
		}
	}
	return xv.RawVector().Data, nil
}

// solveIterative solves the system with restarted GMRES. The operator is a CSR matrix
// (sparse) or a dense matrix (full).
func (o *Solver) solveIterative(A *sparse.COO, b []float64) (x []float64, err error) {

	// operator
	var op mat.Matrix
	if o.Equations != nil && o.Equations.Sparsity == SparsityFull {
		op = A.ToDense()
	} else {
		op = A.ToCSR()
	}
	n, _ := A.Dims()
	matvec := func(dst, src []float64) {
		y := mat.NewVecDense(n, dst)
		y.MulVec(op, mat.NewVecDense(n, src))
	}

	// trivial right-hand side
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		return make([]float64, n), nil
	}

	// solve
	tol := o.RelTol
	if o.AbsTol > 0 && o.AbsTol/bnorm > tol {
		tol = o.AbsTol / bnorm
	}
	restart := o.Restart
	if restart > n {
		restart = n
	}
	res, err := iterative.LinearSolve(
		iterative.MatrixOps{MatVec: matvec},
		b,
		&iterative.GMRES{Restart: restart},
		iterative.Settings{Tolerance: tol, MaxIterations: o.MaxIterations},
	)
	if err != nil {
		return nil, chk.Err("solver %d: GMRES did not converge:\n%v", o.Index, err)
	}
	o.Iterations = res.Stats.Iterations
	if res.Stats.ResidualNorm > o.DivTol*bnorm {
		return nil, chk.Err("solver %d: GMRES diverged. residual = %g > %g", o.Index, res.Stats.ResidualNorm, o.DivTol*bnorm)
	}
	if o.Iterations >= o.MaxIterations {
		return nil, chk.Err("solver %d: GMRES reached the maximum number of iterations (%d)", o.Index, o.MaxIterations)
	}
	return res.X, nil
}
