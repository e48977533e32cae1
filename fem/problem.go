// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"
	"time"

	"github.com/cpmech/gosl/chk"
)

// Sparsity defines the storage of matrices
type Sparsity int

// sparsity types
const (
	SparsitySparse Sparsity = iota + 1 // compressed storage
	SparsityFull                       // dense storage
)

// ParseSparsity parses "sparse" or "full"
func ParseSparsity(s string) (Sparsity, error) {
	switch strings.ToLower(s) {
	case "sparse":
		return SparsitySparse, nil
	case "full":
		return SparsityFull, nil
	}
	return 0, chk.Err("sparsity %q is invalid. Options: sparse, full", s)
}

// String returns the name of the sparsity type
func (o Sparsity) String() string {
	switch o {
	case SparsitySparse:
		return "sparse"
	case SparsityFull:
		return "full"
	}
	return "unknown"
}

// LinearType defines the type of linear solver
type LinearType int

// linear solver types
const (
	LinearDirect    LinearType = iota + 1 // direct factorisation
	LinearIterative                       // restarted GMRES
)

// direct solver libraries
const (
	LibraryMumps   = "mumps"
	LibraryUmfpack = "umfpack"
	LibraryLapack  = "lapack"
)

// Problem holds the definition of a problem and its control loop
type Problem struct {
	UserNumber  int           // user number
	Spec        Specification // class, type and subtype
	ControlLoop *ControlLoop  // control loop
	ctx         *Context      // context
}

// ControlLoop holds a simple control loop with one solver
type ControlLoop struct {
	Type    string    // "Simple"
	Solvers []*Solver // solvers
}

// Solver holds a linear solver and its settings
type Solver struct {
	Index         int              // 1-based index in control loop
	LinearType    LinearType       // direct or iterative
	Library       string           // direct: mumps, umfpack or lapack
	Output        OutputType       // none, progress, timing, monitor or matrix
	Verbose       bool             // show messages from linear solver library
	MaxIterations int              // iterative: maximum number of iterations
	RelTol        float64          // iterative: relative tolerance
	AbsTol        float64          // iterative: absolute tolerance
	DivTol        float64          // iterative: divergence tolerance
	Restart       int              // iterative: GMRES restart
	Equations     *SolverEquations // solver equations

	// results
	Iterations   int           // number of iterations (iterative solver)
	Residual     float64       // norm of residual of linear system
	TimeAssembly time.Duration // elapsed time during assembly
	TimeSolve    time.Duration // elapsed time during solution
}

// SolverEquations holds the equations sets and interface conditions solved together
type SolverEquations struct {
	Sparsity   Sparsity              // storage of solver matrices
	Sets       []*EquationsSet       // equations sets
	Conditions []*InterfaceCondition // interface conditions
	Bcs        *BoundaryConditions   // boundary conditions
	solver     *Solver               // solver
}

// NewProblem returns a new problem
func (o *Context) NewProblem(userNumber int, spec Specification) (p *Problem, err error) {
	if spec != LaplaceStandard {
		return nil, chk.Err("problem %d: specification %v is not available", userNumber, spec)
	}
	if err = o.Register("problem", userNumber); err != nil {
		return
	}
	return &Problem{UserNumber: userNumber, Spec: spec, ctx: o}, nil
}

// ControlLoopCreate creates a simple control loop with one direct solver using default settings
func (o *Problem) ControlLoopCreate() *ControlLoop {
	o.ControlLoop = &ControlLoop{Type: "Simple"}
	o.ControlLoop.Solvers = []*Solver{{
		Index:         1,
		LinearType:    LinearDirect,
		Library:       LibraryMumps,
		Output:        OutputNone,
		MaxIterations: 100000000,
		RelTol:        1e-4,
		AbsTol:        1e-4,
		DivTol:        1e5,
		Restart:       30,
	}}
	return o.ControlLoop
}

// Solver returns solver with 1-based index idx
func (o *ControlLoop) Solver(idx int) (s *Solver, err error) {
	if idx < 1 || idx > len(o.Solvers) {
		return nil, chk.Err("control loop: solver %d does not exist. nsolvers=%d", idx, len(o.Solvers))
	}
	return o.Solvers[idx-1], nil
}

// SolverEquationsCreate creates the solver equations of solver s
func (o *Solver) SolverEquationsCreate(sparsity Sparsity) (eqs *SolverEquations, err error) {
	o.Equations = &SolverEquations{Sparsity: sparsity, solver: o}
	if err = o.CheckCompatibility(); err != nil {
		o.Equations = nil
		return nil, err
	}
	return o.Equations, nil
}

// CheckCompatibility checks the solver settings and the sparsity of solver equations.
// MUMPS and UMFPACK require sparse matrices; LAPACK requires full matrices.
func (o *Solver) CheckCompatibility() (err error) {
	switch o.LinearType {
	case LinearDirect:
		switch o.Library {
		case LibraryMumps, LibraryUmfpack:
			if o.Equations != nil && o.Equations.Sparsity != SparsitySparse {
				return chk.Err("solver %d: library %q requires sparse solver equations. %v is incompatible", o.Index, o.Library, o.Equations.Sparsity)
			}
		case LibraryLapack:
			if o.Equations != nil && o.Equations.Sparsity != SparsityFull {
				return chk.Err("solver %d: library %q requires full solver equations. %v is incompatible", o.Index, o.Library, o.Equations.Sparsity)
			}
		default:
			return chk.Err("solver %d: direct library %q is not available", o.Index, o.Library)
		}
	case LinearIterative:
		if o.MaxIterations < 1 || o.Restart < 1 {
			return chk.Err("solver %d: maximum number of iterations and restart must be >= 1. maxit=%d, restart=%d", o.Index, o.MaxIterations, o.Restart)
		}
		if o.RelTol <= 0 || o.AbsTol < 0 || o.DivTol <= 0 {
			return chk.Err("solver %d: tolerances are invalid. rtol=%g, atol=%g, dtol=%g", o.Index, o.RelTol, o.AbsTol, o.DivTol)
		}
	default:
		return chk.Err("solver %d: linear type %d is invalid", o.Index, o.LinearType)
	}
	return
}

// AddEquationsSet adds an equations set and returns its 1-based index
func (o *SolverEquations) AddEquationsSet(s *EquationsSet) (idx int, err error) {
	if s.Equations == nil {
		return 0, chk.Err("solver equations: equations of equations set %d must be created first", s.UserNumber)
	}
	o.Sets = append(o.Sets, s)
	return len(o.Sets), nil
}

// AddInterfaceCondition adds an interface condition and returns its 1-based index
func (o *SolverEquations) AddInterfaceCondition(c *InterfaceCondition) (idx int, err error) {
	if c.Equations == nil {
		return 0, chk.Err("solver equations: equations of interface condition %d must be created first", c.UserNumber)
	}
	for _, s := range c.Sets {
		found := false
		for _, t := range o.Sets {
			if s == t {
				found = true
				break
			}
		}
		if !found {
			return 0, chk.Err("solver equations: coupled equations set of interface condition %d must be added first", c.UserNumber)
		}
	}
	o.Conditions = append(o.Conditions, c)
	return len(o.Conditions), nil
}
