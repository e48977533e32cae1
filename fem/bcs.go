// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
)

// ConditionType defines the type of boundary condition
type ConditionType int

// condition types
const (
	ConditionFree  ConditionType = iota // no condition
	ConditionFixed                      // prescribed value (U) or prescribed flux (DelUDelN)
)

// BoundaryConditions holds the boundary conditions of solver equations.
//  Prescribed values of U are essential conditions: the corresponding dependent parameters are
//  removed from the system and their columns are moved to the right-hand side.
//  Prescribed values of DelUDelN are natural conditions: they are added to the right-hand side.
//
//  Conditions may be set on one processor only (e.g. the owner of the node); Finish merges
//  the conditions of all processors.
type BoundaryConditions struct {
	Fixed    [][]bool    // [nsets][ndofs] dependent parameter has a prescribed value
	Values   [][]float64 // [nsets][ndofs] prescribed values
	Fluxes   [][]float64 // [nsets][ndofs] prescribed fluxes
	Finished bool        // conditions have been merged
	eqs      *SolverEquations
	count    [][]float64 // [nsets][ndofs] number of times a value has been prescribed
	env      *ComputationEnvironment
}

// BoundaryConditionsCreate creates the boundary conditions of solver equations o
func (o *SolverEquations) BoundaryConditionsCreate(env *ComputationEnvironment) (bcs *BoundaryConditions, err error) {
	if len(o.Sets) == 0 {
		return nil, chk.Err("solver equations: equations sets must be added before creating boundary conditions")
	}
	bcs = &BoundaryConditions{eqs: o, env: env}
	n := len(o.Sets)
	bcs.Fixed = make([][]bool, n)
	bcs.Values = make([][]float64, n)
	bcs.Fluxes = make([][]float64, n)
	bcs.count = make([][]float64, n)
	for k, s := range o.Sets {
		ndofs := s.NumberOfDofs()
		bcs.Fixed[k] = make([]bool, ndofs)
		bcs.Values[k] = make([]float64, ndofs)
		bcs.Fluxes[k] = make([]float64, ndofs)
		bcs.count[k] = make([]float64, ndofs)
	}
	o.Bcs = bcs
	return
}

// SetNode sets a condition on node (1-based) of the dependent field f
//  vt     -- VariableU (essential) or VariableDelUDelN (natural)
//  version, deriv, node, comp -- 1-based indices; only version 1 and component 1 are available
func (o *BoundaryConditions) SetNode(f *Field, vt VariableType, version, deriv, node, comp int, cond ConditionType, value float64) (err error) {

	// check
	if o.Finished {
		return chk.Err("boundary conditions have already been finished")
	}
	k := -1
	for i, s := range o.eqs.Sets {
		if s.Dependent == f {
			k = i
			break
		}
	}
	if k < 0 {
		return chk.Err("boundary conditions: field %d is not a dependent field of the solver equations", f.UserNumber)
	}
	if version != 1 || comp != 1 {
		return chk.Err("boundary conditions: only version 1 and component 1 are available. version=%d, comp=%d", version, comp)
	}
	if node < 1 || node > f.Mesh.NumberOfNodes() {
		return chk.Err("boundary conditions: node %d does not exist in field %d. nnodes=%d", node, f.UserNumber, f.Mesh.NumberOfNodes())
	}
	if deriv < 1 || deriv > f.Nderivs() {
		return chk.Err("boundary conditions: derivative %d is out of range. nderivs=%d", deriv, f.Nderivs())
	}
	if cond != ConditionFixed {
		return
	}

	// set
	dof := o.eqs.Sets[k].Dof(node, deriv)
	switch vt {
	case VariableU:
		o.Values[k][dof] += value
		o.count[k][dof]++
	case VariableDelUDelN:
		o.Fluxes[k][dof] += value
	default:
		return chk.Err("boundary conditions: variable %v is invalid", vt)
	}
	return
}

// Finish merges the conditions of all processors
func (o *BoundaryConditions) Finish() {
	for k := range o.Values {
		o.env.AllReduceSum(o.Values[k])
		o.env.AllReduceSum(o.Fluxes[k])
		o.env.AllReduceSum(o.count[k])
		for dof, c := range o.count[k] {
			if c > 0 {
				o.Fixed[k][dof] = true
				o.Values[k][dof] /= c
			}
		}
	}
	o.Finished = true
}

// NumberOfFixed returns the number of prescribed values of equations set k (0-based)
func (o *BoundaryConditions) NumberOfFixed(k int) (n int) {
	for _, fixed := range o.Fixed[k] {
		if fixed {
			n++
		}
	}
	return
}
