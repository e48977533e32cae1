// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/gosl/chk"
)

// Specification defines the class, type and subtype of equations sets and problems
type Specification struct {
	Class   string // e.g. "ClassicalField"
	Type    string // e.g. "Laplace"
	Subtype string // e.g. "Standard"
}

// LaplaceStandard is the only available specification
var LaplaceStandard = Specification{"ClassicalField", "Laplace", "Standard"}

// EquationsSet holds the Laplace equation defined on a region
type EquationsSet struct {
	UserNumber        int           // user number
	Spec              Specification // class, type and subtype
	Region            *Region       // region
	Geometric         *Field        // geometric field
	EquationsSetField *Field        // field holding the equations set subtype
	Dependent         *Field        // dependent field: U and DelUDelN
	Equations         *Equations    // equations
	Output            OutputType    // output type
	ctx               *Context      // context
}

// Equations holds the equations of an equations set
type Equations struct {
	Sparsity Sparsity   // storage of equations matrices
	Output   OutputType // output type
}

// NewEquationsSet returns a new equations set in region o
func (o *Region) NewEquationsSet(userNumber int, geo *Field, spec Specification, eqsFieldUserNumber int) (s *EquationsSet, err error) {

	// check
	if spec != LaplaceStandard {
		return nil, chk.Err("equations set %d: specification %v is not available", userNumber, spec)
	}
	if geo == nil || geo.Type != FieldGeometric {
		return nil, chk.Err("equations set %d: a geometric field must be given", userNumber)
	}
	if err = o.ctx.Register("equations set", userNumber); err != nil {
		return
	}

	// equations set field
	s = &EquationsSet{UserNumber: userNumber, Spec: spec, Region: o, Geometric: geo, ctx: o.ctx}
	s.EquationsSetField, err = o.ctx.NewField(eqsFieldUserNumber, FieldGeneral, geo.Decomposition, []VariableType{VariableU}, 1)
	if err != nil {
		return nil, chk.Err("equations set %d: cannot create equations set field:\n%v", userNumber, err)
	}
	s.EquationsSetField.Label = "EquationsSetField"
	s.EquationsSetField.Geometric = geo
	o.Fields = append(o.Fields, s.EquationsSetField)
	o.EquationsSets = append(o.EquationsSets, s)
	return
}

// DependentCreate creates the dependent field with variables U and DelUDelN (one component each)
func (o *EquationsSet) DependentCreate(userNumber int, label string) (f *Field, err error) {
	if o.Dependent != nil {
		return nil, chk.Err("equations set %d: dependent field has already been created", o.UserNumber)
	}
	f, err = o.ctx.NewField(userNumber, FieldGeneral, o.Geometric.Decomposition, []VariableType{VariableU, VariableDelUDelN}, 1)
	if err != nil {
		return nil, chk.Err("equations set %d: cannot create dependent field:\n%v", o.UserNumber, err)
	}
	f.Label = label
	f.Geometric = o.Geometric
	f.Scaling = o.Geometric.Scaling
	o.Dependent = f
	o.Region.Fields = append(o.Region.Fields, f)
	return
}

// EquationsCreate creates the equations of this equations set
func (o *EquationsSet) EquationsCreate(sparsity Sparsity, output OutputType) (eqs *Equations, err error) {
	if o.Dependent == nil {
		return nil, chk.Err("equations set %d: dependent field must be created before equations", o.UserNumber)
	}
	o.Equations = &Equations{Sparsity: sparsity, Output: output}
	return o.Equations, nil
}

// NumberOfDofs returns the number of dependent parameters (one component)
func (o *EquationsSet) NumberOfDofs() int {
	return o.Dependent.Mesh.NumberOfNodes() * o.Dependent.Nderivs()
}

// Dof returns the index of the dependent parameter of node (1-based) and derivative (1-based)
func (o *EquationsSet) Dof(node, deriv int) int {
	return (node-1)*o.Dependent.Nderivs() + deriv - 1
}

// ElemDofs returns the dependent parameters of element e in basis parameter order
func (o *EquationsSet) ElemDofs(e *msh.Elem) (dofs []int) {
	b := o.Dependent.Mesh.Basis
	dofs = make([]int, b.Nparams)
	for n, id := range e.Nodes {
		for d := 1; d <= b.Nderivs; d++ {
			dofs[b.Param(n, d)] = o.Dof(id, d)
		}
	}
	return
}

// ElemStiffness computes the element stiffness matrix of the Laplace operator
//
//  K_pq = Σ_g w_g |J| ∇φ_p・∇φ_q
//
func (o *EquationsSet) ElemStiffness(K [][]float64, e *msh.Elem, g *elemGeom) (err error) {
	b := g.basis
	for p := range K {
		for q := range K[p] {
			K[p][q] = 0
		}
	}
	g.setElem(e)
	for ip, xi := range b.GaussXi {
		g.at(xi)
		var detJ float64
		detJ, err = g.volume()
		if err != nil {
			return chk.Err("equations set %d: element %d:\n%v", o.UserNumber, e.Id, err)
		}
		coef := b.GaussW[ip] * detJ
		for p := 0; p < b.Nparams; p++ {
			for q := 0; q < b.Nparams; q++ {
				dot := 0.0
				for a := 0; a < g.ndim; a++ {
					dot += g.dSdx[p][a] * g.dSdx[q][a]
				}
				K[p][q] += coef * dot
			}
		}
	}
	return
}

// shows tells whether the equations set or its equations print output of type t
func (o *EquationsSet) shows(t OutputType) bool {
	if !o.ctx.ShowMsg {
		return false
	}
	return o.Output == t || (o.Equations != nil && o.Equations.Output == t)
}
