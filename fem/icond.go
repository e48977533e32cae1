// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// interface condition methods and operators
const (
	LagrangeMultipliers = "LagrangeMultipliers"
	FieldContinuity     = "FieldContinuity"
)

// InterfaceCondition enforces the continuity of the dependent fields of the coupled meshes
// weakly with Lagrange multipliers λ defined over the interface mesh:
//
//  C^m_ij = s_m Σ_g w_g |J_Γ| ψ_i(s_g) φ^m_j(ξ^m(s_g))   with   s_1 = +1  and  s_2 = -1
//
type InterfaceCondition struct {
	UserNumber int                 // user number
	Label      string              // label
	Interface  *Interface          // interface
	Geometric  *Field              // geometric field of the interface
	Method     string              // LagrangeMultipliers
	Operator   string              // FieldContinuity
	Sets       []*EquationsSet     // [nmeshes] equations sets providing the coupled dependent variables
	Lagrange   *Field              // Lagrange multipliers field
	Equations  *InterfaceEquations // interface equations
	Output     OutputType          // OutputNone or OutputProgress
	ctx        *Context            // context
}

// InterfaceEquations holds the equations of an interface condition
type InterfaceEquations struct {
	Sparsity Sparsity   // storage of interface matrices
	Output   OutputType // output type
}

// NewInterfaceCondition returns a new interface condition on interface o
func (o *Interface) NewInterfaceCondition(userNumber int, geo *Field, method, operator string) (c *InterfaceCondition, err error) {
	if method != LagrangeMultipliers {
		return nil, chk.Err("interface condition %d: method %q is not available", userNumber, method)
	}
	if operator != FieldContinuity {
		return nil, chk.Err("interface condition %d: operator %q is not available", userNumber, operator)
	}
	if geo == nil || geo.Type != FieldGeometric || geo.Mesh != o.Mesh {
		return nil, chk.Err("interface condition %d: geometric field of the interface mesh must be given", userNumber)
	}
	if err = o.ctx.Register("interface condition", userNumber); err != nil {
		return
	}
	c = &InterfaceCondition{UserNumber: userNumber, Interface: o, Geometric: geo, Method: method, Operator: operator, ctx: o.ctx}
	c.Sets = make([]*EquationsSet, len(o.CoupledMeshes))
	o.Conditions = append(o.Conditions, c)
	return
}

// AddDependentVariable adds the dependent variable vt of equations set s, defined on the
// coupled mesh meshIndex (1-based)
func (o *InterfaceCondition) AddDependentVariable(meshIndex int, s *EquationsSet, vt VariableType) (err error) {
	m, err := o.Interface.CoupledMesh(meshIndex)
	if err != nil {
		return
	}
	if s == nil || s.Dependent == nil {
		return chk.Err("interface condition %d: equations set with dependent field is required for mesh %d", o.UserNumber, meshIndex)
	}
	if s.Dependent.Mesh != m {
		return chk.Err("interface condition %d: dependent field %d is not defined on coupled mesh %d", o.UserNumber, s.Dependent.UserNumber, meshIndex)
	}
	if vt != VariableU {
		return chk.Err("interface condition %d: only variable U can be coupled. %v is invalid", o.UserNumber, vt)
	}
	o.Sets[meshIndex-1] = s
	return
}

// LagrangeFieldCreate creates the field of Lagrange multipliers (one component) on the
// interface mesh
func (o *InterfaceCondition) LagrangeFieldCreate(userNumber int, label string) (f *Field, err error) {
	f, err = o.ctx.NewField(userNumber, FieldGeneral, o.Geometric.Decomposition, []VariableType{VariableU}, 1)
	if err != nil {
		return nil, chk.Err("interface condition %d: cannot create Lagrange field:\n%v", o.UserNumber, err)
	}
	f.Label = label
	f.Geometric = o.Geometric
	f.Scaling = o.Geometric.Scaling
	o.Lagrange = f
	o.Interface.Fields = append(o.Interface.Fields, f)
	return
}

// EquationsCreate creates the interface equations
func (o *InterfaceCondition) EquationsCreate(sparsity Sparsity, output OutputType) (eqs *InterfaceEquations, err error) {
	if o.Lagrange == nil {
		return nil, chk.Err("interface condition %d: Lagrange field must be created before interface equations", o.UserNumber)
	}
	o.Equations = &InterfaceEquations{Sparsity: sparsity, Output: output}
	return o.Equations, nil
}

// Finish checks the interface condition. The position of each vertex of each interface
// element must coincide with the position of the mapped point of each coupled element.
func (o *InterfaceCondition) Finish() (err error) {

	// check
	conn := o.Interface.Connectivity
	if conn == nil {
		return chk.Err("interface condition %d: interface mesh connectivity is required", o.UserNumber)
	}
	if err = conn.Finish(); err != nil {
		return
	}
	for m, s := range o.Sets {
		if s == nil {
			return chk.Err("interface condition %d: dependent variable of mesh %d has not been added", o.UserNumber, m+1)
		}
	}
	if o.Lagrange == nil {
		return chk.Err("interface condition %d: Lagrange field has not been created", o.UserNumber)
	}

	// geometry check
	gI := newElemGeom(o.Geometric)
	gMs := make([]*elemGeom, len(o.Sets))
	for m, s := range o.Sets {
		gMs[m] = newElemGeom(s.Geometric)
	}
	for k, e := range o.Interface.Mesh.Elems {
		gI.setElem(e)
		for v, n := range o.Interface.Mesh.Basis.Vertices {
			gI.at(o.Interface.Mesh.Basis.NodeXi[n])
			xI := gI.position()
			for m, gM := range gMs {
				gM.setElem(o.Sets[m].Geometric.Mesh.Elem(conn.Elems[k][m]))
				gM.at(conn.Xi[k][m][v])
				for a, x := range gM.x {
					if math.Abs(x-xI[a]) > 1e-10*(1+math.Abs(xI[a])) {
						return chk.Err("interface condition %d: vertex %d of interface element %d at %v does not coincide with mapped point %v of element %d of mesh %d", o.UserNumber, v+1, e.Id, xI, gM.x, conn.Elems[k][m], m+1)
					}
				}
			}
		}
	}
	if o.Output == OutputProgress && o.ctx.ShowMsg {
		io.Pf("interface condition %d: %d interface elements coupling %d meshes\n", o.UserNumber, len(o.Interface.Mesh.Elems), len(o.Sets))
	}
	return
}

// Sign returns the sign of the coupling operator of mesh meshIndex (1-based)
func (o *InterfaceCondition) Sign(meshIndex int) float64 {
	if meshIndex == 1 {
		return 1
	}
	return -1
}

// ElemCoupling computes the coupling matrix C [nLagrangeParams][nCoupledParams] between
// interface element ie (1-based) and its mapped element of mesh meshIndex (1-based)
func (o *InterfaceCondition) ElemCoupling(C [][]float64, ie, meshIndex int, gI, gM *elemGeom) {
	conn := o.Interface.Connectivity
	bI := gI.basis
	for i := range C {
		for j := range C[i] {
			C[i][j] = 0
		}
	}
	gI.setElem(o.Interface.Mesh.Elem(ie))
	gM.setElem(o.Sets[meshIndex-1].Geometric.Mesh.Elem(conn.Elems[ie-1][meshIndex-1]))
	xi := make([]float64, gM.nxi)
	sign := o.Sign(meshIndex)
	for ip, s := range bI.GaussXi {
		gI.at(s)
		coef := sign * bI.GaussW[ip] * gI.measure()
		conn.MapXi(xi, ie, meshIndex, s)
		gM.at(xi)
		for i, ψ := range gI.S {
			for j, φ := range gM.S {
				C[i][j] += coef * ψ * φ
			}
		}
	}
}

// shows tells whether the interface equations print output of type t
func (o *InterfaceCondition) shows(t OutputType) bool {
	return o.ctx.ShowMsg && o.Equations != nil && o.Equations.Output == t
}

// NumberOfDofs returns the number of Lagrange multipliers
func (o *InterfaceCondition) NumberOfDofs() int {
	return o.Lagrange.Mesh.NumberOfNodes() * o.Lagrange.Nderivs()
}

// Dof returns the index of the Lagrange parameter of node (1-based) and derivative (1-based)
func (o *InterfaceCondition) Dof(node, deriv int) int {
	return (node-1)*o.Lagrange.Nderivs() + deriv - 1
}

// allocCoupling allocates a coupling matrix for mesh meshIndex (1-based)
func (o *InterfaceCondition) allocCoupling(meshIndex int) [][]float64 {
	return utl.Alloc(o.Lagrange.Mesh.Basis.Nparams, o.Sets[meshIndex-1].Dependent.Mesh.Basis.Nparams)
}
