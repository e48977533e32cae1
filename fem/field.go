// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// FieldType defines the type of field
type FieldType int

// field types
const (
	FieldGeometric FieldType = iota + 1 // geometry of a region or interface
	FieldGeneral                        // dependent, equations set and Lagrange fields
)

// VariableType defines the type of field variable
type VariableType int

// variable types
const (
	VariableU        VariableType = iota + 1 // values
	VariableDelUDelN                         // normal derivatives (fluxes)
)

// String returns the label of the variable type
func (o VariableType) String() string {
	switch o {
	case VariableU:
		return "U"
	case VariableDelUDelN:
		return "DelUDelN"
	}
	return "unknown"
}

// ScalingType defines how derivative parameters are scaled
type ScalingType int

// scaling types
const (
	ScalingNone           ScalingType = iota // derivatives with respect to xi
	ScalingArithmeticMean                    // derivatives with respect to arc-length; scale = mean element size
)

// FieldVariable holds the nodal parameters of one variable of a field
type FieldVariable struct {
	Type   VariableType  // type of variable
	Label  string        // label; used when exporting
	Ncomps int           // number of components
	Values [][][]float64 // [nnodes][nderivs][ncomps] nodal parameters
}

// Field holds a field defined over the nodes of a decomposed mesh
type Field struct {
	UserNumber    int                // user number
	Type          FieldType          // type of field
	Label         string             // label; used when exporting
	Decomposition *msh.Decomposition // decomposition of mesh
	Mesh          *msh.Mesh          // mesh
	Scaling       ScalingType        // scaling of derivative parameters
	Geometric     *Field             // geometric field; nil for geometric fields
	Variables     []*FieldVariable   // variables
}

// NewField returns a new field with variables vts, each with ncomps components and zero values
func (o *Context) NewField(userNumber int, typ FieldType, decomp *msh.Decomposition, vts []VariableType, ncomps int) (f *Field, err error) {

	// check
	if decomp == nil || decomp.Mesh == nil {
		return nil, chk.Err("field %d: mesh decomposition must be given", userNumber)
	}
	if len(vts) < 1 || ncomps < 1 {
		return nil, chk.Err("field %d: at least one variable with one component is required. nvars=%d, ncomps=%d", userNumber, len(vts), ncomps)
	}
	if err = o.Register("field", userNumber); err != nil {
		return
	}

	// new field
	f = &Field{UserNumber: userNumber, Type: typ, Decomposition: decomp, Mesh: decomp.Mesh}
	nnodes := decomp.Mesh.NumberOfNodes()
	nderivs := decomp.Mesh.Basis.Nderivs
	for _, vt := range vts {
		v := &FieldVariable{Type: vt, Label: vt.String(), Ncomps: ncomps, Values: make([][][]float64, nnodes)}
		for n := 0; n < nnodes; n++ {
			v.Values[n] = utl.Alloc(nderivs, ncomps)
		}
		f.Variables = append(f.Variables, v)
	}
	return
}

// Var returns variable vt
func (o *Field) Var(vt VariableType) *FieldVariable {
	for _, v := range o.Variables {
		if v.Type == vt {
			return v
		}
	}
	chk.Panic("field %d does not have variable %v", o.UserNumber, vt)
	return nil
}

// HasVar tells whether the field has variable vt
func (o *Field) HasVar(vt VariableType) bool {
	for _, v := range o.Variables {
		if v.Type == vt {
			return true
		}
	}
	return false
}

// Nderivs returns the number of parameters per node and component
func (o *Field) Nderivs() int { return o.Mesh.Basis.Nderivs }

// SetNodeValue sets the nodal parameter of node, derivative and component (1-based)
func (o *Field) SetNodeValue(vt VariableType, deriv, node, comp int, value float64) (err error) {
	v := o.Var(vt)
	if node < 1 || node > len(v.Values) {
		return chk.Err("field %d: node %d is out of range. nnodes=%d", o.UserNumber, node, len(v.Values))
	}
	if deriv < 1 || deriv > o.Nderivs() {
		return chk.Err("field %d: derivative %d is out of range. nderivs=%d", o.UserNumber, deriv, o.Nderivs())
	}
	if comp < 1 || comp > v.Ncomps {
		return chk.Err("field %d: component %d is out of range. ncomps=%d", o.UserNumber, comp, v.Ncomps)
	}
	v.Values[node-1][deriv-1][comp-1] = value
	return
}

// NodeValue returns the nodal parameter of node, derivative and component (1-based)
func (o *Field) NodeValue(vt VariableType, deriv, node, comp int) float64 {
	return o.Var(vt).Values[node-1][deriv-1][comp-1]
}

// ElemParams gathers the element parameters of component comp (1-based) of element e
// into dst, in the order of the element basis parameters
func (o *Field) ElemParams(dst []float64, vt VariableType, e *msh.Elem, comp int) {
	v := o.Var(vt)
	b := o.Mesh.Basis
	for n, id := range e.Nodes {
		for d := 1; d <= b.Nderivs; d++ {
			dst[b.Param(n, d)] = v.Values[id-1][d-1][comp-1]
		}
	}
}

// ElemScales returns the scale factors of element e; nil if the field is not scaled
func (o *Field) ElemScales(e *msh.Elem) []float64 {
	if o.Scaling == ScalingNone || !o.Mesh.Basis.IsHermite() {
		return nil
	}
	return o.Mesh.ScaleFactors(e)
}

// GeometricParametersCalculate sets the nodal parameters of a geometric field from the
// coordinates of the nodes of its generated mesh. Derivative parameters along each xi are
// set to the direction of the spanned axis; cross derivatives are zero.
func (o *Field) GeometricParametersCalculate() (err error) {
	if o.Type != FieldGeometric {
		return chk.Err("field %d is not a geometric field", o.UserNumber)
	}
	v := o.Var(VariableU)
	m := o.Mesh
	if v.Ncomps != m.Ndim {
		return chk.Err("field %d: number of components (%d) must be equal to the space dimension of mesh (%d)", o.UserNumber, v.Ncomps, m.Ndim)
	}
	b := m.Basis
	for k, nod := range m.Nodes {
		for d := 1; d <= b.Nderivs; d++ {
			dirs := b.DerivativeDirs(d)
			for c := 0; c < v.Ncomps; c++ {
				switch len(dirs) {
				case 0:
					v.Values[k][d-1][c] = nod.X[c]
				case 1:
					v.Values[k][d-1][c] = 0
					if m.Axes[dirs[0]] == c {
						v.Values[k][d-1][c] = 1
						if o.Scaling == ScalingNone {
							v.Values[k][d-1][c] = nod.Scales[dirs[0]]
						}
					}
				default:
					v.Values[k][d-1][c] = 0
				}
			}
		}
	}
	return
}
