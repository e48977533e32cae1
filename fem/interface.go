// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Interface holds the interface between the meshes of two (or more) regions
type Interface struct {
	UserNumber    int                        // user number
	Label         string                     // label; used when exporting
	Parent        *Region                    // parent region of the coupled regions
	CoordSys      *CoordinateSystem          // coordinate system
	CoupledMeshes []*msh.Mesh                // coupled meshes; indices are 1-based mesh indices
	Mesh          *msh.Mesh                  // interface mesh
	Fields        []*Field                   // fields defined on the interface
	Conditions    []*InterfaceCondition      // interface conditions
	Connectivity  *InterfaceMeshConnectivity // mapping of interface elements onto coupled elements
	ctx           *Context                   // context
}

// NewInterface returns a new interface in region o (the parent of the coupled regions)
func (o *Region) NewInterface(userNumber int, label string) (it *Interface, err error) {
	if err = o.ctx.Register("interface", userNumber); err != nil {
		return
	}
	return &Interface{UserNumber: userNumber, Label: label, Parent: o, ctx: o.ctx}, nil
}

// AddMesh adds a coupled mesh and returns its 1-based mesh index
func (o *Interface) AddMesh(m *msh.Mesh) (meshIndex int) {
	o.CoupledMeshes = append(o.CoupledMeshes, m)
	return len(o.CoupledMeshes)
}

// CoupledMesh returns the coupled mesh with 1-based index meshIndex
func (o *Interface) CoupledMesh(meshIndex int) (m *msh.Mesh, err error) {
	if meshIndex < 1 || meshIndex > len(o.CoupledMeshes) {
		return nil, chk.Err("interface %d: mesh index %d is out of range. nmeshes=%d", o.UserNumber, meshIndex, len(o.CoupledMeshes))
	}
	return o.CoupledMeshes[meshIndex-1], nil
}

// GenerateMesh generates the interface mesh. Its dimension must be one less than the
// dimension of the coupled meshes.
func (o *Interface) GenerateMesh(g *msh.GeneratedMesh, meshUserNumber int) (m *msh.Mesh, err error) {
	if o.CoordSys == nil {
		return nil, chk.Err("interface %d: coordinate system must be set before generating mesh", o.UserNumber)
	}
	if len(o.CoupledMeshes) < 2 {
		return nil, chk.Err("interface %d: at least two coupled meshes are required. %d added", o.UserNumber, len(o.CoupledMeshes))
	}
	if err = o.ctx.Register("generated mesh", g.UserNumber); err != nil {
		return
	}
	if err = o.ctx.Register("mesh", meshUserNumber); err != nil {
		return
	}
	m, err = g.Generate(meshUserNumber)
	if err != nil {
		return nil, chk.Err("interface %d: cannot generate mesh:\n%v", o.UserNumber, err)
	}
	for i, cm := range o.CoupledMeshes {
		if m.Nxi != cm.Nxi-1 || m.Ndim != cm.Ndim {
			return nil, chk.Err("interface %d: interface mesh (nxi=%d, ndim=%d) is not compatible with coupled mesh %d (nxi=%d, ndim=%d)", o.UserNumber, m.Nxi, m.Ndim, i+1, cm.Nxi, cm.Ndim)
		}
	}
	o.Mesh = m
	return
}

// InterfaceMeshConnectivity maps each interface element onto one element of each coupled
// mesh. The xi of the coupled element is interpolated from the xi given at the vertices of
// the interface element with a linear mapping basis.
type InterfaceMeshConnectivity struct {
	Interface *Interface      // interface
	Basis     *shp.Basis      // mapping basis: linear Lagrange over interface xi
	Elems     [][]int         // [nIfaceElems][nmeshes] user number of coupled elements; 0 => not set
	Xi        [][][][]float64 // [nIfaceElems][nmeshes][nvertices][nxi of coupled mesh] xi of vertices
	xiSet     [][][]bool      // [nIfaceElems][nmeshes][nvertices] xi has been set
	S         []float64       // [nvertices] scratchpad: mapping functions
}

// MeshConnectivityCreate creates the mesh connectivity of the interface with mapping basis
func (o *Interface) MeshConnectivityCreate(basis *shp.Basis) (c *InterfaceMeshConnectivity, err error) {

	// check
	if o.Mesh == nil {
		return nil, chk.Err("interface %d: mesh must be generated before creating the mesh connectivity", o.UserNumber)
	}
	if basis.Nxi != o.Mesh.Nxi {
		return nil, chk.Err("interface %d: mapping basis must have %d xi directions. %d is invalid", o.UserNumber, o.Mesh.Nxi, basis.Nxi)
	}
	for _, f := range basis.Interp {
		if f != shp.LinearLagrange {
			return nil, chk.Err("interface %d: mapping basis must be linear Lagrange. %v is invalid", o.UserNumber, f)
		}
	}

	// allocate
	ne, nm, nv := o.Mesh.NumberOfElements(), len(o.CoupledMeshes), basis.Nnodes
	c = &InterfaceMeshConnectivity{Interface: o, Basis: basis}
	c.Elems = utl.IntAlloc(ne, nm)
	c.Xi = make([][][][]float64, ne)
	c.xiSet = make([][][]bool, ne)
	for ie := 0; ie < ne; ie++ {
		c.Xi[ie] = make([][][]float64, nm)
		c.xiSet[ie] = make([][]bool, nm)
		for m, cm := range o.CoupledMeshes {
			c.Xi[ie][m] = utl.Alloc(nv, cm.Nxi)
			c.xiSet[ie][m] = make([]bool, nv)
		}
	}
	c.S = make([]float64, nv)
	o.Connectivity = c
	return
}

// SetElementNumber maps interface element ie onto element e of coupled mesh meshIndex
func (o *InterfaceMeshConnectivity) SetElementNumber(ie, meshIndex, e int) (err error) {
	cm, err := o.check(ie, meshIndex)
	if err != nil {
		return
	}
	if e < 1 || e > cm.NumberOfElements() {
		return chk.Err("interface %d: element %d does not exist in coupled mesh %d", o.Interface.UserNumber, e, meshIndex)
	}
	o.Elems[ie-1][meshIndex-1] = e
	return
}

// SetElementXi sets the xi, in coupled element e of mesh meshIndex, of the vertex localNode
// (1-based local node of the mapping basis) of interface element ie. Only derivative 1
// (values) is available.
func (o *InterfaceMeshConnectivity) SetElementXi(ie, meshIndex, e, localNode, deriv int, xi []float64) (err error) {
	cm, err := o.check(ie, meshIndex)
	if err != nil {
		return
	}
	if o.Elems[ie-1][meshIndex-1] != e {
		return chk.Err("interface %d: element %d of mesh %d is not mapped to interface element %d", o.Interface.UserNumber, e, meshIndex, ie)
	}
	if localNode < 1 || localNode > o.Basis.Nnodes {
		return chk.Err("interface %d: local node %d of mapping basis is out of range. nnodes=%d", o.Interface.UserNumber, localNode, o.Basis.Nnodes)
	}
	if deriv != 1 {
		return chk.Err("interface %d: only derivative 1 can be set in mesh connectivity. %d is invalid", o.Interface.UserNumber, deriv)
	}
	if len(xi) != cm.Nxi {
		return chk.Err("interface %d: xi must have %d components. len(xi)=%d", o.Interface.UserNumber, cm.Nxi, len(xi))
	}
	for i, v := range xi {
		if v < 0 || v > 1 {
			return chk.Err("interface %d: xi[%d] = %g is outside [0,1]", o.Interface.UserNumber, i, v)
		}
	}
	copy(o.Xi[ie-1][meshIndex-1][localNode-1], xi)
	o.xiSet[ie-1][meshIndex-1][localNode-1] = true
	return
}

// Finish checks that every interface element is mapped onto every coupled mesh
func (o *InterfaceMeshConnectivity) Finish() (err error) {
	for ie := range o.Elems {
		for m := range o.Elems[ie] {
			if o.Elems[ie][m] == 0 {
				return chk.Err("interface %d: interface element %d is not mapped onto mesh %d", o.Interface.UserNumber, ie+1, m+1)
			}
			for v, ok := range o.xiSet[ie][m] {
				if !ok {
					return chk.Err("interface %d: xi of vertex %d of interface element %d is not set for mesh %d", o.Interface.UserNumber, v+1, ie+1, m+1)
				}
			}
		}
	}
	return
}

// MapXi computes the xi in the coupled element of mesh meshIndex corresponding to the
// interface xi s of interface element ie
func (o *InterfaceMeshConnectivity) MapXi(xi []float64, ie, meshIndex int, s []float64) {
	o.Basis.Eval(o.S, nil, s, nil)
	for i := range xi {
		xi[i] = 0
		for v, w := range o.S {
			xi[i] += w * o.Xi[ie-1][meshIndex-1][v][i]
		}
	}
}

// check checks indices and returns the coupled mesh
func (o *InterfaceMeshConnectivity) check(ie, meshIndex int) (cm *msh.Mesh, err error) {
	if ie < 1 || ie > len(o.Elems) {
		return nil, chk.Err("interface %d: interface element %d is out of range. nelems=%d", o.Interface.UserNumber, ie, len(o.Elems))
	}
	return o.Interface.CoupledMesh(meshIndex)
}
