// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/gosl/chk"
)

// CoordinateSystem holds a rectangular cartesian coordinate system
type CoordinateSystem struct {
	UserNumber int // user number
	Dimension  int // space dimension: 1, 2 or 3
}

// NewCoordinateSystem returns a new rectangular cartesian coordinate system
func (o *Context) NewCoordinateSystem(userNumber, dim int) (cs *CoordinateSystem, err error) {
	if dim < 1 || dim > 3 {
		return nil, chk.Err("coordinate system %d: dimension must be 1, 2 or 3. %d is invalid", userNumber, dim)
	}
	if err = o.Register("coordinate system", userNumber); err != nil {
		return
	}
	return &CoordinateSystem{UserNumber: userNumber, Dimension: dim}, nil
}

// Region holds a region of space with its meshes, fields and equations sets
type Region struct {
	UserNumber    int               // user number
	Label         string            // label; used when exporting
	CoordSys      *CoordinateSystem // coordinate system
	Parent        *Region           // parent region; nil for the world region
	Meshes        []*msh.Mesh       // meshes of this region
	Fields        []*Field          // fields defined on this region
	EquationsSets []*EquationsSet   // equations sets defined on this region
	ctx           *Context          // context
}

// NewSubRegion returns a new region that is a child of o
func (o *Region) NewSubRegion(userNumber int, label string, cs *CoordinateSystem) (r *Region, err error) {
	if cs == nil {
		return nil, chk.Err("region %d: coordinate system must be given", userNumber)
	}
	if err = o.ctx.Register("region", userNumber); err != nil {
		return
	}
	return &Region{UserNumber: userNumber, Label: label, CoordSys: cs, Parent: o, ctx: o.ctx}, nil
}

// Context returns the context of this region
func (o *Region) Context() *Context { return o.ctx }

// GenerateMesh generates a mesh in this region
func (o *Region) GenerateMesh(g *msh.GeneratedMesh, meshUserNumber int) (m *msh.Mesh, err error) {
	if err = o.ctx.Register("generated mesh", g.UserNumber); err != nil {
		return
	}
	if err = o.ctx.Register("mesh", meshUserNumber); err != nil {
		return
	}
	if len(g.Origin) != o.CoordSys.Dimension {
		return nil, chk.Err("region %d: generated mesh origin must have %d components. len(origin)=%d", o.UserNumber, o.CoordSys.Dimension, len(g.Origin))
	}
	m, err = g.Generate(meshUserNumber)
	if err != nil {
		return nil, chk.Err("region %d: cannot generate mesh:\n%v", o.UserNumber, err)
	}
	o.Meshes = append(o.Meshes, m)
	return
}

// NumberOfNodes returns the number of nodes of the first mesh of this region
func (o *Region) NumberOfNodes() int {
	if len(o.Meshes) == 0 {
		return 0
	}
	return o.Meshes[0].NumberOfNodes()
}
