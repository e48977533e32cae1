// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// GeneratedType defines the type of generated mesh
type GeneratedType int

// generated mesh types
const (
	Regular GeneratedType = iota + 1 // regular box mesh
)

// GeneratedMesh holds the definition of a mesh to be generated
type GeneratedMesh struct {
	UserNumber       int           // user number
	Type             GeneratedType // type of mesh
	Basis            *shp.Basis    // basis of all elements
	Origin           []float64     // [ndim] origin of box
	Extent           []float64     // [ndim] extent of box; zero extents are not spanned by xi
	NumberOfElements []int         // [nxi] number of elements along each xi
}

// NewGeneratedMesh returns a new generated mesh definition of type Regular
func NewGeneratedMesh(userNumber int) (o *GeneratedMesh) {
	return &GeneratedMesh{UserNumber: userNumber, Type: Regular}
}

// Generate generates the mesh
//  Note: the xi directions are mapped onto the axes with non-zero extent, in order
func (o *GeneratedMesh) Generate(meshUserNumber int) (m *Mesh, err error) {

	// check
	if o.Type != Regular {
		return nil, chk.Err("generated mesh %d: type %d is not available", o.UserNumber, o.Type)
	}
	if o.Basis == nil {
		return nil, chk.Err("generated mesh %d: basis must be set before generation", o.UserNumber)
	}
	ndim := len(o.Origin)
	if ndim < 1 || ndim > 3 || len(o.Extent) != ndim {
		return nil, chk.Err("generated mesh %d: origin and extent must have the same length (1, 2 or 3). len(origin)=%d, len(extent)=%d", o.UserNumber, ndim, len(o.Extent))
	}
	var axes []int
	for i, l := range o.Extent {
		if l < 0 {
			return nil, chk.Err("generated mesh %d: extent along axis %d must not be negative. %g is invalid", o.UserNumber, i+1, l)
		}
		if l > 0 {
			axes = append(axes, i)
		}
	}
	nxi := o.Basis.Nxi
	if len(axes) != nxi || len(o.NumberOfElements) != nxi {
		return nil, chk.Err("generated mesh %d: number of non-zero extents (%d), number of element counts (%d) and basis number of xi (%d) must be equal", o.UserNumber, len(axes), len(o.NumberOfElements), nxi)
	}
	for i, n := range o.NumberOfElements {
		if n < 1 {
			return nil, chk.Err("generated mesh %d: number of elements in xi %d must be >= 1. %d is invalid", o.UserNumber, i+1, n)
		}
	}

	// new mesh
	b := o.Basis
	m = &Mesh{
		UserNumber: meshUserNumber,
		Nxi:        nxi,
		Ndim:       ndim,
		Basis:      b,
		Axes:       axes,
		Nelems:     append([]int{}, o.NumberOfElements...),
		Ngrid:      make([]int, nxi),
	}
	for i := 0; i < nxi; i++ {
		m.Ngrid[i] = m.Nelems[i]*(b.NnodesXi[i]-1) + 1
	}

	// nodes
	for k, idx := range shp.TensorIndices(m.Ngrid) {
		x := append([]float64{}, o.Origin...)
		for i, ax := range axes {
			x[ax] += o.Extent[ax] * float64(idx[i]) / float64(m.Ngrid[i]-1)
		}
		m.Nodes = append(m.Nodes, &Node{Id: k + 1, X: x, Grid: idx, Scales: make([]float64, nxi)})
	}

	// elements
	size := make([]float64, nxi)
	for i, ax := range axes {
		size[i] = o.Extent[ax] / float64(m.Nelems[i])
	}
	gidx := make([]int, nxi)
	for k, eidx := range shp.TensorIndices(m.Nelems) {
		e := &Elem{Id: k + 1, Grid: eidx, Size: append([]float64{}, size...)}
		e.Nodes = make([]int, b.Nnodes)
		for n, lidx := range b.NodeIdx {
			for i := 0; i < nxi; i++ {
				gidx[i] = eidx[i]*(b.NnodesXi[i]-1) + lidx[i]
			}
			e.Nodes[n] = m.nodeId(gidx)
		}
		m.Elems = append(m.Elems, e)
	}

	// arc-length scales: arithmetic mean of sizes of adjacent elements
	count := utl.IntAlloc(len(m.Nodes), nxi)
	for _, e := range m.Elems {
		for _, id := range e.Nodes {
			nod := m.Nodes[id-1]
			for i := 0; i < nxi; i++ {
				nod.Scales[i] += e.Size[i]
				count[id-1][i]++
			}
		}
	}
	for k, nod := range m.Nodes {
		for i := 0; i < nxi; i++ {
			nod.Scales[i] /= float64(count[k][i])
		}
	}
	return
}
