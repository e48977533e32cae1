// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements regular generated meshes, their faces and their decomposition
// into domains (one per processor)
package msh

import (
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
)

// Node holds node data
type Node struct {
	Id     int       // user number: 1..nnodes
	X      []float64 // [ndim] coordinates
	Grid   []int     // [nxi] position of node in grid of nodes
	Scales []float64 // [nxi] arc-length scale along each xi: mean of sizes of adjacent elements
}

// Elem holds element data
type Elem struct {
	Id    int       // user number: 1..nelems
	Nodes []int     // [nnodes] user numbers of nodes ordered as the local nodes of the basis
	Grid  []int     // [nxi] position of element in grid of elements
	Size  []float64 // [nxi] element size along each xi
}

// Mesh holds a mesh generated on a region or interface
type Mesh struct {
	UserNumber int        // user number
	Nxi        int        // number of xi directions (mesh dimension)
	Ndim       int        // space dimension
	Basis      *shp.Basis // basis of all elements
	Axes       []int      // [nxi] space axis spanned by each xi
	Nelems     []int      // [nxi] number of elements along each xi
	Ngrid      []int      // [nxi] number of nodes along each xi
	Nodes      []*Node    // [nnodes] all nodes; Nodes[i].Id == i+1
	Elems      []*Elem    // [nelems] all elements; Elems[i].Id == i+1
	Faces      []*Face    // [nfaces] all faces; after CalculateFaces
}

// NumberOfNodes returns the number of nodes
func (o *Mesh) NumberOfNodes() int { return len(o.Nodes) }

// NumberOfElements returns the number of elements
func (o *Mesh) NumberOfElements() int { return len(o.Elems) }

// Node returns node with user number id
func (o *Mesh) Node(id int) *Node {
	if id < 1 || id > len(o.Nodes) {
		chk.Panic("mesh %d does not have node %d. nnodes=%d", o.UserNumber, id, len(o.Nodes))
	}
	return o.Nodes[id-1]
}

// Elem returns element with user number id
func (o *Mesh) Elem(id int) *Elem {
	if id < 1 || id > len(o.Elems) {
		chk.Panic("mesh %d does not have element %d. nelems=%d", o.UserNumber, id, len(o.Elems))
	}
	return o.Elems[id-1]
}

// ElemAt returns the element at grid position idx
func (o *Mesh) ElemAt(idx []int) (e *Elem, err error) {
	k, stride := 0, 1
	for i := 0; i < o.Nxi; i++ {
		if idx[i] < 0 || idx[i] >= o.Nelems[i] {
			return nil, chk.Err("element grid index %v is out of range. nelems=%v", idx, o.Nelems)
		}
		k += idx[i] * stride
		stride *= o.Nelems[i]
	}
	return o.Elems[k], nil
}

// ScaleFactors returns the scale factors of the element parameters of element e:
// the product of the arc-length scales of the differentiated directions of each parameter.
// Value parameters have unit scale.
func (o *Mesh) ScaleFactors(e *Elem) (scales []float64) {
	b := o.Basis
	scales = make([]float64, b.Nparams)
	for n, id := range e.Nodes {
		nod := o.Nodes[id-1]
		for d := 1; d <= b.Nderivs; d++ {
			s := 1.0
			for _, i := range b.DerivativeDirs(d) {
				s *= nod.Scales[i]
			}
			scales[b.Param(n, d)] = s
		}
	}
	return
}

// nodeId returns the user number of the node at grid position idx
func (o *Mesh) nodeId(idx []int) int {
	k, stride := 0, 1
	for i := 0; i < o.Nxi; i++ {
		k += idx[i] * stride
		stride *= o.Ngrid[i]
	}
	return k + 1
}
