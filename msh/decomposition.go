// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import "github.com/cpmech/gosl/chk"

// Decomposition holds the partition of a mesh into domains (one per processor)
type Decomposition struct {
	UserNumber      int   // user number
	Mesh            *Mesh // mesh being decomposed
	NumberOfDomains int   // number of domains
	CalculateFaces  bool  // compute faces when partitioning
	ElemDomain      []int // [nelems] domain of each element
	NodeDomain      []int // [nnodes] domain of each node
}

// NewDecomposition returns a new decomposition of mesh m into one domain
func NewDecomposition(userNumber int, m *Mesh) *Decomposition {
	return &Decomposition{UserNumber: userNumber, Mesh: m, NumberOfDomains: 1}
}

// Partition assigns contiguous blocks of elements (ordered by user number) to domains.
// Each node belongs to the lowest domain among the elements that contain it.
func (o *Decomposition) Partition() (err error) {

	// check
	if o.Mesh == nil {
		return chk.Err("decomposition %d: mesh must be set before partitioning", o.UserNumber)
	}
	nelems := len(o.Mesh.Elems)
	if o.NumberOfDomains < 1 || o.NumberOfDomains > nelems {
		return chk.Err("decomposition %d: number of domains must be in [1, %d] (number of elements). %d is invalid", o.UserNumber, nelems, o.NumberOfDomains)
	}

	// elements
	o.ElemDomain = make([]int, nelems)
	for k := 0; k < nelems; k++ {
		o.ElemDomain[k] = k * o.NumberOfDomains / nelems
	}

	// nodes
	o.NodeDomain = make([]int, len(o.Mesh.Nodes))
	for k := range o.NodeDomain {
		o.NodeDomain[k] = o.NumberOfDomains
	}
	for k, e := range o.Mesh.Elems {
		for _, id := range e.Nodes {
			if o.ElemDomain[k] < o.NodeDomain[id-1] {
				o.NodeDomain[id-1] = o.ElemDomain[k]
			}
		}
	}

	// faces
	if o.CalculateFaces {
		o.Mesh.CalculateFaces()
	}
	return
}

// ElementDomain returns the domain of element with user number e
func (o *Decomposition) ElementDomain(e int) int {
	return o.ElemDomain[o.Mesh.Elem(e).Id-1]
}

// NodeDomainOf returns the domain of node with user number n
func (o *Decomposition) NodeDomainOf(n int) int {
	return o.NodeDomain[o.Mesh.Node(n).Id-1]
}

// DomainElements returns the user numbers of the elements in domain d
func (o *Decomposition) DomainElements(d int) (ids []int) {
	for k, dom := range o.ElemDomain {
		if dom == d {
			ids = append(ids, k+1)
		}
	}
	return
}

// DomainNodes returns the user numbers of the nodes owned by domain d
func (o *Decomposition) DomainNodes(d int) (ids []int) {
	for k, dom := range o.NodeDomain {
		if dom == d {
			ids = append(ids, k+1)
		}
	}
	return
}

// DomainFaces returns the number of faces in domain d; i.e. faces whose first element is in d
func (o *Decomposition) DomainFaces(d int) (nfaces int) {
	for _, f := range o.Mesh.Faces {
		if o.ElemDomain[f.Elems[0]-1] == d {
			nfaces++
		}
	}
	return
}
