// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import "github.com/cpmech/gosl/io"

// Face holds the data of an element face (normal to one xi direction)
type Face struct {
	Id       int   // index in Mesh.Faces
	Xi       int   // xi direction normal to face
	Elems    []int // user numbers of elements sharing this face (1 or 2)
	Sides    []int // [len(Elems)] side of face in each element: 0 => xi=0; 1 => xi=1
	Nodes    []int // user numbers of nodes on face, as seen by first element
	Boundary bool  // face is on the boundary of the mesh
}

// CalculateFaces computes all faces of the mesh. Each element has two faces per xi
// direction; faces shared by two elements are interior faces.
func (o *Mesh) CalculateFaces() {
	o.Faces = make([]*Face, 0)
	key2face := make(map[string]*Face)
	b := o.Basis
	for _, e := range o.Elems {
		for i := 0; i < o.Nxi; i++ {
			for side := 0; side < 2; side++ {

				// position of face in grid of faces normal to xi
				pos := append([]int{}, e.Grid...)
				pos[i] += side
				key := io.Sf("%d:%v", i, pos)

				// existent face
				if f, ok := key2face[key]; ok {
					f.Elems = append(f.Elems, e.Id)
					f.Sides = append(f.Sides, side)
					f.Boundary = false
					continue
				}

				// new face
				f := &Face{Id: len(o.Faces), Xi: i, Elems: []int{e.Id}, Sides: []int{side}, Boundary: true}
				at := side * (b.NnodesXi[i] - 1)
				for n, lidx := range b.NodeIdx {
					if lidx[i] == at {
						f.Nodes = append(f.Nodes, e.Nodes[n])
					}
				}
				key2face[key] = f
				o.Faces = append(o.Faces, f)
			}
		}
	}
}

// BoundaryFaces returns the faces on the boundary of the mesh
func (o *Mesh) BoundaryFaces() (faces []*Face) {
	for _, f := range o.Faces {
		if f.Boundary {
			faces = append(faces, f)
		}
	}
	return
}
