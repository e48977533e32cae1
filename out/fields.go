// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the export of fields to the legacy CMGUI text format
// (exnode/exelem files)
package out

import (
	"github.com/cpmech/coupledlaplace/fem"
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/gosl/chk"
)

// MethodFortran is the only export method available; i.e. legacy text files
const MethodFortran = "FORTRAN"

// Fields holds the fields of a region or interface to be exported
type Fields struct {
	Label  string             // label of region or interface; written as group name
	Dirout string             // directory where files are written
	Mesh   *msh.Mesh          // mesh shared by all fields
	Decomp *msh.Decomposition // decomposition of mesh; selects the nodes and elements of this processor
	List   []*fem.Field       // fields; geometric field first
	Rank   int                // processor number
}

// CreateRegion collects the fields of region r
func CreateRegion(r *fem.Region, dirout string) (o *Fields, err error) {
	if r == nil {
		return nil, chk.Err("cannot collect fields of nil region")
	}
	o, err = newFields(r.Label, dirout, r.Fields, r.Context().Rank())
	if err != nil {
		return nil, chk.Err("region %d: %v", r.UserNumber, err)
	}
	return
}

// CreateInterface collects the fields of interface it
func CreateInterface(it *fem.Interface, dirout string) (o *Fields, err error) {
	if it == nil {
		return nil, chk.Err("cannot collect fields of nil interface")
	}
	o, err = newFields(it.Label, dirout, it.Fields, it.Parent.Context().Rank())
	if err != nil {
		return nil, chk.Err("interface %d: %v", it.UserNumber, err)
	}
	return
}

// newFields collects fields and their geometric fields; all fields must share the same mesh
func newFields(label, dirout string, fields []*fem.Field, rank int) (o *Fields, err error) {
	o = &Fields{Label: label, Dirout: dirout, Rank: rank}
	add := func(f *fem.Field) {
		for _, g := range o.List {
			if g == f {
				return
			}
		}
		o.List = append(o.List, f)
	}
	for _, f := range fields {
		if f.Geometric != nil {
			add(f.Geometric)
		}
	}
	for _, f := range fields {
		if f.Type == fem.FieldGeometric {
			add(f)
		}
	}
	for _, f := range fields {
		add(f)
	}
	if len(o.List) == 0 {
		return nil, chk.Err("there are no fields to export")
	}
	if o.List[0].Type != fem.FieldGeometric {
		return nil, chk.Err("geometric field is required to export fields")
	}
	o.Mesh = o.List[0].Mesh
	o.Decomp = o.List[0].Decomposition
	for _, f := range o.List {
		if f.Mesh != o.Mesh {
			return nil, chk.Err("field %d is not defined on the mesh of the geometric field", f.UserNumber)
		}
	}
	if o.Decomp == nil || len(o.Decomp.ElemDomain) != o.Mesh.NumberOfElements() {
		return nil, chk.Err("mesh %d must be decomposed before exporting", o.Mesh.UserNumber)
	}
	return
}
