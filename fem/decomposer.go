// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Decomposer partitions a set of decompositions over the world work group
type Decomposer struct {
	UserNumber     int                  // user number
	Decompositions []*msh.Decomposition // decompositions to be partitioned
	Output         OutputType           // OutputNone or OutputAll
	ctx            *Context             // context
}

// NewDecomposer returns a new decomposer
func (o *Context) NewDecomposer(userNumber int) (d *Decomposer, err error) {
	if err = o.Register("decomposer", userNumber); err != nil {
		return
	}
	return &Decomposer{UserNumber: userNumber, ctx: o}, nil
}

// NewDecomposition returns a new decomposition of mesh m with calculation of faces
func (o *Context) NewDecomposition(userNumber int, m *msh.Mesh) (d *msh.Decomposition, err error) {
	if m == nil {
		return nil, chk.Err("decomposition %d: mesh must be given", userNumber)
	}
	if err = o.Register("decomposition", userNumber); err != nil {
		return
	}
	d = msh.NewDecomposition(userNumber, m)
	d.CalculateFaces = true
	return
}

// AddDecomposition adds a decomposition and returns its 1-based index
func (o *Decomposer) AddDecomposition(d *msh.Decomposition) int {
	o.Decompositions = append(o.Decompositions, d)
	return len(o.Decompositions)
}

// Finish partitions all decompositions into one domain per processor
func (o *Decomposer) Finish() (err error) {
	ndomains := o.ctx.Env.NumberOfGroupNodes
	for i, d := range o.Decompositions {
		d.NumberOfDomains = ndomains
		if err = d.Partition(); err != nil {
			return chk.Err("decomposer %d: cannot partition decomposition %d:\n%v", o.UserNumber, i+1, err)
		}
		if o.Output == OutputAll && o.ctx.ShowMsg {
			io.Pf("decomposition %d of mesh %d:\n", d.UserNumber, d.Mesh.UserNumber)
			for dom := 0; dom < ndomains; dom++ {
				io.Pf("  domain %d: %d elements, %d nodes, %d faces\n", dom, len(d.DomainElements(dom)), len(d.DomainNodes(dom)), d.DomainFaces(dom))
			}
		}
	}
	return
}
