// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"strings"

	"github.com/cpmech/coupledlaplace/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// entry holds one exported variable of one field
type entry struct {
	name  string             // field name in files
	kind  string             // "coordinate" or "field"
	comps []string           // component names
	v     *fem.FieldVariable // variable
	index int                // value index of first component (1-based)
}

// NodesExport writes the nodal parameters of the nodes of this processor to
// <Dirout>/<name>.part<rank>.exnode
func (o *Fields) NodesExport(name, method string) (err error) {
	if err = checkMethod(method); err != nil {
		return
	}
	entries := o.entries()
	nd := o.Mesh.Basis.Nderivs
	labels := derivLabels(o.Mesh.Basis.Nxi, nd)

	// header
	var b bytes.Buffer
	io.Ff(&b, " Group name: %s\n", o.Label)
	io.Ff(&b, " #Fields=%d\n", len(entries))
	for k, en := range entries {
		io.Ff(&b, " %d) %s, %s, rectangular cartesian, #Components=%d\n", k+1, en.name, en.kind, len(en.comps))
		for c, comp := range en.comps {
			io.Ff(&b, "   %s.  Value index=%d, #Derivatives=%d", comp, en.index+c*nd, nd-1)
			if nd > 1 {
				io.Ff(&b, " (%s)", labels)
			}
			io.Ff(&b, "\n")
		}
	}

	// nodes
	for _, id := range o.Decomp.DomainNodes(o.Rank) {
		io.Ff(&b, " Node: %12d\n", id)
		for _, en := range entries {
			for c := range en.comps {
				for d := 0; d < nd; d++ {
					io.Ff(&b, " %25.16E", en.v.Values[id-1][d][c])
				}
				io.Ff(&b, "\n")
			}
		}
	}
	return o.write(name, "exnode", &b)
}

// ElementsExport writes the element interpolation and connectivity of the elements of this
// processor to <Dirout>/<name>.part<rank>.exelem
func (o *Fields) ElementsExport(name, method string) (err error) {
	if err = checkMethod(method); err != nil {
		return
	}
	entries := o.entries()
	basis := o.Mesh.Basis
	nd := basis.Nderivs
	label := basis.Label()
	geo := o.List[0]
	scaled := basis.IsHermite() && geo.Scaling != fem.ScalingNone

	// header
	var b bytes.Buffer
	io.Ff(&b, " Group name: %s\n", o.Label)
	io.Ff(&b, " Shape.  Dimension=%d\n", basis.Nxi)
	if scaled {
		io.Ff(&b, " #Scale factor sets= 1\n")
		io.Ff(&b, "   %s, #Scale factors=%d\n", label, basis.Nparams)
	} else {
		io.Ff(&b, " #Scale factor sets= 0\n")
	}
	io.Ff(&b, " #Nodes=%d\n", basis.Nnodes)
	io.Ff(&b, " #Fields=%d\n", len(entries))
	for k, en := range entries {
		io.Ff(&b, " %d) %s, %s, rectangular cartesian, #Components=%d\n", k+1, en.name, en.kind, len(en.comps))
		for _, comp := range en.comps {
			io.Ff(&b, "   %s.  %s, no modify, standard node based.\n", comp, label)
			io.Ff(&b, "     #Nodes= %d\n", basis.Nnodes)
			for n := 0; n < basis.Nnodes; n++ {
				io.Ff(&b, "      %d.  #Values=%d\n", n+1, nd)
				io.Ff(&b, "       Value indices:")
				for d := 1; d <= nd; d++ {
					io.Ff(&b, " %4d", d)
				}
				io.Ff(&b, "\n       Scale factor indices:")
				for d := 1; d <= nd; d++ {
					sf := 0
					if scaled {
						sf = basis.Param(n, d) + 1
					}
					io.Ff(&b, " %4d", sf)
				}
				io.Ff(&b, "\n")
			}
		}
	}

	// elements
	for _, id := range o.Decomp.DomainElements(o.Rank) {
		e := o.Mesh.Elem(id)
		io.Ff(&b, " Element: %12d 0 0\n", id)
		io.Ff(&b, "   Nodes:\n")
		for _, n := range e.Nodes {
			io.Ff(&b, " %12d", n)
		}
		io.Ff(&b, "\n")
		if !scaled {
			continue
		}
		io.Ff(&b, "   Scale factors:\n")
		for _, s := range geo.ElemScales(e) {
			io.Ff(&b, " %25.16E", s)
		}
		io.Ff(&b, "\n")
	}
	return o.write(name, "exelem", &b)
}

// entries returns the exported variables with their value indices
func (o *Fields) entries() (entries []*entry) {
	index := 1
	nd := o.Mesh.Basis.Nderivs
	for _, f := range o.List {
		for _, v := range f.Variables {
			en := &entry{name: f.Label, kind: "field", v: v, index: index}
			if v.Type != fem.VariableU {
				en.name = f.Label + "_" + v.Label
			}
			if f.Type == fem.FieldGeometric && v.Type == fem.VariableU {
				en.kind = "coordinate"
			}
			for c := 0; c < v.Ncomps; c++ {
				if en.kind == "coordinate" && c < 3 {
					en.comps = append(en.comps, []string{"x", "y", "z"}[c])
				} else {
					en.comps = append(en.comps, io.Sf("%d", c+1))
				}
			}
			entries = append(entries, en)
			index += v.Ncomps * nd
		}
	}
	return
}

// write writes buffer to <Dirout>/<name>.part<rank>.<ext>
func (o *Fields) write(name, ext string, b *bytes.Buffer) (err error) {
	fn := io.Sf("%s.part%d.%s", name, o.Rank, ext)
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot write %q to %q:\n%v", fn, o.Dirout, r)
		}
	}()
	io.WriteFileSD(o.Dirout, fn, b.String())
	return
}

// checkMethod checks the export method
func checkMethod(method string) error {
	if method != MethodFortran {
		return chk.Err("export method %q is not available. Options: %s", method, MethodFortran)
	}
	return nil
}

// derivLabels returns the labels of the derivative parameters; e.g. d/ds1,d/ds2,d2/ds1ds2
func derivLabels(nxi, nderivs int) string {
	labels := make([]string, 0, nderivs)
	for d := 1; d < nderivs; d++ {
		var dirs []string
		for i := 0; i < nxi; i++ {
			if (d>>uint(i))&1 != 0 {
				dirs = append(dirs, io.Sf("ds%d", i+1))
			}
		}
		if len(dirs) == 1 {
			labels = append(labels, "d/"+dirs[0])
		} else {
			labels = append(labels, io.Sf("d%d/%s", len(dirs), strings.Join(dirs, "")))
		}
	}
	return strings.Join(labels, ",")
}
