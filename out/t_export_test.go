// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/coupledlaplace/fem"
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// newRegion creates a region with a geometric field and an equations set with dependent field
func newRegion(tst *testing.T, f shp.Family, nelems []int) *fem.Region {
	ndim := len(nelems)
	ctx := fem.NewContext(1, &fem.ComputationEnvironment{NumberOfGroupNodes: 1}, chk.Verbose)
	cs, err := ctx.NewCoordinateSystem(1, ndim)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	reg, err := ctx.WorldRegion.NewSubRegion(1, "Block", cs)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	interp := make([]shp.Family, ndim)
	ngauss := make([]int, ndim)
	for i := range interp {
		interp[i], ngauss[i] = f, 3
	}
	g := msh.NewGeneratedMesh(1)
	if g.Basis, err = shp.NewBasis(1, interp, ngauss); err != nil {
		tst.Fatalf("%v", err)
	}
	g.Origin = make([]float64, ndim)
	g.Extent = []float64{2, 1, 1}[:ndim]
	g.NumberOfElements = nelems
	m, err := reg.GenerateMesh(g, 1)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	d, err := ctx.NewDecomposition(1, m)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	if err = d.Partition(); err != nil {
		tst.Fatalf("%v", err)
	}
	geo, err := ctx.NewField(1, fem.FieldGeometric, d, []fem.VariableType{fem.VariableU}, ndim)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	geo.Label = "Geometry"
	if f == shp.CubicHermite {
		geo.Scaling = fem.ScalingArithmeticMean
	}
	if err = geo.GeometricParametersCalculate(); err != nil {
		tst.Fatalf("%v", err)
	}
	s, err := reg.NewEquationsSet(1, geo, fem.LaplaceStandard, 2)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	phi, err := s.DependentCreate(3, "Phi")
	if err != nil {
		tst.Fatalf("%v", err)
	}
	for n := 1; n <= m.NumberOfNodes(); n++ {
		phi.SetNodeValue(fem.VariableU, 1, n, 1, float64(n))
	}
	return reg
}

func readFile(tst *testing.T, fn string) string {
	b, err := os.ReadFile(fn)
	if err != nil {
		tst.Fatalf("cannot read %q:\n%v", fn, err)
	}
	return string(b)
}

func Test_export01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export01. linear Lagrange region")

	dirout := tst.TempDir()
	reg := newRegion(tst, shp.LinearLagrange, []int{2, 1})
	flds, err := CreateRegion(reg, dirout)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.String(tst, flds.List[0].Label, "Geometry")
	chk.Int(tst, "number of fields", len(flds.List), 3)

	if err = flds.NodesExport("Block", MethodFortran); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err = flds.ElementsExport("Block", MethodFortran); err != nil {
		tst.Errorf("%v", err)
		return
	}

	exnode := readFile(tst, filepath.Join(dirout, "Block.part0.exnode"))
	io.Pforan("%s\n", exnode)
	chk.Int(tst, "number of nodes", strings.Count(exnode, " Node:"), 6)
	chk.Int(tst, "number of fields", strings.Count(exnode, ") "), 4)
	if !strings.HasPrefix(exnode, " Group name: Block\n #Fields=4\n 1) Geometry, coordinate, rectangular cartesian, #Components=2\n") {
		tst.Errorf("exnode header is incorrect")
		return
	}
	for _, s := range []string{
		"   y.  Value index=2, #Derivatives=0\n",
		" 3) Phi, field, rectangular cartesian, #Components=1\n",
		" 4) Phi_DelUDelN, field, rectangular cartesian, #Components=1\n",
		" Node:            6\n",
		io.Sf(" %25.16E\n", 6.0),
	} {
		if !strings.Contains(exnode, s) {
			tst.Errorf("exnode does not contain %q", s)
		}
	}

	exelem := readFile(tst, filepath.Join(dirout, "Block.part0.exelem"))
	io.Pforan("%s\n", exelem)
	chk.Int(tst, "number of elements", strings.Count(exelem, " Element:"), 2)
	for _, s := range []string{
		" Shape.  Dimension=2\n",
		" #Scale factor sets= 0\n",
		"       Value indices:    1\n       Scale factor indices:    0\n",
		" Element:            2 0 0\n   Nodes:\n            2            3            5            6\n",
	} {
		if !strings.Contains(exelem, s) {
			tst.Errorf("exelem does not contain %q", s)
		}
	}

	// Lagrange bases are not scaled
	for _, s := range []string{"#Scale factors=", "Scale factors:"} {
		if strings.Contains(exelem, s) {
			tst.Errorf("exelem should not contain %q", s)
		}
	}
}

func Test_export02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export02. cubic Hermite region and derivative labels")

	dirout := tst.TempDir()
	reg := newRegion(tst, shp.CubicHermite, []int{2, 1})
	flds, err := CreateRegion(reg, dirout)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err = flds.NodesExport("Hermite", MethodFortran); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err = flds.ElementsExport("Hermite", MethodFortran); err != nil {
		tst.Errorf("%v", err)
		return
	}
	exnode := readFile(tst, filepath.Join(dirout, "Hermite.part0.exnode"))
	if !strings.Contains(exnode, "   x.  Value index=1, #Derivatives=3 (d/ds1,d/ds2,d2/ds1ds2)\n") {
		tst.Errorf("exnode does not contain the derivatives of x")
	}
	if !strings.Contains(exnode, "   y.  Value index=5, #Derivatives=3 (d/ds1,d/ds2,d2/ds1ds2)\n") {
		tst.Errorf("exnode does not contain the derivatives of y")
	}
	exelem := readFile(tst, filepath.Join(dirout, "Hermite.part0.exelem"))
	chk.Int(tst, "value indices", strings.Count(exelem, "Value indices:    1    2    3    4\n"), 5*4)
	for _, s := range []string{" #Scale factor sets= 1\n", "   c.Hermite*c.Hermite, #Scale factors=16\n"} {
		if !strings.Contains(exelem, s) {
			tst.Errorf("exelem does not contain %q", s)
		}
	}

	// element sizes are 1 along both directions; thus the scale factors are all 1
	if strings.Count(exelem, io.Sf(" %25.16E", 1.0)) != 2*16 {
		tst.Errorf("exelem scale factors are incorrect")
	}

	chk.String(tst, derivLabels(1, 2), "d/ds1")
	chk.String(tst, derivLabels(3, 8), "d/ds1,d/ds2,d2/ds1ds2,d/ds3,d2/ds1ds3,d2/ds2ds3,d3/ds1ds2ds3")
}

func Test_export03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("export03. errors")

	dirout := tst.TempDir()
	reg := newRegion(tst, shp.LinearLagrange, []int{1, 1})
	flds, err := CreateRegion(reg, dirout)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err = flds.NodesExport("Block", "BINARY"); err == nil {
		tst.Errorf("method BINARY should have failed")
		return
	}
	if err = flds.ElementsExport("Block", "BINARY"); err == nil {
		tst.Errorf("method BINARY should have failed")
		return
	}
	if _, err = CreateRegion(nil, dirout); err == nil {
		tst.Errorf("nil region should have failed")
		return
	}

	// nothing of processor 1 is written
	flds.Rank = 1
	if err = flds.NodesExport("Block", MethodFortran); err != nil {
		tst.Errorf("%v", err)
		return
	}
	exnode := readFile(tst, filepath.Join(dirout, "Block.part1.exnode"))
	chk.Int(tst, "number of nodes", strings.Count(exnode, " Node:"), 0)
}
