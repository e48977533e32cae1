// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drv

import (
	"time"

	"github.com/cpmech/coupledlaplace/fem"
	"github.com/cpmech/coupledlaplace/inp"
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/coupledlaplace/out"
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// family returns the one-dimensional family corresponding to an interpolation type
func family(interp inp.Interpolation) (f shp.Family, err error) {
	switch interp {
	case inp.LinearLagrange:
		return shp.LinearLagrange, nil
	case inp.QuadraticLagrange:
		return shp.QuadraticLagrange, nil
	case inp.CubicLagrange:
		return shp.CubicLagrange, nil
	case inp.CubicHermite:
		return shp.CubicHermite, nil
	}
	return 0, chk.Err("interpolation type %v is not available for tensor-product bases", interp)
}

// newBasis returns a basis with nxi directions using f and ngauss points along each xi
func newBasis(userNumber int, f shp.Family, nxi, ngauss int) (*shp.Basis, error) {
	interp := make([]shp.Family, nxi)
	ng := make([]int, nxi)
	for i := 0; i < nxi; i++ {
		interp[i], ng[i] = f, ngauss
	}
	return shp.NewBasis(userNumber, interp, ng)
}

func (o *driver) coordinateSystems() (err error) {
	un := o.p.UserNumbers
	nums := []int{un.CoordinateSystem1, un.CoordinateSystem2, un.CoordinateSystemIface}
	names := []string{"coordinate system 1", "coordinate system 2", "interface coordinate system"}
	for i, num := range nums {
		o.msg("Creating %s", names[i])
		if o.cs[i], err = o.ctx.NewCoordinateSystem(num, o.ndim); err != nil {
			return
		}
	}
	return
}

func (o *driver) regions() (err error) {
	un := o.p.UserNumbers
	for i, num := range []int{un.Region1, un.Region2} {
		o.msg("Creating region %d", i+1)
		o.res.Regions[i], err = o.ctx.WorldRegion.NewSubRegion(num, io.Sf("Region%d", i+1), o.cs[i])
		if err != nil {
			return
		}
	}
	return
}

func (o *driver) basisFunctions() (err error) {
	un := o.p.UserNumbers
	f, err := family(o.p.Interp)
	if err != nil {
		return
	}
	ngauss := o.p.Interp.GaussXi()
	for i, num := range []int{un.Basis1, un.Basis2} {
		o.msg("Creating basis %d", i+1)
		if o.bases[i], err = newBasis(num, f, o.ndim, ngauss); err != nil {
			return
		}
	}
	return
}

func (o *driver) generatedMeshes() (err error) {
	un := o.p.UserNumbers
	gnums := []int{un.GeneratedMesh1, un.GeneratedMesh2}
	mnums := []int{un.Mesh1, un.Mesh2}
	for i := 0; i < 2; i++ {
		o.msg("Creating generated mesh %d", i+1)
		g := msh.NewGeneratedMesh(gnums[i])
		g.Type = msh.Regular
		g.Basis = o.bases[i]
		g.Origin = make([]float64, o.ndim)
		g.Origin[0] = float64(i) * o.p.Width
		g.Extent = o.p.Extent()
		g.NumberOfElements = o.p.NumberOfElements()
		if o.meshes[i], err = o.res.Regions[i].GenerateMesh(g, mnums[i]); err != nil {
			return
		}
	}
	return
}

func (o *driver) iface() (err error) {

	// interface
	un := o.p.UserNumbers
	o.msg("Creating interface")
	it, err := o.ctx.WorldRegion.NewInterface(un.Interface, "Interface")
	if err != nil {
		return
	}
	it.AddMesh(o.meshes[0])
	it.AddMesh(o.meshes[1])
	it.CoordSys = o.cs[2]
	o.res.Interface = it

	// bases
	o.msg("Creating interface basis")
	f, err := family(o.p.Interp)
	if err != nil {
		return
	}
	nxi := o.p.NdimInterface()
	if o.bases[2], err = newBasis(un.BasisIface, f, nxi, o.p.Interp.GaussXi()); err != nil {
		return
	}
	o.msg("Creating interface mapping basis")
	if o.bases[3], err = newBasis(un.BasisIfaceMapping, shp.LinearLagrange, nxi, 2); err != nil {
		return
	}

	// generated mesh
	o.msg("Creating interface generated mesh")
	g := msh.NewGeneratedMesh(un.GeneratedMeshIface)
	g.Type = msh.Regular
	g.Basis = o.bases[2]
	g.Origin = make([]float64, o.ndim)
	g.Origin[0] = o.p.Width
	g.Extent = append([]float64{0}, o.p.Extent()[1:]...)
	g.NumberOfElements = o.p.NumberOfElements()[1:]
	o.meshes[2], err = it.GenerateMesh(g, un.MeshIface)
	return
}

// meshConnectivity maps interface element y(+(z-1)·ny) onto element y·nx(+(z-1)·nx·ny) of
// mesh 1 at xi1 = 1 and onto element 1+(y-1)·nx(+(z-1)·nx·ny) of mesh 2 at xi1 = 0
func (o *driver) meshConnectivity() (err error) {
	it := o.res.Interface
	conn, err := it.MeshConnectivityCreate(o.bases[3])
	if err != nil {
		return
	}
	nx, ny, nz := o.p.NumberOfGlobalXElements, o.p.NumberOfGlobalYElements, o.p.NumberOfGlobalZElements
	if nz == 0 {
		nz = 1
	}
	for z := 1; z <= nz; z++ {
		for y := 1; y <= ny; y++ {
			ie := y + (z-1)*ny
			elems := []int{
				y*nx + (z-1)*nx*ny,
				1 + (y-1)*nx + (z-1)*nx*ny,
			}
			for k, e := range elems {
				meshIndex := k + 1
				if err = conn.SetElementNumber(ie, meshIndex, e); err != nil {
					return
				}
				for v, idx := range conn.Basis.NodeIdx {
					xi := []float64{float64(1 - k)}
					for _, i := range idx {
						xi = append(xi, float64(i))
					}
					if err = conn.SetElementXi(ie, meshIndex, e, v+1, 1, xi); err != nil {
						return
					}
				}
			}
		}
	}
	return conn.Finish()
}

func (o *driver) decomposition() (err error) {
	un := o.p.UserNumbers
	nums := []int{un.Decomposition1, un.Decomposition2, un.DecompositionIface}
	names := []string{"decomposition 1", "decomposition 2", "interface decomposition"}
	for i, num := range nums {
		o.msg("Creating %s", names[i])
		if o.decomps[i], err = o.ctx.NewDecomposition(num, o.meshes[i]); err != nil {
			return
		}
	}
	o.decomps[2].CalculateFaces = false
	return
}

func (o *driver) decomposer() (err error) {
	d, err := o.ctx.NewDecomposer(o.p.UserNumbers.Decomposer)
	if err != nil {
		return
	}
	for _, dc := range o.decomps {
		d.AddDecomposition(dc)
	}
	if d.Output, err = fem.ParseOutputType(o.p.Output.Decomposer, fem.DecomposerOutputs...); err != nil {
		return
	}
	return d.Finish()
}

func (o *driver) geometricFields() (err error) {
	un := o.p.UserNumbers
	nums := []int{un.GeometricField1, un.GeometricField2, un.GeometricFieldIface}
	names := []string{"geometric field 1", "geometric field 2", "interface geometric field"}
	labels := []string{"Geometry1Variable", "Geometry2Variable", "InterfaceGeometryVariable"}
	for i, num := range nums {
		o.msg("Creating %s", names[i])
		geo, e := o.ctx.NewField(num, fem.FieldGeometric, o.decomps[i], []fem.VariableType{fem.VariableU}, o.ndim)
		if e != nil {
			return e
		}
		geo.Label = labels[i]
		geo.Var(fem.VariableU).Label = labels[i]
		geo.Scaling = o.scaling
		if err = geo.GeometricParametersCalculate(); err != nil {
			return
		}
		o.geos[i] = geo
	}
	o.res.Regions[0].Fields = append(o.res.Regions[0].Fields, o.geos[0])
	o.res.Regions[1].Fields = append(o.res.Regions[1].Fields, o.geos[1])
	o.res.Interface.Fields = append(o.res.Interface.Fields, o.geos[2])
	return
}

// export writes the fields of both regions and of the interface
func (o *driver) export() (err error) {
	op := o.p.Output
	names := []string{op.Region1, op.Region2}
	for i, r := range o.res.Regions {
		flds, e := out.CreateRegion(r, op.DirOut)
		if e != nil {
			return e
		}
		if err = flds.NodesExport(names[i], op.Method); err != nil {
			return
		}
		if err = flds.ElementsExport(names[i], op.Method); err != nil {
			return
		}
	}
	flds, err := out.CreateInterface(o.res.Interface, op.DirOut)
	if err != nil {
		return
	}
	if err = flds.NodesExport(op.Interface, op.Method); err != nil {
		return
	}
	return flds.ElementsExport(op.Interface, op.Method)
}

func (o *driver) equationsSets() (err error) {
	un := o.p.UserNumbers
	nums := []int{un.EquationsSet1, un.EquationsSet2}
	fnums := []int{un.EquationsSetField1, un.EquationsSetField2}
	outputs := []string{o.p.Output.EquationsSet1, o.p.Output.EquationsSet2}
	for i, r := range o.res.Regions {
		o.msg("Creating equations set %d", i+1)
		s, e := r.NewEquationsSet(nums[i], o.geos[i], fem.LaplaceStandard, fnums[i])
		if e != nil {
			return e
		}
		if s.Output, err = fem.ParseOutputType(outputs[i], fem.EquationsSetOutputs...); err != nil {
			return chk.Err("equations set %d:\n%v", i+1, err)
		}
		o.res.Sets[i] = s
	}
	return
}

func (o *driver) dependentFields() (err error) {
	un := o.p.UserNumbers
	nums := []int{un.DependentField1, un.DependentField2}
	for i, s := range o.res.Sets {
		o.msg("Creating dependent field %d", i+1)
		if _, err = s.DependentCreate(nums[i], io.Sf("Dependent%d", i+1)); err != nil {
			return
		}
	}
	return
}

func (o *driver) equations() (err error) {
	outputs := []string{o.p.Output.Equations1, o.p.Output.Equations2}
	for i, s := range o.res.Sets {
		o.msg("Creating equations %d", i+1)
		output, e := fem.ParseOutputType(outputs[i], fem.EquationsOutputs...)
		if e != nil {
			return chk.Err("equations %d:\n%v", i+1, e)
		}
		if _, err = s.EquationsCreate(fem.SparsitySparse, output); err != nil {
			return
		}
	}
	return
}

func (o *driver) interfaceCondition() (err error) {
	un := o.p.UserNumbers
	c, err := o.res.Interface.NewInterfaceCondition(un.InterfaceCondition, o.geos[2], fem.LagrangeMultipliers, fem.FieldContinuity)
	if err != nil {
		return
	}
	c.Label = "InterfaceCondition"
	for i, s := range o.res.Sets {
		if err = c.AddDependentVariable(i+1, s, fem.VariableU); err != nil {
			return
		}
	}
	if c.Output, err = fem.ParseOutputType(o.p.Output.InterfaceCondition, fem.InterfaceConditionOutputs...); err != nil {
		return
	}
	o.res.Condition = c

	// Lagrange field
	o.msg("Creating Lagrange field")
	if _, err = c.LagrangeFieldCreate(un.LagrangeField, "InterfaceLagrange"); err != nil {
		return
	}

	// interface equations
	o.msg("Creating interface equations")
	output, err := fem.ParseOutputType(o.p.Output.InterfaceEquations, fem.EquationsOutputs...)
	if err != nil {
		return
	}
	if _, err = c.EquationsCreate(fem.SparsitySparse, output); err != nil {
		return
	}
	return c.Finish()
}

func (o *driver) problem() (err error) {
	o.res.Problem, err = o.ctx.NewProblem(o.p.UserNumbers.Problem, fem.LaplaceStandard)
	return
}

func (o *driver) controlLoops() (err error) {
	o.res.Problem.ControlLoopCreate()
	return
}

func (o *driver) solvers() (err error) {
	sol, err := o.res.Problem.ControlLoop.Solver(1)
	if err != nil {
		return
	}
	ls := o.p.LinSol
	if sol.Output, err = fem.ParseOutputType(o.p.Output.Solver, fem.SolverOutputs...); err != nil {
		return
	}
	sol.LinearType = fem.LinearDirect
	if ls.Type == "iterative" {
		sol.LinearType = fem.LinearIterative
	}
	sol.Library = ls.Library
	sol.Verbose = ls.Verbose
	sol.MaxIterations = ls.MaxIt
	sol.RelTol = ls.Rtol
	sol.AbsTol = ls.Atol
	sol.DivTol = ls.Dtol
	sol.Restart = ls.Restart
	if o.sparsity, err = fem.ParseSparsity(ls.Sparsity); err != nil {
		return
	}
	o.res.Solver = sol
	return sol.CheckCompatibility()
}

func (o *driver) solverEquations() (err error) {
	eqs, err := o.res.Solver.SolverEquationsCreate(o.sparsity)
	if err != nil {
		return
	}
	for _, s := range o.res.Sets {
		if _, err = eqs.AddEquationsSet(s); err != nil {
			return
		}
	}
	_, err = eqs.AddInterfaceCondition(o.res.Condition)
	return
}

// boundaryConditions fixes the first node of region 1 to 0 and the last node of region 2
// to 1; each condition is set by the processor owning the node
func (o *driver) boundaryConditions() (err error) {
	bcs, err := o.res.Solver.Equations.BoundaryConditionsCreate(o.env)
	if err != nil {
		return
	}
	rank := o.env.GroupNodeNumber
	first := 1
	if o.decomps[0].NodeDomainOf(first) == rank {
		if err = bcs.SetNode(o.res.Sets[0].Dependent, fem.VariableU, 1, 1, first, 1, fem.ConditionFixed, 0.0); err != nil {
			return
		}
	}
	last := o.res.Regions[1].NumberOfNodes()
	if o.decomps[1].NodeDomainOf(last) == rank {
		if err = bcs.SetNode(o.res.Sets[1].Dependent, fem.VariableU, 1, 1, last, 1, fem.ConditionFixed, 1.0); err != nil {
			return
		}
	}
	bcs.Finish()
	return
}

func (o *driver) solve() (err error) {
	if o.showMsg {
		io.Pf("Solving problem...\n")
	}
	start := time.Now()
	err = o.res.Problem.Solve()
	o.res.CalculationTime = time.Since(start)
	if err != nil {
		return
	}
	if o.env.GroupNodeNumber == 0 {
		io.Pf("Calculation Time = %3.4f\n", o.res.CalculationTime.Seconds())
	}
	if o.showMsg {
		io.Pf("Problem solved!\n")
	}
	return
}
