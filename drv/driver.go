// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package drv implements the driver that sets up and solves the coupled Laplace problem over
// two abutting regions sharing one interface
package drv

import (
	"time"

	"github.com/cpmech/coupledlaplace/fem"
	"github.com/cpmech/coupledlaplace/inp"
	"github.com/cpmech/coupledlaplace/msh"
	"github.com/cpmech/coupledlaplace/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Result holds the objects created by Run and the ordered names of the executed stages
type Result struct {
	Stages          []string                // names of executed stages, in order
	Context         *fem.Context            // context
	Regions         [2]*fem.Region          // the two regions
	Interface       *fem.Interface          // interface between regions
	Sets            [2]*fem.EquationsSet    // equations sets of each region
	Condition       *fem.InterfaceCondition // interface condition
	Problem         *fem.Problem            // problem
	Solver          *fem.Solver             // solver
	CalculationTime time.Duration           // elapsed time during Solve
}

// stage holds one step of the setup and solution
type stage struct {
	name string       // name used in messages
	fcn  func() error // function executing the stage
}

// driver holds the state shared between stages
type driver struct {
	p       *inp.Params
	env     *fem.ComputationEnvironment
	ctx     *fem.Context
	res     *Result
	showMsg bool

	// auxiliary
	ndim     int
	cs       [3]*fem.CoordinateSystem
	bases    [4]*shp.Basis // region 1, region 2, interface and interface mapping bases
	meshes   [3]*msh.Mesh
	decomps  [3]*msh.Decomposition
	geos     [3]*fem.Field
	scaling  fem.ScalingType
	sparsity fem.Sparsity
}

// Run sets up and solves the coupled Laplace problem defined by p
func Run(p *inp.Params, env *fem.ComputationEnvironment) (res *Result, err error) {

	// check
	if err = p.Validate(); err != nil {
		return
	}
	if env == nil {
		env = fem.NewComputationEnvironment()
	}

	// driver
	o := &driver{p: p, env: env, res: new(Result), ndim: p.Ndim()}
	o.ctx = fem.NewContext(p.UserNumbers.Context, env, p.ProgressDiagnostics)
	o.res.Context = o.ctx
	o.showMsg = o.ctx.ShowMsg
	if p.SetupOutput && env.GroupNodeNumber == 0 {
		io.Pf("%s", p.Summary())
	}
	o.scaling = fem.ScalingNone
	if p.Interp == inp.CubicHermite {
		o.scaling = fem.ScalingArithmeticMean
	}

	// stages
	stages := []stage{
		{"Coordinate systems", o.coordinateSystems},
		{"Regions", o.regions},
		{"Basis functions", o.basisFunctions},
		{"Generated meshes", o.generatedMeshes},
		{"Interface", o.iface},
		{"Interface mesh connectivity", o.meshConnectivity},
		{"Decomposition", o.decomposition},
		{"Decomposer", o.decomposer},
		{"Geometric field", o.geometricFields},
		{"Export", o.export},
		{"Equations sets", o.equationsSets},
		{"Dependent fields", o.dependentFields},
		{"Equations", o.equations},
		{"Interface condition", o.interfaceCondition},
		{"Problem", o.problem},
		{"Control loops", o.controlLoops},
		{"Solvers", o.solvers},
		{"Solver equations", o.solverEquations},
		{"Boundary conditions", o.boundaryConditions},
		{"Solve", o.solve},
		{"Export", o.export},
	}
	if o.showMsg {
		io.Pf(" \n")
	}
	for _, s := range stages {
		o.res.Stages = append(o.res.Stages, s.name)
		if o.showMsg {
			io.Pf("%s ...\n", s.name)
		}
		if err = s.fcn(); err != nil {
			return nil, chk.Err("%s failed:\n%v", s.name, err)
		}
		if o.showMsg {
			io.Pf("%s ... Done\n", s.name)
		}
	}
	return o.res, nil
}

// msg prints a progress message of a stage
func (o *driver) msg(msg string, prm ...interface{}) {
	if o.showMsg {
		io.Pf("  "+msg+" ...\n", prm...)
	}
}
