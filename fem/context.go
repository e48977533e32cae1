// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the finite element objects used to set up and solve coupled
// Laplace problems: coordinate systems, regions, fields, equations sets, interfaces,
// interface conditions, problems, solvers and boundary conditions
package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// ComputationEnvironment holds information about the processors of this run
type ComputationEnvironment struct {
	NumberOfGroupNodes int               // number of processors in the world work group
	GroupNodeNumber    int               // this processor number
	Comm               *mpi.Communicator // world communicator; nil if MPI is off
}

// NewComputationEnvironment returns the computation environment. If MPI is off,
// there is one processor with number 0.
func NewComputationEnvironment() (o *ComputationEnvironment) {
	o = &ComputationEnvironment{NumberOfGroupNodes: 1}
	if mpi.IsOn() {
		o.NumberOfGroupNodes = mpi.WorldSize()
		o.GroupNodeNumber = mpi.WorldRank()
		o.Comm = mpi.NewCommunicator(nil)
	}
	return
}

// Distributed tells whether more than one processor is running
func (o *ComputationEnvironment) Distributed() bool { return o.NumberOfGroupNodes > 1 }

// AllReduceSum sums x over all processors; x is replaced by the result
func (o *ComputationEnvironment) AllReduceSum(x []float64) {
	if o.Comm == nil || o.NumberOfGroupNodes < 2 {
		return
	}
	orig := make([]float64, len(x))
	copy(orig, x)
	o.Comm.AllReduceSum(x, orig)
}

// Context holds the registry of user numbers of all objects and the world region
type Context struct {
	UserNumber  int                     // user number
	Env         *ComputationEnvironment // computation environment
	WorldRegion *Region                 // parent of all regions
	Verbose     bool                    // show messages
	ShowMsg     bool                    // show messages: if verbose==true and processor==0
	registry    map[string]map[int]bool // kind => user numbers in use
}

// NewContext returns a new context
func NewContext(userNumber int, env *ComputationEnvironment, verbose bool) (o *Context) {
	o = new(Context)
	o.UserNumber = userNumber
	o.Env = env
	o.Verbose = verbose
	o.ShowMsg = verbose && env.GroupNodeNumber == 0
	o.registry = make(map[string]map[int]bool)
	o.WorldRegion = &Region{UserNumber: 0, Label: "World", ctx: o}
	return
}

// Register records the user number of a new object of given kind
func (o *Context) Register(kind string, userNumber int) (err error) {
	if userNumber < 1 {
		return chk.Err("user number of %s must be positive. %d is invalid", kind, userNumber)
	}
	nums, ok := o.registry[kind]
	if !ok {
		nums = make(map[int]bool)
		o.registry[kind] = nums
	}
	if nums[userNumber] {
		return chk.Err("%s with user number %d has already been created", kind, userNumber)
	}
	nums[userNumber] = true
	return
}

// Rank returns this processor number
func (o *Context) Rank() int { return o.Env.GroupNodeNumber }
