// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// OutputType defines which diagnostic messages an object prints
type OutputType int

// output types
const (
	OutputNone          OutputType = iota // no output
	OutputProgress                        // progress messages
	OutputTiming                          // elapsed times
	OutputMonitor                         // convergence/residual monitor
	OutputMatrix                          // global matrices and vectors
	OutputElementMatrix                   // element matrices
	OutputAll                             // everything (decomposer)
)

var outputNames = map[string]OutputType{
	"none":           OutputNone,
	"progress":       OutputProgress,
	"timing":         OutputTiming,
	"monitor":        OutputMonitor,
	"matrix":         OutputMatrix,
	"element_matrix": OutputElementMatrix,
	"all":            OutputAll,
}

// ParseOutputType parses the name of an output type and checks it against allowed types
func ParseOutputType(name string, allowed ...OutputType) (t OutputType, err error) {
	t, ok := outputNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return OutputNone, chk.Err("output type %q is invalid", name)
	}
	for _, a := range allowed {
		if t == a {
			return
		}
	}
	return OutputNone, chk.Err("output type %q is not available here", name)
}

// Outputs for each kind of object
var (
	EquationsSetOutputs       = []OutputType{OutputNone, OutputTiming, OutputMatrix, OutputElementMatrix, OutputProgress}
	EquationsOutputs          = []OutputType{OutputNone, OutputTiming, OutputMatrix, OutputElementMatrix}
	InterfaceConditionOutputs = []OutputType{OutputNone, OutputProgress}
	SolverOutputs             = []OutputType{OutputNone, OutputProgress, OutputTiming, OutputMonitor, OutputMatrix}
	DecomposerOutputs         = []OutputType{OutputNone, OutputAll}
)
