// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// MaxArgs is the maximum number of positional command line arguments
const MaxArgs = 4

// names of the positional arguments
var elemArgNames = []string{"numberXElements", "numberYElements", "numberZElements"}

// ArgNames returns the names of the positional arguments in order
func ArgNames() []string {
	return append(append([]string{}, elemArgNames...), "interpolationType")
}

// ApplyArgs overrides the number of elements and the interpolation type with command line
// arguments given in this order:
//  numberXElements numberYElements numberZElements interpolationType
// Element counts must be >= 0 and the interpolation type must be 1, 2, 3 or 4
// (linear, quadratic, cubic Lagrange or cubic Hermite). o is not modified if any argument
// is invalid.
func (o *Params) ApplyArgs(args []string) (err error) {

	// check number of arguments
	if len(args) > MaxArgs {
		return chk.Err("too many arguments- currently only accepting %d options: %s", MaxArgs, strings.Join(ArgNames(), " "))
	}

	// element counts
	nelems := []int{o.NumberOfGlobalXElements, o.NumberOfGlobalYElements, o.NumberOfGlobalZElements}
	for i := 0; i < len(args) && i < 3; i++ {
		n, e := strconv.Atoi(strings.TrimSpace(args[i]))
		if e != nil {
			return chk.Err("the specified %s of %q is invalid. The number should be an integer >= 0", elemArgNames[i], args[i])
		}
		if n < 0 {
			return chk.Err("the specified %s of %d is invalid. The number should be >= 0", elemArgNames[i], n)
		}
		nelems[i] = n
	}

	// interpolation type
	interp := o.Interp
	if len(args) > 3 {
		code, e := strconv.Atoi(strings.TrimSpace(args[3]))
		if e != nil {
			return chk.Err("the specified interpolationType of %q is invalid", args[3])
		}
		switch Interpolation(code) {
		case LinearLagrange, QuadraticLagrange, CubicLagrange, CubicHermite:
			interp = Interpolation(code)
		default:
			return chk.Err("the specified interpolationType of %d is invalid", code)
		}
	}

	// set values
	o.NumberOfGlobalXElements = nelems[0]
	o.NumberOfGlobalYElements = nelems[1]
	o.NumberOfGlobalZElements = nelems[2]
	o.Interp = interp
	return
}
