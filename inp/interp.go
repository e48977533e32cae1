// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// Interpolation defines the interpolation used by all bases of the coupled problem
type Interpolation int

// interpolation codes; also accepted as the 4th command line argument (1 to 4)
const (
	LinearLagrange Interpolation = iota + 1
	QuadraticLagrange
	CubicLagrange
	CubicHermite
	LinearSimplex
	QuadraticSimplex
	CubicSimplex
)

var interpNames = map[Interpolation]string{
	LinearLagrange:    "LINEAR_LAGRANGE",
	QuadraticLagrange: "QUADRATIC_LAGRANGE",
	CubicLagrange:     "CUBIC_LAGRANGE",
	CubicHermite:      "CUBIC_HERMITE",
	LinearSimplex:     "LINEAR_SIMPLEX",
	QuadraticSimplex:  "QUADRATIC_SIMPLEX",
	CubicSimplex:      "CUBIC_SIMPLEX",
}

// String returns the name of the interpolation type; e.g. LINEAR_LAGRANGE
func (o Interpolation) String() string {
	if name, ok := interpNames[o]; ok {
		return name
	}
	return "UNKNOWN(" + strconv.Itoa(int(o)) + ")"
}

// Known tells whether o is one of the enumerated codes
func (o Interpolation) Known() bool {
	_, ok := interpNames[o]
	return ok
}

// IsSimplex tells whether o belongs to the simplex family
func (o Interpolation) IsSimplex() bool {
	return o >= LinearSimplex && o <= CubicSimplex
}

// NodesXi returns the number of nodes along each xi direction
func (o Interpolation) NodesXi() int {
	switch o {
	case LinearLagrange, CubicHermite, LinearSimplex:
		return 2
	case QuadraticLagrange, QuadraticSimplex:
		return 3
	case CubicLagrange, CubicSimplex:
		return 4
	}
	return 0
}

// GaussXi returns the number of Gauss points along each xi direction.
// For simplex types, it returns the quadrature order instead.
func (o Interpolation) GaussXi() int {
	switch o {
	case LinearLagrange, LinearSimplex:
		return 2
	case QuadraticLagrange, CubicLagrange, CubicHermite:
		return 3
	case QuadraticSimplex:
		return 4
	case CubicSimplex:
		return 5
	}
	return 0
}

// ParseInterpolation parses an interpolation code or name
func ParseInterpolation(s string) (Interpolation, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		o := Interpolation(code)
		if !o.Known() {
			return 0, chk.Err("interpolation code %d is not in the enumerated set [1, 7]", code)
		}
		return o, nil
	}
	up := strings.ToUpper(s)
	for o, name := range interpNames {
		if name == up {
			return o, nil
		}
	}
	return 0, chk.Err("cannot parse interpolation type %q", s)
}

// UnmarshalYAML accepts either the integer code or the name
func (o *Interpolation) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return chk.Err("interpolation must be a scalar (line %d)", value.Line)
	}
	res, err := ParseInterpolation(value.Value)
	if err != nil {
		return err
	}
	*o = res
	return nil
}
