// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data of the coupled Laplace simulation:
// defaults, (.yaml or .json) parameter files and command line overrides
package inp

import (
	"bytes"
	goio "io"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// LinSolData holds data for linear solvers
type LinSolData struct {
	Type     string  `yaml:"type"`     // "direct" or "iterative"
	Library  string  `yaml:"library"`  // direct solvers: "mumps", "umfpack" or "lapack"
	Sparsity string  `yaml:"sparsity"` // solver matrices: "sparse" or "full"
	Verbose  bool    `yaml:"verbose"`  // show messages from the linear solver library
	MaxIt    int     `yaml:"maxit"`    // iterative: maximum number of iterations
	Rtol     float64 `yaml:"rtol"`     // iterative: relative tolerance
	Atol     float64 `yaml:"atol"`     // iterative: absolute tolerance
	Dtol     float64 `yaml:"dtol"`     // iterative: divergence tolerance
	Restart  int     `yaml:"restart"`  // iterative: GMRES restart value
}

// OutputData holds output options
type OutputData struct {
	DirOut    string `yaml:"dirout"`    // directory for exported files
	Region1   string `yaml:"region1"`   // base name of files exported for region 1
	Region2   string `yaml:"region2"`   // base name of files exported for region 2
	Interface string `yaml:"interface"` // base name of files exported for the interface
	Method    string `yaml:"method"`    // export method; only "FORTRAN"

	// output types
	EquationsSet1      string `yaml:"eqset1"`     // none, timing, matrix, element_matrix, progress
	EquationsSet2      string `yaml:"eqset2"`     // none, timing, matrix, element_matrix, progress
	Equations1         string `yaml:"equations1"` // none, timing, matrix, element_matrix
	Equations2         string `yaml:"equations2"` // none, timing, matrix, element_matrix
	InterfaceCondition string `yaml:"icond"`      // none, progress
	InterfaceEquations string `yaml:"ieqs"`       // none, timing, matrix, element_matrix
	Solver             string `yaml:"solver"`     // none, progress, timing, monitor, matrix
	Decomposer         string `yaml:"decomposer"` // none, all
}

// UserNumbers holds the numbers used to register each object of the simulation
type UserNumbers struct {
	Context               int `yaml:"context"`
	CoordinateSystem1     int `yaml:"coordsys1"`
	CoordinateSystem2     int `yaml:"coordsys2"`
	CoordinateSystemIface int `yaml:"coordsysiface"`
	Region1               int `yaml:"region1"`
	Region2               int `yaml:"region2"`
	Basis1                int `yaml:"basis1"`
	Basis2                int `yaml:"basis2"`
	BasisIface            int `yaml:"basisiface"`
	BasisIfaceMapping     int `yaml:"basisifacemapping"`
	GeneratedMesh1        int `yaml:"genmesh1"`
	GeneratedMesh2        int `yaml:"genmesh2"`
	GeneratedMeshIface    int `yaml:"genmeshiface"`
	Mesh1                 int `yaml:"mesh1"`
	Mesh2                 int `yaml:"mesh2"`
	MeshIface             int `yaml:"meshiface"`
	Decomposition1        int `yaml:"decomp1"`
	Decomposition2        int `yaml:"decomp2"`
	DecompositionIface    int `yaml:"decompiface"`
	Decomposer            int `yaml:"decomposer"`
	GeometricField1       int `yaml:"geofield1"`
	GeometricField2       int `yaml:"geofield2"`
	GeometricFieldIface   int `yaml:"geofieldiface"`
	EquationsSetField1    int `yaml:"eqsetfield1"`
	EquationsSetField2    int `yaml:"eqsetfield2"`
	EquationsSet1         int `yaml:"eqset1"`
	EquationsSet2         int `yaml:"eqset2"`
	DependentField1       int `yaml:"depfield1"`
	DependentField2       int `yaml:"depfield2"`
	Interface             int `yaml:"interface"`
	InterfaceCondition    int `yaml:"icond"`
	LagrangeField         int `yaml:"lagrangefield"`
	Problem               int `yaml:"problem"`
}

// Params holds all parameters of the coupled Laplace simulation
type Params struct {

	// global information
	Desc string `yaml:"desc"` // description of simulation

	// geometry
	Height float64 `yaml:"height"` // extent along y
	Width  float64 `yaml:"width"`  // extent along x of each region
	Length float64 `yaml:"length"` // extent along z (3D only)

	// discretisation
	NumberOfGlobalXElements int           `yaml:"nx"`     // elements along x in each region
	NumberOfGlobalYElements int           `yaml:"ny"`     // elements along y
	NumberOfGlobalZElements int           `yaml:"nz"`     // elements along z; 0 => 2D
	Interp                  Interpolation `yaml:"interp"` // interpolation of all bases

	// messages
	SetupOutput         bool `yaml:"setupoutput"` // print summary before starting
	ProgressDiagnostics bool `yaml:"progress"`    // print progress messages

	// solver, output and numbering
	LinSol      LinSolData  `yaml:"linsol"`
	Output      OutputData  `yaml:"output"`
	UserNumbers UserNumbers `yaml:"usernumbers"`
}

// NewParams returns a new Params structure with default values
func NewParams() (o *Params) {
	o = new(Params)
	o.Height = 1.0
	o.Width = 2.0
	o.Length = 3.0
	o.NumberOfGlobalXElements = 2
	o.NumberOfGlobalYElements = 2
	o.NumberOfGlobalZElements = 0
	o.Interp = LinearLagrange
	o.SetupOutput = true
	o.ProgressDiagnostics = true
	o.LinSol.SetDefault()
	o.Output.SetDefault()
	o.UserNumbers.SetDefault()
	return
}

// ReadParams reads parameters from a YAML (or JSON) file on top of the default values.
// Unknown keys are reported as errors.
func ReadParams(fnpath string) (o *Params, err error) {

	// read file
	b, err := os.ReadFile(fnpath)
	if err != nil {
		return nil, chk.Err("cannot read parameters file %q:\n%v", fnpath, err)
	}

	// decode
	o = NewParams()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err = dec.Decode(o)
	if err != nil && err != goio.EOF {
		return nil, chk.Err("cannot decode parameters file %q:\n%v", fnpath, err)
	}
	return o, o.Validate()
}

// Ndim returns the space dimension
func (o *Params) Ndim() int {
	if o.NumberOfGlobalZElements == 0 {
		return 2
	}
	return 3
}

// NdimInterface returns the dimension of the interface
func (o *Params) NdimInterface() int {
	return o.Ndim() - 1
}

// NumberOfElements returns the number of elements along each direction of a region
func (o *Params) NumberOfElements() []int {
	if o.Ndim() == 2 {
		return []int{o.NumberOfGlobalXElements, o.NumberOfGlobalYElements}
	}
	return []int{o.NumberOfGlobalXElements, o.NumberOfGlobalYElements, o.NumberOfGlobalZElements}
}

// Extent returns the extent of a region
func (o *Params) Extent() []float64 {
	if o.Ndim() == 2 {
		return []float64{o.Width, o.Height}
	}
	return []float64{o.Width, o.Height, o.Length}
}

// Validate checks the parameters
func (o *Params) Validate() error {
	nelems := []int{o.NumberOfGlobalXElements, o.NumberOfGlobalYElements, o.NumberOfGlobalZElements}
	for i, n := range nelems {
		if n < 0 {
			return chk.Err("the specified %s of %d is invalid. The number should be >= 0", elemArgNames[i], n)
		}
	}
	if !o.Interp.Known() {
		return chk.Err("the specified interpolationType of %d is invalid", int(o.Interp))
	}
	if o.Interp.IsSimplex() {
		return chk.Err("interpolation type %v is not supported by regular generated meshes", o.Interp)
	}
	if o.Height <= 0 || o.Width <= 0 {
		return chk.Err("height and width must be positive. height=%g, width=%g", o.Height, o.Width)
	}
	if o.Ndim() == 3 && o.Length <= 0 {
		return chk.Err("length must be positive in 3D. length=%g", o.Length)
	}
	return o.LinSol.Validate()
}

// Summary returns the summary of the simulation parameters
func (o *Params) Summary() string {
	var b bytes.Buffer
	io.Ff(&b, "SUMMARY\n")
	io.Ff(&b, "=======\n")
	io.Ff(&b, " \n")
	io.Ff(&b, "    Interpolation type: %v\n", o.Interp)
	io.Ff(&b, " \n")
	io.Ff(&b, "    Height: %f\n", o.Height)
	io.Ff(&b, "    Width : %f\n", o.Width)
	io.Ff(&b, "    Length: %f\n", o.Length)
	io.Ff(&b, " \n")
	io.Ff(&b, "    Number of X elements: %d\n", o.NumberOfGlobalXElements)
	io.Ff(&b, "    Number of Y elements: %d\n", o.NumberOfGlobalYElements)
	io.Ff(&b, "    Number of Z elements: %d\n", o.NumberOfGlobalZElements)
	return b.String()
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Type = "direct"
	o.Library = "mumps"
	o.Sparsity = "sparse"
	o.MaxIt = 100000000
	o.Rtol = 1e-4
	o.Atol = 1e-4
	o.Dtol = 1e5
	o.Restart = 30
}

// Validate checks the linear solver data
func (o *LinSolData) Validate() error {
	switch o.Type {
	case "direct":
		switch o.Library {
		case "mumps", "umfpack", "lapack":
		default:
			return chk.Err("direct linear solver library %q is not available. Options: mumps, umfpack, lapack", o.Library)
		}
	case "iterative":
		if o.MaxIt < 1 || o.Restart < 1 {
			return chk.Err("iterative linear solver needs maxit >= 1 and restart >= 1. maxit=%d, restart=%d", o.MaxIt, o.Restart)
		}
		if o.Rtol <= 0 || o.Atol < 0 || o.Dtol <= 0 {
			return chk.Err("iterative linear solver tolerances are invalid. rtol=%g, atol=%g, dtol=%g", o.Rtol, o.Atol, o.Dtol)
		}
	default:
		return chk.Err("linear solver type %q is invalid. Options: direct, iterative", o.Type)
	}
	if o.Sparsity != "sparse" && o.Sparsity != "full" {
		return chk.Err("sparsity %q is invalid. Options: sparse, full", o.Sparsity)
	}

	// mumps and umfpack need sparse matrices; lapack needs full matrices
	if o.Type == "direct" {
		need := "sparse"
		if o.Library == "lapack" {
			need = "full"
		}
		if o.Sparsity != need {
			return chk.Err("direct linear solver library %q requires %s matrices. sparsity %q is incompatible", o.Library, need, o.Sparsity)
		}
	}
	return nil
}

// SetDefault sets defaults values
func (o *OutputData) SetDefault() {
	o.DirOut = "."
	o.Region1 = "CoupledLaplace1"
	o.Region2 = "CoupledLaplace2"
	o.Interface = "CoupledLaplaceInterface"
	o.Method = "FORTRAN"
	o.EquationsSet1 = "progress"
	o.EquationsSet2 = "progress"
	o.Equations1 = "none"
	o.Equations2 = "none"
	o.InterfaceCondition = "progress"
	o.InterfaceEquations = "none"
	o.Solver = "monitor"
	o.Decomposer = "all"
}

// SetDefault sets defaults values
func (o *UserNumbers) SetDefault() {
	o.Context = 1
	o.CoordinateSystem1 = 1
	o.CoordinateSystem2 = 2
	o.CoordinateSystemIface = 3
	o.Region1 = 1
	o.Region2 = 2
	o.Basis1 = 1
	o.Basis2 = 2
	o.BasisIface = 3
	o.BasisIfaceMapping = 4
	o.GeneratedMesh1 = 1
	o.GeneratedMesh2 = 2
	o.GeneratedMeshIface = 3
	o.Mesh1 = 1
	o.Mesh2 = 2
	o.MeshIface = 3
	o.Decomposition1 = 1
	o.Decomposition2 = 2
	o.DecompositionIface = 3
	o.Decomposer = 1
	o.GeometricField1 = 1
	o.GeometricField2 = 2
	o.GeometricFieldIface = 3
	o.EquationsSetField1 = 4
	o.EquationsSetField2 = 5
	o.EquationsSet1 = 1
	o.EquationsSet2 = 2
	o.DependentField1 = 6
	o.DependentField2 = 7
	o.Interface = 1
	o.InterfaceCondition = 2
	o.LagrangeField = 8
	o.Problem = 1
}
