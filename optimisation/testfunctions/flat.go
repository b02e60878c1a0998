package testfunctions

import "gonum.org/v1/gonum/mat"

// Flat is a constant objective with zero gradient everywhere. Any sane
// optimiser must leave the iterate unchanged on it.
type Flat struct {
	numFunctions int
	dimension    int
}

func NewFlat(numFunctions, dimension int) *Flat {
	return &Flat{numFunctions: numFunctions, dimension: dimension}
}

func (f *Flat) NumFunctions() int {
	return f.numFunctions
}

func (f *Flat) Dimension() int {
	return f.dimension
}

func (f *Flat) Evaluate(_ mat.Vector, _, _ int, gradient *mat.VecDense) float64 {
	gradient.Zero()
	return 0
}
