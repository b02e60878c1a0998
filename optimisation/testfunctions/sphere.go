// Package testfunctions provides small separable objectives used to exercise
// optimisers and the mini-batch driver.
package testfunctions

import "gonum.org/v1/gonum/mat"

// Sphere is the objective f(x) = sum_i x_i^2, decomposed into one
// sub-function f_i(x) = x_i^2 per coordinate. Its minimum is the origin.
type Sphere struct {
	dimension int
}

func NewSphere(dimension int) *Sphere {
	return &Sphere{dimension: dimension}
}

func (f *Sphere) NumFunctions() int {
	return f.dimension
}

func (f *Sphere) Dimension() int {
	return f.dimension
}

func (f *Sphere) Evaluate(parameters mat.Vector, begin, batchSize int, gradient *mat.VecDense) float64 {
	gradient.Zero()
	rv := 0.0
	for i := begin; i < begin+batchSize; i++ {
		xi := parameters.AtVec(i)
		rv += xi * xi
		gradient.SetVec(i, 2*xi)
	}
	return rv
}
