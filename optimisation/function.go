package optimisation

import "gonum.org/v1/gonum/mat"

// Separable represents a differentiable objective function that decomposes
// into independently evaluable sub-functions, e.g., one per training sample,
// such that the total objective and gradient are the sums over sub-functions.
type Separable interface {
	// NumFunctions returns the number of sub-functions the objective decomposes into.
	NumFunctions() int
	// Dimension returns the length of the parameter vector the objective expects.
	Dimension() int
	// Evaluate computes the objective over the contiguous batch of batchSize
	// sub-functions starting at begin, writes the batch gradient into gradient,
	// and returns the batch objective value. The gradient vector has the same
	// length as parameters and is overwritten.
	Evaluate(parameters mat.Vector, begin, batchSize int, gradient *mat.VecDense) float64
}

// Shuffleable is implemented by separable objectives that can reorder their
// sub-functions. Drivers call Shuffle at epoch boundaries when visitation
// order is randomised; objectives that do not implement it are visited in
// linear order.
type Shuffleable interface {
	Shuffle()
}
