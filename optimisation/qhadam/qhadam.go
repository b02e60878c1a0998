// Package qhadam implements the quasi-hyperbolic Adam optimiser of Ma and
// Yarats (https://arxiv.org/abs/1810.06801) as an update policy for the
// generic mini-batch driver in package sgd, together with a front-end that
// bundles the policy, the driver, and their hyperparameters.
//
// QHAdam is sensitive to its parameters; the defaults may not fit every
// problem. With V1 = V2 = 1 it recovers Adam exactly.
package qhadam

import (
	"gonum.org/v1/gonum/mat"

	"github.com/stochoptproject/stochopt/optimisation"
	"github.com/stochoptproject/stochopt/optimisation/sgd"
)

// QHAdam bundles the quasi-hyperbolic update policy with the stochastic
// driver. Fields may be mutated freely between Optimize calls; they are
// validated and re-applied on every call. The policy's moment state is
// retained across calls, so setting ResetPolicy to false continues from the
// accumulated moments of the previous call.
type QHAdam struct {
	// Step size for each iteration.
	StepSize float64
	// Number of sub-functions evaluated per update step.
	BatchSize int
	// First quasi-hyperbolic weight, blending the instantaneous gradient
	// with the bias-corrected first moment.
	V1 float64
	// Second quasi-hyperbolic weight, blending the instantaneous squared
	// gradient with the bias-corrected second moment.
	V2 float64
	// Exponential decay rate for the first moment estimates.
	Beta1 float64
	// Exponential decay rate for the second moment estimates.
	Beta2 float64
	// Floor added to the denominator to avoid division by zero.
	Epsilon float64
	// Maximum number of update steps; 0 means no limit.
	MaxIterations int
	// Terminate once the absolute epoch-to-epoch objective improvement
	// falls below this value.
	Tolerance float64
	// Reorder sub-functions between epochs, if the objective supports it.
	Shuffle bool
	// Zero the moment state at the start of every Optimize call.
	ResetPolicy bool

	update *Update
}

// New returns a QHAdam optimiser with the default hyperparameters.
func New() *QHAdam {
	return &QHAdam{
		StepSize:      0.001,
		BatchSize:     32,
		V1:            0.7,
		V2:            1,
		Beta1:         0.9,
		Beta2:         0.999,
		Epsilon:       1e-8,
		MaxIterations: 100000,
		Tolerance:     1e-5,
		Shuffle:       true,
		ResetPolicy:   true,
	}
}

// Optimize minimises f starting from iterate, mutating iterate in place, and
// returns the objective value at the final iterate.
func (q *QHAdam) Optimize(f optimisation.Separable, iterate *mat.VecDense) (float64, error) {
	if q.update == nil {
		q.update = &Update{}
	}
	if err := q.update.configure(q.StepSize, q.V1, q.V2, q.Beta1, q.Beta2, q.Epsilon); err != nil {
		return 0, err
	}
	driver, err := sgd.New(q.update, sgd.Config{
		BatchSize:     q.BatchSize,
		MaxIterations: q.MaxIterations,
		Tolerance:     q.Tolerance,
		Shuffle:       q.Shuffle,
		ResetPolicy:   q.ResetPolicy,
	})
	if err != nil {
		return 0, err
	}
	return driver.Optimize(f, iterate)
}

// Update returns the underlying update policy, or nil before the first
// Optimize call. Useful for inspecting the step index and moment state.
func (q *QHAdam) Update() *Update {
	return q.update
}
