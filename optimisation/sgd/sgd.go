// Package sgd implements a generic mini-batch stochastic optimisation loop
// parameterised by a first-order update policy.
//
// The driver repeatedly evaluates a contiguous batch of sub-functions of a
// separable objective, hands the batch gradient to the update policy, and
// applies the resulting step to the iterate in place. It terminates when the
// epoch-to-epoch objective improvement falls below the configured tolerance
// or when the configured number of update steps has been performed.
package sgd

import (
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/stochoptproject/stochopt/internal/common/stochopterrors"
	"github.com/stochoptproject/stochopt/optimisation"
)

// Config holds the loop hyperparameters. All fields except BatchSize may be
// left at their zero value.
type Config struct {
	// Number of sub-functions evaluated per update step. The final batch of
	// an epoch may be smaller. Must be at least 1.
	BatchSize int
	// Maximum number of update steps; 0 means no limit. Exhausting the limit
	// is a normal termination, not an error.
	MaxIterations int
	// Terminate once the absolute epoch-to-epoch objective improvement falls
	// below this value. Must be non-negative.
	Tolerance float64
	// Ask the objective to reorder its sub-functions before the first epoch
	// and after every completed epoch. Objectives that do not implement
	// optimisation.Shuffleable are always visited in linear order.
	Shuffle bool
	// Reset the update policy's internal state at the start of every
	// Optimize call. If false, moment state carries over between calls.
	ResetPolicy bool
}

// SGD drives a first-order update policy over mini-batches of a separable
// objective. A single SGD instance must not be used from multiple goroutines
// concurrently; the iterate and the policy state are mutated exclusively by
// the call stack executing Optimize.
type SGD struct {
	opt           optimisation.Optimiser
	batchSize     int
	maxIterations int
	tolerance     float64
	shuffle       bool
	resetPolicy   bool
	iterations    int
}

func New(opt optimisation.Optimiser, config Config) (*SGD, error) {
	if opt == nil {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "opt",
			Value:   opt,
			Message: "update policy must be non-nil",
		})
	}
	if config.BatchSize < 1 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "batchSize",
			Value:   config.BatchSize,
			Message: "outside allowed range [1, Inf)",
		})
	}
	if config.MaxIterations < 0 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "maxIterations",
			Value:   config.MaxIterations,
			Message: "outside allowed range [0, Inf)",
		})
	}
	if config.Tolerance < 0 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "tolerance",
			Value:   config.Tolerance,
			Message: "outside allowed range [0, Inf)",
		})
	}
	return &SGD{
		opt:           opt,
		batchSize:     config.BatchSize,
		maxIterations: config.MaxIterations,
		tolerance:     config.Tolerance,
		shuffle:       config.Shuffle,
		resetPolicy:   config.ResetPolicy,
	}, nil
}

func MustNew(opt optimisation.Optimiser, config Config) *SGD {
	rv, err := New(opt, config)
	if err != nil {
		panic(err)
	}
	return rv
}

// Optimize minimises f starting from iterate, mutating iterate in place, and
// returns the objective value at the final iterate. The iterate must have
// length f.Dimension().
//
// Non-finite objective or gradient values are not detected; they propagate
// into subsequent steps.
func (s *SGD) Optimize(f optimisation.Separable, iterate *mat.VecDense) (float64, error) {
	numFunctions := f.NumFunctions()
	if numFunctions < 1 {
		return 0, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "f",
			Value:   numFunctions,
			Message: "objective must decompose into at least one sub-function",
		})
	}
	if iterate.Len() != f.Dimension() {
		return 0, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "iterate",
			Value:   iterate.Len(),
			Message: "length does not match objective dimension",
		})
	}

	if s.resetPolicy {
		s.opt.Reset()
	}
	s.opt.Extend(iterate.Len())

	shuffleable, canShuffle := f.(optimisation.Shuffleable)
	if s.shuffle && canShuffle {
		shuffleable.Shuffle()
	}

	log.Debugf(
		"starting optimisation over %d sub-functions in %d dimensions: batchSize %d, maxIterations %d, tolerance %v",
		numFunctions, iterate.Len(), s.batchSize, s.maxIterations, s.tolerance,
	)

	gradient := mat.NewVecDense(iterate.Len(), nil)
	epochObjective := 0.0
	lastEpochObjective := math.Inf(1)
	currentFunction := 0
	s.iterations = 0
	for s.maxIterations == 0 || s.iterations < s.maxIterations {
		if currentFunction == numFunctions {
			// Epoch boundary.
			if math.Abs(lastEpochObjective-epochObjective) < s.tolerance {
				log.Infof(
					"converged after %d iterations: objective improvement %v below tolerance %v",
					s.iterations, math.Abs(lastEpochObjective-epochObjective), s.tolerance,
				)
				return s.finalObjective(f, iterate, gradient), nil
			}
			log.Debugf("epoch complete after %d iterations: objective %v", s.iterations, epochObjective)
			lastEpochObjective = epochObjective
			epochObjective = 0
			currentFunction = 0
			if s.shuffle && canShuffle {
				shuffleable.Shuffle()
			}
		}
		batchSize := s.batchSize
		if remaining := numFunctions - currentFunction; remaining < batchSize {
			batchSize = remaining
		}
		epochObjective += f.Evaluate(iterate, currentFunction, batchSize, gradient)
		s.opt.Update(iterate, iterate, gradient)
		s.iterations++
		currentFunction += batchSize
	}
	log.Infof("maximum number of iterations (%d) reached; terminating", s.maxIterations)
	return s.finalObjective(f, iterate, gradient), nil
}

// Iterations returns the number of update steps performed by the most recent
// Optimize call.
func (s *SGD) Iterations() int {
	return s.iterations
}

// finalObjective evaluates f over all sub-functions at the final iterate.
func (s *SGD) finalObjective(f optimisation.Separable, iterate *mat.VecDense, gradient *mat.VecDense) float64 {
	numFunctions := f.NumFunctions()
	rv := 0.0
	for i := 0; i < numFunctions; i += s.batchSize {
		batchSize := s.batchSize
		if remaining := numFunctions - i; remaining < batchSize {
			batchSize = remaining
		}
		rv += f.Evaluate(iterate, i, batchSize, gradient)
	}
	return rv
}
