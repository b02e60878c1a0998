package testfunctions

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	stochoptslices "github.com/stochoptproject/stochopt/internal/common/slices"
)

// Quadratics is the objective f(x) = sum_i ||x - c_i||^2 / 2 with one
// sub-function per centre c_i. Its minimum is the mean of the centres.
// Shuffling reorders the centres, so batch contents change between epochs
// while the overall objective does not.
type Quadratics struct {
	dimension int
	centres   []*mat.VecDense
	rand      *rand.Rand
}

func NewQuadratics(dimension int, centres []*mat.VecDense, seed int64) *Quadratics {
	return &Quadratics{
		dimension: dimension,
		centres:   stochoptslices.Clone(centres),
		rand:      rand.New(rand.NewSource(seed)),
	}
}

func (f *Quadratics) NumFunctions() int {
	return len(f.centres)
}

func (f *Quadratics) Dimension() int {
	return f.dimension
}

func (f *Quadratics) Evaluate(parameters mat.Vector, begin, batchSize int, gradient *mat.VecDense) float64 {
	gradient.Zero()
	rv := 0.0
	for i := begin; i < begin+batchSize; i++ {
		for j := 0; j < f.dimension; j++ {
			d := parameters.AtVec(j) - f.centres[i].AtVec(j)
			rv += d * d / 2
			gradient.SetVec(j, gradient.AtVec(j)+d)
		}
	}
	return rv
}

func (f *Quadratics) Shuffle() {
	f.rand.Shuffle(len(f.centres), func(i, j int) {
		f.centres[i], f.centres[j] = f.centres[j], f.centres[i]
	})
}
