package testfunctions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	stochoptslices "github.com/stochoptproject/stochopt/internal/common/slices"
)

func TestSphere(t *testing.T) {
	f := NewSphere(3)
	assert.Equal(t, 3, f.NumFunctions())
	assert.Equal(t, 3, f.Dimension())

	p := mat.NewVecDense(3, []float64{1, -2, 3})
	gradient := mat.NewVecDense(3, nil)

	tests := map[string]struct {
		begin            int
		batchSize        int
		expected         float64
		expectedGradient []float64
	}{
		"full batch":   {begin: 0, batchSize: 3, expected: 14, expectedGradient: []float64{2, -4, 6}},
		"single":       {begin: 1, batchSize: 1, expected: 4, expectedGradient: []float64{0, -4, 0}},
		"tail batch":   {begin: 1, batchSize: 2, expected: 13, expectedGradient: []float64{0, -4, 6}},
		"leading only": {begin: 0, batchSize: 1, expected: 1, expectedGradient: []float64{2, 0, 0}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, f.Evaluate(p, tc.begin, tc.batchSize, gradient))
			assert.Equal(t, tc.expectedGradient, gradient.RawVector().Data)
		})
	}
}

func TestQuadratics(t *testing.T) {
	centres := []*mat.VecDense{
		mat.NewVecDense(2, stochoptslices.Zeros[float64](2)),
		mat.NewVecDense(2, stochoptslices.Fill(2.0, 2)),
	}
	f := NewQuadratics(2, centres, 0)
	assert.Equal(t, 2, f.NumFunctions())
	assert.Equal(t, 2, f.Dimension())

	p := mat.NewVecDense(2, stochoptslices.Ones[float64](2))
	gradient := mat.NewVecDense(2, nil)

	// At the mean of the centres the full-batch gradient vanishes.
	assert.Equal(t, 2.0, f.Evaluate(p, 0, 2, gradient))
	assert.Equal(t, []float64{0, 0}, gradient.RawVector().Data)

	// Single-sample gradients point away from the respective centres.
	f.Evaluate(p, 0, 1, gradient)
	assert.Equal(t, []float64{1, 1}, gradient.RawVector().Data)
	f.Evaluate(p, 1, 1, gradient)
	assert.Equal(t, []float64{-1, -1}, gradient.RawVector().Data)
}

// Shuffling reorders sub-functions without changing the overall objective.
func TestQuadraticsShuffleInvariant(t *testing.T) {
	centres := []*mat.VecDense{
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{1}),
		mat.NewVecDense(1, []float64{2}),
		mat.NewVecDense(1, []float64{3}),
	}
	f := NewQuadratics(1, centres, 7)

	p := mat.NewVecDense(1, []float64{0.5})
	gradient := mat.NewVecDense(1, nil)
	before := f.Evaluate(p, 0, f.NumFunctions(), gradient)
	for i := 0; i < 10; i++ {
		f.Shuffle()
		// Summation order changes with the permutation, so compare up to
		// rounding.
		assert.InDelta(t, before, f.Evaluate(p, 0, f.NumFunctions(), gradient), 1e-12)
	}
}

func TestFlat(t *testing.T) {
	f := NewFlat(4, 2)
	assert.Equal(t, 4, f.NumFunctions())
	assert.Equal(t, 2, f.Dimension())

	gradient := mat.NewVecDense(2, stochoptslices.Ones[float64](2))
	assert.Equal(t, 0.0, f.Evaluate(mat.NewVecDense(2, nil), 0, 4, gradient))
	assert.Equal(t, []float64{0, 0}, gradient.RawVector().Data)
}
