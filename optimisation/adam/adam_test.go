package adam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	stochoptslices "github.com/stochoptproject/stochopt/internal/common/slices"
)

func TestAdamNew(t *testing.T) {
	tests := map[string]struct {
		eta     float64
		beta1   float64
		beta2   float64
		epsilon float64
		wantErr bool
	}{
		"valid":         {eta: 0.001, beta1: 0.9, beta2: 0.999, epsilon: 1e-8, wantErr: false},
		"negative eta":  {eta: -0.001, beta1: 0.9, beta2: 0.999, epsilon: 1e-8, wantErr: true},
		"beta1 of one":  {eta: 0.001, beta1: 1.0, beta2: 0.999, epsilon: 1e-8, wantErr: true},
		"beta2 of one":  {eta: 0.001, beta1: 0.9, beta2: 1.0, epsilon: 1e-8, wantErr: true},
		"zero epsilon":  {eta: 0.001, beta1: 0.9, beta2: 0.999, epsilon: 0, wantErr: true},
		"negative eps":  {eta: 0.001, beta1: 0.9, beta2: 0.999, epsilon: -1e-8, wantErr: true},
		"zero betas ok": {eta: 0.001, beta1: 0, beta2: 0, epsilon: 1e-8, wantErr: false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(tc.eta, tc.beta1, tc.beta2, tc.epsilon)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// With a constant gradient the bias-corrected update has magnitude close to
// eta each step, independent of the gradient scale.
func TestAdamConstantGradient(t *testing.T) {
	opt := MustNew(0.1, 0.9, 0.999, 1e-8)
	opt.Extend(2)

	p := mat.NewVecDense(2, stochoptslices.Ones[float64](2))
	g := mat.NewVecDense(2, stochoptslices.Fill(4.0, 2))
	for step := 1; step <= 3; step++ {
		opt.Update(p, p, g)
		for i := 0; i < p.Len(); i++ {
			assert.InDelta(t, 1.0-0.1*float64(step), p.AtVec(i), 1e-6)
		}
		assert.Equal(t, step, opt.Iteration())
	}
}

// With beta1 = beta2 = 0 the update is the sign of the gradient scaled by eta,
// up to the epsilon floor.
func TestAdamDegenerateBetas(t *testing.T) {
	opt := MustNew(1.0, 0, 0, 1e-8)
	opt.Extend(2)

	p := mat.NewVecDense(2, stochoptslices.Zeros[float64](2))
	g := mat.NewVecDense(2, []float64{2, -0.5})
	opt.Update(p, p, g)

	assert.InDelta(t, -1.0, p.AtVec(0), 1e-7)
	assert.InDelta(t, 1.0, p.AtVec(1), 1e-7)
}

func TestAdamReset(t *testing.T) {
	opt := MustNew(0.1, 0.9, 0.999, 1e-8)
	opt.Extend(1)

	g := mat.NewVecDense(1, []float64{1})
	first := mat.NewVecDense(1, []float64{1})
	opt.Update(first, first, g)
	firstStep := first.AtVec(0)
	opt.Update(first, first, g)

	opt.Reset()
	assert.Equal(t, 0, opt.Iteration())

	second := mat.NewVecDense(1, []float64{1})
	opt.Update(second, second, g)
	assert.Equal(t, firstStep, second.AtVec(0))
}

func TestAdamZeroGradient(t *testing.T) {
	opt := MustNew(0.1, 0.9, 0.999, 1e-8)
	opt.Extend(2)

	p := mat.NewVecDense(2, []float64{1, -2})
	g := mat.NewVecDense(2, stochoptslices.Zeros[float64](2))
	opt.Update(p, p, g)

	assert.Equal(t, mat.NewVecDense(2, []float64{1, -2}), p)
}
