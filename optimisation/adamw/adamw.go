package adamw

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/stochoptproject/stochopt/internal/common/linalg"
	"github.com/stochoptproject/stochopt/internal/common/stochopterrors"
)

// Adam with decoupled weight decay; see the following paper for details:
// https://arxiv.org/abs/1711.05101
//
// Identical to Adam except that weight decay is applied directly to the
// parameters instead of being folded into the gradient.
type AdamW struct {
	eta       float64
	beta1     float64
	beta2     float64
	epsilon   float64
	decay     float64
	iteration int
	m         *mat.VecDense
	v         *mat.VecDense
}

func New(eta, beta1, beta2, epsilon, decay float64) (*AdamW, error) {
	if eta < 0 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "eta",
			Value:   eta,
			Message: "outside allowed range [0, Inf)",
		})
	}
	if beta1 < 0 || beta1 >= 1 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "beta1",
			Value:   beta1,
			Message: "outside allowed range [0, 1)",
		})
	}
	if beta2 < 0 || beta2 >= 1 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "beta2",
			Value:   beta2,
			Message: "outside allowed range [0, 1)",
		})
	}
	if epsilon <= 0 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "epsilon",
			Value:   epsilon,
			Message: "outside allowed range (0, Inf)",
		})
	}
	if decay < 0 {
		return nil, errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "decay",
			Value:   decay,
			Message: "outside allowed range [0, Inf)",
		})
	}
	return &AdamW{eta: eta, beta1: beta1, beta2: beta2, epsilon: epsilon, decay: decay}, nil
}

func MustNew(eta, beta1, beta2, epsilon, decay float64) *AdamW {
	opt, err := New(eta, beta1, beta2, epsilon, decay)
	if err != nil {
		panic(err)
	}
	return opt
}

func (o *AdamW) Update(out, p *mat.VecDense, g mat.Vector) *mat.VecDense {
	o.iteration++
	c1 := 1 - math.Pow(o.beta1, float64(o.iteration))
	c2 := 1 - math.Pow(o.beta2, float64(o.iteration))
	for i := 0; i < p.Len(); i++ {
		gi := g.AtVec(i)
		pi := p.AtVec(i)
		mi := o.beta1*o.m.AtVec(i) + (1-o.beta1)*gi
		vi := o.beta2*o.v.AtVec(i) + (1-o.beta2)*gi*gi
		o.m.SetVec(i, mi)
		o.v.SetVec(i, vi)
		out.SetVec(i, pi-o.eta*((mi/c1)/(math.Sqrt(vi/c2)+o.epsilon)+o.decay*pi))
	}
	return out
}

func (o *AdamW) Extend(n int) {
	o.m = linalg.ExtendVecDense(o.m, n)
	o.v = linalg.ExtendVecDense(o.v, n)
}

func (o *AdamW) Reset() {
	linalg.ZeroVecDense(o.m)
	linalg.ZeroVecDense(o.v)
	o.iteration = 0
}
