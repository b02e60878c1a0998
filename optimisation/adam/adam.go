package adam

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/stochoptproject/stochopt/internal/common/linalg"
	"github.com/stochoptproject/stochopt/internal/common/stochopterrors"
)

// Adaptive moment estimation optimiser; see the following paper for details:
// https://arxiv.org/abs/1412.6980
//
// Maintains exponentially decayed averages of gradients and squared gradients
// and rescales both to counteract their zero-initialisation bias.
type Adam struct {
	eta       float64
	beta1     float64
	beta2     float64
	epsilon   float64
	iteration int
	m         *mat.VecDense
	v         *mat.VecDense
}

func New(eta, beta1, beta2, epsilon float64) (*Adam, error) {
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
	return &Adam{eta: eta, beta1: beta1, beta2: beta2, epsilon: epsilon}, nil
}

func MustNew(eta, beta1, beta2, epsilon float64) *Adam {
	opt, err := New(eta, beta1, beta2, epsilon)
	if err != nil {
		panic(err)
	}
	return opt
}

func (o *Adam) Update(out, p *mat.VecDense, g mat.Vector) *mat.VecDense {
	o.iteration++
	c1 := 1 - math.Pow(o.beta1, float64(o.iteration))
	c2 := 1 - math.Pow(o.beta2, float64(o.iteration))
	for i := 0; i < p.Len(); i++ {
		gi := g.AtVec(i)
		mi := o.beta1*o.m.AtVec(i) + (1-o.beta1)*gi
		vi := o.beta2*o.v.AtVec(i) + (1-o.beta2)*gi*gi
		o.m.SetVec(i, mi)
		o.v.SetVec(i, vi)
		out.SetVec(i, p.AtVec(i)-o.eta*(mi/c1)/(math.Sqrt(vi/c2)+o.epsilon))
	}
	return out
}

func (o *Adam) Extend(n int) {
	o.m = linalg.ExtendVecDense(o.m, n)
	o.v = linalg.ExtendVecDense(o.v, n)
}

func (o *Adam) Reset() {
	linalg.ZeroVecDense(o.m)
	linalg.ZeroVecDense(o.v)
	o.iteration = 0
}

// Iteration returns the number of updates applied since construction or the
// last reset.
func (o *Adam) Iteration() int {
	return o.iteration
}
