package qhadam

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/stochoptproject/stochopt/internal/common/linalg"
	"github.com/stochoptproject/stochopt/internal/common/stochopterrors"
)

// Update implements the quasi-hyperbolic Adam update rule; see the following
// paper for details: https://arxiv.org/abs/1810.06801
//
// Each step blends the instantaneous gradient with the bias-corrected first
// moment (weighted by v1) and the instantaneous squared gradient with the
// bias-corrected second moment (weighted by v2). With v1 = v2 = 1 the rule
// reduces to Adam; with v1 = 0 only the instantaneous gradient contributes
// to the numerator.
type Update struct {
	eta       float64
	v1        float64
	v2        float64
	beta1     float64
	beta2     float64
	epsilon   float64
	iteration int
	m         *mat.VecDense
	v         *mat.VecDense
}

func NewUpdate(eta, v1, v2, beta1, beta2, epsilon float64) (*Update, error) {
	o := &Update{}
	if err := o.configure(eta, v1, v2, beta1, beta2, epsilon); err != nil {
		return nil, err
	}
	return o, nil
}

func MustNewUpdate(eta, v1, v2, beta1, beta2, epsilon float64) *Update {
	opt, err := NewUpdate(eta, v1, v2, beta1, beta2, epsilon)
	if err != nil {
		panic(err)
	}
	return opt
}

// configure validates and applies hyperparameters, leaving moment state and
// the step index untouched.
func (o *Update) configure(eta, v1, v2, beta1, beta2, epsilon float64) error {
	if eta < 0 {
		return errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "eta",
			Value:   eta,
			Message: "outside allowed range [0, Inf)",
		})
	}
	if v1 < 0 || v1 > 1 {
		return errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "v1",
			Value:   v1,
			Message: "outside allowed range [0, 1]",
		})
	}
	if v2 < 0 || v2 > 1 {
		return errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "v2",
			Value:   v2,
			Message: "outside allowed range [0, 1]",
		})
	}
	if beta1 < 0 || beta1 >= 1 {
		return errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "beta1",
			Value:   beta1,
			Message: "outside allowed range [0, 1)",
		})
	}
	if beta2 < 0 || beta2 >= 1 {
		return errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "beta2",
			Value:   beta2,
			Message: "outside allowed range [0, 1)",
		})
	}
	if epsilon <= 0 {
		return errors.WithStack(&stochopterrors.ErrInvalidArgument{
			Name:    "epsilon",
			Value:   epsilon,
			Message: "outside allowed range (0, Inf)",
		})
	}
	o.eta = eta
	o.v1 = v1
	o.v2 = v2
	o.beta1 = beta1
	o.beta2 = beta2
	o.epsilon = epsilon
	return nil
}

func (o *Update) Update(out, p *mat.VecDense, g mat.Vector) *mat.VecDense {
	o.iteration++
	// beta1, beta2 < 1 and iteration >= 1, so both correction factors are
	// bounded away from zero.
	c1 := 1 - math.Pow(o.beta1, float64(o.iteration))
	c2 := 1 - math.Pow(o.beta2, float64(o.iteration))
	for i := 0; i < p.Len(); i++ {
		gi := g.AtVec(i)
		mi := o.beta1*o.m.AtVec(i) + (1-o.beta1)*gi
		vi := o.beta2*o.v.AtVec(i) + (1-o.beta2)*gi*gi
		o.m.SetVec(i, mi)
		o.v.SetVec(i, vi)
		numerator := (1-o.v1)*gi + o.v1*(mi/c1)
		denominator := (1-o.v2)*gi*gi + o.v2*(vi/c2)
		out.SetVec(i, p.AtVec(i)-o.eta*numerator/(math.Sqrt(denominator)+o.epsilon))
	}
	return out
}

func (o *Update) Extend(n int) {
	o.m = linalg.ExtendVecDense(o.m, n)
	o.v = linalg.ExtendVecDense(o.v, n)
}

func (o *Update) Reset() {
	linalg.ZeroVecDense(o.m)
	linalg.ZeroVecDense(o.v)
	o.iteration = 0
}

// Iteration returns the number of updates applied since construction or the
// last reset.
func (o *Update) Iteration() int {
	return o.iteration
}

// FirstMoment returns the exponentially decayed gradient average.
func (o *Update) FirstMoment() mat.Vector {
	return o.m
}

// SecondMoment returns the exponentially decayed squared-gradient average.
func (o *Update) SecondMoment() mat.Vector {
	return o.v
}
