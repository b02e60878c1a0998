package linalg

import "gonum.org/v1/gonum/mat"

// ExtendVecDense extends the length of vec in-place to be at least n.
func ExtendVecDense(vec *mat.VecDense, n int) *mat.VecDense {
	if vec == nil {
		return mat.NewVecDense(n, make([]float64, n))
	}
	rawVec := vec.RawVector()
	d := n - rawVec.N
	if d <= 0 {
		return vec
	}
	rawVec.Data = append(rawVec.Data, make([]float64, d)...)
	rawVec.N = n
	vec.SetRawVector(rawVec)
	return vec
}

// ZeroVecDense zeroes vec in-place. A nil vec is returned unchanged.
func ZeroVecDense(vec *mat.VecDense) *mat.VecDense {
	if vec == nil {
		return nil
	}
	rawVec := vec.RawVector()
	for i := 0; i < rawVec.N; i++ {
		rawVec.Data[i*rawVec.Inc] = 0
	}
	return vec
}
