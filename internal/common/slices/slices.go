package slices

import (
	goslices "golang.org/x/exp/slices"
)

// Zeros returns a slice T[] of length n with all elements equal to zero.
func Zeros[T any](n int) []T {
	return make([]T, n)
}

// Ones returns a slice T[] of length n with all elements equal to one.
func Ones[T int | float32 | float64](n int) []T {
	return Fill[T](1, n)
}

// Fill returns a slice T[] of length n with all elements equal to v.
func Fill[T any](v T, n int) []T {
	rv := make([]T, n)
	for i := range rv {
		rv[i] = v
	}
	return rv
}

// Repeat returns a slice []T of length n*len(vs) consisting of n copies of vs.
func Repeat[T any](n int, vs ...T) []T {
	rv := make([]T, n*len(vs))
	for i := 0; i < n; i++ {
		copy(rv[i*len(vs):], vs)
	}
	return rv
}

// Clone returns a copy of s.
func Clone[S ~[]E, E any](s S) S {
	return goslices.Clone(s)
}
