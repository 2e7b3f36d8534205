package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Matrix3 is a dense row-major 3x3 matrix.
type Matrix3 [dynamo.Links][dynamo.Links]float64

// Solver solves a * x = b for x.
type Solver interface {
	Solve(a Matrix3, b [dynamo.Links]float64) ([dynamo.Links]float64, error)
}

// GaussJordan eliminates without pivoting. The mass matrix of a pendulum
// with positive masses is positive-definite, so every pivot is non-zero.
type GaussJordan struct{}

func (GaussJordan) Solve(a Matrix3, b [dynamo.Links]float64) ([dynamo.Links]float64, error) {
	const n = dynamo.Links
	for i := 0; i < n; i++ {
		pivot := a[i][i]
		if pivot == 0 {
			return b, fmt.Errorf("%w: zero pivot in row %d", dynamo.ErrSingularMatrix, i)
		}
		b[i] /= pivot
		for k := i; k < n; k++ {
			a[i][k] /= pivot
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			f := a[j][i]
			b[j] -= f * b[i]
			for k := i; k < n; k++ {
				a[j][k] -= f * a[i][k]
			}
		}
	}
	return b, nil
}

// LU solves through a partially pivoted LU decomposition.
type LU struct{}

func (LU) Solve(a Matrix3, b [dynamo.Links]float64) ([dynamo.Links]float64, error) {
	const n = dynamo.Links
	var out [n]float64

	dense := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dense.Set(i, j, a[i][j])
		}
	}

	var lu mat.LU
	lu.Factorize(dense)
	if lu.Det() == 0 {
		return out, fmt.Errorf("%w: zero determinant", dynamo.ErrSingularMatrix)
	}

	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(n, b[:])); err != nil {
		return out, fmt.Errorf("%w: %v", dynamo.ErrSingularMatrix, err)
	}
	for i := 0; i < n; i++ {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
