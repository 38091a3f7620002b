// Package covariance estimates spatial correlation matrices from array
// snapshots and conditions them for subspace and adaptive beamformers.
//
// Input data is laid out as rows = sensors and columns = snapshots. Every
// function returns a new matrix; inputs are never modified.
package covariance

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sonar/linalg"
)

var (
	// ErrEmptyInput is returned when there are no sensors or no snapshots.
	ErrEmptyInput = errors.New("covariance: empty input")
	// ErrRaggedInput is returned when sensor rows differ in length.
	ErrRaggedInput = errors.New("covariance: sensor rows differ in length")
	// ErrInvalidSubarray is returned for a subarray size outside [1, M].
	ErrInvalidSubarray = errors.New("covariance: invalid subarray size")
)

// Standard returns the sample correlation matrix R = Y·Yᴴ/N.
func Standard(y [][]complex128) (*linalg.Matrix, error) {
	m, n, err := validate(y)
	if err != nil {
		return nil, err
	}

	r, err := linalg.New(m, m)
	if err != nil {
		return nil, err
	}
	scale := complex(1/float64(n), 0)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			var sum complex128
			yi, yj := y[i], y[j]
			for t := 0; t < n; t++ {
				sum += yi[t] * conj(yj[t])
			}
			sum *= scale
			r.Set(i, j, sum)
			if i != j {
				r.Set(j, i, conj(sum))
			}
		}
	}
	return r, nil
}

// SpatialSmoothing averages the M−L+1 overlapping L×L principal submatrices
// of the sample correlation matrix. It decorrelates coherent sources at the
// cost of aperture: the result is L×L.
func SpatialSmoothing(y [][]complex128, l int) (*linalg.Matrix, error) {
	r, err := Standard(y)
	if err != nil {
		return nil, err
	}
	return Smooth(r, l)
}

// Smooth is SpatialSmoothing for an already estimated M×M matrix.
func Smooth(r *linalg.Matrix, l int) (*linalg.Matrix, error) {
	if r.Rows() != r.Cols() {
		return nil, fmt.Errorf("%w: %dx%d", linalg.ErrNonSquare, r.Rows(), r.Cols())
	}
	m := r.Rows()
	if l < 1 || l > m {
		return nil, fmt.Errorf("%w: L=%d for M=%d", ErrInvalidSubarray, l, m)
	}
	subarrays := m - l + 1

	acc, err := linalg.New(l, l)
	if err != nil {
		return nil, err
	}
	for k := 0; k < subarrays; k++ {
		block, err := r.Block(k, k, l, l)
		if err != nil {
			return nil, err
		}
		if acc, err = linalg.Add(acc, block); err != nil {
			return nil, err
		}
	}
	return acc.Scale(complex(1/float64(subarrays), 0)), nil
}

// ForwardBackward returns ½(R + J·R*·J), where J is the exchange matrix.
// Applying it twice gives the same result as applying it once.
func ForwardBackward(r *linalg.Matrix) (*linalg.Matrix, error) {
	if r.Rows() != r.Cols() {
		return nil, fmt.Errorf("%w: %dx%d", linalg.ErrNonSquare, r.Rows(), r.Cols())
	}
	j := linalg.Exchange(r.Rows())
	jr, err := linalg.Mul(j, r.Conj())
	if err != nil {
		return nil, err
	}
	back, err := linalg.Mul(jr, j)
	if err != nil {
		return nil, err
	}
	sum, err := linalg.Add(r, back)
	if err != nil {
		return nil, err
	}
	return sum.Scale(0.5), nil
}

// SmoothThenForwardBackward applies spatial smoothing with subarray size l
// and then forward-backward averaging.
func SmoothThenForwardBackward(y [][]complex128, l int) (*linalg.Matrix, error) {
	r, err := SpatialSmoothing(y, l)
	if err != nil {
		return nil, err
	}
	return ForwardBackward(r)
}

// ForwardBackwardThenSmooth applies forward-backward averaging to the full
// sample matrix and then spatial smoothing with subarray size l.
func ForwardBackwardThenSmooth(y [][]complex128, l int) (*linalg.Matrix, error) {
	r, err := Standard(y)
	if err != nil {
		return nil, err
	}
	fb, err := ForwardBackward(r)
	if err != nil {
		return nil, err
	}
	return Smooth(fb, l)
}

// RotaryAveraging returns ¼(R + J·Rᵀ + J·R·J + R·J).
//
// The result is generally not Hermitian; eigen-based estimators decompose
// its Hermitian part.
func RotaryAveraging(y [][]complex128) (*linalg.Matrix, error) {
	r, err := Standard(y)
	if err != nil {
		return nil, err
	}
	j := linalg.Exchange(r.Rows())

	terms := make([]*linalg.Matrix, 0, 3)
	jrt, err := linalg.Mul(j, r.T())
	if err != nil {
		return nil, err
	}
	terms = append(terms, jrt)
	jr, err := linalg.Mul(j, r)
	if err != nil {
		return nil, err
	}
	jrj, err := linalg.Mul(jr, j)
	if err != nil {
		return nil, err
	}
	terms = append(terms, jrj)
	rj, err := linalg.Mul(r, j)
	if err != nil {
		return nil, err
	}
	terms = append(terms, rj)

	sum := r
	for _, term := range terms {
		if sum, err = linalg.Add(sum, term); err != nil {
			return nil, err
		}
	}
	return sum.Scale(0.25), nil
}

// DiagonalLoading returns R − δ·I. A negative δ raises the diagonal, which
// is how an ill-conditioned matrix is regularised before inversion.
func DiagonalLoading(r *linalg.Matrix, delta float64) (*linalg.Matrix, error) {
	return r.AddDiagonal(complex(-delta, 0))
}

func validate(y [][]complex128) (m, n int, err error) {
	m = len(y)
	if m == 0 || len(y[0]) == 0 {
		return 0, 0, ErrEmptyInput
	}
	n = len(y[0])
	for i, row := range y {
		if len(row) != n {
			return 0, 0, fmt.Errorf("%w: row %d has %d snapshots, want %d", ErrRaggedInput, i, len(row), n)
		}
	}
	return m, n, nil
}

func conj(z complex128) complex128 { return complex(real(z), -imag(z)) }
